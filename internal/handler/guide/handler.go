package guide

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	guideService "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/guide"
	"github.com/vyapyaar/vyapyaar-ai/backend/pkg/utils"
)

// ProductFormPath is where clients go when no product data exists yet.
const ProductFormPath = "/sell-online"

// Handler serves product capture and the listing guide.
type Handler struct {
	guides *guideService.Service
	logger *zap.Logger
}

// New creates the guide handler.
func New(guides *guideService.Service, logger *zap.Logger) *Handler {
	return &Handler{guides: guides, logger: logging.OrNop(logger).Named("http.guide")}
}

// RegisterSessionRoutes mounts routes under /sessions/{sessionID}.
func (h *Handler) RegisterSessionRoutes(r chi.Router) {
	r.Put("/product", h.handleSaveProduct)
	r.Get("/product", h.handleGetProduct)
	r.Get("/guide", h.handleGuide)
}

func (h *Handler) handleSaveProduct(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload guideService.ProductData
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.guides.SaveProduct(r.Context(), sessionID, payload); err != nil {
		h.respondServiceError(w, sessionID, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	data, err := h.guides.Product(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, sessionID, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, data)
}

func (h *Handler) handleGuide(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	g, err := h.guides.Guide(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, sessionID, err)
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(g.Markdown()))
		return
	}

	utils.RespondJSON(w, http.StatusOK, g)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, sessionID string, err error) {
	var fieldErr *guideService.FieldError
	switch {
	case errors.Is(err, guideService.ErrProductDataMissing):
		utils.RespondRedirect(w, http.StatusNotFound, err.Error(), ProductFormPath)
	case errors.As(err, &fieldErr):
		utils.RespondJSON(w, http.StatusBadRequest, utils.ErrorBody{Error: err.Error(), Field: fieldErr.Field})
	case errors.Is(err, guideService.ErrInvalidCostPrice):
		utils.RespondJSON(w, http.StatusBadRequest, utils.ErrorBody{Error: err.Error(), Field: "costPrice"})
	default:
		h.logger.Error("guide request failed", zap.String("session", sessionID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
