package guide

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/metrics"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/store"
)

// Service persists product records and generates guides from them.
type Service struct {
	store   store.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService wires the guide flow to a session store.
func NewService(s store.Store, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{store: s, metrics: m, logger: logging.OrNop(logger).Named("guide")}
}

// SaveProduct validates and stores the product record of a session.
func (s *Service) SaveProduct(ctx context.Context, sessionID string, data ProductData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if err := store.Save(ctx, s.store, sessionID, store.KeyProductData, data); err != nil {
		return fmt.Errorf("save product data: %w", err)
	}
	s.logger.Info("product captured",
		zap.String("session", sessionID),
		zap.String("category", data.Category),
		zap.String("platform", data.Platform))
	return nil
}

// Product returns the stored product record.
func (s *Service) Product(ctx context.Context, sessionID string) (ProductData, error) {
	var data ProductData
	if err := store.Load(ctx, s.store, sessionID, store.KeyProductData, &data); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ProductData{}, ErrProductDataMissing
		}
		return ProductData{}, err
	}
	return data, nil
}

// Guide builds the listing guide for the stored product record.
func (s *Service) Guide(ctx context.Context, sessionID string) (Guide, error) {
	data, err := s.Product(ctx, sessionID)
	if err != nil {
		return Guide{}, err
	}

	g, err := Build(data)
	if err != nil {
		return Guide{}, err
	}
	if s.metrics != nil {
		s.metrics.Guides.Inc()
	}
	return g, nil
}
