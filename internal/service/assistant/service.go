package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/analysis/intent"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/metrics"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/chat"
)

// ErrEmptyInput is returned for blank submissions. Nothing is recorded.
var ErrEmptyInput = errors.New("message text is required")

// Service turns user text into bot turns. The reply path is compiled once
// into an eino chain: respond -> record.
type Service struct {
	responder *intent.Responder
	metrics   *metrics.Metrics
	logger    *zap.Logger
	chain     compose.Runnable[string, chat.Turn]
}

// NewService compiles the reply chain around responder. m and logger may be nil.
func NewService(ctx context.Context, responder *intent.Responder, m *metrics.Metrics, logger *zap.Logger) (*Service, error) {
	if responder == nil {
		return nil, errors.New("responder is required")
	}

	svc := &Service{
		responder: responder,
		metrics:   m,
		logger:    logging.OrNop(logger).Named("assistant"),
	}

	chain := compose.NewChain[string, chat.Turn]()
	chain.AppendLambda(compose.InvokableLambda[string, chat.Turn](svc.respond))
	chain.AppendLambda(compose.InvokableLambda[chat.Turn, chat.Turn](svc.record))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// Reply returns the bot turn for text. Blank text yields ErrEmptyInput.
func (s *Service) Reply(ctx context.Context, text string) (chat.Turn, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if s.metrics != nil {
			s.metrics.Rejections.WithLabelValues("empty").Inc()
		}
		return chat.Turn{}, ErrEmptyInput
	}

	turn, err := s.chain.Invoke(ctx, trimmed)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("failed to run reply chain: %w", err)
	}
	return turn, nil
}

// Greeting returns the opening bot turn.
func (s *Service) Greeting() chat.Turn {
	return s.responder.Greeting()
}

// Responder exposes the underlying rule engine.
func (s *Service) Responder() *intent.Responder {
	return s.responder
}

func (s *Service) respond(_ context.Context, text string) (chat.Turn, error) {
	return s.responder.Respond(text), nil
}

func (s *Service) record(_ context.Context, turn chat.Turn) (chat.Turn, error) {
	if s.metrics != nil {
		s.metrics.RuleMatches.WithLabelValues(turn.RuleID).Inc()
	}
	s.logger.Debug("reply selected", zap.String("rule", turn.RuleID), zap.String("turn", turn.ID))
	return turn, nil
}
