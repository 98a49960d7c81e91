package assistant_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/analysis/intent"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/metrics"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/rule"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/assistant"
)

func newService(t *testing.T) (*assistant.Service, *metrics.Metrics) {
	t.Helper()
	responder, err := intent.New(rule.Seed())
	require.NoError(t, err)
	m := metrics.New(nil)
	svc, err := assistant.NewService(context.Background(), responder, m, nil)
	require.NoError(t, err)
	return svc, m
}

func TestReplyMatchesRule(t *testing.T) {
	svc, m := newService(t)

	turn, err := svc.Reply(context.Background(), "  I make handmade candles ")
	require.NoError(t, err)

	assert.Equal(t, chat.SpeakerBot, turn.Speaker)
	assert.Equal(t, "crafts", turn.RuleID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleMatches.WithLabelValues("crafts")))
}

func TestReplyFallback(t *testing.T) {
	svc, m := newService(t)

	turn, err := svc.Reply(context.Background(), "quantum computing widgets")
	require.NoError(t, err)

	assert.Equal(t, intent.FallbackRuleID, turn.RuleID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleMatches.WithLabelValues(intent.FallbackRuleID)))
}

func TestReplyRejectsBlank(t *testing.T) {
	svc, m := newService(t)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := svc.Reply(context.Background(), in)
		require.ErrorIs(t, err, assistant.ErrEmptyInput)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Rejections.WithLabelValues("empty")))
}

func TestNewServiceRequiresResponder(t *testing.T) {
	_, err := assistant.NewService(context.Background(), nil, nil, nil)
	require.Error(t, err)
}
