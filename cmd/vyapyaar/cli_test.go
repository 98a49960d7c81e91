package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/analysis/intent"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/rule"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/assistant"
	chatservice "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRespondCommand(t *testing.T) {
	out, err := execute(t, "respond", "I", "want", "to", "sell", "snacks")
	require.NoError(t, err)
	assert.Contains(t, out, "Delicious choice!")
	assert.Contains(t, out, "[1] Healthy Nuts & Seeds")
}

func TestRespondCommandJSON(t *testing.T) {
	out, err := execute(t, "respond", "--json", "tell me about quantum physics")
	require.NoError(t, err)

	var turn chat.Turn
	require.NoError(t, json.Unmarshal([]byte(out), &turn))
	assert.Equal(t, intent.FallbackRuleID, turn.RuleID)
	assert.Equal(t, chat.SpeakerBot, turn.Speaker)
}

func TestRespondCommandRejectsUnknownMatchMode(t *testing.T) {
	_, err := execute(t, "respond", "--match", "words", "craftsman")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown match mode")
}

func TestGuideCommand(t *testing.T) {
	out, err := execute(t, "guide",
		"--category", "Food",
		"--name", "Mango pickle",
		"--cost", "999",
		"--platform", "WhatsApp")
	require.NoError(t, err)
	assert.Contains(t, out, "₹2,498")
	assert.Contains(t, out, "₹1,499")
}

func TestGuideCommandMissingField(t *testing.T) {
	_, err := execute(t, "guide", "--category", "Food", "--name", "Mango pickle", "--cost", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform")
}

func newTestChatModel(t *testing.T) *chatModel {
	t.Helper()
	responder, err := intent.New(rule.Seed())
	require.NoError(t, err)
	assistantSvc, err := assistant.NewService(context.Background(), responder, nil, nil)
	require.NoError(t, err)
	svc := chatservice.NewService(assistantSvc, chatservice.Config{}, nil, nil)
	t.Cleanup(svc.Close)

	m, err := newChatModel(context.Background(), svc)
	require.NoError(t, err)
	t.Cleanup(m.cancel)
	return m
}

// drain feeds the queued session events into the model.
func drain(m *chatModel, n int) {
	for i := 0; i < n; i++ {
		m.Update(waitForEvent(m.events)())
	}
}

func TestChatModelChipSubmission(t *testing.T) {
	m := newTestChatModel(t)
	require.Len(t, m.turns, 1)
	assert.Contains(t, m.View(), "[1] Fashion & Clothing")

	m.input.SetValue("1")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(m, 3)

	require.Len(t, m.turns, 3)
	assert.Equal(t, "Fashion & Clothing", m.turns[1].Text)
	assert.Equal(t, "fashion", m.turns[2].RuleID)
	assert.False(t, m.typing)
	assert.Empty(t, m.input.Value())
}

func TestChatModelLocksWhileTyping(t *testing.T) {
	m := newTestChatModel(t)

	m.Update(eventMsg{Type: chatservice.EventTyping, SessionID: m.sessionID})
	require.True(t, m.typing)
	assert.Contains(t, m.View(), "Vyapyaar is typing")

	m.submit("snacks")
	assert.Equal(t, "Please wait for the reply.", m.status)
	assert.Len(t, m.turns, 1)
}

func TestChatModelOutOfRangeChipIsText(t *testing.T) {
	m := newTestChatModel(t)
	assert.Equal(t, "42", m.resolveChip("42"))
	assert.Equal(t, "Homemade Snacks", m.resolveChip(" 3 "))
}
