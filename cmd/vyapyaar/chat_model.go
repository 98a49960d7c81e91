package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/chat"
	chatservice "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
)

const typingFrame = 400 * time.Millisecond

type (
	eventMsg  chatservice.Event
	closedMsg struct{}
	tickMsg   time.Time
)

type chatStyles struct {
	Header lipgloss.Style
	Bot    lipgloss.Style
	User   lipgloss.Style
	Chip   lipgloss.Style
	Typing lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
}

func defaultChatStyles() chatStyles {
	return chatStyles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F97316")).MarginBottom(1),
		Bot:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")).PaddingLeft(1).BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#F97316")),
		User:   lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD")).PaddingLeft(1).BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#3B82F6")),
		Chip:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FDBA74")),
		Typing: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#9CA3AF")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// chatModel mirrors one chat session. Turns arrive through the session
// subscription, so what is shown is exactly what the log holds.
type chatModel struct {
	chat      *chatservice.Service
	sessionID string
	events    <-chan chatservice.Event
	cancel    func()

	turns  []chat.Turn
	input  textinput.Model
	typing bool
	frame  int
	status string
	styles chatStyles
}

func newChatModel(ctx context.Context, svc *chatservice.Service) (*chatModel, error) {
	session, err := svc.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	turns, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	events, cancel, err := svc.Subscribe(session.ID)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "Tell me what you'd like to sell, or pick a number"
	input.CharLimit = 280
	input.Width = 60
	input.Focus()

	return &chatModel{
		chat:      svc,
		sessionID: session.ID,
		events:    events,
		cancel:    cancel,
		turns:     turns,
		input:     input,
		styles:    defaultChatStyles(),
	}, nil
}

func waitForEvent(events <-chan chatservice.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func typingTick() tea.Cmd {
	return tea.Tick(typingFrame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit(m.input.Value())
			return m, nil
		}

	case eventMsg:
		var cmd tea.Cmd
		switch msg.Type {
		case chatservice.EventTyping:
			m.typing = true
			m.frame = 0
			m.input.Blur()
			cmd = typingTick()
		case chatservice.EventTurn:
			if msg.Turn != nil {
				m.turns = append(m.turns, *msg.Turn)
				if msg.Turn.Speaker == chat.SpeakerBot {
					m.typing = false
					m.input.Focus()
				}
			}
		}
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case tickMsg:
		if !m.typing {
			return m, nil
		}
		m.frame = (m.frame + 1) % 4
		return m, typingTick()

	case closedMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends typed text, or the chip whose number was typed.
func (m *chatModel) submit(raw string) {
	if m.typing {
		m.status = "Please wait for the reply."
		return
	}

	text := m.resolveChip(raw)
	_, err := m.chat.Submit(context.Background(), m.sessionID, text)
	switch {
	case err == nil:
		m.status = ""
		m.input.Reset()
	case errors.Is(err, chatservice.ErrEmptyInput):
		m.status = ""
	case errors.Is(err, chatservice.ErrResponsePending):
		m.status = "Please wait for the reply."
	default:
		m.status = err.Error()
	}
}

func (m *chatModel) resolveChip(raw string) string {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	chips := m.currentChips()
	if n < 1 || n > len(chips) {
		return raw
	}
	return chips[n-1]
}

// currentChips are the suggestions of the latest bot turn.
func (m *chatModel) currentChips() []string {
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].Speaker == chat.SpeakerBot {
			return m.turns[i].Suggestions
		}
	}
	return nil
}

func (m *chatModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Vyapyaar · Start a business"))
	sb.WriteString("\n")

	for _, turn := range m.turns {
		if turn.Speaker == chat.SpeakerBot {
			sb.WriteString(m.styles.Bot.Render(turn.Text))
		} else {
			sb.WriteString(m.styles.User.Render(turn.Text))
		}
		sb.WriteString("\n\n")
	}

	if m.typing {
		sb.WriteString(m.styles.Typing.Render("Vyapyaar is typing" + strings.Repeat(".", m.frame)))
		sb.WriteString("\n\n")
	} else {
		for i, chip := range m.currentChips() {
			sb.WriteString(m.styles.Chip.Render(fmt.Sprintf("[%d] %s", i+1, chip)))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("enter send · esc quit"))
	sb.WriteString("\n")
	return sb.String()
}
