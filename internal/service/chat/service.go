package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/metrics"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyInput      = errors.New("message text is required")
	ErrResponsePending = errors.New("a response is still pending")
	ErrClosed          = errors.New("chat service closed")
)

// Replier produces bot turns. *assistant.Service satisfies it.
type Replier interface {
	Reply(ctx context.Context, text string) (chat.Turn, error)
	Greeting() chat.Turn
}

// Config tunes presentation and retention.
type Config struct {
	// TypingDelay postpones delivery of each bot turn. Zero delivers inline.
	TypingDelay time.Duration
	// MaxTurns bounds each session log; the oldest turns go first. Zero is unbounded.
	MaxTurns int
}

// EventType names what happened in a session.
type EventType string

const (
	EventTyping EventType = "typing"
	EventTurn   EventType = "turn"
)

// Event is published to session subscribers.
type Event struct {
	Type      EventType  `json:"event"`
	SessionID string     `json:"sessionId"`
	Turn      *chat.Turn `json:"turn,omitempty"`
}

type pendingReply struct {
	turn  chat.Turn
	timer *time.Timer
	ready bool
}

type conversation struct {
	session     chat.Session
	turns       []chat.Turn
	pending     *pendingReply
	subscribers map[int]chan Event
}

// Service owns the append-only conversation logs of active sessions.
// At most one bot reply per session is in flight; submissions made while
// it is pending are refused.
type Service struct {
	mu       sync.Mutex
	replier  Replier
	cfg      Config
	metrics  *metrics.Metrics
	logger   *zap.Logger
	sessions map[string]*conversation
	nextSub  int
	closed   bool
}

// NewService bootstraps the in-memory chat service. m and logger may be nil.
func NewService(replier Replier, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Service {
	if cfg.MaxTurns < 0 {
		cfg.MaxTurns = 0
	}
	return &Service{
		replier:  replier,
		cfg:      cfg,
		metrics:  m,
		logger:   logging.OrNop(logger).Named("chat"),
		sessions: make(map[string]*conversation),
	}
}

// CreateSession provisions an anonymous session whose log opens with the
// greeting turn.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	greeting := s.replier.Greeting()
	greeting.SessionID = session.ID

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return chat.Session{}, ErrClosed
	}

	s.sessions[session.ID] = &conversation{
		session:     session,
		turns:       []chat.Turn{greeting},
		subscribers: make(map[int]chan Event),
	}

	s.logger.Info("session created", zap.String("session", session.ID))
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return conv.session, nil
}

// Submit appends the user turn and schedules the bot reply. Suggestion chips
// go through here too; a chip label is just pre-filled text.
func (s *Service) Submit(ctx context.Context, sessionID, text string) (chat.Turn, error) {
	if strings.TrimSpace(text) == "" {
		s.reject("empty")
		return chat.Turn{}, ErrEmptyInput
	}

	// Reserve the pending slot so the replier runs outside the lock.
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return chat.Turn{}, ErrClosed
	}
	conv, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return chat.Turn{}, ErrSessionNotFound
	}
	if conv.pending != nil {
		s.mu.Unlock()
		s.reject("pending")
		return chat.Turn{}, ErrResponsePending
	}
	conv.pending = &pendingReply{}
	s.mu.Unlock()

	botTurn, err := s.replier.Reply(ctx, text)
	if err != nil {
		s.mu.Lock()
		conv.pending = nil
		s.mu.Unlock()
		return chat.Turn{}, err
	}
	botTurn.SessionID = sessionID

	userTurn := chat.Turn{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Speaker:     chat.SpeakerUser,
		Text:        text,
		Suggestions: []string{},
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.appendTurn(conv, userTurn)
	s.publish(conv, Event{Type: EventTurn, SessionID: sessionID, Turn: cloneRef(userTurn)})
	s.publish(conv, Event{Type: EventTyping, SessionID: sessionID})

	pending := conv.pending
	pending.turn = botTurn
	pending.ready = true
	if s.cfg.TypingDelay > 0 && !s.closed {
		pending.timer = time.AfterFunc(s.cfg.TypingDelay, func() {
			s.deliver(sessionID, botTurn.ID)
		})
		s.mu.Unlock()
	} else {
		s.mu.Unlock()
		s.deliver(sessionID, botTurn.ID)
	}

	s.logger.Debug("turn submitted",
		zap.String("session", sessionID),
		zap.String("rule", botTurn.RuleID))
	return userTurn.Clone(), nil
}

// Pending reports whether a bot reply is scheduled but not yet delivered.
func (s *Service) Pending(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.sessions[sessionID]
	return ok && conv.pending != nil
}

// Transcript returns the session log in insertion order.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Turn, len(conv.turns))
	for i, turn := range conv.turns {
		copied[i] = turn.Clone()
	}
	return copied, nil
}

// Subscribe streams future events of a session. The returned cancel func
// closes the channel; it is safe to call more than once.
func (s *Service) Subscribe(sessionID string) (<-chan Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, nil, ErrClosed
	}
	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	conv.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := conv.subscribers[id]; ok {
			delete(conv.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel, nil
}

// Close flushes pending replies and ends every subscription.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true

	type flush struct{ sessionID, turnID string }
	var flushes []flush
	for id, conv := range s.sessions {
		if conv.pending != nil && conv.pending.ready && conv.pending.timer != nil && conv.pending.timer.Stop() {
			flushes = append(flushes, flush{id, conv.pending.turn.ID})
		}
	}
	s.mu.Unlock()

	for _, f := range flushes {
		s.deliver(f.sessionID, f.turnID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conv := range s.sessions {
		for id, sub := range conv.subscribers {
			delete(conv.subscribers, id)
			close(sub)
		}
	}
}

func (s *Service) deliver(sessionID, turnID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[sessionID]
	if !ok || conv.pending == nil || conv.pending.turn.ID != turnID {
		return
	}

	turn := conv.pending.turn
	conv.pending = nil
	s.appendTurn(conv, turn)
	s.publish(conv, Event{Type: EventTurn, SessionID: sessionID, Turn: cloneRef(turn)})
}

// appendTurn must be called with s.mu held.
func (s *Service) appendTurn(conv *conversation, turn chat.Turn) {
	conv.turns = append(conv.turns, turn)
	if s.cfg.MaxTurns == 0 || len(conv.turns) <= s.cfg.MaxTurns {
		return
	}

	drop := len(conv.turns) - s.cfg.MaxTurns
	conv.turns = append([]chat.Turn(nil), conv.turns[drop:]...)
	if s.metrics != nil {
		s.metrics.TurnsEvicted.Add(float64(drop))
	}
}

// publish must be called with s.mu held. Slow subscribers lose events
// instead of stalling the log.
func (s *Service) publish(conv *conversation, ev Event) {
	for id, sub := range conv.subscribers {
		select {
		case sub <- ev:
		default:
			s.logger.Warn("subscriber lagging, event dropped",
				zap.String("session", conv.session.ID),
				zap.Int("subscriber", id),
				zap.String("event", string(ev.Type)))
		}
	}
}

func (s *Service) reject(reason string) {
	if s.metrics != nil {
		s.metrics.Rejections.WithLabelValues(reason).Inc()
	}
}

func cloneRef(turn chat.Turn) *chat.Turn {
	c := turn.Clone()
	return &c
}
