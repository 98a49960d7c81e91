package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/logging"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/metrics"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/store"
)

var ErrMissingCredentials = errors.New("username and password are required")

// Profile is what the onboarding pages remember about the seller.
type Profile struct {
	Username string `json:"username"`
}

// Service implements the demo login. Any non-empty username/password pair
// is accepted; only the username is kept.
type Service struct {
	store   store.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService wires the login flow to a session store.
func NewService(s store.Store, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{store: s, metrics: m, logger: logging.OrNop(logger).Named("account")}
}

// Login validates the form and records the profile for the session.
func (s *Service) Login(ctx context.Context, sessionID, username, password string) (Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Profile{}, ErrMissingCredentials
	}

	profile := Profile{Username: username}
	if err := store.Save(ctx, s.store, sessionID, store.KeyUser, profile); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}

	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	s.logger.Info("seller logged in", zap.String("session", sessionID), zap.String("username", username))
	return profile, nil
}

// Greeting is the welcome line shown after login.
func (p Profile) Greeting() string {
	return fmt.Sprintf("Namaste %s! Ready to build your dreams?", p.Username)
}

// Profile returns the logged-in profile of a session.
func (s *Service) Profile(ctx context.Context, sessionID string) (Profile, error) {
	var profile Profile
	if err := store.Load(ctx, s.store, sessionID, store.KeyUser, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
