package host

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/quizbingo/internal/dependencies/clock"
	"github.com/mcoot/quizbingo/internal/model"
)

// ErrInvalidPassword is returned when a login uses the wrong host password
var ErrInvalidPassword = errors.New("invalid host password")

// Session is a logged-in host
type Session struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Config holds configuration for host authentication
type Config struct {
	// Password protects destructive operations. Empty disables host auth.
	Password        string
	SessionDuration time.Duration
	Cost            int // bcrypt cost
}

// DefaultConfig returns default host configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 12 * time.Hour,
		Cost:            bcrypt.DefaultCost,
	}
}

// Service authorizes the host. Only the bcrypt hash of the password is kept.
type Service struct {
	clock clock.Clock
	hash  []byte

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// New creates a host service, hashing the configured password
func New(clock clock.Clock, cfg Config) (*Service, error) {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.Cost == 0 {
		cfg.Cost = defaults.Cost
	}

	s := &Service{
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
	if cfg.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), cfg.Cost)
		if err != nil {
			return nil, err
		}
		s.hash = hash
	}
	return s, nil
}

// Enabled reports whether a host password is configured
func (s *Service) Enabled() bool {
	return s.hash != nil
}

// Login checks the host password and opens a session
func (s *Service) Login(password string) (*Session, error) {
	if !s.Enabled() {
		return nil, model.ErrHostUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	now := s.clock.Now()
	session := &Session{
		Token:     generateToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session, nil
}

// Logout ends a host session
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Authorize accepts either a live session token or the host password itself.
// Everything is authorized when no password is configured.
func (s *Service) Authorize(credential string) error {
	if !s.Enabled() {
		return nil
	}
	if credential == "" {
		return model.ErrHostUnauthorized
	}

	if strings.HasPrefix(credential, tokenPrefix) {
		s.mu.RLock()
		session, ok := s.sessions[credential]
		s.mu.RUnlock()
		if ok {
			if s.clock.Now().After(session.ExpiresAt) {
				s.Logout(credential)
				return model.ErrHostUnauthorized
			}
			return nil
		}
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(credential)); err != nil {
		return model.ErrHostUnauthorized
	}
	return nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// SessionCount returns the number of open host sessions
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

const tokenPrefix = "host_"

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b)
}
