package quizbank

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/mcoot/quizbingo/internal/dependencies/random"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/storage"
)

// Service holds the pool of quiz content and samples board assignments from it
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger

	mu      sync.RWMutex
	quizzes []model.Quiz
	loaded  bool
}

// New creates a new quiz bank service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// LoadFromStorage loads the quiz pool from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	quizzes, err := s.storage.GetQuizzes(ctx)
	if err != nil {
		return err
	}
	return s.loadQuizzes(quizzes)
}

// LoadFromFile loads the quiz pool from a JSON file holding an array of
// {"question", "options", "answer"} records, then saves it to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var quizzes []model.Quiz
	if err := json.Unmarshal(data, &quizzes); err != nil {
		return fmt.Errorf("parsing quiz file %s: %w", path, err)
	}

	if err := s.loadQuizzes(quizzes); err != nil {
		return err
	}

	// Save to storage for future use
	return s.storage.SaveQuizzes(ctx, quizzes)
}

// LoadQuizzes directly loads a slice of quizzes (useful for testing)
func (s *Service) LoadQuizzes(quizzes []model.Quiz) error {
	return s.loadQuizzes(quizzes)
}

func (s *Service) loadQuizzes(quizzes []model.Quiz) error {
	for i, q := range quizzes {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quiz %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.quizzes = make([]model.Quiz, len(quizzes))
	copy(s.quizzes, quizzes)
	s.loaded = true

	s.logger.Info("quiz bank loaded", slog.Int("quiz_count", len(quizzes)))
	return nil
}

// IsLoaded returns whether the quiz pool has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Count returns the number of quizzes in the pool
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}

// Require checks the pool can fill a board of n panels without repeats
func (s *Service) Require(n int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.ErrQuizBankNotLoaded
	}
	if len(s.quizzes) < n {
		return fmt.Errorf("%w: have %d quizzes, need %d", model.ErrQuizPoolTooSmall, len(s.quizzes), n)
	}
	return nil
}

// Sample draws n distinct quizzes in random order
func (s *Service) Sample(n int) ([]model.Quiz, error) {
	if err := s.Require(n); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	perm := random.Perm(s.random, len(s.quizzes))
	sample := make([]model.Quiz, n)
	for i := 0; i < n; i++ {
		q := s.quizzes[perm[i]]
		q.Options = append([]string(nil), q.Options...)
		sample[i] = q
	}
	return sample, nil
}
