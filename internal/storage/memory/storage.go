package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// The snapshot is kept encoded so callers never share memory with it.
type Storage struct {
	mu sync.RWMutex

	snapshot []byte
	quizzes  []model.Quiz
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = data
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, model.ErrSnapshotNotFound
	}
	var snapshot model.Snapshot
	if err := json.Unmarshal(s.snapshot, &snapshot); err != nil {
		return nil, model.ErrMalformedSnapshot
	}
	return &snapshot, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	return nil
}

// SetRawSnapshot stores raw bytes as the snapshot (useful for testing corrupt data)
func (s *Storage) SetRawSnapshot(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = data
}

// Quiz bank operations

func (s *Storage) SaveQuizzes(ctx context.Context, quizzes []model.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes = make([]model.Quiz, len(quizzes))
	copy(s.quizzes, quizzes)
	return nil
}

func (s *Storage) GetQuizzes(ctx context.Context) ([]model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.quizzes == nil {
		return nil, model.ErrQuizBankNotLoaded
	}
	result := make([]model.Quiz, len(s.quizzes))
	copy(result, s.quizzes)
	return result, nil
}
