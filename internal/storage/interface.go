package storage

import (
	"context"

	"github.com/mcoot/quizbingo/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Session snapshot operations
	SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error
	GetSnapshot(ctx context.Context) (*model.Snapshot, error)
	DeleteSnapshot(ctx context.Context) error

	// Quiz bank operations
	SaveQuizzes(ctx context.Context, quizzes []model.Quiz) error
	GetQuizzes(ctx context.Context) ([]model.Quiz, error)
}
