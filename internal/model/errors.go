package model

import "errors"

// Common errors used across the application
var (
	// Persistence errors
	ErrSnapshotNotFound  = errors.New("session snapshot not found")
	ErrMalformedSnapshot = errors.New("session snapshot is malformed")

	// Quiz bank errors
	ErrQuizBankNotLoaded = errors.New("quiz bank not loaded")
	ErrQuizPoolTooSmall  = errors.New("quiz pool is smaller than the board")
	ErrInvalidQuiz       = errors.New("invalid quiz record")

	// Setup errors
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrNoTeams          = errors.New("at least one team is required")

	// Host errors
	ErrHostUnauthorized = errors.New("host password required")
)
