package redis

import (
	"fmt"

	"github.com/mcoot/quizbingo/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "quizbingo"

// snapshotKey returns the Redis key for the session snapshot.
// The layout version is part of the key so old layouts are simply ignored.
func snapshotKey() string {
	return fmt.Sprintf("%s:session:v%d", keyPrefix, model.SnapshotVersion)
}

// quizzesKey returns the Redis key for the quiz bank list
func quizzesKey() string {
	return fmt.Sprintf("%s:quizzes", keyPrefix)
}
