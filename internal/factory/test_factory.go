package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/mcoot/quizbingo/internal/dependencies/mocks"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/game"
	"github.com/mcoot/quizbingo/internal/services/host"
	"github.com/mcoot/quizbingo/internal/storage/memory"
	"github.com/mcoot/quizbingo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MemoryStorage *memory.Storage
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockScheduler *mocks.MockScheduler
}

// TestOption adjusts the configuration of a TestApp
type TestOption func(*testConfig)

type testConfig struct {
	game      game.Config
	countdown time.Duration
	host      host.Config
}

// WithGameConfig overrides the default game configuration
func WithGameConfig(cfg game.Config) TestOption {
	return func(c *testConfig) { c.game = cfg }
}

// WithHostPassword enables host authentication
func WithHostPassword(password string) TestOption {
	return func(c *testConfig) { c.host.Password = password }
}

// WithCountdown sets the countdown duration
func WithCountdown(d time.Duration) TestOption {
	return func(c *testConfig) { c.countdown = d }
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Scheduled actions only run when MockScheduler is advanced.
func NewTestApp(opts ...TestOption) (*TestApp, error) {
	cfg := testConfig{
		game:      game.DefaultConfig(),
		countdown: time.Minute,
		host:      host.Config{Cost: 4}, // bcrypt.MinCost
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockScheduler := mocks.NewMockScheduler()

	app, err := newWithDependencies(store, mockClock, mockRandom, mockScheduler, cfg.game, cfg.countdown, cfg.host, testutil.NopLogger())
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:           app,
		MemoryStorage: store,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockScheduler: mockScheduler,
	}, nil
}

// TestQuizzes returns n quizzes whose correct answer is always option 0
func TestQuizzes(n int) []model.Quiz {
	quizzes := make([]model.Quiz, n)
	for i := range quizzes {
		quizzes[i] = model.Quiz{
			Question: fmt.Sprintf("Test question %d?", i+1),
			Options:  []string{"Right", "Wrong", "Also wrong", "Very wrong"},
			Answer:   0,
		}
	}
	return quizzes
}

// SaveTestQuizzes stores n test quizzes so Init can load them from storage
func (t *TestApp) SaveTestQuizzes(ctx context.Context, n int) error {
	return t.MemoryStorage.SaveQuizzes(ctx, TestQuizzes(n))
}
