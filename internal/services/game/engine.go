package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mcoot/quizbingo/internal/dependencies/clock"
	"github.com/mcoot/quizbingo/internal/dependencies/scheduler"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/bingo"
	"github.com/mcoot/quizbingo/internal/storage"
)

// persistTimeout bounds snapshot writes made from scheduled commits
const persistTimeout = 5 * time.Second

// Config holds the board and pacing settings for a game
type Config struct {
	TeamNames []string
	BoardSize int
	RowPoints []int // RowPoints[r] is the value of every panel in row r

	// RevealDelay is how long the correctness indicator shows before the
	// answer is committed. Zero commits immediately.
	RevealDelay time.Duration
	// ReachDisplay is how long a reach announcement stays up. Zero keeps it
	// until dismissed.
	ReachDisplay time.Duration
}

// DefaultConfig returns the standard four-team 5x5 game
func DefaultConfig() Config {
	return Config{
		TeamNames:    []string{"Team A", "Team B", "Team C", "Team D"},
		BoardSize:    5,
		RowPoints:    []int{10, 20, 30, 50, 100},
		RevealDelay:  time.Second,
		ReachDisplay: 1500 * time.Millisecond,
	}
}

// Validate checks the configuration can build a board
func (c Config) Validate() error {
	if c.BoardSize < 2 {
		return fmt.Errorf("%w: %d", model.ErrInvalidBoardSize, c.BoardSize)
	}
	if len(c.RowPoints) != c.BoardSize {
		return fmt.Errorf("%w: %d row points for %d rows", model.ErrInvalidBoardSize, len(c.RowPoints), c.BoardSize)
	}
	for _, p := range c.RowPoints {
		if p < 0 {
			return fmt.Errorf("%w: negative row points", model.ErrInvalidBoardSize)
		}
	}
	if len(c.TeamNames) == 0 {
		return model.ErrNoTeams
	}
	return nil
}

// PanelCount returns the number of panels on the board
func (c Config) PanelCount() int {
	return c.BoardSize * c.BoardSize
}

// QuizSource supplies a random quiz assignment for a fresh board
type QuizSource interface {
	Sample(n int) ([]model.Quiz, error)
}

// Engine owns the session and is the only way to change it. Every entry
// point and every scheduled action runs to completion under one lock, so
// transitions never interleave.
type Engine struct {
	cfg       Config
	lines     []model.Line
	storage   storage.Storage
	quizzes   QuizSource
	clock     clock.Clock
	scheduler scheduler.Scheduler
	logger    *slog.Logger

	mu    sync.Mutex
	store *Store

	// generation invalidates scheduled actions created before a reset
	generation uint64
	commitTask scheduler.Task
	reachTask  scheduler.Task
	outbox     []model.Event

	// emitMu is taken before mu, never while holding it
	emitMu      sync.Mutex
	listeners   []func(model.Event)
	listenersMu sync.RWMutex
}

// NewEngine creates an engine. Call Load before using it.
func NewEngine(
	cfg Config,
	storage storage.Storage,
	quizzes QuizSource,
	clock clock.Clock,
	scheduler scheduler.Scheduler,
	logger *slog.Logger,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:       cfg,
		lines:     bingo.Lines(cfg.BoardSize),
		storage:   storage,
		quizzes:   quizzes,
		clock:     clock,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "engine")),
		store:     NewStore(nil),
	}, nil
}

// Lines returns every bingo line of the board
func (e *Engine) Lines() []model.Line {
	return e.lines
}

// Subscribe registers a listener called after every state change. Listeners
// run outside the engine lock and may call State, but must not call entry
// points.
func (e *Engine) Subscribe(fn func(model.Event)) {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Load restores the persisted session, or starts a fresh one when the
// snapshot is missing, malformed or does not fit the configured board
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, savedAt, err := e.loadSnapshot(ctx)
	if err == nil {
		e.store.Replace(session)
		e.logger.Info("session restored",
			slog.Duration("age", e.clock.Since(savedAt)),
			slog.Int("answered", session.AnsweredCount()),
			slog.Int("current_team", session.CurrentTeam),
			slog.Bool("concluded", session.Concluded),
		)
		return nil
	}

	switch {
	case errors.Is(err, model.ErrSnapshotNotFound):
		e.logger.Info("no saved session, starting fresh")
	case errors.Is(err, model.ErrMalformedSnapshot):
		e.logger.Warn("discarding malformed session snapshot", slog.String("error", err.Error()))
	default:
		e.logger.Error("failed to load session snapshot, starting fresh", slog.String("error", err.Error()))
	}

	fresh, err := e.freshSession()
	if err != nil {
		return err
	}
	e.store.Replace(fresh)
	e.persist(ctx, fresh)
	return nil
}

func (e *Engine) loadSnapshot(ctx context.Context) (*model.Session, time.Time, error) {
	snapshot, err := e.storage.GetSnapshot(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	session, err := snapshot.Session()
	if err != nil {
		return nil, time.Time{}, err
	}
	if session.BoardSize() != e.cfg.BoardSize || len(session.Teams) != len(e.cfg.TeamNames) {
		return nil, time.Time{}, fmt.Errorf("%w: snapshot does not match configured board", model.ErrMalformedSnapshot)
	}
	return session, snapshot.SavedAt, nil
}

func (e *Engine) freshSession() (*model.Session, error) {
	assignment, err := e.quizzes.Sample(e.cfg.PanelCount())
	if err != nil {
		return nil, fmt.Errorf("sampling quizzes: %w", err)
	}
	return model.NewSession(e.cfg.TeamNames, e.cfg.BoardSize, e.cfg.RowPoints, assignment), nil
}

// State returns a copy of the current session including transient signals
func (e *Engine) State() *model.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Get()
}

// SelectPanel presents the panel's quiz to the team holding priority. It is a
// no-op when the game has concluded, the panel is answered or unknown, or
// another panel is already being presented.
func (e *Engine) SelectPanel(ctx context.Context, id model.PanelID) (*model.Session, bool) {
	e.mu.Lock()

	session := e.store.Get()
	panel := session.Panel(id)
	if session.Concluded || panel == nil || panel.Answered || session.Presenting != nil || session.PendingReveal != nil {
		e.mu.Unlock()
		return session, false
	}

	session.Presenting = &model.Presentation{
		PanelID: id,
		Quiz:    session.Assignment[id],
	}
	e.store.Replace(session)

	e.logger.Info("panel selected",
		slog.Int("panel_id", int(id)),
		slog.Int("team_id", int(session.CurrentTeamID())),
	)

	return e.finish(model.EventPanelSelected, nil), true
}

// Close withdraws the presented quiz without answering it. It is
// a no-op when nothing is presented or an answer is already pending.
func (e *Engine) Close(ctx context.Context) (*model.Session, bool) {
	e.mu.Lock()

	session := e.store.Get()
	if session.Presenting == nil || session.PendingReveal != nil {
		e.mu.Unlock()
		return session, false
	}

	session.Presenting = nil
	e.store.Replace(session)

	return e.finish(model.EventPresentClosed, nil), true
}

// SubmitAnswer records the current team's choice for the presented quiz.
// The correctness indicator is visible straight away; the transition itself
// is committed after RevealDelay. It is a no-op when nothing is presented, an
// answer is already pending, the game has concluded, or choice is not one of
// the quiz's options.
func (e *Engine) SubmitAnswer(ctx context.Context, choice int) (*model.Session, bool) {
	e.mu.Lock()

	session := e.store.Get()
	presented := session.Presenting
	if session.Concluded || presented == nil || session.PendingReveal != nil || !presented.Quiz.HasOption(choice) {
		e.mu.Unlock()
		return session, false
	}

	session.PendingReveal = &model.Reveal{
		PanelID: presented.PanelID,
		TeamID:  session.CurrentTeamID(),
		Choice:  choice,
		Correct: presented.Quiz.IsCorrect(choice),
	}
	e.store.Replace(session)

	e.logger.Info("answer submitted",
		slog.Int("panel_id", int(presented.PanelID)),
		slog.Int("team_id", int(session.CurrentTeamID())),
		slog.Bool("correct", session.PendingReveal.Correct),
	)

	if e.cfg.RevealDelay <= 0 {
		payload := e.commitLocked(ctx)
		return e.finish(model.EventAnswerCommitted, payload), true
	}

	gen := e.generation
	e.commitTask = e.scheduler.AfterFunc(e.cfg.RevealDelay, func() { e.commit(gen) })

	return e.finish(model.EventAnswerSubmitted, nil), true
}

// commit is the scheduled second phase of SubmitAnswer
func (e *Engine) commit(gen uint64) {
	e.mu.Lock()

	if gen != e.generation || e.store.current.PendingReveal == nil {
		e.mu.Unlock()
		return
	}
	e.commitTask = nil

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	payload := e.commitLocked(ctx)
	e.finish(model.EventAnswerCommitted, payload)
}

// commitLocked resolves the pending answer. Caller holds mu.
func (e *Engine) commitLocked(ctx context.Context) model.AnswerCommittedPayload {
	current := e.store.Get()
	next, result := Resolve(current, current.PendingReveal.Choice, e.lines)
	e.store.Replace(next)

	attrs := []any{
		slog.Int("panel_id", int(result.PanelID)),
		slog.Int("team_id", int(result.TeamID)),
		slog.Bool("correct", result.Correct),
		slog.Int("awarded", result.Awarded),
		slog.Int("next_team", result.NextTeam),
	}
	if result.Bingo != nil {
		attrs = append(attrs, slog.Int("bingo_team", int(result.Bingo.TeamID)), slog.Int("bingo_lines", len(result.Bingo.Lines)))
	}
	if result.Reach != nil {
		attrs = append(attrs, slog.Int("reach_team", int(result.Reach.TeamID)))
	}
	if result.Ending != model.EndingNone {
		attrs = append(attrs, slog.String("ending", string(result.Ending)))
	}
	e.logger.Info("answer committed", attrs...)

	e.persist(ctx, next)

	if result.Reach != nil && e.cfg.ReachDisplay > 0 {
		gen := e.generation
		e.reachTask = e.scheduler.AfterFunc(e.cfg.ReachDisplay, func() { e.clearReach(gen) })
	}

	return model.AnswerCommittedPayload{
		TeamID:  result.TeamID,
		PanelID: result.PanelID,
		Correct: result.Correct,
		Awarded: result.Awarded,
		Ending:  result.Ending,
	}
}

func (e *Engine) clearReach(gen uint64) {
	e.mu.Lock()

	if gen != e.generation || e.store.current.Reach == nil {
		e.mu.Unlock()
		return
	}
	session := e.store.Get()
	session.Reach = nil
	e.store.Replace(session)
	e.reachTask = nil

	e.finish(model.EventReachCleared, nil)
}

// Dismiss clears the visible bingo, reach and ending announcements. Durable
// state is untouched.
func (e *Engine) Dismiss(ctx context.Context) (*model.Session, bool) {
	e.mu.Lock()

	session := e.store.Get()
	if session.Bingo == nil && session.Reach == nil && (!session.Concluded || session.Dismissed) {
		e.mu.Unlock()
		return session, false
	}

	session.Bingo = nil
	session.Reach = nil
	if session.Concluded {
		session.Dismissed = true
	}
	e.store.Replace(session)
	e.cancelReach()

	return e.finish(model.EventDismissed, nil), true
}

// Reset replaces the session with a fresh board: zero scores, a new quiz
// assignment, the first team to play and no announcements. Any pending
// commit is cancelled and the old snapshot is discarded.
func (e *Engine) Reset(ctx context.Context) (*model.Session, error) {
	e.mu.Lock()

	fresh, err := e.freshSession()
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}

	e.generation++
	e.cancelTasks()
	e.store.Replace(fresh)

	if err := e.storage.DeleteSnapshot(ctx); err != nil {
		e.logger.Error("failed to delete session snapshot", slog.String("error", err.Error()))
	}
	e.persist(ctx, fresh)

	e.logger.Info("session reset", slog.Int("teams", len(fresh.Teams)), slog.Int("panels", len(fresh.Panels)))

	return e.finish(model.EventSessionReset, nil), nil
}

// cancelTasks stops outstanding scheduled actions. Caller holds mu.
func (e *Engine) cancelTasks() {
	if e.commitTask != nil {
		e.commitTask.Cancel()
		e.commitTask = nil
	}
	e.cancelReach()
}

// cancelReach stops the reach auto-clear. A pending commit keeps running.
// Caller holds mu.
func (e *Engine) cancelReach() {
	if e.reachTask != nil {
		e.reachTask.Cancel()
		e.reachTask = nil
	}
}

// persist saves the durable part of the session. A failed write is logged;
// the in-memory transition stands. Caller holds mu.
func (e *Engine) persist(ctx context.Context, session *model.Session) {
	if err := e.storage.SaveSnapshot(ctx, model.SnapshotOf(session, e.clock.Now())); err != nil {
		e.logger.Error("failed to save session snapshot", slog.String("error", err.Error()))
	}
}

// finish queues an event for the change, releases mu and delivers queued
// events to listeners in commit order. Caller holds mu.
func (e *Engine) finish(eventType model.EventType, payload any) *model.Session {
	state := e.store.Get()
	e.outbox = append(e.outbox, model.Event{
		Type:      eventType,
		Timestamp: e.clock.Now(),
		State:     state.Clone(),
		Payload:   payload,
	})
	e.mu.Unlock()

	e.emitMu.Lock()
	defer e.emitMu.Unlock()

	e.mu.Lock()
	events := e.outbox
	e.outbox = nil
	e.mu.Unlock()

	e.listenersMu.RLock()
	listeners := slices.Clone(e.listeners)
	e.listenersMu.RUnlock()

	for _, event := range events {
		for _, fn := range listeners {
			fn(event)
		}
	}
	return state
}
