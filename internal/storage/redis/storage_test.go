package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quizbingo/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SnapshotTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) sampleSnapshot() *model.Snapshot {
	quizzes := make([]model.Quiz, 4)
	for i := range quizzes {
		quizzes[i] = model.Quiz{Question: "Q", Options: []string{"a", "b"}, Answer: 1}
	}
	session := model.NewSession([]string{"A", "B"}, 2, []int{10, 20}, quizzes)
	session.Panels[3].Claim(1)
	session.Teams[1].Score = 20
	session.CurrentTeam = 0
	return model.SnapshotOf(session, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

// Snapshot tests

func (s *StorageSuite) TestSaveAndGetSnapshot() {
	snapshot := s.sampleSnapshot()

	err := s.storage.SaveSnapshot(s.ctx, snapshot)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(snapshot.Teams, retrieved.Teams)
	s.Equal(snapshot.Panels, retrieved.Panels)
	s.Equal(snapshot.Assignment, retrieved.Assignment)
	s.True(snapshot.SavedAt.Equal(retrieved.SavedAt))
}

func (s *StorageSuite) TestSnapshotHasTTL() {
	err := s.storage.SaveSnapshot(s.ctx, s.sampleSnapshot())
	s.Require().NoError(err)

	s.Equal(time.Hour, s.mini.TTL(snapshotKey()))
}

func (s *StorageSuite) TestSnapshotExpires() {
	err := s.storage.SaveSnapshot(s.ctx, s.sampleSnapshot())
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *StorageSuite) TestGetSnapshotNotFound() {
	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *StorageSuite) TestGetSnapshotMalformed() {
	s.Require().NoError(s.mini.Set(snapshotKey(), "{not json"))

	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrMalformedSnapshot)
}

func (s *StorageSuite) TestDeleteSnapshot() {
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, s.sampleSnapshot()))

	err := s.storage.DeleteSnapshot(s.ctx)
	s.Require().NoError(err)

	_, err = s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

// Quiz bank tests

func (s *StorageSuite) TestSaveAndGetQuizzesPreservesOrder() {
	quizzes := []model.Quiz{
		{Question: "first", Options: []string{"a", "b"}, Answer: 0},
		{Question: "second", Options: []string{"a", "b", "c"}, Answer: 2},
	}

	err := s.storage.SaveQuizzes(s.ctx, quizzes)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetQuizzes(s.ctx)
	s.Require().NoError(err)
	s.Equal(quizzes, retrieved)
}

func (s *StorageSuite) TestSaveQuizzesReplacesBank() {
	s.Require().NoError(s.storage.SaveQuizzes(s.ctx, []model.Quiz{
		{Question: "old", Options: []string{"a", "b"}},
	}))
	s.Require().NoError(s.storage.SaveQuizzes(s.ctx, []model.Quiz{
		{Question: "new", Options: []string{"a", "b"}},
	}))

	retrieved, err := s.storage.GetQuizzes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(retrieved, 1)
	s.Equal("new", retrieved[0].Question)
}

func (s *StorageSuite) TestGetQuizzesNotLoaded() {
	_, err := s.storage.GetQuizzes(s.ctx)
	s.ErrorIs(err, model.ErrQuizBankNotLoaded)
}
