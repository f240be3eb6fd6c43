package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quizbingo/internal/model"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "quizbingo.db")

	var err error
	s.storage, err = New(s.ctx, s.path)
	s.Require().NoError(err)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) sampleSnapshot() *model.Snapshot {
	quizzes := make([]model.Quiz, 4)
	for i := range quizzes {
		quizzes[i] = model.Quiz{Question: "Q", Options: []string{"a", "b", "c"}, Answer: 2}
	}
	session := model.NewSession([]string{"A", "B"}, 2, []int{10, 20}, quizzes)
	session.Panels[1].Claim(0)
	session.Teams[0].Score = 10
	session.CurrentTeam = 1
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
}

func (s *StorageSuite) TestSaveSnapshotOverwrites() {
	first := s.sampleSnapshot()
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, first))

	second := s.sampleSnapshot()
	second.CurrentTeam = 0
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, second))

	retrieved, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, retrieved.CurrentTeam)
}

func (s *StorageSuite) TestSnapshotSurvivesReopen() {
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, s.sampleSnapshot()))
	s.Require().NoError(s.storage.Close())

	reopened, err := New(s.ctx, s.path)
	s.Require().NoError(err)
	s.storage = reopened

	retrieved, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, retrieved.CurrentTeam)
}

func (s *StorageSuite) TestGetSnapshotNotFound() {
	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *StorageSuite) TestGetSnapshotMalformed() {
	s.Require().NoError(s.storage.setRawSnapshot(s.ctx, "not json"))

	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrMalformedSnapshot)
}

func (s *StorageSuite) TestDeleteSnapshot() {
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, s.sampleSnapshot()))

	s.Require().NoError(s.storage.DeleteSnapshot(s.ctx))

	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

// Quiz bank tests

func (s *StorageSuite) TestSaveAndGetQuizzes() {
	quizzes := []model.Quiz{
		{Question: "first", Options: []string{"a", "b"}, Answer: 0},
		{Question: "second", Options: []string{"x", "y", "z"}, Answer: 2},
	}

	s.Require().NoError(s.storage.SaveQuizzes(s.ctx, quizzes))

	retrieved, err := s.storage.GetQuizzes(s.ctx)
	s.Require().NoError(err)
	s.Equal(quizzes, retrieved)
}

func (s *StorageSuite) TestGetQuizzesNotLoaded() {
	_, err := s.storage.GetQuizzes(s.ctx)
	s.ErrorIs(err, model.ErrQuizBankNotLoaded)
}
