package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/quizbingo/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) sampleSnapshot() *model.Snapshot {
	quizzes := make([]model.Quiz, 4)
	for i := range quizzes {
		quizzes[i] = model.Quiz{Question: "Q", Options: []string{"a", "b"}, Answer: 0}
	}
	session := model.NewSession([]string{"A", "B"}, 2, []int{10, 20}, quizzes)
	session.Panels[0].Claim(0)
	session.Teams[0].Score = 10
	session.CurrentTeam = 1
	return model.SnapshotOf(session, time.Now())
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
	s.Equal(1, retrieved.CurrentTeam)
}

func (s *StorageSuite) TestSnapshotIsNotShared() {
	snapshot := s.sampleSnapshot()
	s.Require().NoError(s.storage.SaveSnapshot(s.ctx, snapshot))

	snapshot.Teams[0].Score = 999

	retrieved, err := s.storage.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(10, retrieved.Teams[0].Score)
}

func (s *StorageSuite) TestGetSnapshotNotFound() {
	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *StorageSuite) TestGetSnapshotMalformed() {
	s.storage.SetRawSnapshot([]byte("{broken"))

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

func (s *StorageSuite) TestSaveAndGetQuizzes() {
	quizzes := []model.Quiz{
		{Question: "Q1", Options: []string{"a", "b"}, Answer: 1},
	}

	err := s.storage.SaveQuizzes(s.ctx, quizzes)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetQuizzes(s.ctx)
	s.Require().NoError(err)
	s.Equal(quizzes, retrieved)
}

func (s *StorageSuite) TestGetQuizzesNotLoaded() {
	_, err := s.storage.GetQuizzes(s.ctx)
	s.ErrorIs(err, model.ErrQuizBankNotLoaded)
}
