package quizbank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quizbingo/internal/dependencies/mocks"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/storage/memory"
	"github.com/mcoot/quizbingo/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func quizzes(n int) []model.Quiz {
	result := make([]model.Quiz, n)
	for i := range result {
		result[i] = model.Quiz{
			Question: fmt.Sprintf("Question %d", i),
			Options:  []string{"a", "b", "c", "d"},
			Answer:   i % 4,
		}
	}
	return result
}

func (s *ServiceSuite) TestLoadQuizzes() {
	err := s.service.LoadQuizzes(quizzes(30))
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(30, s.service.Count())
}

func (s *ServiceSuite) TestLoadRejectsInvalidQuiz() {
	bad := quizzes(3)
	bad[1].Answer = 7

	err := s.service.LoadQuizzes(bad)
	s.ErrorIs(err, model.ErrInvalidQuiz)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestLoadFromFileSavesToStorage() {
	path := filepath.Join(s.T().TempDir(), "quizzes.json")
	data, err := json.Marshal(quizzes(5))
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(path, data, 0o600))

	err = s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(5, s.service.Count())

	stored, err := s.storage.GetQuizzes(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 5)
}

func (s *ServiceSuite) TestLoadFromFileRejectsBadJSON() {
	path := filepath.Join(s.T().TempDir(), "quizzes.json")
	s.Require().NoError(os.WriteFile(path, []byte("[{"), 0o600))

	err := s.service.LoadFromFile(s.ctx, path)
	s.Error(err)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveQuizzes(s.ctx, quizzes(4)))

	err := s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, s.service.Count())
}

func (s *ServiceSuite) TestLoadFromEmptyStorageFails() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrQuizBankNotLoaded)
}

// Sample tests

func (s *ServiceSuite) TestSampleReturnsDistinctQuizzes() {
	s.Require().NoError(s.service.LoadQuizzes(quizzes(30)))
	s.random.QueueIntn(3, 0, 17, 5, 9)

	sample, err := s.service.Sample(25)
	s.Require().NoError(err)
	s.Len(sample, 25)

	seen := make(map[string]bool)
	for _, q := range sample {
		s.False(seen[q.Question], "duplicate %s", q.Question)
		seen[q.Question] = true
	}
}

func (s *ServiceSuite) TestSampleWithExactPoolSize() {
	s.Require().NoError(s.service.LoadQuizzes(quizzes(25)))

	sample, err := s.service.Sample(25)
	s.Require().NoError(err)
	s.Len(sample, 25)
}

func (s *ServiceSuite) TestSampleFailsWhenPoolTooSmall() {
	s.Require().NoError(s.service.LoadQuizzes(quizzes(24)))

	_, err := s.service.Sample(25)
	s.ErrorIs(err, model.ErrQuizPoolTooSmall)
}

func (s *ServiceSuite) TestSampleFailsWhenNotLoaded() {
	_, err := s.service.Sample(25)
	s.ErrorIs(err, model.ErrQuizBankNotLoaded)
}

func (s *ServiceSuite) TestSampleDoesNotShareOptions() {
	s.Require().NoError(s.service.LoadQuizzes(quizzes(2)))

	sample, err := s.service.Sample(2)
	s.Require().NoError(err)
	sample[0].Options[0] = "changed"

	again, err := s.service.Sample(2)
	s.Require().NoError(err)
	for _, q := range again {
		s.Equal("a", q.Options[0])
	}
}
