package battlereport_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	battlereport "github.com/KirkDiggler/rpg-balance/internal/repositories/battle_report"
	"github.com/KirkDiggler/rpg-balance/internal/testutils"
)

// RepositoryTestSuite runs the same behavior checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() (battlereport.Repository, func())
	repo    battlereport.Repository
	cleanup func()
	ctx     context.Context
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (battlereport.Repository, func()) {
			return battlereport.NewInMemory(), func() {}
		},
	})
}

func TestRedisRepositorySuite(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() (battlereport.Repository, func()) {
		client, cleanup := testutils.CreateTestRedisClient(s.T())
		repo, err := battlereport.NewRedis(&battlereport.RedisConfig{Client: client})
		s.Require().NoError(err)
		return repo, cleanup
	}
	suite.Run(t, s)
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.cleanup = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func newReport(id, sessionID string, wave int32) *entities.BattleReport {
	return &entities.BattleReport{
		ID:        id,
		SessionID: sessionID,
		Wave:      wave,
		Enemies:   []string{"Mitochondria", "Mitochondria"},
		Rounds:    1,
		Actions: []entities.ActionRecord{
			{
				AttackerID:              "char_1",
				AttackerName:            "Player",
				TargetID:                "char_2",
				TargetName:              "Mitochondria",
				Damage:                  10,
				TargetRemainingHealth:   40,
				AttackerRemainingHealth: 90,
			},
		},
		Stats: entities.BattleStats{Actions: 1, Hits: 1, TotalDamage: 10},
		Participants: []entities.ParticipantStats{
			{ID: "char_1", Name: "Player", DamageDealt: 10, DamageTaken: 10},
		},
		Outcome: entities.BattleOutcomeUnfinished,
		Progression: entities.ProgressionOutcome{
			ExperienceGained: 2,
			Experience:       2,
			Rank:             1,
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, int(wave), 0, time.UTC),
	}
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	report := newReport("report_1", "session_1", 1)

	_, err := s.repo.Create(s.ctx, battlereport.CreateInput{Report: report})
	s.Require().NoError(err)

	output, err := s.repo.Get(s.ctx, battlereport.GetInput{ID: "report_1"})
	s.Require().NoError(err)
	s.Equal(report, output.Report)
	s.NotSame(report, output.Report)
}

func (s *RepositoryTestSuite) TestCreate_Validation() {
	testCases := []struct {
		name   string
		report *entities.BattleReport
	}{
		{name: "nil report"},
		{name: "missing ID", report: newReport("", "session_1", 1)},
		{name: "missing session", report: newReport("report_1", "", 1)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, battlereport.CreateInput{Report: tc.report})
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RepositoryTestSuite) TestCreate_Duplicate() {
	_, err := s.repo.Create(s.ctx, battlereport.CreateInput{Report: newReport("report_1", "session_1", 1)})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, battlereport.CreateInput{Report: newReport("report_1", "session_1", 2)})
	s.True(errors.IsAlreadyExists(err))

	list, err := s.repo.ListBySession(s.ctx, battlereport.ListBySessionInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Len(list.Reports, 1)
	s.Equal(int32(1), list.Reports[0].Wave)
}

func (s *RepositoryTestSuite) TestGet_Errors() {
	_, err := s.repo.Get(s.ctx, battlereport.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, battlereport.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestListBySession() {
	// IDs past 9 would sort before report_2 by name; order must follow creation
	for i := 1; i <= 11; i++ {
		_, err := s.repo.Create(s.ctx, battlereport.CreateInput{
			Report: newReport(fmt.Sprintf("report_%d", i), "session_1", int32(i)),
		})
		s.Require().NoError(err)
	}
	_, err := s.repo.Create(s.ctx, battlereport.CreateInput{Report: newReport("other", "session_2", 1)})
	s.Require().NoError(err)

	s.Run("all", func() {
		output, err := s.repo.ListBySession(s.ctx, battlereport.ListBySessionInput{SessionID: "session_1"})
		s.Require().NoError(err)
		s.Require().Len(output.Reports, 11)
		for i, report := range output.Reports {
			s.Equal(int32(i+1), report.Wave)
		}
	})

	s.Run("limit keeps the most recent", func() {
		output, err := s.repo.ListBySession(s.ctx, battlereport.ListBySessionInput{SessionID: "session_1", Limit: 2})
		s.Require().NoError(err)
		s.Require().Len(output.Reports, 2)
		s.Equal("report_10", output.Reports[0].ID)
		s.Equal("report_11", output.Reports[1].ID)
	})

	s.Run("unknown session", func() {
		output, err := s.repo.ListBySession(s.ctx, battlereport.ListBySessionInput{SessionID: "nobody"})
		s.Require().NoError(err)
		s.Empty(output.Reports)
	})

	s.Run("session is required", func() {
		_, err := s.repo.ListBySession(s.ctx, battlereport.ListBySessionInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}
