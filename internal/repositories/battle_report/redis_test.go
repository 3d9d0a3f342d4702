package battlereport_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-balance/internal/errors"
	battlereport "github.com/KirkDiggler/rpg-balance/internal/repositories/battle_report"
	"github.com/KirkDiggler/rpg-balance/internal/testutils"
)

type RedisTTLTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	repo    battlereport.Repository
	cleanup func()
	ctx     context.Context
}

func TestRedisTTLSuite(t *testing.T) {
	suite.Run(t, new(RedisTTLTestSuite))
}

func (s *RedisTTLTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	s.mr = mr
	s.cleanup = cleanup

	var err error
	s.repo, err = battlereport.NewRedis(&battlereport.RedisConfig{Client: client, TTL: time.Hour})
	s.Require().NoError(err)
}

func (s *RedisTTLTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisTTLTestSuite) TestNewRedis_Validation() {
	_, err := battlereport.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = battlereport.NewRedis(&battlereport.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	defer cleanup()
	_, err = battlereport.NewRedis(&battlereport.RedisConfig{Client: client, TTL: -time.Second})
	s.Require().Error(err)
	s.Contains(err.Error(), "TTL")
}

func (s *RedisTTLTestSuite) TestKeysCarryTTL() {
	_, err := s.repo.Create(s.ctx, battlereport.CreateInput{Report: newReport("report_1", "session_1", 1)})
	s.Require().NoError(err)

	s.True(s.mr.Exists("report:report_1"))
	s.Equal(time.Hour, s.mr.TTL("report:report_1"))
	s.Equal(time.Hour, s.mr.TTL("report:session:session_1"))
}

func (s *RedisTTLTestSuite) TestExpiredReports() {
	_, err := s.repo.Create(s.ctx, battlereport.CreateInput{Report: newReport("report_1", "session_1", 1)})
	s.Require().NoError(err)

	s.mr.FastForward(40 * time.Minute)

	// Refreshes the index TTL but not the first report's
	_, err = s.repo.Create(s.ctx, battlereport.CreateInput{Report: newReport("report_2", "session_1", 2)})
	s.Require().NoError(err)

	s.mr.FastForward(30 * time.Minute)

	_, err = s.repo.Get(s.ctx, battlereport.GetInput{ID: "report_1"})
	s.True(errors.IsNotFound(err))

	output, err := s.repo.ListBySession(s.ctx, battlereport.ListBySessionInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Require().Len(output.Reports, 1)
	s.Equal("report_2", output.Reports[0].ID)

	members, err := s.mr.List("report:session:session_1")
	s.Require().NoError(err)
	s.Equal([]string{"report_2"}, members)
}
