package progression_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-balance/internal/engine/progression"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/testutils/builders"
)

type RuleTestSuite struct {
	suite.Suite
	rule *progression.Rule
}

func TestRuleSuite(t *testing.T) {
	suite.Run(t, new(RuleTestSuite))
}

func (s *RuleTestSuite) SetupTest() {
	var err error
	s.rule, err = progression.NewRule(nil)
	s.Require().NoError(err)
}

func (s *RuleTestSuite) TestApply_RanksUpOnTenthExperience() {
	player := builders.NewCharacterBuilder().Build()

	outcome := s.rule.Apply(player, 3)
	s.Equal(int32(3), player.Experience)
	s.Equal(int32(1), player.Rank)
	s.False(outcome.RankedUp)
	s.Equal(int32(3), outcome.ExperienceGained)

	s.rule.Apply(player, 3)
	s.rule.Apply(player, 3)
	s.Equal(int32(9), player.Experience)
	s.Equal(int32(1), player.Rank)

	outcome = s.rule.Apply(player, 3)
	s.True(outcome.RankedUp)
	s.Equal(int32(2), player.Rank)
	s.Equal(int32(1), player.AttributePoints)
	s.Equal(int32(0), player.Experience)
	s.Equal(entities.ProgressionOutcome{
		ExperienceGained: 3,
		RankedUp:         true,
		Experience:       0,
		Rank:             2,
		AttributePoints:  1,
	}, outcome)
}

func (s *RuleTestSuite) TestApply_ThresholdScalesWithRank() {
	player := builders.NewCharacterBuilder().WithRank(2).WithExperience(15).Build()

	outcome := s.rule.Apply(player, 4)
	s.False(outcome.RankedUp)
	s.Equal(int32(19), player.Experience)

	outcome = s.rule.Apply(player, 1)
	s.True(outcome.RankedUp)
	s.Equal(int32(3), player.Rank)
}

func (s *RuleTestSuite) TestApply_LargeAwardRanksOnce() {
	player := builders.NewCharacterBuilder().Build()

	outcome := s.rule.Apply(player, 55)
	s.True(outcome.RankedUp)
	s.Equal(int32(2), player.Rank)
	s.Equal(int32(1), player.AttributePoints)
	s.Equal(int32(0), player.Experience)
}

func (s *RuleTestSuite) TestApply_DefeatedGainsNothing() {
	player := builders.NewCharacterBuilder().WithHealth(0).WithExperience(9).Build()

	outcome := s.rule.Apply(player, 6)
	s.True(outcome.Defeated)
	s.False(outcome.RankedUp)
	s.Equal(int32(9), player.Experience)
	s.Equal(int32(1), player.Rank)
}

func (s *RuleTestSuite) TestCustomExperiencePerRank() {
	rule, err := progression.NewRule(&progression.Config{ExperiencePerRank: 2})
	s.Require().NoError(err)
	s.Equal(int32(6), rule.Threshold(3))

	_, err = progression.NewRule(&progression.Config{ExperiencePerRank: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RuleTestSuite) TestAllocate() {
	player := builders.NewCharacterBuilder().WithAttributePoints(1).Build()

	s.Require().NoError(progression.Allocate(player, entities.AttributeLuck))
	s.Equal(int32(9), player.Attributes.Luck)
	s.Equal(int32(0), player.AttributePoints)

	err := progression.Allocate(player, entities.AttributeLuck)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(int32(9), player.Attributes.Luck)

	err = progression.Allocate(player, entities.Attribute("charisma"))
	s.True(errors.IsNotFound(err))
}
