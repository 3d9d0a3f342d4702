package balance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-balance/internal/engine/balance"
	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/engine/wave"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-balance/internal/testutils"
	"github.com/KirkDiggler/rpg-balance/internal/testutils/builders"
)

type RunnerTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func (s *RunnerTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RunnerTestSuite) newRunner(seed int64, maxRounds int32) *balance.Runner {
	runner, err := balance.NewRunner(&balance.Config{
		Roller:         rpgtoolkit.NewSeededRoller(seed),
		Archetypes:     testutils.DefaultArchetypes(),
		IDGenerator:    idgen.NewSequential("sim"),
		FixedArchetype: testutils.MitochondriaName,
		MaxRounds:      maxRounds,
	})
	s.Require().NoError(err)
	return runner
}

func (s *RunnerTestSuite) TestRun_OverpoweredPlayerAlwaysWins() {
	player := builders.NewCharacterBuilder().
		WithAttack(1000).WithDefense(1000).WithCriticalChance(0).WithHealth(100000).Build()

	result, err := s.newRunner(1, 5).Run(s.ctx, &balance.RunInput{
		Player: player,
		Trials: 20,
		Mode:   wave.ModeSequential,
		Wave:   1,
	})
	s.Require().NoError(err)

	s.Equal(20, result.Victories)
	s.InDelta(1.0, result.WinRate, 1e-9)
	s.InDelta(98020.0, result.AvgPlayerHealth, 1e-9)
	s.InDelta(2.0, result.AvgRounds, 1e-9)
	s.InDelta(2.0, result.AvgEnemies, 1e-9)
	s.Equal(entities.BattleStats{Actions: 60, Hits: 40, Misses: 20, TotalDamage: 39600}, result.Stats)
	s.Equal(int32(100000), player.Health, "template must not be mutated")
}

func (s *RunnerTestSuite) TestRun_HelplessPlayerAlwaysLoses() {
	player := builders.NewCharacterBuilder().
		WithAttack(0).WithDefense(0).WithHealth(1).Build()

	result, err := s.newRunner(7, 1).Run(s.ctx, &balance.RunInput{
		Player:    player,
		Trials:    10,
		Mode:      wave.ModeFixed,
		Count:     1,
		Archetype: testutils.MitochondriaName,
	})
	s.Require().NoError(err)

	s.Equal(10, result.Defeats)
	s.Zero(result.WinRate)
	s.Zero(result.AvgPlayerHealth)
}

func (s *RunnerTestSuite) TestRun_SameSeedSameResult() {
	input := &balance.RunInput{
		Player: builders.NewCharacterBuilder().Build(),
		Trials: 50,
		Mode:   wave.ModeRandom,
	}

	first, err := s.newRunner(99, 3).Run(s.ctx, input)
	s.Require().NoError(err)
	second, err := s.newRunner(99, 3).Run(s.ctx, input)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(50, first.Victories+first.Defeats+first.Stalemates+first.Unfinished)
	s.GreaterOrEqual(first.AvgEnemies, 1.0)
	s.LessOrEqual(first.AvgEnemies, 10.0)
}

func (s *RunnerTestSuite) TestRun_Validation() {
	runner := s.newRunner(1, 1)
	player := builders.NewCharacterBuilder().Build()

	testCases := []struct {
		name    string
		input   *balance.RunInput
		checkFn func(error) bool
	}{
		{name: "nil input", input: nil, checkFn: errors.IsInvalidArgument},
		{name: "no trials", input: &balance.RunInput{Player: player, Mode: wave.ModeRandom}, checkFn: errors.IsInvalidArgument},
		{name: "bad mode", input: &balance.RunInput{Player: player, Trials: 1, Mode: "boss"}, checkFn: errors.IsInvalidArgument},
		{name: "sequential without wave", input: &balance.RunInput{Player: player, Trials: 1, Mode: wave.ModeSequential}, checkFn: errors.IsInvalidArgument},
		{name: "unknown archetype", input: &balance.RunInput{Player: player, Trials: 1, Mode: wave.ModeFixed, Count: 1, Archetype: "Golgi"}, checkFn: errors.IsNotFound},
		{
			name:    "defeated player",
			input:   &balance.RunInput{Player: builders.NewCharacterBuilder().WithHealth(0).Build(), Trials: 1, Mode: wave.ModeRandom},
			checkFn: errors.IsFailedPrecondition,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := runner.Run(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.checkFn(err), err.Error())
		})
	}
}

func (s *RunnerTestSuite) TestRun_Cancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.newRunner(1, 1).Run(ctx, &balance.RunInput{
		Player: builders.NewCharacterBuilder().Build(),
		Trials: 5,
		Mode:   wave.ModeRandom,
	})
	s.Error(err)
}

func (s *RunnerTestSuite) TestNewRunner_Validation() {
	_, err := balance.NewRunner(&balance.Config{})
	s.True(errors.IsInvalidArgument(err))
}
