package loot_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-balance/internal/engine/loot"
	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	dicemock "github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit/mock"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	rpgerrors "github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/testutils"
)

type SamplerTestSuite struct {
	suite.Suite
	basic *entities.LootTable
}

func TestSamplerSuite(t *testing.T) {
	suite.Run(t, new(SamplerTestSuite))
}

func (s *SamplerTestSuite) SetupTest() {
	s.basic = &entities.LootTable{
		Name: "Basic Cell Drop",
		Entries: []entities.LootEntry{
			{Item: testutils.ProteinCatalyst(), DropRate: 0.7},
			{Item: testutils.MembraneShield(), DropRate: 0.3},
		},
	}
}

func (s *SamplerTestSuite) newSampler(rolls ...int) *loot.Sampler {
	sampler, err := loot.NewSampler(&loot.Config{Roller: testutils.NewScriptedRoller(rolls...)})
	s.Require().NoError(err)
	return sampler
}

func (s *SamplerTestSuite) TestThresholds() {
	s.Equal([]int{7000, 10000}, loot.Thresholds(s.basic))
}

func (s *SamplerTestSuite) TestOpen_Bands() {
	testCases := []struct {
		name     string
		roll     int
		expected string
	}{
		{name: "first roll", roll: 1, expected: testutils.ProteinCatalystName},
		{name: "top of first band", roll: 7000, expected: testutils.ProteinCatalystName},
		{name: "bottom of second band", roll: 7001, expected: testutils.MembraneShieldName},
		{name: "last roll", roll: 10000, expected: testutils.MembraneShieldName},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			item, err := s.newSampler(tc.roll).Open(s.basic)
			s.Require().NoError(err)
			s.Require().NotNil(item)
			s.Equal(tc.expected, item.Name)
		})
	}
}

func (s *SamplerTestSuite) TestOpen_NoDropPastTotal() {
	sparse := &entities.LootTable{
		Name:    "Sparse",
		Entries: []entities.LootEntry{{Item: testutils.LegendarySword(), DropRate: 0.25}},
	}

	item, err := s.newSampler(2500).Open(sparse)
	s.Require().NoError(err)
	s.Require().NotNil(item)

	item, err = s.newSampler(2501).Open(sparse)
	s.Require().NoError(err)
	s.Nil(item)
}

func (s *SamplerTestSuite) TestOpen_RollerError() {
	ctrl := gomock.NewController(s.T())
	roller := dicemock.NewMockRoller(ctrl)
	roller.EXPECT().Roll(entities.DropRateResolution).Return(0, errors.New("no dice"))

	sampler, err := loot.NewSampler(&loot.Config{Roller: roller})
	s.Require().NoError(err)

	_, err = sampler.Open(s.basic)
	s.Require().Error(err)
	s.Contains(err.Error(), "no dice")
}

func (s *SamplerTestSuite) TestOpenN_Distribution() {
	sampler, err := loot.NewSampler(&loot.Config{Roller: rpgtoolkit.NewSeededRoller(1234)})
	s.Require().NoError(err)

	summary, err := sampler.OpenN(s.basic, 5000)
	s.Require().NoError(err)

	s.Equal(5000, summary.Opened)
	s.Zero(summary.Empty)
	s.Equal([]string{testutils.MembraneShieldName, testutils.ProteinCatalystName}, summary.ItemNames())
	s.InDelta(0.7, float64(summary.Drops[testutils.ProteinCatalystName])/5000, 0.05)
}

func (s *SamplerTestSuite) TestValidation() {
	_, err := loot.NewSampler(&loot.Config{})
	s.True(rpgerrors.IsInvalidArgument(err))

	_, err = s.newSampler().OpenN(s.basic, -1)
	s.True(rpgerrors.IsInvalidArgument(err))

	_, err = s.newSampler().Open(nil)
	s.True(rpgerrors.IsInvalidArgument(err))
}
