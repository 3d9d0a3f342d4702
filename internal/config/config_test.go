package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-balance/internal/config"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) writeFile(content string) string {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)

	s.Equal("info", cfg.LogLevel)
	s.Equal(int64(0), cfg.Seed)
	s.Empty(cfg.CatalogPath)
	s.Equal("Player", cfg.Player.Name)
	s.Equal(int32(100), cfg.Player.Health)
	s.Equal(entities.Attributes{
		Attack: 20, Defense: 15, Strength: 15, Agility: 10, Intellect: 10, Luck: 8, CriticalChance: 10,
	}, cfg.Player.Attributes())
	s.Equal("Mitochondria", cfg.Waves.FixedArchetype)
	s.Equal(2, cfg.Waves.EnemiesPerWave)
	s.Equal(10, cfg.Waves.MaxRandomCount)
	s.Equal(1, cfg.Battle.MaxRounds)
	s.Equal(int32(10), cfg.Progression.ExperiencePerRank)
	s.Equal(config.BackendMemory, cfg.Reports.Backend)
	s.Equal(24*time.Hour, cfg.Reports.TTL)

	level, err := cfg.Level()
	s.Require().NoError(err)
	s.Equal(slog.LevelInfo, level)
}

func (s *ConfigTestSuite) TestFileOverrides() {
	path := s.writeFile(`
log_level: debug
seed: 42
player:
  name: Hero
  attack: 30
waves:
  fixed_archetype: Lysosome
battle:
  max_rounds: 5
reports:
  backend: redis
  redis_addr: redis:6379
  ttl: 1h
`)

	cfg, err := config.Load(path)
	s.Require().NoError(err)

	s.Equal(int64(42), cfg.Seed)
	s.Equal("Hero", cfg.Player.Name)
	s.Equal(int32(30), cfg.Player.Attack)
	s.Equal(int32(15), cfg.Player.Defense)
	s.Equal("Lysosome", cfg.Waves.FixedArchetype)
	s.Equal(5, cfg.Battle.MaxRounds)
	s.Equal(config.BackendRedis, cfg.Reports.Backend)
	s.Equal("redis:6379", cfg.Reports.RedisAddr)
	s.Equal(time.Hour, cfg.Reports.TTL)

	level, err := cfg.Level()
	s.Require().NoError(err)
	s.Equal(slog.LevelDebug, level)

	player := cfg.Player.Character("p1")
	s.Equal("p1", player.ID)
	s.Equal("Hero", player.Name)
	s.Equal(int32(30), player.Attributes.Attack)
	s.Equal(int32(1), player.Rank)
}

func (s *ConfigTestSuite) TestEnvOverrides() {
	s.T().Setenv("RPG_BALANCE_SEED", "7")
	s.T().Setenv("RPG_BALANCE_BATTLE_MAX_ROUNDS", "3")
	s.T().Setenv("RPG_BALANCE_PLAYER_HEALTH", "250")

	cfg, err := config.Load("")
	s.Require().NoError(err)

	s.Equal(int64(7), cfg.Seed)
	s.Equal(3, cfg.Battle.MaxRounds)
	s.Equal(int32(250), cfg.Player.Health)
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := config.Load(filepath.Join(s.T().TempDir(), "nope.yaml"))
	s.True(errors.IsNotFound(err))
}

func (s *ConfigTestSuite) TestInvalid() {
	testCases := []struct {
		name    string
		content string
		field   string
	}{
		{name: "log level", content: "log_level: loud", field: "log_level"},
		{name: "health", content: "player:\n  health: 0", field: "player.health"},
		{name: "rounds", content: "battle:\n  max_rounds: 0", field: "battle.max_rounds"},
		{name: "enemies per wave", content: "waves:\n  enemies_per_wave: 0", field: "waves.enemies_per_wave"},
		{name: "experience", content: "progression:\n  experience_per_rank: 0", field: "progression.experience_per_rank"},
		{name: "backend", content: "reports:\n  backend: postgres", field: "reports.backend"},
		{name: "redis address", content: "reports:\n  backend: redis\n  redis_addr: \"\"", field: "reports.redis_addr"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.Load(s.writeFile(tc.content))
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), err.Error())
			s.Contains(err.Error(), tc.field)
		})
	}
}
