// Package config loads runtime settings from an optional YAML file and
// RPG_BALANCE_* environment variables.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g.
// RPG_BALANCE_BATTLE_MAX_ROUNDS
const EnvPrefix = "RPG_BALANCE"

// Report storage backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full runtime configuration
type Config struct {
	LogLevel    string            `mapstructure:"log_level"`
	Seed        int64             `mapstructure:"seed"`
	CatalogPath string            `mapstructure:"catalog_path"`
	Player      PlayerConfig      `mapstructure:"player"`
	Waves       WavesConfig       `mapstructure:"waves"`
	Battle      BattleConfig      `mapstructure:"battle"`
	Progression ProgressionConfig `mapstructure:"progression"`
	Reports     ReportsConfig     `mapstructure:"reports"`
}

// PlayerConfig holds the starting character of every session
type PlayerConfig struct {
	Name           string `mapstructure:"name"`
	Health         int32  `mapstructure:"health"`
	Attack         int32  `mapstructure:"attack"`
	Defense        int32  `mapstructure:"defense"`
	Strength       int32  `mapstructure:"strength"`
	Agility        int32  `mapstructure:"agility"`
	Intellect      int32  `mapstructure:"intellect"`
	Luck           int32  `mapstructure:"luck"`
	CriticalChance int32  `mapstructure:"critical_chance"`
}

// WavesConfig controls enemy wave generation
type WavesConfig struct {
	FixedArchetype string `mapstructure:"fixed_archetype"`
	EnemiesPerWave int    `mapstructure:"enemies_per_wave"`
	MaxRandomCount int    `mapstructure:"max_random_count"`
}

// BattleConfig controls battle simulation
type BattleConfig struct {
	MaxRounds int `mapstructure:"max_rounds"`
}

// ProgressionConfig controls experience and ranks
type ProgressionConfig struct {
	ExperiencePerRank int32 `mapstructure:"experience_per_rank"`
}

// ReportsConfig selects where battle reports are stored
type ReportsConfig struct {
	Backend   string        `mapstructure:"backend"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 0)
	v.SetDefault("catalog_path", "")

	v.SetDefault("player.name", "Player")
	v.SetDefault("player.health", 100)
	v.SetDefault("player.attack", 20)
	v.SetDefault("player.defense", 15)
	v.SetDefault("player.strength", 15)
	v.SetDefault("player.agility", 10)
	v.SetDefault("player.intellect", 10)
	v.SetDefault("player.luck", 8)
	v.SetDefault("player.critical_chance", 10)

	v.SetDefault("waves.fixed_archetype", "Mitochondria")
	v.SetDefault("waves.enemies_per_wave", 2)
	v.SetDefault("waves.max_random_count", 10)

	v.SetDefault("battle.max_rounds", 1)
	v.SetDefault("progression.experience_per_rank", 10)

	v.SetDefault("reports.backend", BackendMemory)
	v.SetDefault("reports.redis_addr", "localhost:6379")
	v.SetDefault("reports.ttl", "24h")
}

// Load reads the configuration. An empty path uses defaults and the
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFoundf("config file %s not found", path)
			}
			return nil, errors.Wrapf(err, "failed to stat config file %s", path)
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if _, err := c.Level(); err != nil {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}

	errors.ValidateRequired("player.name", c.Player.Name, vb)
	if c.Player.Health <= 0 {
		vb.Field("player.health", "must be positive")
	}

	if c.Waves.EnemiesPerWave < 1 {
		vb.Field("waves.enemies_per_wave", "must be at least 1")
	}
	if c.Waves.MaxRandomCount < 1 {
		vb.Field("waves.max_random_count", "must be at least 1")
	}
	if c.Battle.MaxRounds < 1 {
		vb.Field("battle.max_rounds", "must be at least 1")
	}
	if c.Progression.ExperiencePerRank < 1 {
		vb.Field("progression.experience_per_rank", "must be at least 1")
	}

	errors.ValidateEnum("reports.backend", c.Reports.Backend, []string{BackendMemory, BackendRedis}, vb)
	if c.Reports.Backend == BackendRedis {
		errors.ValidateRequired("reports.redis_addr", c.Reports.RedisAddr, vb)
	}
	if c.Reports.TTL < 0 {
		vb.Field("reports.ttl", "cannot be negative")
	}

	return vb.Build()
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// Attributes returns the configured base attributes of the player
func (p PlayerConfig) Attributes() entities.Attributes {
	return entities.Attributes{
		Attack:         p.Attack,
		Defense:        p.Defense,
		Strength:       p.Strength,
		Agility:        p.Agility,
		Intellect:      p.Intellect,
		Luck:           p.Luck,
		CriticalChance: p.CriticalChance,
	}
}

// Character builds a fresh player from the configured stats
func (p PlayerConfig) Character(id string) *entities.Character {
	return entities.NewCharacter(id, p.Name, p.Attributes(), p.Health)
}
