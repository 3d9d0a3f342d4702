package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-balance/internal/config"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// rootOptions holds the persistent flags and the configuration they resolve to
type rootOptions struct {
	configPath string
	seed       int64
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rpg-balance",
		Short: "Combat balance tool for the cell roguelike",
		Long: `rpg-balance simulates the roguelike's battles so designers can tune
characters, equipment, enemy waves and loot tables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.load,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (env RPG_BALANCE_* also applies)")
	flags.Int64Var(&opts.seed, "seed", 0, "dice seed for reproducible runs; 0 uses the system roller")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newBattleCmd(opts))
	cmd.AddCommand(newBalanceCmd(opts))
	cmd.AddCommand(newLootCmd(opts))

	return cmd
}

// load reads the config, applies flag overrides and installs the logger
func (o *rootOptions) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = o.seed
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	level, err := cfg.Level()
	if err != nil {
		return errors.Wrap(err, "invalid --log-level")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	slog.Debug("Configuration loaded",
		"config", o.configPath,
		"seed", cfg.Seed,
		"reports_backend", cfg.Reports.Backend,
	)

	o.cfg = cfg
	return nil
}
