package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-balance/internal/config"
	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-balance/internal/redis"
	battlereport "github.com/KirkDiggler/rpg-balance/internal/repositories/battle_report"
	"github.com/KirkDiggler/rpg-balance/internal/repositories/catalog"
)

// app is the dependency graph shared by every subcommand
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	roller  dice.Roller
	idGen   idgen.Generator
	service session.Service

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		catalog: cat,
		roller:  rpgtoolkit.NewRoller(cfg.Seed),
		idGen:   idgen.NewUUID(""),
	}
	if cfg.Seed != 0 {
		a.idGen = idgen.NewSequential("id")
	}

	reports, err := a.reportRepository(ctx)
	if err != nil {
		return nil, err
	}

	a.service, err = session.NewOrchestrator(&session.Config{
		Catalog:           cat,
		Reports:           reports,
		Roller:            a.roller,
		IDGenerator:       a.idGen,
		Clock:             clock.New(),
		Player:            cfg.Player.Character("player"),
		FixedArchetype:    cfg.Waves.FixedArchetype,
		EnemiesPerWave:    int32(cfg.Waves.EnemiesPerWave),
		MaxRandomCount:    int32(cfg.Waves.MaxRandomCount),
		MaxRounds:         int32(cfg.Battle.MaxRounds),
		ExperiencePerRank: cfg.Progression.ExperiencePerRank,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func (a *app) reportRepository(ctx context.Context) (battlereport.Repository, error) {
	if a.cfg.Reports.Backend != config.BackendRedis {
		return battlereport.NewInMemory(), nil
	}

	client, err := redis.NewClient(a.cfg.Reports.RedisAddr, nil)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)

	if err := redis.Ping(ctx, client); err != nil {
		_ = a.Close()
		return nil, err
	}

	slog.Info("Storing battle reports in redis",
		"addr", a.cfg.Reports.RedisAddr,
		"ttl", a.cfg.Reports.TTL,
	)

	return battlereport.NewRedis(&battlereport.RedisConfig{
		Client: client,
		TTL:    a.cfg.Reports.TTL,
	})
}

// Close releases external connections
func (a *app) Close() error {
	var first error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// newSession starts a session and equips the named items in order. Each item
// is acquired and then equipped from its slot.
func (a *app) newSession(ctx context.Context, equip []string) (string, error) {
	created, err := a.service.CreateSession(ctx, &session.CreateSessionInput{})
	if err != nil {
		return "", err
	}

	for _, name := range equip {
		acquired, err := a.service.AcquireItem(ctx, &session.AcquireItemInput{
			SessionID: created.SessionID,
			ItemName:  name,
		})
		if err != nil {
			return "", err
		}

		inventory, err := a.service.GetInventory(ctx, &session.GetInventoryInput{SessionID: created.SessionID})
		if err != nil {
			return "", err
		}
		slot := acquired.Item.Item.Slot
		owned := inventory.Inventory.Slot(slot)

		if _, err := a.service.EquipItem(ctx, &session.EquipItemInput{
			SessionID: created.SessionID,
			Slot:      string(slot),
			Index:     len(owned.Items) - 1,
		}); err != nil {
			return "", err
		}
	}

	return created.SessionID, nil
}
