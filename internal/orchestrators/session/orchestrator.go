// Package session packages the balance tool's game loop for front ends: a
// session owns one player, its inventory and its wave counter.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/rpg-balance/internal/orchestrators/session Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-balance/internal/engine/balance"
	"github.com/KirkDiggler/rpg-balance/internal/engine/battle"
	"github.com/KirkDiggler/rpg-balance/internal/engine/equipment"
	"github.com/KirkDiggler/rpg-balance/internal/engine/loot"
	"github.com/KirkDiggler/rpg-balance/internal/engine/progression"
	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/engine/wave"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-balance/internal/repositories/catalog"
	battlereport "github.com/KirkDiggler/rpg-balance/internal/repositories/battle_report"
)

// Service defines the interface for session operations
type Service interface {
	// CreateSession starts a session with a fresh copy of the configured player
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// DeleteSession ends a session. Its battle reports are kept.
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// GetCharacter returns a snapshot of the session's player
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// GetInventory returns the owned and equipped items
	GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error)

	// AcquireItem adds a catalog item to the inventory
	AcquireItem(ctx context.Context, input *AcquireItemInput) (*AcquireItemOutput, error)

	// EquipItem equips an owned item, replacing what the slot held
	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)

	// UnequipItem clears a slot
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)

	// RemoveItem drops the first owned copy of an item from a slot
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error)

	// GenerateWave spawns the enemies the next battle will fight
	GenerateWave(ctx context.Context, input *GenerateWaveInput) (*GenerateWaveOutput, error)

	// SimulateBattle fights the pending wave, or the next sequential wave
	// when none is pending, then applies progression and records a report
	SimulateBattle(ctx context.Context, input *SimulateBattleInput) (*SimulateBattleOutput, error)

	// ApplyProgression awards experience for defeated enemies outside a battle
	ApplyProgression(ctx context.Context, input *ApplyProgressionInput) (*ApplyProgressionOutput, error)

	// OpenLootBox draws from a loot table and adds any drop to the inventory
	OpenLootBox(ctx context.Context, input *OpenLootBoxInput) (*OpenLootBoxOutput, error)

	// AllocateAttributePoint spends an unspent point on a base attribute
	AllocateAttributePoint(ctx context.Context, input *AllocateAttributePointInput) (*AllocateAttributePointOutput, error)

	// ListBattleReports returns a session's battle history, oldest first
	ListBattleReports(ctx context.Context, input *ListBattleReportsInput) (*ListBattleReportsOutput, error)

	// RunBalance runs a Monte Carlo simulation without touching session state
	RunBalance(ctx context.Context, input *RunBalanceInput) (*RunBalanceOutput, error)
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	Catalog     *catalog.Catalog
	Reports     battlereport.Repository
	Roller      dice.Roller
	IDGenerator idgen.Generator
	Clock       clock.Clock
	// Player is the template every session starts from; it is never mutated
	Player *entities.Character

	FixedArchetype    string
	EnemiesPerWave    int32
	MaxRandomCount    int32
	MaxRounds         int32
	ExperiencePerRank int32
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Reports == nil {
		vb.RequiredField("Reports")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Player == nil {
		vb.RequiredField("Player")
	}
	errors.ValidateRequired("FixedArchetype", c.FixedArchetype, vb)
	if c.MaxRounds < 0 {
		vb.Field("MaxRounds", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog     *catalog.Catalog
	reports     battlereport.Repository
	roller      dice.Roller
	idGen       idgen.Generator
	clock       clock.Clock
	player      *entities.Character
	progression *progression.Rule
	loot        *loot.Sampler

	fixedArchetype string
	enemiesPerWave int32
	maxRandomCount int32
	maxRounds      int32

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

// sessionState is guarded by its own mutex; the orchestrator lock only
// protects the map
type sessionState struct {
	mu      sync.Mutex
	id      string
	player  *entities.Character
	items   *equipment.Manager
	waves   *wave.Generator
	pending *wave.Wave
}

// NewOrchestrator creates a new session orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if _, ok := cfg.Catalog.Archetype(cfg.FixedArchetype); !ok {
		return nil, errors.NotFoundf("fixed archetype %q not in catalog", cfg.FixedArchetype)
	}

	rule, err := progression.NewRule(&progression.Config{ExperiencePerRank: cfg.ExperiencePerRank})
	if err != nil {
		return nil, err
	}

	sampler, err := loot.NewSampler(&loot.Config{Roller: cfg.Roller})
	if err != nil {
		return nil, err
	}

	return &orchestrator{
		catalog:        cfg.Catalog,
		reports:        cfg.Reports,
		roller:         cfg.Roller,
		idGen:          cfg.IDGenerator,
		clock:          cfg.Clock,
		player:         cfg.Player.Clone(cfg.Player.ID),
		progression:    rule,
		loot:           sampler,
		fixedArchetype: cfg.FixedArchetype,
		enemiesPerWave: cfg.EnemiesPerWave,
		maxRandomCount: cfg.MaxRandomCount,
		maxRounds:      cfg.MaxRounds,
		sessions:       make(map[string]*sessionState),
	}, nil
}

// CreateSession starts a new session
func (o *orchestrator) CreateSession(_ context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sessionID := o.idGen.Generate()
	player := o.player.Clone(o.idGen.Generate())
	if input.PlayerName != "" {
		player.Name = input.PlayerName
	}

	items, err := equipment.NewManager(&equipment.Config{
		Character:   player,
		Items:       o.catalog,
		IDGenerator: o.idGen,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create equipment manager")
	}

	waves, err := o.newWaveGenerator()
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.sessions[sessionID] = &sessionState{
		id:     sessionID,
		player: player,
		items:  items,
		waves:  waves,
	}
	o.mu.Unlock()

	slog.Info("Session created",
		"session_id", sessionID,
		"character_id", player.ID,
		"name", player.Name,
	)

	return &CreateSessionOutput{
		SessionID: sessionID,
		Character: player.Snapshot(),
	}, nil
}

// DeleteSession ends a session
func (o *orchestrator) DeleteSession(_ context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.sessions[input.SessionID]; !exists {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}
	delete(o.sessions, input.SessionID)

	slog.Info("Session deleted", "session_id", input.SessionID)

	return &DeleteSessionOutput{}, nil
}

// GetCharacter returns the player snapshot
func (o *orchestrator) GetCharacter(_ context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var output *GetCharacterOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		output = &GetCharacterOutput{Character: s.player.Snapshot()}
		return nil
	})
	return output, err
}

// GetInventory returns the inventory view
func (o *orchestrator) GetInventory(_ context.Context, input *GetInventoryInput) (*GetInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var output *GetInventoryOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		output = &GetInventoryOutput{Inventory: s.items.Inventory()}
		return nil
	})
	return output, err
}

// AcquireItem adds an item to the inventory
func (o *orchestrator) AcquireItem(_ context.Context, input *AcquireItemInput) (*AcquireItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var output *AcquireItemOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		entry, err := s.items.Acquire(input.ItemName)
		if err != nil {
			return err
		}

		slog.Debug("Item acquired",
			"session_id", s.id,
			"item", entry.Item.Name,
			"entry_id", entry.ID,
		)

		output = &AcquireItemOutput{Item: entry}
		return nil
	})
	return output, err
}

// EquipItem equips an owned item
func (o *orchestrator) EquipItem(_ context.Context, input *EquipItemInput) (*EquipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	slot, err := parseSlot(input.Slot)
	if err != nil {
		return nil, err
	}

	var output *EquipItemOutput
	err = o.withSession(input.SessionID, func(s *sessionState) error {
		entry, err := s.items.Equip(slot, input.Index)
		if err != nil {
			return err
		}

		slog.Debug("Item equipped",
			"session_id", s.id,
			"slot", slot,
			"item", entry.Item.Name,
		)

		output = &EquipItemOutput{Item: entry, Character: s.player.Snapshot()}
		return nil
	})
	return output, err
}

// UnequipItem clears a slot
func (o *orchestrator) UnequipItem(_ context.Context, input *UnequipItemInput) (*UnequipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	slot, err := parseSlot(input.Slot)
	if err != nil {
		return nil, err
	}

	var output *UnequipItemOutput
	err = o.withSession(input.SessionID, func(s *sessionState) error {
		entry, err := s.items.Unequip(slot)
		if err != nil {
			return err
		}

		output = &UnequipItemOutput{Item: entry, Character: s.player.Snapshot()}
		return nil
	})
	return output, err
}

// RemoveItem drops an owned item
func (o *orchestrator) RemoveItem(_ context.Context, input *RemoveItemInput) (*RemoveItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	slot, err := parseSlot(input.Slot)
	if err != nil {
		return nil, err
	}

	var output *RemoveItemOutput
	err = o.withSession(input.SessionID, func(s *sessionState) error {
		equipped, hadEquipped := s.items.Equipped(slot)

		entry, err := s.items.Remove(slot, input.ItemName)
		if err != nil {
			return err
		}

		output = &RemoveItemOutput{
			Item:        entry,
			WasEquipped: hadEquipped && equipped.ID == entry.ID,
			Character:   s.player.Snapshot(),
		}
		return nil
	})
	return output, err
}

// GenerateWave spawns the pending wave
func (o *orchestrator) GenerateWave(_ context.Context, input *GenerateWaveInput) (*GenerateWaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	mode := input.Mode
	if mode == "" {
		mode = wave.ModeSequential
	}
	if !mode.IsValid() {
		return nil, errors.InvalidArgumentf("unknown wave mode %q", input.Mode)
	}

	var output *GenerateWaveOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		var (
			w   *wave.Wave
			err error
		)
		switch mode {
		case wave.ModeFixed:
			w, err = s.waves.Fixed(input.Count, input.Archetype)
		case wave.ModeRandom:
			w, err = s.waves.Random()
		default:
			w, err = s.waves.Next()
		}
		if err != nil {
			return err
		}

		s.pending = w

		slog.Info("Wave generated",
			"session_id", s.id,
			"wave", w.Number,
			"mode", w.Mode,
			"enemy_count", len(w.Enemies),
		)

		output = &GenerateWaveOutput{
			Wave:    w.Number,
			Mode:    w.Mode,
			Enemies: snapshots(w.Enemies),
		}
		return nil
	})
	return output, err
}

// SimulateBattle fights the pending wave
func (o *orchestrator) SimulateBattle(ctx context.Context, input *SimulateBattleInput) (*SimulateBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var output *SimulateBattleOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		if s.player.IsDefeated() {
			return errors.FailedPreconditionf("player %s is defeated", s.player.ID)
		}

		w := s.pending
		if w == nil {
			next, err := s.waves.Next()
			if err != nil {
				return err
			}
			w = next
		}

		report, err := o.fight(ctx, s, w)
		if err != nil {
			return err
		}
		s.pending = nil

		output = &SimulateBattleOutput{Report: report, Character: s.player.Snapshot()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := o.reports.Create(ctx, battlereport.CreateInput{Report: output.Report}); err != nil {
		slog.Warn("Failed to store battle report",
			"session_id", input.SessionID,
			"report_id", output.Report.ID,
			"error", err,
		)
	}

	return output, nil
}

// fight resolves a battle between the session's player and w. Must be called
// with the session lock held.
func (o *orchestrator) fight(ctx context.Context, s *sessionState, w *wave.Wave) (*entities.BattleReport, error) {
	bus := events.NewBus()
	tally := battle.NewTally(bus)
	defer func() {
		if err := tally.Close(); err != nil {
			slog.Warn("Failed to close battle tally", "session_id", s.id, "error", err)
		}
	}()
	tally.Track(s.player)
	tally.Track(w.Enemies...)

	engine, err := battle.NewEngine(&battle.Config{Roller: o.roller, EventBus: bus})
	if err != nil {
		return nil, err
	}

	result, err := engine.Fight(ctx, &battle.FightInput{
		Player:    s.player,
		Enemies:   w.Enemies,
		MaxRounds: o.maxRounds,
	})
	if err != nil {
		return nil, err
	}

	outcome := o.progression.Apply(s.player, len(w.Enemies))

	enemyNames := make([]string, len(w.Enemies))
	for i, enemy := range w.Enemies {
		enemyNames[i] = enemy.Name
	}

	report := &entities.BattleReport{
		ID:           o.idGen.Generate(),
		SessionID:    s.id,
		Wave:         w.Number,
		Enemies:      enemyNames,
		Rounds:       int32(len(result.Rounds)),
		Actions:      result.Actions(),
		Stats:        result.Stats,
		Participants: tally.Participants(),
		Outcome:      result.Outcome,
		Progression:  outcome,
		CreatedAt:    o.clock.Now(),
	}

	slog.Info("Battle resolved",
		"session_id", s.id,
		"report_id", report.ID,
		"wave", report.Wave,
		"enemy_count", len(enemyNames),
		"rounds", report.Rounds,
		"outcome", report.Outcome,
		"player_health", s.player.Health,
		"ranked_up", outcome.RankedUp,
	)

	return report, nil
}

// ApplyProgression awards experience directly
func (o *orchestrator) ApplyProgression(_ context.Context, input *ApplyProgressionInput) (*ApplyProgressionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EnemiesDefeated < 0 {
		return nil, errors.InvalidArgumentf("enemies defeated must not be negative, got %d", input.EnemiesDefeated)
	}

	var output *ApplyProgressionOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		output = &ApplyProgressionOutput{
			Progression: o.progression.Apply(s.player, input.EnemiesDefeated),
		}
		return nil
	})
	return output, err
}

// OpenLootBox draws from a loot table
func (o *orchestrator) OpenLootBox(_ context.Context, input *OpenLootBoxInput) (*OpenLootBoxOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	table, ok := o.catalog.LootTable(input.Table)
	if !ok {
		return nil, errors.NotFoundf("loot table %q not in catalog", input.Table)
	}

	var output *OpenLootBoxOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		item, err := o.loot.Open(table)
		if err != nil {
			return err
		}

		output = &OpenLootBoxOutput{}
		if item == nil {
			slog.Debug("Loot box empty", "session_id", s.id, "table", table.Name)
			return nil
		}

		entry, err := s.items.Acquire(item.Name)
		if err != nil {
			return err
		}
		output.Item = entry

		slog.Info("Loot dropped",
			"session_id", s.id,
			"table", table.Name,
			"item", item.Name,
			"rarity", item.Rarity,
		)
		return nil
	})
	return output, err
}

// AllocateAttributePoint spends one attribute point
func (o *orchestrator) AllocateAttributePoint(_ context.Context, input *AllocateAttributePointInput) (*AllocateAttributePointOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var output *AllocateAttributePointOutput
	err := o.withSession(input.SessionID, func(s *sessionState) error {
		if err := progression.Allocate(s.player, entities.Attribute(input.Attribute)); err != nil {
			return err
		}

		output = &AllocateAttributePointOutput{Character: s.player.Snapshot()}
		return nil
	})
	return output, err
}

// ListBattleReports returns stored reports for a session, including ended ones
func (o *orchestrator) ListBattleReports(ctx context.Context, input *ListBattleReportsInput) (*ListBattleReportsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	result, err := o.reports.ListBySession(ctx, battlereport.ListBySessionInput{
		SessionID: input.SessionID,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list battle reports")
	}

	return &ListBattleReportsOutput{Reports: result.Reports}, nil
}

// RunBalance runs a simulation against copies of a player
func (o *orchestrator) RunBalance(ctx context.Context, input *RunBalanceInput) (*RunBalanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	player := o.player
	if input.SessionID != "" {
		err := o.withSession(input.SessionID, func(s *sessionState) error {
			player = s.player.Clone(s.player.ID)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	roller := o.roller
	if input.Seed != 0 {
		roller = rpgtoolkit.NewSeededRoller(input.Seed)
	}

	runner, err := balance.NewRunner(&balance.Config{
		Roller:         roller,
		Archetypes:     o.catalog,
		IDGenerator:    o.idGen,
		FixedArchetype: o.fixedArchetype,
		EnemiesPerWave: o.enemiesPerWave,
		MaxRandomCount: o.maxRandomCount,
		MaxRounds:      o.maxRounds,
	})
	if err != nil {
		return nil, err
	}

	result, err := runner.Run(ctx, &balance.RunInput{
		Player:    player,
		Trials:    input.Trials,
		Mode:      input.Mode,
		Wave:      input.Wave,
		Count:     input.Count,
		Archetype: input.Archetype,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Balance simulation finished",
		"session_id", input.SessionID,
		"trials", result.Trials,
		"mode", input.Mode,
		"seed", input.Seed,
		"win_rate", result.WinRate,
	)

	return &RunBalanceOutput{Result: result}, nil
}

func (o *orchestrator) newWaveGenerator() (*wave.Generator, error) {
	waves, err := wave.NewGenerator(&wave.Config{
		Archetypes:     o.catalog,
		Roller:         o.roller,
		IDGenerator:    o.idGen,
		FixedArchetype: o.fixedArchetype,
		EnemiesPerWave: o.enemiesPerWave,
		MaxRandomCount: o.maxRandomCount,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create wave generator")
	}
	return waves, nil
}

// withSession runs fn with the session's lock held
func (o *orchestrator) withSession(sessionID string, fn func(s *sessionState) error) error {
	if sessionID == "" {
		return errors.InvalidArgument("session ID is required")
	}

	o.mu.RLock()
	s, exists := o.sessions[sessionID]
	o.mu.RUnlock()

	if !exists {
		return errors.NotFoundf("session %s not found", sessionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s)
}

func parseSlot(value string) (entities.Slot, error) {
	slot, ok := entities.SlotFromString(value)
	if !ok {
		return "", errors.NotFoundf("unknown slot %q", value)
	}
	return slot, nil
}

func snapshots(characters []*entities.Character) []entities.Snapshot {
	out := make([]entities.Snapshot, len(characters))
	for i, c := range characters {
		out[i] = c.Snapshot()
	}
	return out
}
