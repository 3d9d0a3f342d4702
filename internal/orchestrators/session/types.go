package session

import (
	"github.com/KirkDiggler/rpg-balance/internal/engine/balance"
	"github.com/KirkDiggler/rpg-balance/internal/engine/equipment"
	"github.com/KirkDiggler/rpg-balance/internal/engine/wave"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
)

// CreateSessionInput defines the request for starting a session
type CreateSessionInput struct {
	// PlayerName overrides the configured player name when set
	PlayerName string
}

// CreateSessionOutput defines the response for starting a session
type CreateSessionOutput struct {
	SessionID string
	Character entities.Snapshot
}

// DeleteSessionInput defines the request for ending a session
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput defines the response for ending a session
type DeleteSessionOutput struct{}

// GetCharacterInput defines the request for reading the player
type GetCharacterInput struct {
	SessionID string
}

// GetCharacterOutput defines the response for reading the player
type GetCharacterOutput struct {
	Character entities.Snapshot
}

// GetInventoryInput defines the request for reading the inventory
type GetInventoryInput struct {
	SessionID string
}

// GetInventoryOutput defines the response for reading the inventory
type GetInventoryOutput struct {
	Inventory *equipment.Inventory
}

// AcquireItemInput defines the request for adding an item to the inventory
type AcquireItemInput struct {
	SessionID string
	ItemName  string
}

// AcquireItemOutput defines the response for adding an item
type AcquireItemOutput struct {
	Item *entities.InventoryItem
}

// EquipItemInput defines the request for equipping an owned item
type EquipItemInput struct {
	SessionID string
	Slot      string
	// Index is the position of the item among the slot's owned items
	Index int
}

// EquipItemOutput defines the response for equipping an item
type EquipItemOutput struct {
	Item      *entities.InventoryItem
	Character entities.Snapshot
}

// UnequipItemInput defines the request for clearing a slot
type UnequipItemInput struct {
	SessionID string
	Slot      string
}

// UnequipItemOutput defines the response for clearing a slot
type UnequipItemOutput struct {
	Item      *entities.InventoryItem
	Character entities.Snapshot
}

// RemoveItemInput defines the request for dropping an owned item
type RemoveItemInput struct {
	SessionID string
	Slot      string
	ItemName  string
}

// RemoveItemOutput defines the response for dropping an item
type RemoveItemOutput struct {
	Item *entities.InventoryItem
	// WasEquipped reports whether the removed copy was the equipped one
	WasEquipped bool
	Character   entities.Snapshot
}

// GenerateWaveInput defines the request for spawning the next enemy wave
type GenerateWaveInput struct {
	SessionID string
	Mode      wave.Mode
	// Count and Archetype apply to wave.ModeFixed; an empty Archetype uses
	// the configured fixed archetype
	Count     int32
	Archetype string
}

// GenerateWaveOutput defines the response for spawning a wave
type GenerateWaveOutput struct {
	Wave    int32
	Mode    wave.Mode
	Enemies []entities.Snapshot
}

// SimulateBattleInput defines the request for fighting the pending wave
type SimulateBattleInput struct {
	SessionID string
}

// SimulateBattleOutput defines the response for a battle
type SimulateBattleOutput struct {
	Report    *entities.BattleReport
	Character entities.Snapshot
}

// ApplyProgressionInput defines the request for awarding experience directly
type ApplyProgressionInput struct {
	SessionID       string
	EnemiesDefeated int
}

// ApplyProgressionOutput defines the response for awarding experience
type ApplyProgressionOutput struct {
	Progression entities.ProgressionOutcome
}

// OpenLootBoxInput defines the request for opening a loot box
type OpenLootBoxInput struct {
	SessionID string
	Table     string
}

// OpenLootBoxOutput defines the response for opening a loot box.
// Item is nil when nothing dropped.
type OpenLootBoxOutput struct {
	Item *entities.InventoryItem
}

// AllocateAttributePointInput defines the request for spending an attribute point
type AllocateAttributePointInput struct {
	SessionID string
	Attribute string
}

// AllocateAttributePointOutput defines the response for spending a point
type AllocateAttributePointOutput struct {
	Character entities.Snapshot
}

// ListBattleReportsInput defines the request for a session's battle history
type ListBattleReportsInput struct {
	SessionID string
	// Limit keeps only the most recent reports; zero returns all
	Limit int
}

// ListBattleReportsOutput defines the response for battle history
type ListBattleReportsOutput struct {
	Reports []*entities.BattleReport
}

// RunBalanceInput defines the request for a Monte Carlo simulation
type RunBalanceInput struct {
	// SessionID simulates the session's current player; empty uses the
	// configured starting player
	SessionID string
	Trials    int
	Mode      wave.Mode
	Wave      int32
	Count     int32
	Archetype string
	// Seed, when non-zero, gives the simulation its own seeded roller so the
	// result does not depend on other rolls made through the service
	Seed int64
}

// RunBalanceOutput defines the response for a simulation
type RunBalanceOutput struct {
	Result *balance.Result
}
