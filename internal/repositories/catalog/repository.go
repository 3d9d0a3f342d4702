package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/rpg-balance/internal/repositories/catalog Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// Repository defines read access to the game catalog
type Repository interface {
	// GetEquipment returns one item definition
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.NotFound if the item does not exist
	GetEquipment(ctx context.Context, input GetEquipmentInput) (*GetEquipmentOutput, error)

	// ListEquipment returns item definitions sorted by name, optionally
	// filtered to a minimum rarity or a single slot
	ListEquipment(ctx context.Context, input ListEquipmentInput) (*ListEquipmentOutput, error)

	// GetArchetype returns a copy of one enemy template
	// Returns errors.NotFound if the archetype does not exist
	GetArchetype(ctx context.Context, input GetArchetypeInput) (*GetArchetypeOutput, error)

	// ListArchetypes returns copies of every enemy template sorted by name
	ListArchetypes(ctx context.Context, input ListArchetypesInput) (*ListArchetypesOutput, error)

	// GetLootTable returns one loot table
	// Returns errors.NotFound if the table does not exist
	GetLootTable(ctx context.Context, input GetLootTableInput) (*GetLootTableOutput, error)

	// ListLootTables returns every loot table sorted by name
	ListLootTables(ctx context.Context, input ListLootTablesInput) (*ListLootTablesOutput, error)
}

// GetEquipmentInput defines the input for getting an item
type GetEquipmentInput struct {
	Name string
}

// GetEquipmentOutput defines the output for getting an item
type GetEquipmentOutput struct {
	Equipment *entities.Equipment
}

// ListEquipmentInput defines the filters for listing items
type ListEquipmentInput struct {
	// MinRarity drops items below this rarity; zero keeps everything
	MinRarity entities.Rarity
	// Slot keeps only items for this slot; empty keeps everything
	Slot entities.Slot
}

// ListEquipmentOutput defines the output for listing items
type ListEquipmentOutput struct {
	Equipment []*entities.Equipment
}

// GetArchetypeInput defines the input for getting an archetype
type GetArchetypeInput struct {
	Name string
}

// GetArchetypeOutput defines the output for getting an archetype
type GetArchetypeOutput struct {
	Archetype *entities.Character
}

// ListArchetypesInput defines the input for listing archetypes
type ListArchetypesInput struct{}

// ListArchetypesOutput defines the output for listing archetypes
type ListArchetypesOutput struct {
	Archetypes []*entities.Character
}

// GetLootTableInput defines the input for getting a loot table
type GetLootTableInput struct {
	Name string
}

// GetLootTableOutput defines the output for getting a loot table
type GetLootTableOutput struct {
	LootTable *entities.LootTable
}

// ListLootTablesInput defines the input for listing loot tables
type ListLootTablesInput struct{}

// ListLootTablesOutput defines the output for listing loot tables
type ListLootTablesOutput struct {
	LootTables []*entities.LootTable
}

// Config contains configuration for the catalog repository
type Config struct {
	Catalog *Catalog
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Catalog == nil {
		return errors.InvalidArgument("catalog cannot be nil")
	}
	return nil
}

type repository struct {
	catalog *Catalog
}

// NewRepository creates a catalog repository over a loaded catalog
func NewRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &repository{catalog: cfg.Catalog}, nil
}

func (r *repository) GetEquipment(_ context.Context, input GetEquipmentInput) (*GetEquipmentOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("item name is required")
	}

	item, ok := r.catalog.Equipment(input.Name)
	if !ok {
		return nil, errors.NotFoundf("item %q not in catalog", input.Name)
	}

	return &GetEquipmentOutput{Equipment: item}, nil
}

func (r *repository) ListEquipment(_ context.Context, input ListEquipmentInput) (*ListEquipmentOutput, error) {
	if input.Slot != "" && !input.Slot.IsValid() {
		return nil, errors.InvalidArgumentf("unknown slot %q", input.Slot)
	}

	output := &ListEquipmentOutput{}
	for _, name := range r.catalog.EquipmentNames() {
		item, _ := r.catalog.Equipment(name)
		if item.Rarity < input.MinRarity {
			continue
		}
		if input.Slot != "" && item.Slot != input.Slot {
			continue
		}
		output.Equipment = append(output.Equipment, item)
	}

	return output, nil
}

func (r *repository) GetArchetype(_ context.Context, input GetArchetypeInput) (*GetArchetypeOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("archetype name is required")
	}

	archetype, ok := r.catalog.Archetype(input.Name)
	if !ok {
		return nil, errors.NotFoundf("archetype %q not in catalog", input.Name)
	}

	return &GetArchetypeOutput{Archetype: archetype}, nil
}

func (r *repository) ListArchetypes(_ context.Context, _ ListArchetypesInput) (*ListArchetypesOutput, error) {
	output := &ListArchetypesOutput{}
	for _, name := range r.catalog.ArchetypeNames() {
		archetype, _ := r.catalog.Archetype(name)
		output.Archetypes = append(output.Archetypes, archetype)
	}

	return output, nil
}

func (r *repository) GetLootTable(_ context.Context, input GetLootTableInput) (*GetLootTableOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("loot table name is required")
	}

	table, ok := r.catalog.LootTable(input.Name)
	if !ok {
		return nil, errors.NotFoundf("loot table %q not in catalog", input.Name)
	}

	return &GetLootTableOutput{LootTable: table}, nil
}

func (r *repository) ListLootTables(_ context.Context, _ ListLootTablesInput) (*ListLootTablesOutput, error) {
	output := &ListLootTablesOutput{}
	for _, name := range r.catalog.LootTableNames() {
		table, _ := r.catalog.LootTable(name)
		output.LootTables = append(output.LootTables, table)
	}

	return output, nil
}
