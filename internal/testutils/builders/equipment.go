package builders

import (
	"github.com/KirkDiggler/rpg-balance/internal/entities"
)

// EquipmentBuilder provides a fluent interface for building test Equipment
type EquipmentBuilder struct {
	item entities.Equipment
}

// NewEquipmentBuilder creates a common weapon with no bonuses
func NewEquipmentBuilder(name string) *EquipmentBuilder {
	return &EquipmentBuilder{
		item: entities.Equipment{
			Name:   name,
			Slot:   entities.SlotWeapon,
			Rarity: entities.RarityCommon,
		},
	}
}

// WithSlot sets the slot
func (b *EquipmentBuilder) WithSlot(slot entities.Slot) *EquipmentBuilder {
	b.item.Slot = slot
	return b
}

// WithBonuses sets the attribute bonuses
func (b *EquipmentBuilder) WithBonuses(bonuses entities.Bonuses) *EquipmentBuilder {
	b.item.Bonuses = bonuses
	return b
}

// WithPrice sets the price
func (b *EquipmentBuilder) WithPrice(price int32) *EquipmentBuilder {
	b.item.Price = price
	return b
}

// WithRarity sets the rarity
func (b *EquipmentBuilder) WithRarity(rarity entities.Rarity) *EquipmentBuilder {
	b.item.Rarity = rarity
	return b
}

// Build returns a new Equipment each call
func (b *EquipmentBuilder) Build() *entities.Equipment {
	item := b.item
	return &item
}
