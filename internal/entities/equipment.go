package entities

import "strings"

// Slot is an equipment category; at most one item per slot is equipped
type Slot string

// Equipment slots
const (
	SlotWeapon    Slot = "weapon"
	SlotShield    Slot = "shield"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

// String returns the string representation of the slot
func (s Slot) String() string {
	return string(s)
}

// IsValid checks if the slot is valid
func (s Slot) IsValid() bool {
	switch s {
	case SlotWeapon, SlotShield, SlotArmor, SlotAccessory:
		return true
	default:
		return false
	}
}

// AllSlots returns every slot in display order
func AllSlots() []Slot {
	return []Slot{SlotWeapon, SlotShield, SlotArmor, SlotAccessory}
}

// SlotFromString converts a string to a Slot
// Returns the slot and true if valid, empty slot and false if invalid
func SlotFromString(s string) (Slot, bool) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	if slot.IsValid() {
		return slot, true
	}
	return "", false
}

// Rarity orders items for display and filtering
type Rarity int

// Rarity tiers, lowest first
const (
	RarityUnknown Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "Common",
	RarityUncommon:  "Uncommon",
	RarityRare:      "Rare",
	RarityEpic:      "Epic",
	RarityLegendary: "Legendary",
}

// String returns the display name of the rarity
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "Unknown"
}

// RarityFromString parses a rarity name, ignoring case
func RarityFromString(s string) (Rarity, bool) {
	for rarity, name := range rarityNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return rarity, true
		}
	}
	return RarityUnknown, false
}

// Equipment is an item definition. Catalog entries are shared by pointer and
// must not be mutated.
type Equipment struct {
	Name    string  `json:"name"`
	Slot    Slot    `json:"slot"`
	Bonuses Bonuses `json:"bonuses"`
	Price   int32   `json:"price"`
	Rarity  Rarity  `json:"rarity"`
}

// InventoryItem is one owned copy of an item
type InventoryItem struct {
	ID   string     `json:"id"`
	Item *Equipment `json:"item"`
}
