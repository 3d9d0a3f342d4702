// Package entities holds the data model shared by the engine, repositories and
// orchestrators.
package entities

// Attribute names one of the seven combat attributes
type Attribute string

// Combat attributes
const (
	AttributeAttack         Attribute = "attack"
	AttributeDefense        Attribute = "defense"
	AttributeStrength       Attribute = "strength"
	AttributeAgility        Attribute = "agility"
	AttributeIntellect      Attribute = "intellect"
	AttributeLuck           Attribute = "luck"
	AttributeCriticalChance Attribute = "critical_chance"
)

// String returns the string representation of the attribute
func (a Attribute) String() string {
	return string(a)
}

// IsValid checks if the attribute is one of the seven combat attributes
func (a Attribute) IsValid() bool {
	_, ok := bindingFor(a)
	return ok
}

// AllAttributes returns every combat attribute in display order
func AllAttributes() []Attribute {
	return []Attribute{
		AttributeAttack,
		AttributeDefense,
		AttributeStrength,
		AttributeAgility,
		AttributeIntellect,
		AttributeLuck,
		AttributeCriticalChance,
	}
}

// AttributeFromString converts a string to an Attribute
// Returns the attribute and true if valid, empty attribute and false if invalid
func AttributeFromString(s string) (Attribute, bool) {
	attr := Attribute(s)
	if attr.IsValid() {
		return attr, true
	}
	return "", false
}

// Attributes holds the seven combat attributes of a character.
// CriticalChance accumulates raw deltas; read it through Character.CritChance.
type Attributes struct {
	Attack         int32 `json:"attack" yaml:"attack"`
	Defense        int32 `json:"defense" yaml:"defense"`
	Strength       int32 `json:"strength" yaml:"strength"`
	Agility        int32 `json:"agility" yaml:"agility"`
	Intellect      int32 `json:"intellect" yaml:"intellect"`
	Luck           int32 `json:"luck" yaml:"luck"`
	CriticalChance int32 `json:"critical_chance" yaml:"critical_chance"`
}

// Bonuses holds one signed equipment delta per attribute
type Bonuses struct {
	Attack         int32 `json:"attack,omitempty" yaml:"attack"`
	Defense        int32 `json:"defense,omitempty" yaml:"defense"`
	Strength       int32 `json:"strength,omitempty" yaml:"strength"`
	Agility        int32 `json:"agility,omitempty" yaml:"agility"`
	Intellect      int32 `json:"intellect,omitempty" yaml:"intellect"`
	Luck           int32 `json:"luck,omitempty" yaml:"luck"`
	CriticalChance int32 `json:"critical_chance,omitempty" yaml:"critical_chance"`
}

// attributeBinding ties an attribute to its stat field and its bonus field.
// Adding an attribute means adding a field to both structs and a row here.
type attributeBinding struct {
	attribute Attribute
	stat      func(*Attributes) *int32
	bonus     func(Bonuses) int32
}

var attributeBindings = [...]attributeBinding{
	{
		attribute: AttributeAttack,
		stat:      func(a *Attributes) *int32 { return &a.Attack },
		bonus:     func(b Bonuses) int32 { return b.Attack },
	},
	{
		attribute: AttributeDefense,
		stat:      func(a *Attributes) *int32 { return &a.Defense },
		bonus:     func(b Bonuses) int32 { return b.Defense },
	},
	{
		attribute: AttributeStrength,
		stat:      func(a *Attributes) *int32 { return &a.Strength },
		bonus:     func(b Bonuses) int32 { return b.Strength },
	},
	{
		attribute: AttributeAgility,
		stat:      func(a *Attributes) *int32 { return &a.Agility },
		bonus:     func(b Bonuses) int32 { return b.Agility },
	},
	{
		attribute: AttributeIntellect,
		stat:      func(a *Attributes) *int32 { return &a.Intellect },
		bonus:     func(b Bonuses) int32 { return b.Intellect },
	},
	{
		attribute: AttributeLuck,
		stat:      func(a *Attributes) *int32 { return &a.Luck },
		bonus:     func(b Bonuses) int32 { return b.Luck },
	},
	{
		attribute: AttributeCriticalChance,
		stat:      func(a *Attributes) *int32 { return &a.CriticalChance },
		bonus:     func(b Bonuses) int32 { return b.CriticalChance },
	},
}

func bindingFor(attr Attribute) (attributeBinding, bool) {
	for _, binding := range attributeBindings {
		if binding.attribute == attr {
			return binding, true
		}
	}
	return attributeBinding{}, false
}

// BoundAttributes returns the attributes covered by the bonus mapping table,
// in table order
func BoundAttributes() []Attribute {
	bound := make([]Attribute, len(attributeBindings))
	for i, binding := range attributeBindings {
		bound[i] = binding.attribute
	}
	return bound
}

// Get returns the value of a single attribute
func (a *Attributes) Get(attr Attribute) (int32, bool) {
	binding, ok := bindingFor(attr)
	if !ok {
		return 0, false
	}
	return *binding.stat(a), true
}

// Add changes a single attribute by delta
func (a *Attributes) Add(attr Attribute, delta int32) bool {
	binding, ok := bindingFor(attr)
	if !ok {
		return false
	}
	*binding.stat(a) += delta
	return true
}

// Apply adds every bonus to its attribute
func (a *Attributes) Apply(b Bonuses) {
	for _, binding := range attributeBindings {
		*binding.stat(a) += binding.bonus(b)
	}
}

// Revert subtracts every bonus from its attribute, undoing Apply exactly
func (a *Attributes) Revert(b Bonuses) {
	for _, binding := range attributeBindings {
		*binding.stat(a) -= binding.bonus(b)
	}
}

// Get returns the bonus for a single attribute
func (b Bonuses) Get(attr Attribute) int32 {
	binding, ok := bindingFor(attr)
	if !ok {
		return 0
	}
	return binding.bonus(b)
}
