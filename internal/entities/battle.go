package entities

import "time"

// ActionRecord is the log entry for one attack within a round
type ActionRecord struct {
	AttackerID              string `json:"attacker_id"`
	AttackerName            string `json:"attacker_name"`
	TargetID                string `json:"target_id"`
	TargetName              string `json:"target_name"`
	Damage                  int32  `json:"damage"`
	Critical                bool   `json:"critical"`
	TargetRemainingHealth   int32  `json:"target_remaining_health"`
	AttackerRemainingHealth int32  `json:"attacker_remaining_health"`
}

// IsHit reports whether the action dealt any damage
func (r ActionRecord) IsHit() bool {
	return r.Damage > 0
}

// BattleStats aggregates a set of action records.
// An action that deals no damage counts as a miss.
type BattleStats struct {
	Actions     int32 `json:"actions"`
	Hits        int32 `json:"hits"`
	Misses      int32 `json:"misses"`
	Criticals   int32 `json:"criticals"`
	TotalDamage int32 `json:"total_damage"`
}

// Record folds a single action into the stats
func (s *BattleStats) Record(r ActionRecord) {
	s.Actions++
	if r.IsHit() {
		s.Hits++
	} else {
		s.Misses++
	}
	if r.Critical {
		s.Criticals++
	}
	s.TotalDamage += r.Damage
}

// Merge adds another set of stats into this one
func (s *BattleStats) Merge(other BattleStats) {
	s.Actions += other.Actions
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.Criticals += other.Criticals
	s.TotalDamage += other.TotalDamage
}

// HitRate returns hits per action, or 0 with no actions
func (s BattleStats) HitRate() float64 {
	if s.Actions == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Actions)
}

// CriticalRate returns criticals per action, or 0 with no actions
func (s BattleStats) CriticalRate() float64 {
	if s.Actions == 0 {
		return 0
	}
	return float64(s.Criticals) / float64(s.Actions)
}

// AverageDamage returns damage per action, or 0 with no actions
func (s BattleStats) AverageDamage() float64 {
	if s.Actions == 0 {
		return 0
	}
	return float64(s.TotalDamage) / float64(s.Actions)
}

// ParticipantStats is the per-combatant damage ledger of a battle
type ParticipantStats struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DamageDealt int32  `json:"damage_dealt"`
	DamageTaken int32  `json:"damage_taken"`
	Criticals   int32  `json:"criticals"`
	Defeated    bool   `json:"defeated"`
}

// BattleOutcome is how a simulated battle ended
type BattleOutcome string

// Battle outcomes
const (
	BattleOutcomeVictory    BattleOutcome = "victory"
	BattleOutcomeDefeat     BattleOutcome = "defeat"
	BattleOutcomeStalemate  BattleOutcome = "stalemate"
	BattleOutcomeUnfinished BattleOutcome = "unfinished"
)

// ProgressionOutcome is the result of applying progression after a battle
type ProgressionOutcome struct {
	Defeated         bool  `json:"defeated"`
	ExperienceGained int32 `json:"experience_gained"`
	RankedUp         bool  `json:"ranked_up"`
	Experience       int32 `json:"experience"`
	Rank             int32 `json:"rank"`
	AttributePoints  int32 `json:"attribute_points"`
}

// BattleReport is the stored summary of one simulated battle
type BattleReport struct {
	ID           string             `json:"id"`
	SessionID    string             `json:"session_id"`
	Wave         int32              `json:"wave"`
	Enemies      []string           `json:"enemies"`
	Rounds       int32              `json:"rounds"`
	Actions      []ActionRecord     `json:"actions"`
	Stats        BattleStats        `json:"stats"`
	Participants []ParticipantStats `json:"participants"`
	Outcome      BattleOutcome      `json:"outcome"`
	Progression  ProgressionOutcome `json:"progression"`
	CreatedAt    time.Time          `json:"created_at"`
}
