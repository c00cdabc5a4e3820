package combat

// Event is one narrative record of a match, in the order it happened.
type Event struct {
	T       float64        `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventRegister = "Register"
	EventTurn     = "Turn"
	EventCast     = "Cast"
	EventDodge    = "Dodge"
	EventHit      = "Hit"
	EventHeal     = "Heal"
	EventDefeat   = "Defeat"
	EventEnd      = "End"
)

// Rand is the random source used for gameplay rolls. *math/rand.Rand
// satisfies it; tests substitute scripted sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// TargetClass says which side of the field a skill is aimed at.
type TargetClass int

const (
	TargetEnemy TargetClass = iota
	TargetAlly
)

func (t TargetClass) String() string {
	if t == TargetAlly {
		return "ally"
	}
	return "enemy"
}
