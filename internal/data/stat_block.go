package data

// StatBlock carries the four primary stats. Used both for template base
// stats and for flat bonuses (bonuses may be negative, orc intelligence
// being the canonical case).
type StatBlock struct {
	Strength     int `yaml:"strength"`
	Agility      int `yaml:"agility"`
	Intelligence int `yaml:"intelligence"`
	Vitality     int `yaml:"vitality"`
}

// Add returns the component-wise sum of two stat blocks.
func (s StatBlock) Add(other StatBlock) StatBlock {
	return StatBlock{
		Strength:     s.Strength + other.Strength,
		Agility:      s.Agility + other.Agility,
		Intelligence: s.Intelligence + other.Intelligence,
		Vitality:     s.Vitality + other.Vitality,
	}
}

// AddAll returns the block with n added to every stat.
func (s StatBlock) AddAll(n int) StatBlock {
	return StatBlock{
		Strength:     s.Strength + n,
		Agility:      s.Agility + n,
		Intelligence: s.Intelligence + n,
		Vitality:     s.Vitality + n,
	}
}

// Get returns the named stat value; unknown names return 0, false.
func (s StatBlock) Get(name string) (int, bool) {
	switch name {
	case StatStrength:
		return s.Strength, true
	case StatAgility:
		return s.Agility, true
	case StatIntelligence:
		return s.Intelligence, true
	case StatVitality:
		return s.Vitality, true
	}
	return 0, false
}

// WithStat returns the block with the named stat raised by delta.
// Unknown names return the block unchanged and false.
func (s StatBlock) WithStat(name string, delta int) (StatBlock, bool) {
	switch name {
	case StatStrength:
		s.Strength += delta
	case StatAgility:
		s.Agility += delta
	case StatIntelligence:
		s.Intelligence += delta
	case StatVitality:
		s.Vitality += delta
	default:
		return s, false
	}
	return s, true
}

// Primary stat names as they appear in data files and skill effects.
const (
	StatStrength     = "strength"
	StatAgility      = "agility"
	StatIntelligence = "intelligence"
	StatVitality     = "vitality"
)

// StatNames lists the primary stats in display order.
var StatNames = []string{StatStrength, StatAgility, StatIntelligence, StatVitality}
