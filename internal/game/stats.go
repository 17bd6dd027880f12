package game

// Stat identifies one player attribute. The set is closed: adjusting a stat
// outside it is an error, not a silent no-op.
type Stat string

const (
	StatHealth       Stat = "health"
	StatIntelligence Stat = "intelligence"
	StatReputation   Stat = "reputation"
	StatHappiness    Stat = "happiness"
	StatEnergy       Stat = "energy"
	StatAge          Stat = "age"
	StatJailDays     Stat = "jail_days"
)

// StatBlock holds the player's numeric attributes. Health, intelligence,
// reputation, happiness and energy saturate at [0,100]; age only grows and
// jail days floor at zero.
type StatBlock struct {
	Health       int `json:"health"`
	Intelligence int `json:"intelligence"`
	Reputation   int `json:"reputation"`
	Happiness    int `json:"happiness"`
	Energy       int `json:"energy"`
	Age          int `json:"age"`
	JailDays     int `json:"jail_days"`
}

func startingStats() StatBlock {
	return StatBlock{
		Health:       100,
		Intelligence: 50,
		Reputation:   50,
		Happiness:    70,
		Energy:       85,
		Age:          18,
		JailDays:     0,
	}
}

// Adjust applies delta to the named stat and returns the new value.
// Bounded stats clamp silently; clamping is saturation, not a failure.
func (b *StatBlock) Adjust(stat Stat, delta int) (int, error) {
	switch stat {
	case StatHealth:
		b.Health = clampStat(b.Health + delta)
		return b.Health, nil
	case StatIntelligence:
		b.Intelligence = clampStat(b.Intelligence + delta)
		return b.Intelligence, nil
	case StatReputation:
		b.Reputation = clampStat(b.Reputation + delta)
		return b.Reputation, nil
	case StatHappiness:
		b.Happiness = clampStat(b.Happiness + delta)
		return b.Happiness, nil
	case StatEnergy:
		b.Energy = clampStat(b.Energy + delta)
		return b.Energy, nil
	case StatAge:
		b.Age += delta
		return b.Age, nil
	case StatJailDays:
		b.JailDays += delta
		if b.JailDays < 0 {
			b.JailDays = 0
		}
		return b.JailDays, nil
	default:
		return 0, ErrUnknownStat
	}
}

// Get returns the current value of the named stat.
func (b *StatBlock) Get(stat Stat) (int, error) {
	switch stat {
	case StatHealth:
		return b.Health, nil
	case StatIntelligence:
		return b.Intelligence, nil
	case StatReputation:
		return b.Reputation, nil
	case StatHappiness:
		return b.Happiness, nil
	case StatEnergy:
		return b.Energy, nil
	case StatAge:
		return b.Age, nil
	case StatJailDays:
		return b.JailDays, nil
	default:
		return 0, ErrUnknownStat
	}
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
