package game

// Clock granularity. Day and month counters are 1-based.
const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	DaysPerMonth   = 30
	MonthsPerYear  = 12
)

// GameClock is the abstract in-game calendar.
type GameClock struct {
	Minute int `json:"minute"`
	Hour   int `json:"hour"`
	Day    int `json:"day"`
	Month  int `json:"month"`
	Year   int `json:"year"`
}

func startingClock() GameClock {
	return GameClock{Day: 1, Month: 1, Year: 1}
}

// Rollover reports how many boundaries a single Advance crossed.
type Rollover struct {
	Days   int
	Months int
	Years  int
}

// Advance moves the clock forward by the given number of minutes and
// reports the day, month and year boundaries crossed on the way.
func (c *GameClock) Advance(minutes int) Rollover {
	var ro Rollover
	if minutes <= 0 {
		return ro
	}
	c.Minute += minutes
	for c.Minute >= MinutesPerHour {
		c.Minute -= MinutesPerHour
		c.Hour++
		if c.Hour >= HoursPerDay {
			c.Hour = 0
			c.Day++
			ro.Days++
			if c.Day > DaysPerMonth {
				c.Day = 1
				c.Month++
				ro.Months++
				if c.Month > MonthsPerYear {
					c.Month = 1
					c.Year++
					ro.Years++
				}
			}
		}
	}
	return ro
}

// TotalDays is the absolute day index since the start of the game,
// used for once-per-day gating such as the daily bonus.
func (c *GameClock) TotalDays() int {
	return ((c.Year-1)*MonthsPerYear+(c.Month-1))*DaysPerMonth + c.Day
}
