package game

import "testing"

func TestAdjustClampsBoundedStats(t *testing.T) {
	tests := []struct {
		name  string
		stat  Stat
		start int
		delta int
		want  int
	}{
		{"health saturates high", StatHealth, 95, 50, 100},
		{"health floors at zero", StatHealth, 10, -200, 0},
		{"energy saturates high", StatEnergy, 85, 49, 100},
		{"happiness floors", StatHappiness, 5, -10, 0},
		{"intelligence normal", StatIntelligence, 50, 7, 57},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := startingStats()
			if _, err := b.Adjust(tc.stat, tc.start-mustGet(t, &b, tc.stat)); err != nil {
				t.Fatalf("prime %s: %v", tc.stat, err)
			}
			got, err := b.Adjust(tc.stat, tc.delta)
			if err != nil {
				t.Fatalf("adjust: %v", err)
			}
			if got != tc.want {
				t.Fatalf("%s: got %d want %d", tc.stat, got, tc.want)
			}
		})
	}
}

func mustGet(t *testing.T, b *StatBlock, stat Stat) int {
	t.Helper()
	v, err := b.Get(stat)
	if err != nil {
		t.Fatalf("get %s: %v", stat, err)
	}
	return v
}

func TestAdjustAgeIsUnbounded(t *testing.T) {
	b := startingStats()
	got, err := b.Adjust(StatAge, 200)
	if err != nil {
		t.Fatalf("adjust age: %v", err)
	}
	if got != 218 {
		t.Fatalf("age = %d, want 218", got)
	}
}

func TestAdjustJailDaysFloorsAtZero(t *testing.T) {
	b := startingStats()
	b.Adjust(StatJailDays, 3)
	got, _ := b.Adjust(StatJailDays, -10)
	if got != 0 {
		t.Fatalf("jail days = %d, want 0", got)
	}
}

func TestAdjustUnknownStat(t *testing.T) {
	b := startingStats()
	if _, err := b.Adjust(Stat("charisma"), 1); err != ErrUnknownStat {
		t.Fatalf("expected ErrUnknownStat, got %v", err)
	}
}

func TestStartingStats(t *testing.T) {
	b := startingStats()
	if b.Health != 100 || b.Intelligence != 50 || b.Reputation != 50 ||
		b.Happiness != 70 || b.Energy != 85 || b.Age != 18 || b.JailDays != 0 {
		t.Fatalf("unexpected starting stats: %+v", b)
	}
}
