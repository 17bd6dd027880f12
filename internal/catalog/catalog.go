package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog holds the static reference tables the engine reads at startup.
// All slices keep their file order; event evaluation depends on it.
type Catalog struct {
	Jobs          []Job               `yaml:"jobs"`
	Education     []EducationTier     `yaml:"education"`
	Vehicles      []VehicleSpec       `yaml:"vehicles"`
	Properties    []PropertySpec      `yaml:"properties"`
	Businesses    []BusinessSpec      `yaml:"businesses"`
	Crimes        []CrimeSpec         `yaml:"crimes"`
	Investments   []InvestmentSpec    `yaml:"investments"`
	Items         []ItemSpec          `yaml:"items"`
	Relationships []RelationshipLevel `yaml:"relationships"`
	Events        []EventDef          `yaml:"events"`
	Names         []string            `yaml:"names"`
}

type Job struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Salary     int64  `yaml:"salary" json:"salary"`
	EnergyCost int    `yaml:"energy_cost" json:"energy_cost"`
	Experience int    `yaml:"experience" json:"experience"`
}

type EducationTier struct {
	ID               string `yaml:"id" json:"id"`
	Name             string `yaml:"name" json:"name"`
	Cost             int64  `yaml:"cost" json:"cost"`
	IntelligenceGain int    `yaml:"intelligence_gain" json:"intelligence_gain"`
	Years            int    `yaml:"years" json:"years"`
}

type VehicleSpec struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Price   int64  `yaml:"price" json:"price"`
	Comfort int    `yaml:"comfort" json:"comfort"`
	Speed   int    `yaml:"speed" json:"speed"`
}

type PropertySpec struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Price   int64  `yaml:"price" json:"price"`
	Rent    int64  `yaml:"rent" json:"rent"`
	Comfort int    `yaml:"comfort" json:"comfort"`
}

type BusinessSpec struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Price      int64  `yaml:"price" json:"price"`
	Income     int64  `yaml:"income" json:"income"`
	Risk       int    `yaml:"risk" json:"risk"`
	Management int    `yaml:"management" json:"management"`
}

type CrimeSpec struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	MinReward      int64  `yaml:"min_reward" json:"min_reward"`
	MaxReward      int64  `yaml:"max_reward" json:"max_reward"`
	Risk           int    `yaml:"risk" json:"risk"`
	JailChance     int    `yaml:"jail_chance" json:"jail_chance"`
	JailDays       int    `yaml:"jail_days" json:"jail_days"`
	ReputationLoss int    `yaml:"reputation_loss" json:"reputation_loss"`
}

type InvestmentSpec struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	MinAmount       int64  `yaml:"min_amount" json:"min_amount"`
	AnnualReturnBps int    `yaml:"annual_return_bps" json:"annual_return_bps"`
	Risk            int    `yaml:"risk" json:"risk"`
}

type ItemSpec struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Price int64  `yaml:"price" json:"price"`
	Kind  string `yaml:"kind" json:"kind"`
}

type RelationshipLevel struct {
	ID            string `yaml:"id" json:"id"`
	Name          string `yaml:"name" json:"name"`
	HappinessGain int    `yaml:"happiness_gain" json:"happiness_gain"`
	Cost          int64  `yaml:"cost" json:"cost"`
}

// EventDef is one row of the world-event table. Chance is the independent
// per-tick trigger probability; rows with Chance 0 are only reachable as a
// follow-up of another event's choice.
type EventDef struct {
	ID          string           `yaml:"id" json:"id"`
	Title       string           `yaml:"title" json:"title"`
	Description string           `yaml:"description" json:"description"`
	Chance      float64          `yaml:"chance" json:"chance"`
	Effect      map[string]int64 `yaml:"effect" json:"effect,omitempty"`
	Choices     []EventChoice    `yaml:"choices" json:"choices,omitempty"`
}

type EventChoice struct {
	Text   string           `yaml:"text" json:"text"`
	Effect map[string]int64 `yaml:"effect" json:"effect,omitempty"`
	Next   string           `yaml:"next" json:"next,omitempty"`
}

// Load parses the embedded reference data. Called once at startup; the
// returned catalog is read-only from the engine's perspective.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog data: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog data: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Jobs) == 0 || len(c.Crimes) == 0 || len(c.Events) == 0 {
		return fmt.Errorf("catalog data incomplete")
	}
	byID := make(map[string]struct{}, len(c.Events))
	for _, ev := range c.Events {
		byID[ev.ID] = struct{}{}
	}
	for _, ev := range c.Events {
		for _, ch := range ev.Choices {
			if ch.Next == "" {
				continue
			}
			if _, ok := byID[ch.Next]; !ok {
				return fmt.Errorf("event %s: unknown follow-up %s", ev.ID, ch.Next)
			}
		}
	}
	return nil
}

func (c *Catalog) JobByID(id string) (Job, bool) {
	for _, j := range c.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

func (c *Catalog) EducationByID(id string) (EducationTier, bool) {
	for _, e := range c.Education {
		if e.ID == id {
			return e, true
		}
	}
	return EducationTier{}, false
}

func (c *Catalog) VehicleByID(id string) (VehicleSpec, bool) {
	for _, v := range c.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return VehicleSpec{}, false
}

func (c *Catalog) PropertyByID(id string) (PropertySpec, bool) {
	for _, p := range c.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return PropertySpec{}, false
}

func (c *Catalog) BusinessByID(id string) (BusinessSpec, bool) {
	for _, b := range c.Businesses {
		if b.ID == id {
			return b, true
		}
	}
	return BusinessSpec{}, false
}

func (c *Catalog) CrimeByID(id string) (CrimeSpec, bool) {
	for _, cr := range c.Crimes {
		if cr.ID == id {
			return cr, true
		}
	}
	return CrimeSpec{}, false
}

func (c *Catalog) InvestmentByID(id string) (InvestmentSpec, bool) {
	for _, in := range c.Investments {
		if in.ID == id {
			return in, true
		}
	}
	return InvestmentSpec{}, false
}

func (c *Catalog) ItemByID(id string) (ItemSpec, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemSpec{}, false
}

func (c *Catalog) EventByID(id string) (EventDef, bool) {
	for _, ev := range c.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return EventDef{}, false
}
