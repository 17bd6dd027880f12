package game

import "time"

// OwnedEntity is the common shape of everything the player acquires. The ID
// is minted at purchase time and stays unique for the life of the save.
type OwnedEntity struct {
	ID         string    `json:"id"`
	CatalogID  string    `json:"catalog_id"`
	Name       string    `json:"name"`
	AcquiredAt time.Time `json:"acquired_at"`
}

type Item struct {
	OwnedEntity
	Price int64  `json:"price"`
	Kind  string `json:"kind"`
}

type Vehicle struct {
	OwnedEntity
	Comfort int `json:"comfort"`
	Speed   int `json:"speed"`
}

type Property struct {
	OwnedEntity
	Rent    int64 `json:"rent"`
	Comfort int   `json:"comfort"`
	Rented  bool  `json:"rented"`
}

type Business struct {
	OwnedEntity
	Income int64 `json:"income"`
	Risk   int   `json:"risk"`
}

type Investment struct {
	OwnedEntity
	Amount          int64 `json:"amount"`
	AnnualReturnBps int   `json:"annual_return_bps"`
}

// MonthlyReturn is the monthly apportionment of the annualized rate.
func (i Investment) MonthlyReturn() int64 {
	return i.Amount * int64(i.AnnualReturnBps) / 10_000 / 12
}

// Inventory holds the owned-entity collections of one save.
type Inventory struct {
	Items       []Item       `json:"items"`
	Vehicles    []Vehicle    `json:"vehicles"`
	Properties  []Property   `json:"properties"`
	Businesses  []Business   `json:"businesses"`
	Investments []Investment `json:"investments"`
}

// RemoveItem filters the entity out of its collection; there is no refund.
func (inv *Inventory) RemoveItem(id string) bool {
	for i, it := range inv.Items {
		if it.ID == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *Inventory) RemoveVehicle(id string) bool {
	for i, v := range inv.Vehicles {
		if v.ID == id {
			inv.Vehicles = append(inv.Vehicles[:i], inv.Vehicles[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *Inventory) RemoveProperty(id string) bool {
	for i, p := range inv.Properties {
		if p.ID == id {
			inv.Properties = append(inv.Properties[:i], inv.Properties[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *Inventory) RemoveBusiness(id string) bool {
	for i, b := range inv.Businesses {
		if b.ID == id {
			inv.Businesses = append(inv.Businesses[:i], inv.Businesses[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *Inventory) RemoveInvestment(id string) bool {
	for i, p := range inv.Investments {
		if p.ID == id {
			inv.Investments = append(inv.Investments[:i], inv.Investments[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *Inventory) InvestmentByID(id string) (Investment, bool) {
	for _, p := range inv.Investments {
		if p.ID == id {
			return p, true
		}
	}
	return Investment{}, false
}
