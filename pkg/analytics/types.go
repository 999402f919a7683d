package analytics

// CategoryFlow compares arriving demand with hangout supply for one
// category inside one city.
type CategoryFlow struct {
	Category int `json:"category"`
	Demand   int `json:"demand"`   // astronauts arriving at the city's pads
	Hangouts int `json:"hangouts"` // hangouts of this category in the city
	// Reachable is the part of Demand whose pad has a path to a matching
	// hangout.
	Reachable int     `json:"reachable"`
	MeanHops  float64 `json:"mean_hops"` // over reachable demand, pad to nearest matching hangout
}

// CitySupply is the supply chain of one city: pads are sources, hangouts
// are drains.
type CitySupply struct {
	City        int            `json:"city"`
	Sources     []int          `json:"sources"`
	Drains      []int          `json:"drains"`
	Tubes       int            `json:"tubes"`
	Teleporters int            `json:"teleporters"`
	Pods        int            `json:"pods"`
	Categories  []CategoryFlow `json:"categories"`
	// Overflow lists categories with demand but no hangout in the city.
	Overflow []int `json:"overflow,omitempty"`
	// Underflow lists hangout categories nobody in the city wants.
	Underflow []int   `json:"underflow,omitempty"`
	Coverage  float64 `json:"coverage"` // reachable / total demand
}

// Summary is the demand analysis of the whole world.
type Summary struct {
	Cities           []CitySupply `json:"cities"`
	IsolatedPads     int          `json:"isolated_pads"`
	IsolatedHangouts int          `json:"isolated_hangouts"`
	UnservedTubes    int          `json:"unserved_tubes"`
	TotalDemand      int          `json:"total_demand"`
	// StrandedDemand is demand at pads that belong to no city.
	StrandedDemand int     `json:"stranded_demand"`
	Coverage       float64 `json:"coverage"`
}
