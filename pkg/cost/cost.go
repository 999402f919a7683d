package cost

import (
	"math"

	"github.com/ChicagoDave/tubenet/pkg/geo"
)

// Prices is the price model applied to every build action.
type Prices struct {
	TubePerUnit     int `yaml:"tube_per_unit" json:"tube_per_unit"`
	Teleporter      int `yaml:"teleporter" json:"teleporter"`
	Pod             int `yaml:"pod" json:"pod"`
	PodRefund       int `yaml:"pod_refund" json:"pod_refund"`
	MaxTubeCapacity int `yaml:"max_tube_capacity" json:"max_tube_capacity"`
}

// DefaultPrices returns the judge's price table.
func DefaultPrices() Prices {
	return Prices{
		TubePerUnit:     DefaultTubePricePerUnit,
		Teleporter:      DefaultTeleporterPrice,
		Pod:             DefaultPodPrice,
		PodRefund:       DefaultPodRefund,
		MaxTubeCapacity: DefaultMaxTubeCapacity,
	}
}

// Tube returns the price of a tube between a and b, rounded down to whole
// resource units.
func (p Prices) Tube(a, b geo.Point) int {
	return TubeCost(a.Distance(b), p.TubePerUnit)
}

// TubeCost converts a tube length into its price.
func TubeCost(length float64, perUnit int) int {
	return int(math.Floor(length * float64(perUnit)))
}

// Upgrade returns the price of raising a tube from capacity to capacity+1.
// Each step costs the initial tube price times the new capacity.
func (p Prices) Upgrade(a, b geo.Point, capacity int) int {
	return p.Tube(a, b) * (capacity + 1)
}
