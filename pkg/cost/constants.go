package cost

// Default prices charged by the judge, in resource units.
const (
	DefaultTubePricePerUnit = 10   // per unit of Euclidean tube length
	DefaultTeleporterPrice  = 5000 // flat, geometry ignored
	DefaultPodPrice         = 1000
	DefaultPodRefund        = 750 // returned when a pod is destroyed
	DefaultMaxTubeCapacity  = 3   // pods a tube can carry after two upgrades
)
