package scene

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"

	"github.com/ChicagoDave/tubenet/pkg/network"
)

// snapshot is the canonical form hashed by Digest. Slices are id-ordered and
// encoding/json sorts map keys, so equal worlds encode to equal bytes.
type snapshot struct {
	Buildings []*network.Building `json:"buildings"`
	Edges     []*network.Edge     `json:"edges"`
	Cities    []citySnapshot      `json:"cities"`
	Pods      []*network.Pod      `json:"pods"`
}

type citySnapshot struct {
	ID        int   `json:"id"`
	Buildings []int `json:"buildings"`
	Pods      []int `json:"pods"`
}

// Digest returns the hex blake3-256 hash of the world's canonical JSON.
func Digest(w *network.World) string {
	s := snapshot{
		Buildings: w.Buildings(),
		Edges:     w.Edges(),
		Pods:      w.Pods(),
	}
	for _, c := range w.Cities() {
		s.Cities = append(s.Cities, citySnapshot{ID: c.ID, Buildings: c.BuildingIDs(), Pods: c.PodIDs()})
	}
	data, err := json.Marshal(s)
	if err != nil {
		// Only plain ints, floats and strings are encoded.
		panic("scene: encoding world snapshot: " + err.Error())
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
