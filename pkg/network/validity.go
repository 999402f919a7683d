package network

import (
	"fmt"

	"github.com/ChicagoDave/tubenet/pkg/geo"
)

// CheckTube returns nil if a tube may be built between a and b right now.
// The candidate must join two distinct known buildings with no edge between
// them, must not cross an existing tube, and must not pass through any other
// building. Teleporters are not planar and never block a tube.
func (w *World) CheckTube(a, b int) error {
	ba, bb, err := w.pair(a, b)
	if err != nil {
		return err
	}
	if _, exists := w.pairs[pairKey(a, b)]; exists {
		return fmt.Errorf("%d-%d: %w", a, b, ErrAlreadyConnected)
	}
	eps := w.opts.Epsilon
	for _, e := range w.edges {
		if e.Kind != Tube {
			continue
		}
		p, q := w.buildings[e.A].Pos, w.buildings[e.B].Pos
		if w.opts.Crossing.Intersects(ba.Pos, bb.Pos, p, q, eps) {
			return fmt.Errorf("%d-%d crosses tube %d-%d: %w", a, b, e.A, e.B, ErrGeometricallyInvalid)
		}
	}
	for id, other := range w.buildings {
		if id == a || id == b {
			continue
		}
		if geo.SegmentCrossesPoint(ba.Pos, bb.Pos, other.Pos, eps) {
			return fmt.Errorf("%d-%d passes through building %d: %w", a, b, id, ErrGeometricallyInvalid)
		}
	}
	return nil
}

// TubeIsValid reports whether CheckTube accepts the candidate.
func (w *World) TubeIsValid(a, b int) bool {
	return w.CheckTube(a, b) == nil
}

// CheckTeleporter returns nil if a teleporter may join entrance to exit.
// Each building hosts at most one teleporter end. Geometry is ignored.
func (w *World) CheckTeleporter(entrance, exit int) error {
	ba, bb, err := w.pair(entrance, exit)
	if err != nil {
		return err
	}
	if _, exists := w.pairs[pairKey(entrance, exit)]; exists {
		return fmt.Errorf("%d-%d: %w", entrance, exit, ErrAlreadyConnected)
	}
	if ba.Role != RoleFree {
		return fmt.Errorf("building %d already hosts a teleporter %s: %w", entrance, ba.Role, ErrNoCapacity)
	}
	if bb.Role != RoleFree {
		return fmt.Errorf("building %d already hosts a teleporter %s: %w", exit, bb.Role, ErrNoCapacity)
	}
	return nil
}

// TeleporterIsValid reports whether CheckTeleporter accepts the candidate.
func (w *World) TeleporterIsValid(entrance, exit int) bool {
	return w.CheckTeleporter(entrance, exit) == nil
}

func (w *World) pair(a, b int) (*Building, *Building, error) {
	if a == b {
		return nil, nil, fmt.Errorf("building %d to itself: %w", a, ErrGeometricallyInvalid)
	}
	ba, ok := w.buildings[a]
	if !ok {
		return nil, nil, fmt.Errorf("building %d: %w", a, ErrInvalidReference)
	}
	bb, ok := w.buildings[b]
	if !ok {
		return nil, nil, fmt.Errorf("building %d: %w", b, ErrInvalidReference)
	}
	return ba, bb, nil
}
