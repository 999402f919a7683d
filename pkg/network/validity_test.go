package network

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/ChicagoDave/tubenet/pkg/geo"
)

func TestTubeCrossingRejected(t *testing.T) {
	w := newTestWorld(t,
		NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(10, 10), 1),
		NewPad(2, geo.Pt(0, 10), 1), NewHangout(3, geo.Pt(10, 0), 1))
	mustConnect(t, w, 0, 1, Tube)
	err := w.CheckTube(2, 3)
	if !errors.Is(err, ErrGeometricallyInvalid) {
		t.Errorf("expected ErrGeometricallyInvalid, got %v", err)
	}
}

func TestTubeThroughBuildingRejected(t *testing.T) {
	w := newTestWorld(t,
		NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(5, 0), 1), NewHangout(2, geo.Pt(10, 0), 1))
	if w.TubeIsValid(0, 2) {
		t.Error("expected tube through building 1 to be invalid")
	}
	if !w.TubeIsValid(0, 1) {
		t.Error("expected tube to adjacent building to be valid")
	}
}

func TestTubeSharingEndpointAllowed(t *testing.T) {
	w := newTestWorld(t,
		NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(10, 0), 1), NewHangout(2, geo.Pt(0, 10), 1))
	mustConnect(t, w, 0, 1, Tube)
	if err := w.CheckTube(0, 2); err != nil {
		t.Errorf("expected tube sharing an endpoint to be valid, got %v", err)
	}
	if err := w.CheckTube(1, 0); !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("expected ErrAlreadyConnected for existing pair, got %v", err)
	}
}

func TestTubeOverlappingTubeRejected(t *testing.T) {
	// Buildings 2 and 3 arrive after tube 0-1 and sit on it.
	w := newTestWorld(t, NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(20, 0), 1))
	mustConnect(t, w, 0, 1, Tube)
	for _, b := range []Building{NewPad(2, geo.Pt(5, 0), 1), NewHangout(3, geo.Pt(15, 0), 1)} {
		if err := w.AddBuilding(b); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		a, b int
	}{
		{"inside existing tube", 2, 3},
		{"from shared endpoint", 0, 2},
		{"to shared endpoint", 3, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := w.CheckTube(tc.a, tc.b); !errors.Is(err, ErrGeometricallyInvalid) {
				t.Errorf("expected ErrGeometricallyInvalid for %d-%d, got %v", tc.a, tc.b, err)
			}
		})
	}
}

func TestTubeContinuingLineAllowed(t *testing.T) {
	w := newTestWorld(t,
		NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(10, 0), 1), NewPad(2, geo.Pt(20, 0), 1))
	mustConnect(t, w, 0, 1, Tube)
	if err := w.CheckTube(2, 1); err != nil {
		t.Errorf("expected a collinear tube meeting end to end to be valid, got %v", err)
	}
}

func TestTeleporterDoesNotBlockTubes(t *testing.T) {
	w := newTestWorld(t,
		NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(10, 10), 1),
		NewPad(2, geo.Pt(0, 10), 1), NewHangout(3, geo.Pt(10, 0), 1))
	mustConnect(t, w, 0, 1, Teleporter)
	if !w.TubeIsValid(2, 3) {
		t.Error("expected teleporters to be ignored by the crossing check")
	}
}

func TestTeleporterRoles(t *testing.T) {
	w := newTestWorld(t,
		NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(10, 10), 1), NewHangout(2, geo.Pt(20, 0), 1))
	if err := w.CheckTeleporter(0, 1); err != nil {
		t.Fatalf("expected free buildings to accept a teleporter, got %v", err)
	}
	mustConnect(t, w, 0, 1, Teleporter)
	a, _ := w.Building(0)
	b, _ := w.Building(1)
	if a.Role != RoleEntrance || b.Role != RoleExit {
		t.Errorf("expected entrance/exit, got %s/%s", a.Role, b.Role)
	}
	e, _ := w.Edge(0, 1)
	if e.Capacity != 0 || e.Kind != Teleporter {
		t.Errorf("expected unlimited teleporter, got %+v", e)
	}
	if err := w.CheckTeleporter(2, 1); !errors.Is(err, ErrNoCapacity) {
		t.Errorf("expected ErrNoCapacity for occupied exit, got %v", err)
	}
	if w.TeleporterIsValid(0, 2) {
		t.Error("expected occupied entrance to be rejected")
	}
}

func TestTubeValiditySymmetric(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	w := New(DefaultOptions())
	const n = 30
	for id := range n {
		pos := geo.Pt(float64(rng.IntN(40)), float64(rng.IntN(40)))
		if id%2 == 0 {
			w.AddBuilding(NewPad(id, pos, 1))
		} else {
			w.AddBuilding(NewHangout(id, pos, 1))
		}
	}
	for range 60 {
		a, b := rng.IntN(n), rng.IntN(n)
		if w.TubeIsValid(a, b) {
			w.Connect(a, b, Tube)
		}
	}
	for a := range n {
		for b := range n {
			if w.TubeIsValid(a, b) != w.TubeIsValid(b, a) {
				t.Fatalf("validity of %d-%d is not symmetric", a, b)
			}
		}
	}
	assertInvariants(t, w)
}

func TestLegacyCrossingMode(t *testing.T) {
	opts := DefaultOptions()
	opts.Crossing = geo.CrossingLegacy
	w := New(opts)
	w.AddBuilding(NewPad(0, geo.Pt(0, 0), 1))
	w.AddBuilding(NewHangout(1, geo.Pt(10, 0), 1))
	w.AddBuilding(NewPad(2, geo.Pt(5, 2), 1))
	w.AddBuilding(NewHangout(3, geo.Pt(5, 10), 1))
	mustConnect(t, w, 2, 3, Tube)
	// Tube 2-3 stops short of the candidate's line, only the legacy rule
	// rejects it.
	if w.TubeIsValid(0, 1) {
		t.Error("expected legacy mode to reject the candidate")
	}
	w.opts.Crossing = geo.CrossingStrict
	if !w.TubeIsValid(0, 1) {
		t.Error("expected strict mode to accept the candidate")
	}
}

func BenchmarkCheckTube(b *testing.B) {
	w := New(DefaultOptions())
	for i := range 100 {
		if i%2 == 0 {
			w.AddBuilding(NewPad(i, geo.Pt(float64(i), float64(i%7)), 1))
		} else {
			w.AddBuilding(NewHangout(i, geo.Pt(float64(i), float64(i%7)), 1))
		}
	}
	for i := 0; i+1 < 100; i += 2 {
		if w.TubeIsValid(i, i+1) {
			w.Connect(i, i+1, Tube)
		}
	}
	for b.Loop() {
		w.TubeIsValid(0, 99)
	}
}
