package network

import (
	"errors"
	"testing"

	"github.com/ChicagoDave/tubenet/pkg/geo"
)

func podWorld(t *testing.T) *World {
	t.Helper()
	w := newTestWorld(t,
		NewPad(0, geo.Pt(0, 0), 1), NewHangout(1, geo.Pt(10, 0), 1), NewHangout(2, geo.Pt(0, 10), 1))
	mustConnect(t, w, 0, 1, Tube)
	return w
}

func TestAddPod(t *testing.T) {
	w := podWorld(t)
	p, err := w.AddPod([]int{0, 1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 0 || p.City != 1 {
		t.Errorf("unexpected pod %+v", p)
	}
	e, _ := w.Edge(0, 1)
	if !e.Awake || e.Pods != 1 {
		t.Errorf("expected awake tube with 1 pod, got %+v", e)
	}
	if len(w.UnservedTubes()) != 0 {
		t.Errorf("expected no unserved tubes, got %v", w.UnservedTubes())
	}
	if w.NextPodID() != 1 {
		t.Errorf("expected next pod id 1, got %d", w.NextPodID())
	}
}

func TestAddPodRouteErrors(t *testing.T) {
	w := podWorld(t)
	tests := []struct {
		name  string
		route []int
		want  error
	}{
		{"too short", []int{0, 1}, ErrBelowMinimumRoute},
		{"not cyclic", []int{0, 1, 1}, ErrBelowMinimumRoute},
		{"unknown stop", []int{0, 9, 0}, ErrInvalidReference},
		{"missing link", []int{0, 2, 0}, ErrInvalidReference},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := w.AddPod(tc.route); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if len(w.Pods()) != 0 {
		t.Error("expected failed pods to leave no trace")
	}
}

func TestAddPodCapacity(t *testing.T) {
	w := podWorld(t)
	if _, err := w.AddPod([]int{0, 1, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.CheckPod([]int{1, 0, 1}); !errors.Is(err, ErrNoCapacity) {
		t.Fatalf("expected ErrNoCapacity, got %v", err)
	}
	if _, err := w.UpgradeTube(1, 0); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if _, err := w.AddPod([]int{1, 0, 1}); err != nil {
		t.Errorf("expected second pod after upgrade, got %v", err)
	}
}

func TestUpgradeLimit(t *testing.T) {
	w := podWorld(t)
	for range 2 {
		if _, err := w.UpgradeTube(0, 1); err != nil {
			t.Fatalf("upgrade: %v", err)
		}
	}
	if err := w.CheckUpgrade(0, 1); !errors.Is(err, ErrNoCapacity) {
		t.Errorf("expected ErrNoCapacity at capacity 3, got %v", err)
	}
	if err := w.CheckUpgrade(0, 2); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference for missing tube, got %v", err)
	}
}

func TestRemovePod(t *testing.T) {
	w := podWorld(t)
	p, _ := w.AddPod([]int{0, 1, 0})
	if err := w.RemovePod(p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, _ := w.Edge(0, 1)
	if e.Awake || e.Pods != 0 {
		t.Errorf("expected sleeping tube, got %+v", e)
	}
	c, _ := w.City(1)
	if c.HasPod(p.ID) {
		t.Error("expected pod removed from its city")
	}
	if err := w.RemovePod(p.ID); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference on second removal, got %v", err)
	}
	// Ids are never reused.
	q, _ := w.AddPod([]int{0, 1, 0})
	if q.ID != 1 {
		t.Errorf("expected pod id 1, got %d", q.ID)
	}
	assertInvariants(t, w)
}

func TestObserveRoute(t *testing.T) {
	w := podWorld(t)
	if err := w.ObserveRoute(1, 0, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, _ := w.Edge(0, 1)
	if e.Capacity != 2 {
		t.Errorf("expected capacity synced to 2, got %d", e.Capacity)
	}
	if err := w.ObserveRoute(1, 0, 1); err != nil || e.Capacity != 2 {
		t.Errorf("expected lower report ignored, got capacity %d err %v", e.Capacity, err)
	}
	if err := w.ObserveRoute(0, 2, 1); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}
