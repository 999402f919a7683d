package protocol

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/ChicagoDave/tubenet/pkg/network"
)

const sampleTurn = `2000
1
0 1 1
1
0 3 0 1 0
2
0 0 0 0 3 5 5 5
5 1 10 0
`

func TestReadTurn(t *testing.T) {
	r := NewReader(strings.NewReader(sampleTurn))
	turn, err := r.ReadTurn()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turn.Resources != 2000 {
		t.Errorf("expected resources 2000, got %d", turn.Resources)
	}
	if want := []Route{{0, 1, 1}}; !reflect.DeepEqual(turn.Routes, want) {
		t.Errorf("expected routes %v, got %v", want, turn.Routes)
	}
	if want := []PodInfo{{ID: 0, Stops: []int{0, 1, 0}}}; !reflect.DeepEqual(turn.Pods, want) {
		t.Errorf("expected pods %v, got %v", want, turn.Pods)
	}
	if len(turn.Buildings) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(turn.Buildings))
	}
	pad := turn.Buildings[0].Building()
	if pad.Kind != network.Pad || pad.Demand[5] != 3 {
		t.Errorf("unexpected pad %+v", pad)
	}
	hangout := turn.Buildings[1].Building()
	if hangout.Kind != network.Hangout || hangout.Category != 5 || hangout.Pos.X != 10 {
		t.Errorf("unexpected hangout %+v", hangout)
	}
	if _, err := r.ReadTurn(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after last turn, got %v", err)
	}
}

func TestReadTurnMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated", "2000\n1\n"},
		{"not a number", "lots\n0\n0\n0\n"},
		{"short route", "2000\n1\n0 1\n0\n0\n"},
		{"pod stop count", "2000\n0\n1\n0 3 0 1\n0\n"},
		{"pad category count", "2000\n0\n0\n1\n0 0 0 0 3 5 5\n"},
		{"hangout extra field", "2000\n0\n0\n1\n5 1 10 0 7\n"},
		{"negative count", "2000\n-1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tc.input)).ReadTurn()
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestFormatTurnReadsBack(t *testing.T) {
	turn, err := NewReader(strings.NewReader(sampleTurn)).ReadTurn()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatTurn(turn); got != sampleTurn {
		t.Errorf("expected\n%s\ngot\n%s", sampleTurn, got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		cmds []Command
		want string
	}{
		{"empty", nil, "WAIT"},
		{"build", []Command{Tube(0, 1), Pod(0, []int{0, 1, 0})}, "TUBE 0 1;POD 0 0 1 0;WAIT"},
		{"all verbs", []Command{Upgrade(0, 1), Teleport(2, 3), Destroy(4)}, "UPGRADE 0 1;TELEPORT 2 3;DESTROY 4;WAIT"},
		{"explicit wait collapses", []Command{Wait()}, "WAIT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.cmds); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
