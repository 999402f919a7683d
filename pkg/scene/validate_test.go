package scene

import (
	"strings"
	"testing"

	"github.com/ChicagoDave/tubenet/pkg/geo"
	"github.com/ChicagoDave/tubenet/pkg/network"
	"github.com/ChicagoDave/tubenet/pkg/validation"
)

func assertHasError(t *testing.T, report *validation.Report, substr string) {
	t.Helper()
	for _, e := range report.Errors {
		if strings.Contains(e.Message, substr) {
			return
		}
	}
	t.Errorf("expected error containing %q, got %v", substr, report.Errors)
}

func TestValidateGraph_Valid(t *testing.T) {
	report := ValidateGraph(Assemble(sampleWorld(t), 1, 0))
	if !report.Valid {
		t.Errorf("expected valid graph, got errors: %v", report.Errors)
	}
}

func TestValidateGraph_Nil(t *testing.T) {
	report := ValidateGraph(nil)
	if report.Valid {
		t.Error("nil graph should be invalid")
	}
}

func TestValidateGraph_DuplicateID(t *testing.T) {
	g := Assemble(sampleWorld(t), 1, 0)
	g.Entities = append(g.Entities, g.Entities[0])
	assertHasError(t, ValidateGraph(g), `duplicate entity ID "b0"`)
}

func TestValidateGraph_EmptyID(t *testing.T) {
	g := Assemble(sampleWorld(t), 1, 0)
	g.Entities = append(g.Entities, Entity{Type: EntityPad})
	assertHasError(t, ValidateGraph(g), "empty ID")
}

func TestValidateGraph_GroupIndices(t *testing.T) {
	g := Assemble(sampleWorld(t), 1, 0)
	g.Groups.EntityTypes[EntityTube] = append(g.Groups.EntityTypes[EntityTube], "e99", "b0")
	g.Groups.Cities[1] = append(g.Groups.Cities[1], "b9")
	report := ValidateGraph(g)
	assertHasError(t, report, `unknown entity "e99"`)
	assertHasError(t, report, `entity "b0" is grouped as "tube"`)
	assertHasError(t, report, `city group 1 references entity "b9"`)
}

func TestValidateGraph_DanglingStop(t *testing.T) {
	g := Assemble(sampleWorld(t), 1, 0)
	for i := range g.Entities {
		if g.Entities[i].ID == "p0" {
			g.Entities[i].Children = []string{"b0", "b42", "b0"}
		}
	}
	assertHasError(t, ValidateGraph(g), `references unknown building "b42"`)
}

func TestValidateWorld_Valid(t *testing.T) {
	report := ValidateWorld(sampleWorld(t))
	if !report.Valid {
		t.Errorf("expected valid world, got errors: %v", report.Errors)
	}
}

func TestValidateWorld_Crossing(t *testing.T) {
	// Connect does not look at geometry, so two crossing tubes can be forced
	// in and must be caught by the audit.
	w := buildWorld(t,
		[]network.Building{
			network.NewPad(0, geo.Pt(0, 0), 1),
			network.NewHangout(1, geo.Pt(10, 10), 1),
			network.NewPad(2, geo.Pt(0, 10), 1),
			network.NewHangout(3, geo.Pt(10, 0), 1),
		},
		[]link{{0, 1, network.Tube}, {2, 3, network.Tube}},
	)
	report := ValidateWorld(w)
	assertHasError(t, report, "tube 2-3 crosses tube 0-1")
}

func TestValidateWorld_SharedEndpointNotCrossing(t *testing.T) {
	w := buildWorld(t,
		[]network.Building{
			network.NewPad(0, geo.Pt(0, 0), 1),
			network.NewHangout(1, geo.Pt(10, 0), 1),
			network.NewPad(2, geo.Pt(20, 0), 1),
		},
		[]link{{0, 1, network.Tube}, {2, 1, network.Tube}},
	)
	if report := ValidateWorld(w); !report.Valid {
		t.Errorf("collinear tubes meeting at a hangout should be valid: %v", report.Errors)
	}
}
