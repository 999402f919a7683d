package analytics

import (
	"fmt"

	"github.com/ChicagoDave/tubenet/pkg/validation"
)

// validateSupply turns the summary into demand findings.
func validateSupply(s *Summary, report *validation.Report) {
	validateOverflow(s, report)
	validateStranded(s, report)
	validateUnservedTubes(s, report)
}

func validateOverflow(s *Summary, report *validation.Report) {
	for _, cs := range s.Cities {
		for _, cat := range cs.Overflow {
			report.AddWarning(validation.Result{
				Level:       validation.LevelDemand,
				Message:     fmt.Sprintf("city %d has demand for category %d but no matching hangout", cs.City, cat),
				Path:        fmt.Sprintf("city[%d].category[%d]", cs.City, cat),
				ActualValue: demandOf(cs, cat),
				Suggestions: []string{"Connect a hangout of this category to the city"},
			})
		}
		for _, cat := range cs.Underflow {
			report.AddInfo(validation.Result{
				Level:   validation.LevelDemand,
				Message: fmt.Sprintf("city %d hosts hangouts of category %d that none of its pads need", cs.City, cat),
				Path:    fmt.Sprintf("city[%d].category[%d]", cs.City, cat),
			})
		}
	}
}

func validateStranded(s *Summary, report *validation.Report) {
	if s.StrandedDemand > 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelDemand,
			Message:     fmt.Sprintf("%d astronauts arrive at %d unconnected pads", s.StrandedDemand, s.IsolatedPads),
			Path:        "pads",
			ActualValue: s.StrandedDemand,
			Expected:    "0",
		})
	}
}

func validateUnservedTubes(s *Summary, report *validation.Report) {
	if s.UnservedTubes > 0 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelDemand,
			Message:     fmt.Sprintf("%d tubes have no pod", s.UnservedTubes),
			Path:        "tubes",
			ActualValue: s.UnservedTubes,
		})
	}
}

func demandOf(cs CitySupply, cat int) int {
	for _, f := range cs.Categories {
		if f.Category == cat {
			return f.Demand
		}
	}
	return 0
}
