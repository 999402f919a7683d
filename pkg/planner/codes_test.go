package planner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ChicagoDave/tubenet/pkg/cost"
	"github.com/ChicagoDave/tubenet/pkg/network"
)

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, CodeSuccess},
		{fmt.Errorf("tube: %w", cost.ErrInsufficientFunds), CodeNoFunds},
		{network.ErrGeometricallyInvalid, CodeGeometricImpossible},
		{network.ErrNoCapacity, CodeNoCapacity},
		{network.ErrBelowMinimumRoute, CodeBelowMinimumRoute},
		{network.ErrInvalidReference, CodeStandardError},
		{errors.New("boom"), CodeStandardError},
	}
	for _, tc := range tests {
		if got := Code(tc.err); got != tc.want {
			t.Errorf("Code(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
