package planner

import (
	"errors"

	"github.com/ChicagoDave/tubenet/pkg/cost"
	"github.com/ChicagoDave/tubenet/pkg/network"
)

// Result codes stored in recordings. They are stable across releases.
const (
	CodeNothingToDo         = 1
	CodeSuccess             = 0
	CodeStandardError       = -1
	CodeNoFunds             = -2
	CodeGeometricImpossible = -3
	CodeNoCapacity          = -4
	CodeBelowMinimumRoute   = -5
)

// Code maps an error from an action to its result code.
func Code(err error) int {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, cost.ErrInsufficientFunds):
		return CodeNoFunds
	case errors.Is(err, network.ErrGeometricallyInvalid):
		return CodeGeometricImpossible
	case errors.Is(err, network.ErrNoCapacity):
		return CodeNoCapacity
	case errors.Is(err, network.ErrBelowMinimumRoute):
		return CodeBelowMinimumRoute
	default:
		return CodeStandardError
	}
}
