package network

import "errors"

var (
	// ErrInvalidReference is returned for an unknown building, edge or pod
	// id. Retrying cannot help.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrGeometricallyInvalid is returned when a tube would cross another
	// tube, pass through a building, or connect a building to itself.
	ErrGeometricallyInvalid = errors.New("geometrically invalid")

	// ErrNoCapacity is returned when a tube already carries its maximum
	// number of pods, cannot be upgraded further, or a building already
	// hosts a teleporter.
	ErrNoCapacity = errors.New("no capacity")

	// ErrBelowMinimumRoute is returned for a pod route that is not a cycle
	// of at least three stops.
	ErrBelowMinimumRoute = errors.New("route below minimum length")

	// ErrNoDemandIntent is returned when the first edge of a new city does
	// not join a pad to a hangout.
	ErrNoDemandIntent = errors.New("first edge must join a pad and a hangout")

	// ErrAlreadyConnected is returned when both endpoints already share a
	// city or an edge.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrDuplicateBuilding is returned when a building id is registered twice.
	ErrDuplicateBuilding = errors.New("duplicate building")
)
