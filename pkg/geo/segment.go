package geo

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the tolerance used by the segment predicates when the
// configuration does not override it.
const DefaultEpsilon = 0.00001

// SegmentCrossesPoint reports whether p lies on the segment start-end. The
// test compares the segment length with the detour through p, so it also
// holds for the endpoints themselves.
func SegmentCrossesPoint(start, end, p Point, eps float64) bool {
	return math.Abs(start.Distance(end)-(start.Distance(p)+p.Distance(end))) < eps
}

// SegmentsIntersect reports whether segment a crosses segment b. Both
// parametric positions must fall inside their segment. Segments that share an
// endpoint only meet at that building and do not count, unless they are
// collinear and overlap beyond it. Parallel segments on distinct lines never
// cross.
func SegmentsIntersect(aStart, aEnd, bStart, bEnd Point, eps float64) bool {
	r := aEnd.Sub(aStart)
	s := bEnd.Sub(bStart)
	qp := bStart.Sub(aStart)
	denom := r.Cross(s)
	if math.Abs(denom) < eps {
		return collinearOverlap(r, qp, bEnd.Sub(aStart), eps)
	}
	if sharesEndpoint(aStart, aEnd, bStart, bEnd) {
		return false
	}
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	return t >= -eps && t <= 1+eps && u >= -eps && u <= 1+eps
}

// collinearOverlap reports whether b, given by its endpoints relative to
// a's start, lies on a's line and shares more than a single point with a.
func collinearOverlap(r, b0, b1 Point, eps float64) bool {
	length := r.Length()
	if length < eps || math.Abs(b0.Cross(r)) >= eps*length {
		return false
	}
	rr := r.Dot(r)
	t0, t1 := b0.Dot(r)/rr, b1.Dot(r)/rr
	lo := math.Max(0, math.Min(t0, t1))
	hi := math.Min(1, math.Max(t0, t1))
	return (hi-lo)*length > eps
}

// LegacySegmentsIntersect is the one-sided check the first bot shipped with:
// the denominator is offset by eps and only the parameter on segment a is
// bounded, so crossings outside b's extent are still reported.
func LegacySegmentsIntersect(aStart, aEnd, bStart, bEnd Point, eps float64) bool {
	r := aEnd.Sub(aStart)
	s := bEnd.Sub(bStart)
	t := bStart.Sub(aStart).Cross(s) / (r.Cross(s) + eps)
	return t >= 0 && t <= 1
}

func sharesEndpoint(aStart, aEnd, bStart, bEnd Point) bool {
	return aStart == bStart || aStart == bEnd || aEnd == bStart || aEnd == bEnd
}

// CrossingMode selects the segment intersection rule.
type CrossingMode string

const (
	CrossingStrict CrossingMode = "strict"
	CrossingLegacy CrossingMode = "legacy"
)

// ParseCrossingMode accepts "strict", "legacy" or "" (strict).
func ParseCrossingMode(s string) (CrossingMode, error) {
	switch CrossingMode(s) {
	case "", CrossingStrict:
		return CrossingStrict, nil
	case CrossingLegacy:
		return CrossingLegacy, nil
	default:
		return "", fmt.Errorf("unknown crossing mode %q", s)
	}
}

// Intersects applies the selected rule.
func (m CrossingMode) Intersects(aStart, aEnd, bStart, bEnd Point, eps float64) bool {
	if m == CrossingLegacy {
		return LegacySegmentsIntersect(aStart, aEnd, bStart, bEnd, eps)
	}
	return SegmentsIntersect(aStart, aEnd, bStart, bEnd, eps)
}
