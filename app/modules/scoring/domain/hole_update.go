package scoringdomain

import (
	"fmt"
	"slices"
)

// HoleUpdate is a single edit to one field of a hole. The set of implementations is closed.
type HoleUpdate interface {
	apply(h Hole, holeCount int) (Hole, error)
}

// SetPar changes a hole's par.
type SetPar struct {
	Par int
}

// SetStrokeIndex changes a hole's stroke index.
type SetStrokeIndex struct {
	StrokeIndex int
}

// SetDistance changes a hole's tee distances.
type SetDistance struct {
	Distance Distance
}

func (u SetPar) apply(h Hole, _ int) (Hole, error) {
	if u.Par < 3 || u.Par > 5 {
		return h, fmt.Errorf("%w: par %d", ErrInvalidHoleUpdate, u.Par)
	}
	h.Par = u.Par
	return h, nil
}

func (u SetStrokeIndex) apply(h Hole, holeCount int) (Hole, error) {
	if u.StrokeIndex < 1 || u.StrokeIndex > holeCount {
		return h, fmt.Errorf("%w: stroke index %d outside 1..%d", ErrInvalidHoleUpdate, u.StrokeIndex, holeCount)
	}
	h.StrokeIndex = u.StrokeIndex
	return h, nil
}

func (u SetDistance) apply(h Hole, _ int) (Hole, error) {
	if u.Distance.Men < 0 || u.Distance.Women < 0 {
		return h, fmt.Errorf("%w: negative distance", ErrInvalidHoleUpdate)
	}
	h.Distance = u.Distance
	return h, nil
}

// ApplyHoleUpdate returns a copy of course with the update applied to hole number.
// Stroke indices may be temporarily duplicated while a course is being edited;
// ValidateCourse catches that before a round starts.
func ApplyHoleUpdate(course Course, number int, update HoleUpdate) (Course, error) {
	if update == nil {
		return course, fmt.Errorf("%w: empty update", ErrInvalidHoleUpdate)
	}
	i := slices.IndexFunc(course.Holes, func(h Hole) bool { return h.Number == number })
	if i < 0 {
		return course, fmt.Errorf("%w: hole %d", ErrHoleNotFound, number)
	}
	updated, err := update.apply(course.Holes[i], course.HoleCount())
	if err != nil {
		return course, err
	}
	out := course
	out.Holes = slices.Clone(course.Holes)
	out.Holes[i] = updated
	return out, nil
}
