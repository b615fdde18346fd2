package scoringdomain

import (
	"fmt"
	"strings"
)

// MaxHandicap is the largest handicap a player may carry.
const MaxHandicap = 54

// ValidateCourse checks that holes are numbered 1..N, pars are 3-5 and stroke indices
// form a permutation of 1..N.
func ValidateCourse(course Course) error {
	n := course.HoleCount()
	if n == 0 {
		return fmt.Errorf("%w: course %q has no holes", ErrInvalidCourse, course.Name)
	}
	numbers := make([]bool, n+1)
	indices := make([]bool, n+1)
	for _, h := range course.Holes {
		if h.Number < 1 || h.Number > n || numbers[h.Number] {
			return fmt.Errorf("%w: hole number %d is out of range or duplicated", ErrInvalidCourse, h.Number)
		}
		numbers[h.Number] = true
		if h.Par < 3 || h.Par > 5 {
			return fmt.Errorf("%w: hole %d has par %d", ErrInvalidCourse, h.Number, h.Par)
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > n || indices[h.StrokeIndex] {
			return fmt.Errorf("%w: hole %d has stroke index %d, want a unique value in 1..%d", ErrInvalidCourse, h.Number, h.StrokeIndex, n)
		}
		indices[h.StrokeIndex] = true
	}
	return nil
}

// NormalizeHandicap clamps h into 0..max.
func NormalizeHandicap(h, max int) int {
	if h < 0 {
		return 0
	}
	if max > 0 && h > max {
		return max
	}
	return h
}

// ValidateMode rejects unknown game modes.
func ValidateMode(mode GameMode) error {
	if mode != ModeIndividual && mode != ModeBetterball {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return nil
}

// ValidateRoster checks names, ids, handicaps and, for betterball, that players pair up.
func ValidateRoster(players []Player, mode GameMode) error {
	if len(players) == 0 {
		return fmt.Errorf("%w: at least one player is required", ErrInvalidRoster)
	}
	seen := make(map[string]struct{}, len(players))
	for i, p := range players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalidRoster, i+1)
		}
		if p.ID == "" {
			return fmt.Errorf("%w: player %q has no id", ErrInvalidRoster, p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate player id %q", ErrInvalidRoster, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Handicap < 0 || p.Handicap > MaxHandicap {
			return fmt.Errorf("%w: player %q has handicap %d", ErrInvalidRoster, p.Name, p.Handicap)
		}
	}
	if mode == ModeBetterball && len(players)%2 != 0 {
		return fmt.Errorf("%w: betterball needs an even number of players, got %d", ErrInvalidRoster, len(players))
	}
	return nil
}

// ValidateRoundLength accepts 9 or 18 holes on a course at least that long.
func ValidateRoundLength(length int, course Course) error {
	if length != 9 && length != 18 {
		return fmt.Errorf("%w: %d", ErrInvalidRoundLength, length)
	}
	if length > course.HoleCount() {
		return fmt.Errorf("%w: %d holes requested on a %d-hole course", ErrInvalidRoundLength, length, course.HoleCount())
	}
	return nil
}

// ValidateStrokes rejects non-positive stroke counts.
func ValidateStrokes(strokes int) error {
	if strokes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStrokes, strokes)
	}
	return nil
}
