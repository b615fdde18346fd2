package scoringdomain

import "errors"

// Validation failures raised at round setup and score entry.
var (
	ErrInvalidCourse      = errors.New("invalid course")
	ErrInvalidRoster      = errors.New("invalid roster")
	ErrInvalidMode        = errors.New("invalid game mode")
	ErrInvalidVariant     = errors.New("invalid points variant")
	ErrInvalidRoundLength = errors.New("invalid round length")
	ErrInvalidStrokes     = errors.New("invalid strokes")
	ErrInvalidHoleUpdate  = errors.New("invalid hole update")
	ErrHoleNotFound       = errors.New("hole not found")
)
