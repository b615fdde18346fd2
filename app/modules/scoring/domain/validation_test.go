package scoringdomain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCourse(t *testing.T) {
	valid := par72Course()

	dupIndex := par72Course()
	dupIndex.Holes[1].StrokeIndex = dupIndex.Holes[0].StrokeIndex

	badPar := par72Course()
	badPar.Holes[5].Par = 6

	gap := par72Course()
	gap.Holes[17].Number = 19

	tests := []struct {
		name    string
		course  Course
		wantErr error
	}{
		{name: "valid", course: valid},
		{name: "no holes", course: Course{Name: "empty"}, wantErr: ErrInvalidCourse},
		{name: "duplicate stroke index", course: dupIndex, wantErr: ErrInvalidCourse},
		{name: "par out of range", course: badPar, wantErr: ErrInvalidCourse},
		{name: "hole number gap", course: gap, wantErr: ErrInvalidCourse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCourse(tt.course)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name    string
		players []Player
		mode    GameMode
		wantErr bool
	}{
		{name: "single individual", players: roster(12), mode: ModeIndividual},
		{name: "empty", players: nil, mode: ModeIndividual, wantErr: true},
		{name: "blank name", players: []Player{{ID: "a", Name: "  "}}, mode: ModeIndividual, wantErr: true},
		{name: "missing id", players: []Player{{Name: "Ann"}}, mode: ModeIndividual, wantErr: true},
		{name: "duplicate id", players: []Player{{ID: "a", Name: "Ann"}, {ID: "a", Name: "Bob"}}, mode: ModeIndividual, wantErr: true},
		{name: "handicap too high", players: roster(55), mode: ModeIndividual, wantErr: true},
		{name: "negative handicap", players: roster(-1), mode: ModeIndividual, wantErr: true},
		{name: "betterball odd", players: roster(1, 2, 3), mode: ModeBetterball, wantErr: true},
		{name: "betterball pair", players: roster(1, 2), mode: ModeBetterball},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoster(tt.players, tt.mode)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRoster)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRoundLength(t *testing.T) {
	full := par72Course()
	nine := Course{Holes: full.Holes[:9]}

	assert.NoError(t, ValidateRoundLength(9, full))
	assert.NoError(t, ValidateRoundLength(18, full))
	assert.NoError(t, ValidateRoundLength(9, nine))
	assert.ErrorIs(t, ValidateRoundLength(18, nine), ErrInvalidRoundLength)
	assert.ErrorIs(t, ValidateRoundLength(12, full), ErrInvalidRoundLength)
	assert.ErrorIs(t, ValidateRoundLength(0, full), ErrInvalidRoundLength)
}

func TestValidateModeAndStrokes(t *testing.T) {
	assert.NoError(t, ValidateMode(ModeIndividual))
	assert.NoError(t, ValidateMode(ModeBetterball))
	assert.True(t, errors.Is(ValidateMode("skins"), ErrInvalidMode))

	assert.NoError(t, ValidateStrokes(1))
	assert.ErrorIs(t, ValidateStrokes(0), ErrInvalidStrokes)
	assert.ErrorIs(t, ValidateStrokes(-3), ErrInvalidStrokes)
}

func TestNormalizeHandicap(t *testing.T) {
	assert.Equal(t, 0, NormalizeHandicap(-4, MaxHandicap))
	assert.Equal(t, 18, NormalizeHandicap(18, MaxHandicap))
	assert.Equal(t, 36, NormalizeHandicap(40, 36))
	assert.Equal(t, 60, NormalizeHandicap(60, 0))
}
