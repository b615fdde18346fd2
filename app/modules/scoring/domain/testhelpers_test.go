package scoringdomain

import "fmt"

// par72Course has ten par 4s, four par 3s and four par 5s. Stroke indices are shifted so
// that hole 1 is stroke index 10.
func par72Course() Course {
	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 4, 3, 5, 4, 4, 3, 4, 5}
	holes := make([]Hole, len(pars))
	for i, par := range pars {
		holes[i] = Hole{
			Number:      i + 1,
			Par:         par,
			StrokeIndex: (i+9)%18 + 1,
			Distance:    Distance{Men: 350, Women: 300},
		}
	}
	return Course{ID: "test", Name: "Test Links", Location: "Nowhere", Holes: holes}
}

func roster(handicaps ...int) []Player {
	players := make([]Player, len(handicaps))
	for i, h := range handicaps {
		players[i] = Player{ID: fmt.Sprintf("p%d", i+1), Name: fmt.Sprintf("Player %d", i+1), Handicap: h}
	}
	return players
}

func scored(course Course, p Player, variant PointsVariant, hole, strokes int) Score {
	h, _ := course.Hole(hole)
	return Score{
		PlayerID:   p.ID,
		HoleNumber: hole,
		Strokes:    strokes,
		Points:     variant.Points(strokes, h.Par, p.Handicap, h.StrokeIndex, course.HoleCount()),
	}
}
