package scorecardservice

import (
	"strconv"
	"time"

	archivedb "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// Scorecard is the printable view of an archived round. Every number comes from the
// stored summary.
type Scorecard struct {
	CourseName string
	Date       string
	Mode       string
	Players    []scoringdomain.PlayerSummary // roster order
	Holes      []scoringdomain.Hole          // holes within the round length
	Standings  []scoringdomain.PlayerSummary // ranked
	Teams      []scoringdomain.TeamSummary
	Winner     string
	Winning    string
}

// NewScorecard builds the view for a saved round.
func NewScorecard(saved archivedb.SavedRound) Scorecard {
	byID := make(map[string]scoringdomain.PlayerSummary, len(saved.Summary.Players))
	for _, ps := range saved.Summary.Players {
		byID[ps.Player.ID] = ps
	}

	players := make([]scoringdomain.PlayerSummary, 0, len(saved.Round.Players))
	for _, p := range saved.Round.Players {
		ps, ok := byID[p.ID]
		if !ok {
			ps = scoringdomain.PlayerSummary{Player: p}
		}
		players = append(players, ps)
	}

	holes := make([]scoringdomain.Hole, 0, saved.Summary.RoundLength)
	for n := 1; n <= saved.Summary.RoundLength; n++ {
		if h, ok := saved.Round.Course.Hole(n); ok {
			holes = append(holes, h)
		}
	}

	date := saved.CompletedAt
	if date.IsZero() {
		date = saved.Round.StartedAt
	}

	return Scorecard{
		CourseName: saved.Summary.CourseName,
		Date:       date.Format(time.DateOnly),
		Mode:       modeLabel(saved.Summary.Mode),
		Players:    players,
		Holes:      holes,
		Standings:  saved.Summary.Players,
		Teams:      saved.Summary.Teams,
		Winner:     saved.Summary.Winner,
		Winning:    saved.Summary.WinningTeam,
	}
}

func modeLabel(mode scoringdomain.GameMode) string {
	if mode == scoringdomain.ModeBetterball {
		return "Betterball"
	}
	return "Individual"
}

// Strokes returns the cell for a player's hole: the strokes, or empty when unscored.
func Strokes(ps scoringdomain.PlayerSummary, hole int) string {
	if hs, ok := ps.HoleScores[hole]; ok && hs.Strokes > 0 {
		return strconv.Itoa(hs.Strokes)
	}
	return ""
}

// Grid lays the scorecard out as rows: a header block, a blank row, the hole table and
// the TOTAL and POINTS rows. CSV and XLSX exports share it.
func (sc Scorecard) Grid() [][]string {
	rows := [][]string{
		{"Course", sc.CourseName},
		{"Date", sc.Date},
		{"Mode", sc.Mode},
		{},
	}

	header := []string{"Hole", "Par", "S.I."}
	for _, ps := range sc.Players {
		header = append(header, ps.Player.Name)
	}
	rows = append(rows, header)

	for _, h := range sc.Holes {
		row := []string{strconv.Itoa(h.Number), strconv.Itoa(h.Par), strconv.Itoa(h.StrokeIndex)}
		for _, ps := range sc.Players {
			row = append(row, Strokes(ps, h.Number))
		}
		rows = append(rows, row)
	}

	total := []string{"TOTAL", "", ""}
	points := []string{"POINTS", "", ""}
	for _, ps := range sc.Players {
		total = append(total, strconv.Itoa(ps.TotalStrokes))
		points = append(points, strconv.Itoa(ps.TotalPoints))
	}
	return append(rows, total, points)
}
