package scoringdomain

import "time"

// GameMode selects how a round is contested.
type GameMode string

const (
	ModeIndividual GameMode = "individual"
	ModeBetterball GameMode = "betterball"
)

// Distance is a hole's length in yards from the men's and women's tees.
type Distance struct {
	Men   int `json:"men" yaml:"men"`
	Women int `json:"women" yaml:"women"`
}

// Hole is a single hole of a course. StrokeIndex ranks holes by difficulty, 1 being hardest.
type Hole struct {
	Number      int      `json:"number" yaml:"number"`
	Par         int      `json:"par" yaml:"par"`
	StrokeIndex int      `json:"stroke_index" yaml:"stroke_index"`
	Distance    Distance `json:"distance" yaml:"distance"`
}

// Course is an ordered set of holes.
type Course struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location" yaml:"location"`
	Holes    []Hole `json:"holes" yaml:"holes"`
}

// Par returns the course par over all holes.
func (c Course) Par() int {
	total := 0
	for _, h := range c.Holes {
		total += h.Par
	}
	return total
}

// HoleCount is the number of holes on the full course.
func (c Course) HoleCount() int {
	return len(c.Holes)
}

// Hole returns the hole with the given number.
func (c Course) Hole(number int) (Hole, bool) {
	for _, h := range c.Holes {
		if h.Number == number {
			return h, true
		}
	}
	return Hole{}, false
}

// Player is a golfer in a round.
type Player struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Handicap int    `json:"handicap" yaml:"handicap"`
}

// Team pairs two players for betterball.
type Team struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Players [2]Player `json:"players" yaml:"players"`
}

// Score is one player's result on one hole. Points is always derived from Strokes.
type Score struct {
	PlayerID   string `json:"player_id" yaml:"player_id"`
	HoleNumber int    `json:"hole_number" yaml:"hole_number"`
	Strokes    int    `json:"strokes" yaml:"strokes"`
	Points     int    `json:"points" yaml:"points"`
}

// Round is everything the engine needs to score a game.
type Round struct {
	ID          string        `json:"id" yaml:"id"`
	Course      Course        `json:"course" yaml:"course"`
	Players     []Player      `json:"players" yaml:"players"`
	Teams       []Team        `json:"teams,omitempty" yaml:"teams,omitempty"`
	Mode        GameMode      `json:"mode" yaml:"mode"`
	Variant     PointsVariant `json:"variant" yaml:"variant"`
	RoundLength int           `json:"round_length" yaml:"round_length"`
	Scores      []Score       `json:"scores" yaml:"scores"`
	CurrentHole int           `json:"current_hole" yaml:"current_hole"`
	StartedAt   time.Time     `json:"started_at" yaml:"started_at"`
}

// Player looks up a roster entry by id.
func (r Round) Player(id string) (Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// HoleScore is a player's recorded strokes and points on a hole.
type HoleScore struct {
	Strokes int `json:"strokes"`
	Points  int `json:"points"`
}

// CategoryCounts tallies gross score-to-par results.
type CategoryCounts struct {
	EaglesOrBetter      int `json:"eagles_or_better"`
	Birdies             int `json:"birdies"`
	Pars                int `json:"pars"`
	Bogeys              int `json:"bogeys"`
	DoubleBogeysOrWorse int `json:"double_bogeys_or_worse"`
}

// PlayerSummary is a derived per-player result. Rank is 0 until RankPlayers runs.
type PlayerSummary struct {
	Player       Player            `json:"player"`
	TotalStrokes int               `json:"total_strokes"`
	TotalPoints  int               `json:"total_points"`
	NetStrokes   int               `json:"net_strokes"`
	HolesPlayed  int               `json:"holes_played"`
	Categories   CategoryCounts    `json:"categories"`
	HoleScores   map[int]HoleScore `json:"hole_scores"`
	Rank         int               `json:"rank"`
}

// TeamSummary is a derived best-ball result.
type TeamSummary struct {
	Team        Team        `json:"team"`
	TotalPoints int         `json:"total_points"`
	HoleResults map[int]int `json:"hole_results"`
	Rank        int         `json:"rank"`
}

// RoundSummary is the terminal snapshot of a round.
type RoundSummary struct {
	RoundID     string          `json:"round_id"`
	CourseName  string          `json:"course_name"`
	Mode        GameMode        `json:"mode"`
	Variant     PointsVariant   `json:"variant"`
	RoundLength int             `json:"round_length"`
	Players     []PlayerSummary `json:"players"`
	Teams       []TeamSummary   `json:"teams,omitempty"`
	Winner      string          `json:"winner"`
	WinningTeam string          `json:"winning_team,omitempty"`
	CompletedAt time.Time       `json:"completed_at"`
}
