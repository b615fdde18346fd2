package scoringdomain

// PointsVariant selects whether handicap strokes are allocated when computing points.
// It is fixed for the lifetime of a round.
type PointsVariant string

const (
	// VariantHandicap allocates handicap strokes by stroke index before scoring.
	VariantHandicap PointsVariant = "handicap"
	// VariantGross scores raw strokes against par.
	VariantGross PointsVariant = "gross"
)

// Valid reports whether v is a known variant.
func (v PointsVariant) Valid() bool {
	return v == VariantHandicap || v == VariantGross
}

// Points returns the Stableford points for a hole under this variant.
func (v PointsVariant) Points(strokes, par, handicap, strokeIndex, holeCount int) int {
	if v == VariantGross {
		return pointsForNetToPar(strokes, strokes-par)
	}
	return PointsForHole(strokes, par, handicap, strokeIndex, holeCount)
}

// StrokesReceived returns the extra strokes a player gets on a hole. holeCount is the
// full course length, since stroke indices are defined against the whole course.
func StrokesReceived(handicap, strokeIndex, holeCount int) int {
	if handicap <= 0 || holeCount <= 0 {
		return 0
	}
	received := handicap / holeCount
	if handicap%holeCount >= strokeIndex {
		received++
	}
	return received
}

// PointsForHole scores a hole with handicap allocation. Zero strokes means unscored.
func PointsForHole(strokes, par, handicap, strokeIndex, holeCount int) int {
	received := StrokesReceived(handicap, strokeIndex, holeCount)
	return pointsForNetToPar(strokes, strokes-received-par)
}

func pointsForNetToPar(strokes, netToPar int) int {
	if strokes == 0 {
		return 0
	}
	switch {
	case netToPar <= -2:
		return 4
	case netToPar == -1:
		return 3
	case netToPar == 0:
		return 2
	case netToPar == 1:
		return 1
	default:
		return 0
	}
}

// ScoreCategory labels a score relative to par.
type ScoreCategory string

const (
	CategoryEagleOrBetter      ScoreCategory = "eagle_or_better"
	CategoryBirdie             ScoreCategory = "birdie"
	CategoryPar                ScoreCategory = "par"
	CategoryBogey              ScoreCategory = "bogey"
	CategoryDoubleBogeyOrWorse ScoreCategory = "double_bogey_or_worse"
)

// ClassifyScoreToPar buckets strokes minus par.
func ClassifyScoreToPar(diff int) ScoreCategory {
	switch {
	case diff <= -2:
		return CategoryEagleOrBetter
	case diff == -1:
		return CategoryBirdie
	case diff == 0:
		return CategoryPar
	case diff == 1:
		return CategoryBogey
	default:
		return CategoryDoubleBogeyOrWorse
	}
}

func (c *CategoryCounts) add(cat ScoreCategory) {
	switch cat {
	case CategoryEagleOrBetter:
		c.EaglesOrBetter++
	case CategoryBirdie:
		c.Birdies++
	case CategoryPar:
		c.Pars++
	case CategoryBogey:
		c.Bogeys++
	default:
		c.DoubleBogeysOrWorse++
	}
}
