package scoringdomain

import (
	"cmp"
	"slices"
	"time"
)

type scoreKey struct {
	playerID string
	hole     int
}

func indexScores(scores []Score) map[scoreKey]Score {
	idx := make(map[scoreKey]Score, len(scores))
	for _, s := range scores {
		idx[scoreKey{s.PlayerID, s.HoleNumber}] = s
	}
	return idx
}

// UpsertScore records s, replacing any existing score for the same player and hole.
// The input slice is not modified.
func UpsertScore(scores []Score, s Score) []Score {
	out := make([]Score, 0, len(scores)+1)
	replaced := false
	for _, existing := range scores {
		if existing.PlayerID == s.PlayerID && existing.HoleNumber == s.HoleNumber {
			if !replaced {
				out = append(out, s)
				replaced = true
			}
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, s)
	}
	return out
}

// SummarizePlayer totals a player's recorded scores over the first roundLength holes.
// Holes without a score are skipped. Categories use gross strokes against par.
func SummarizePlayer(player Player, course Course, scores []Score, roundLength int) PlayerSummary {
	return summarizePlayer(player, course, indexScores(scores), roundLength)
}

func summarizePlayer(player Player, course Course, idx map[scoreKey]Score, roundLength int) PlayerSummary {
	summary := PlayerSummary{
		Player:     player,
		HoleScores: make(map[int]HoleScore),
	}
	holeCount := course.HoleCount()
	for number := 1; number <= roundLength; number++ {
		hole, ok := course.Hole(number)
		if !ok {
			continue
		}
		s, ok := idx[scoreKey{player.ID, number}]
		if !ok || s.Strokes <= 0 {
			continue
		}
		summary.TotalStrokes += s.Strokes
		summary.TotalPoints += s.Points
		summary.NetStrokes += s.Strokes - StrokesReceived(player.Handicap, hole.StrokeIndex, holeCount)
		summary.HolesPlayed++
		summary.HoleScores[number] = HoleScore{Strokes: s.Strokes, Points: s.Points}
		summary.Categories.add(ClassifyScoreToPar(s.Strokes - hole.Par))
	}
	return summary
}

// RankPlayers orders summaries by total points, best first, and assigns positional
// ranks. Equal totals keep their input order.
func RankPlayers(summaries []PlayerSummary) []PlayerSummary {
	ranked := slices.Clone(summaries)
	slices.SortStableFunc(ranked, func(a, b PlayerSummary) int {
		return cmp.Compare(b.TotalPoints, a.TotalPoints)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// SummarizeTeam computes best-ball points: on each hole the team takes the better of its
// members' points, with a missing score counting as zero.
func SummarizeTeam(team Team, course Course, scores []Score, roundLength int) TeamSummary {
	return summarizeTeam(team, course, indexScores(scores), roundLength)
}

func summarizeTeam(team Team, course Course, idx map[scoreKey]Score, roundLength int) TeamSummary {
	summary := TeamSummary{
		Team:        team,
		HoleResults: make(map[int]int),
	}
	for number := 1; number <= roundLength; number++ {
		if _, ok := course.Hole(number); !ok {
			continue
		}
		best := 0
		for _, p := range team.Players {
			if s, ok := idx[scoreKey{p.ID, number}]; ok && s.Points > best {
				best = s.Points
			}
		}
		summary.HoleResults[number] = best
		summary.TotalPoints += best
	}
	return summary
}

// RankTeams applies the same stable descending ranking as RankPlayers.
func RankTeams(summaries []TeamSummary) []TeamSummary {
	ranked := slices.Clone(summaries)
	slices.SortStableFunc(ranked, func(a, b TeamSummary) int {
		return cmp.Compare(b.TotalPoints, a.TotalPoints)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// BuildRoundSummary replays every recorded score into a ranked snapshot.
func BuildRoundSummary(round Round, completedAt time.Time) RoundSummary {
	idx := indexScores(round.Scores)

	players := make([]PlayerSummary, 0, len(round.Players))
	for _, p := range round.Players {
		players = append(players, summarizePlayer(p, round.Course, idx, round.RoundLength))
	}

	summary := RoundSummary{
		RoundID:     round.ID,
		CourseName:  round.Course.Name,
		Mode:        round.Mode,
		Variant:     round.Variant,
		RoundLength: round.RoundLength,
		Players:     RankPlayers(players),
		CompletedAt: completedAt,
	}
	if len(summary.Players) > 0 {
		summary.Winner = summary.Players[0].Player.Name
	}

	if round.Mode == ModeBetterball {
		teams := make([]TeamSummary, 0, len(round.Teams))
		for _, t := range round.Teams {
			teams = append(teams, summarizeTeam(t, round.Course, idx, round.RoundLength))
		}
		summary.Teams = RankTeams(teams)
		if len(summary.Teams) > 0 {
			summary.WinningTeam = summary.Teams[0].Team.Name
		}
	}

	return summary
}

// Rescore derives every score's points from its strokes. Scores for players outside the
// roster or holes outside the course are dropped. A later score for the same player and
// hole replaces the earlier one in place, as UpsertScore does.
func Rescore(round Round) Round {
	variant := round.Variant
	if !variant.Valid() {
		variant = VariantHandicap
	}
	holeCount := round.Course.HoleCount()

	var scores []Score
	pos := make(map[scoreKey]int, len(round.Scores))
	for _, s := range round.Scores {
		player, ok := round.Player(s.PlayerID)
		if !ok {
			continue
		}
		hole, ok := round.Course.Hole(s.HoleNumber)
		if !ok {
			continue
		}
		s.Points = variant.Points(s.Strokes, hole.Par, player.Handicap, hole.StrokeIndex, holeCount)
		key := scoreKey{s.PlayerID, s.HoleNumber}
		if i, ok := pos[key]; ok {
			scores[i] = s
			continue
		}
		pos[key] = len(scores)
		scores = append(scores, s)
	}

	round.Variant = variant
	round.Scores = scores
	return round
}
