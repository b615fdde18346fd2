package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	courseservice "github.com/Black-And-White-Club/golf-stableford/app/modules/course/application"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

func newSummarizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "summarize",
		Usage: "score a round described in YAML and print its summary as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "round YAML file, - for stdin",
				Value:   "-",
			},
		},
		Action: func(c *cli.Context) error {
			in := io.Reader(os.Stdin)
			if path := c.String("file"); path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open round file: %w", err)
				}
				defer f.Close()
				in = f
			}
			return summarize(in, c.App.Writer, time.Now().UTC())
		},
	}
}

// summarize reads a round, derives points from strokes and writes the ranked summary.
// A course given only by id is resolved against the built-in courses. Betterball teams
// from the file must partition the roster; without them consecutive players are paired.
func summarize(in io.Reader, out io.Writer, completedAt time.Time) error {
	var round scoringdomain.Round
	if err := yaml.NewDecoder(in).Decode(&round); err != nil {
		return fmt.Errorf("failed to decode round: %w", err)
	}

	if len(round.Course.Holes) == 0 && round.Course.ID != "" {
		found := false
		for _, c := range courseservice.BuiltInCourses() {
			if c.ID == round.Course.ID {
				round.Course, found = c, true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown course %q", round.Course.ID)
		}
	}
	if round.RoundLength == 0 {
		round.RoundLength = round.Course.HoleCount()
	}

	if err := scoringdomain.ValidateCourse(round.Course); err != nil {
		return err
	}
	if err := scoringdomain.ValidateMode(round.Mode); err != nil {
		return err
	}
	if err := scoringdomain.ValidateRoster(round.Players, round.Mode); err != nil {
		return err
	}
	if err := scoringdomain.ValidateRoundLength(round.RoundLength, round.Course); err != nil {
		return err
	}
	for _, s := range round.Scores {
		if err := scoringdomain.ValidateStrokes(s.Strokes); err != nil {
			return fmt.Errorf("player %q hole %d: %w", s.PlayerID, s.HoleNumber, err)
		}
	}
	switch {
	case round.Mode != scoringdomain.ModeBetterball:
		round.Teams = nil
	case len(round.Teams) == 0:
		teams, err := scoringdomain.FormTeams(round.Players)
		if err != nil {
			return err
		}
		round.Teams = teams
	default:
		if err := scoringdomain.ValidateTeams(round.Teams, round.Players); err != nil {
			return err
		}
	}

	summary := scoringdomain.BuildRoundSummary(scoringdomain.Rescore(round), completedAt)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
