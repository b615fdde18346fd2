package scorecardservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []drawing.Color{
	drawing.ColorFromHex("1b5e20"),
	drawing.ColorFromHex("c62828"),
	drawing.ColorFromHex("1565c0"),
	drawing.ColorFromHex("f9a825"),
	drawing.ColorFromHex("6a1b9a"),
	drawing.ColorFromHex("00838f"),
}

// CumulativePoints returns each roster player's running points total, hole by hole.
func CumulativePoints(sc Scorecard) [][]float64 {
	out := make([][]float64, len(sc.Players))
	for i, ps := range sc.Players {
		running := 0
		values := make([]float64, len(sc.Holes))
		for j, h := range sc.Holes {
			running += ps.HoleScores[h.Number].Points
			values[j] = float64(running)
		}
		out[i] = values
	}
	return out
}

// RenderPointsChart draws cumulative points per player as a PNG line chart.
func RenderPointsChart(sc Scorecard) ([]byte, error) {
	if len(sc.Players) == 0 || len(sc.Holes) == 0 {
		return nil, fmt.Errorf("scorecard has no players or holes to chart")
	}

	xValues := make([]float64, len(sc.Holes))
	for i, h := range sc.Holes {
		xValues[i] = float64(h.Number)
	}

	maxPoints := 1.0
	cumulative := CumulativePoints(sc)
	series := make([]chart.Series, 0, len(sc.Players))
	for i, ps := range sc.Players {
		values := cumulative[i]
		if last := values[len(values)-1]; last > maxPoints {
			maxPoints = last
		}
		color := seriesColors[i%len(seriesColors)]
		series = append(series, chart.ContinuousSeries{
			Name:    ps.Player.Name,
			XValues: xValues,
			YValues: values,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}

	graph := chart.Chart{
		Title:  sc.CourseName + " " + sc.Date,
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Hole",
			Range: &chart.ContinuousRange{Min: xValues[0], Max: xValues[len(xValues)-1] + 0.5},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "Points",
			Range: &chart.ContinuousRange{Min: 0, Max: maxPoints + 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render points chart: %w", err)
	}
	return buffer.Bytes(), nil
}
