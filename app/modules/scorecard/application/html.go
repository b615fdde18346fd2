package scorecardservice

import (
	"fmt"
	"html/template"
	"io"
)

var scorecardTemplate = template.Must(template.New("scorecard").Funcs(template.FuncMap{
	"strokes": Strokes,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.CourseName}} scorecard {{.Date}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #444; padding: 0.25em 0.6em; text-align: center; }
tr.total td, tr.points td { font-weight: bold; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1 class="course">{{.CourseName}}</h1>
<p class="meta"><span class="date">{{.Date}}</span> · <span class="mode">{{.Mode}}</span></p>
<table class="scorecard">
<thead><tr><th>Hole</th><th>Par</th><th>S.I.</th>{{range .Players}}<th class="player">{{.Player.Name}}</th>{{end}}</tr></thead>
<tbody>
{{- $players := .Players}}
{{range .Holes}}{{$n := .Number}}<tr class="hole"><td>{{.Number}}</td><td>{{.Par}}</td><td>{{.StrokeIndex}}</td>{{range $players}}<td>{{strokes . $n}}</td>{{end}}</tr>
{{end -}}
<tr class="total"><td>TOTAL</td><td></td><td></td>{{range .Players}}<td>{{.TotalStrokes}}</td>{{end}}</tr>
<tr class="points"><td>POINTS</td><td></td><td></td>{{range .Players}}<td>{{.TotalPoints}}</td>{{end}}</tr>
</tbody>
</table>
<h2>Standings</h2>
<table class="standings">
<thead><tr><th>Rank</th><th>Player</th><th>Handicap</th><th>Strokes</th><th>Net</th><th>Points</th></tr></thead>
<tbody>
{{range .Standings}}<tr class="standing"><td>{{.Rank}}</td><td>{{.Player.Name}}</td><td>{{.Player.Handicap}}</td><td>{{.TotalStrokes}}</td><td>{{.NetStrokes}}</td><td>{{.TotalPoints}}</td></tr>
{{end -}}
</tbody>
</table>
{{if .Teams}}<h2>Teams</h2>
<table class="teams">
<thead><tr><th>Rank</th><th>Team</th><th>Players</th><th>Points</th></tr></thead>
<tbody>
{{range .Teams}}<tr class="team"><td>{{.Rank}}</td><td>{{.Team.Name}}</td><td>{{(index .Team.Players 0).Name}} &amp; {{(index .Team.Players 1).Name}}</td><td>{{.TotalPoints}}</td></tr>
{{end -}}
</tbody>
</table>
{{end}}<p class="winner">Winner: {{.Winner}}{{if .Winning}} · Winning team: {{.Winning}}{{end}}</p>
</body>
</html>
`))

// WriteHTML renders the printable scorecard.
func WriteHTML(w io.Writer, sc Scorecard) error {
	if err := scorecardTemplate.Execute(w, sc); err != nil {
		return fmt.Errorf("failed to render scorecard html: %w", err)
	}
	return nil
}
