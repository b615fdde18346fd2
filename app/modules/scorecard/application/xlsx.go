package scorecardservice

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	scorecardSheet = "Scorecard"
	standingsSheet = "Standings"
)

// RenderXLSX builds a workbook with the scorecard grid and the standings.
func RenderXLSX(sc Scorecard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), scorecardSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeRows(f, scorecardSheet, gridCells(sc.Grid())); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(standingsSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := writeRows(f, standingsSheet, standingsRows(sc)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func standingsRows(sc Scorecard) [][]any {
	rows := [][]any{{"Rank", "Player", "Handicap", "Strokes", "Net", "Points", "Holes"}}
	for _, ps := range sc.Standings {
		rows = append(rows, []any{ps.Rank, ps.Player.Name, ps.Player.Handicap, ps.TotalStrokes, ps.NetStrokes, ps.TotalPoints, ps.HolesPlayed})
	}
	if len(sc.Teams) > 0 {
		rows = append(rows, []any{}, []any{"Rank", "Team", "Players", "Points"})
		for _, ts := range sc.Teams {
			names := ts.Team.Players[0].Name + " & " + ts.Team.Players[1].Name
			rows = append(rows, []any{ts.Rank, ts.Team.Name, names, ts.TotalPoints})
		}
	}
	return rows
}

// gridCells converts grid text to cells, writing numbers where the text parses as one.
func gridCells(grid [][]string) [][]any {
	rows := make([][]any, len(grid))
	for i, row := range grid {
		rows[i] = make([]any, len(row))
		for j, v := range row {
			if n, err := strconv.Atoi(v); err == nil {
				rows[i][j] = n
			} else {
				rows[i][j] = v
			}
		}
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for idx, row := range rows {
		if len(row) == 0 {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}
