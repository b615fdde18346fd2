package scorecardservice

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the flat scorecard export.
func WriteCSV(w io.Writer, sc Scorecard) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(sc.Grid()); err != nil {
		return fmt.Errorf("failed to write scorecard csv: %w", err)
	}
	return nil
}
