package tasks

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ExportColumns is the fixed column order of ExportCSV.
var ExportColumns = []string{
	"Id", "Title", "Description", "DueDate", "Status", "Project", "Priority", "Tags", "Recurrence",
}

// ExportCSV writes a header row and one row per task. Tags are joined with
// ";". Fields containing a comma, quote or newline are quoted with doubled
// inner quotes.
func ExportCSV(w io.Writer, list []Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, t := range list {
		row := []string{
			t.ID,
			t.Title,
			t.Description,
			t.DueDate.String(),
			string(t.Status),
			t.Project,
			string(t.Priority),
			strings.Join(t.Tags, ";"),
			string(t.Recurrence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing task %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
