// Package export writes activity history to spreadsheet files.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/plantpal/internal/models"
)

const HistorySheet = "History"

// HistoryHeaders are the column titles of an exported history sheet
var HistoryHeaders = []string{"Time", "Activity", "Note", "Value", "Growth Impact"}

// WriteHistory writes logs to an xlsx file at path, one row per log in the given order
func WriteHistory(path string, logs []models.ActivityLog, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range HistoryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(HistorySheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for r, l := range logs {
		row := []any{
			l.CreatedAt.In(loc).Format(time.RFC3339),
			string(l.ActivityType),
			l.Note,
			l.Value,
			l.GrowthImpact,
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
