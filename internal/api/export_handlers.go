package api

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/models"
)

const (
	breakdownSheet  = "Sheet1"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// buildBreakdownWorkbook lays the wide form out as a sheet: a header row of
// item labels, one row per stage, then the "All" row.
func buildBreakdownWorkbook(rows []models.BreakdownRow) (*excelize.File, error) {
	f := excelize.NewFile()

	header := []any{"Stage"}
	for _, item := range models.Items {
		header = append(header, item.Label())
	}
	if err := f.SetSheetRow(breakdownSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range rows {
		values := []any{row.Stage}
		for _, item := range models.Items {
			values = append(values, row.Counts[item.Label()])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(breakdownSheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(breakdownSheet, "A1", lastHeader, bold); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (s *Server) handleBreakdownExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	breakdown, err := s.DashboardService.Breakdown(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	f, err := buildBreakdownWorkbook(breakdown.Wide)
	if err != nil {
		handleError(w, r, errors.NewInternalError(fmt.Errorf("build workbook: %w", err)))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="breakdown.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error("failed to write workbook: %v", err)
	}
}
