package lvimport

import (
	"fmt"
	"strings"

	"kolonnen-backend/internal/numbers"
)

// LVRow is one accepted bill-of-quantities line.
type LVRow struct {
	PositionsID string  `json:"positions_id"`
	Kurztext    string  `json:"kurztext"`
	Einheit     string  `json:"einheit"`
	EP          float64 `json:"ep"`
	Kategorie   string  `json:"kategorie,omitempty"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError is one row-level diagnostic. Row numbers are
// 1-based spreadsheet rows (the header is row 1); row 0 marks a
// mapping problem that precedes row processing.
type ValidationError struct {
	Row      int    `json:"row"`
	Column   string `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ImportResult is the complete outcome of a validation run. Errors
// exclude their row from Rows; warnings do not.
type ImportResult struct {
	Rows      []LVRow           `json:"rows"`
	Errors    []ValidationError `json:"errors"`
	Warnings  []ValidationError `json:"warnings"`
	TotalRows int               `json:"totalRows"`
	ValidRows int               `json:"validRows"`
}

// Options tunes a validation run.
type Options struct {
	// GenerateAutoIDs synthesizes AUTO-0001, AUTO-0002, ... for rows
	// with an empty Positions-ID instead of rejecting them.
	GenerateAutoIDs bool
}

// ValidateAndTransform turns raw rows into typed LV rows under the
// given column mapping. An incomplete mapping short-circuits with one
// error per missing header; everything else is per-row and the
// function always returns a full report.
func ValidateAndTransform(rawData [][]Cell, mapping ColumnMapping, opts Options) ImportResult {
	result := ImportResult{
		Rows:      []LVRow{},
		Errors:    []ValidationError{},
		Warnings:  []ValidationError{},
		TotalRows: len(rawData),
	}

	validation := ValidateMapping(mapping)
	if !validation.Valid {
		for _, field := range validation.Missing {
			result.Errors = append(result.Errors, ValidationError{
				Row:      0,
				Column:   string(field),
				Message:  fmt.Sprintf("Pflichtfeld %q ist nicht zugeordnet", string(field)),
				Severity: SeverityError,
			})
		}
		return result
	}

	seenIDs := make(map[string]struct{})
	autoIDCounter := 1

	for i, row := range rawData {
		// spreadsheet row number: 1-indexed plus the header row
		rowNum := i + 2

		if blankRow(row) {
			continue
		}

		hasError := false
		fail := func(column CanonicalHeader, message string) {
			result.Errors = append(result.Errors, ValidationError{
				Row: rowNum, Column: string(column), Message: message, Severity: SeverityError,
			})
			hasError = true
		}

		positionID := cellText(row, mapping[HeaderPositionsID])
		kurztext := cellText(row, mapping[HeaderKurztext])
		einheit := cellText(row, mapping[HeaderEinheit])
		epCell := cellAt(row, mapping[HeaderEP])
		ep := epCell.number()

		var kategorie string
		if index, ok := mapping[HeaderKategorie]; ok {
			kategorie = cellText(row, index)
		}

		if positionID == "" && opts.GenerateAutoIDs {
			positionID = fmt.Sprintf("AUTO-%04d", autoIDCounter)
			autoIDCounter++
		}

		switch {
		case positionID == "":
			fail(HeaderPositionsID, "Positions-ID ist leer")
		default:
			if _, dup := seenIDs[positionID]; dup {
				fail(HeaderPositionsID, fmt.Sprintf("Doppelte Positions-ID: %q", positionID))
			} else {
				seenIDs[positionID] = struct{}{}
			}
		}

		if kurztext == "" {
			fail(HeaderKurztext, "Kurztext ist leer")
		}

		if einheit == "" {
			fail(HeaderEinheit, "Einheit ist leer")
		} else if !isKnownUnit(einheit) {
			result.Warnings = append(result.Warnings, ValidationError{
				Row:      rowNum,
				Column:   string(HeaderEinheit),
				Message:  fmt.Sprintf("Unbekannte Einheit: %q", einheit),
				Severity: SeverityWarning,
			})
		}

		if !numbers.IsValidEP(ep) {
			message := "EP ist leer oder nicht numerisch"
			if ep != nil {
				message = fmt.Sprintf("Ungültiger EP-Wert: %q", epCell.Text())
			}
			fail(HeaderEP, message)
		}

		if !hasError && ep != nil {
			result.Rows = append(result.Rows, LVRow{
				PositionsID: positionID,
				Kurztext:    kurztext,
				Einheit:     einheit,
				EP:          *ep,
				Kategorie:   kategorie,
			})
		}
	}

	result.ValidRows = len(result.Rows)
	return result
}

func blankRow(row []Cell) bool {
	for _, cell := range row {
		if !cell.Empty() {
			return false
		}
	}
	return true
}

func cellAt(row []Cell, index int) Cell {
	if index < 0 || index >= len(row) {
		return Cell{}
	}
	return row[index]
}

func cellText(row []Cell, index int) string {
	return strings.TrimSpace(cellAt(row, index).Text())
}
