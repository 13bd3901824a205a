package lvimport

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	TemplateSheetName = "LV-Vorlage"
	TemplateFileName  = "LV-Vorlage"
)

var templateExampleRow = []interface{}{"POS-001", "Beispiel Leistung", "m²", 12.50, "Erdarbeiten"}

// GenerateTemplateCSV renders the canonical-header CSV template with
// one example row, semicolon-delimited as German tooling expects.
func GenerateTemplateCSV() string {
	headers := make([]string, len(AllHeaders))
	for i, header := range AllHeaders {
		headers[i] = string(header)
	}
	return strings.Join(headers, ";") + "\nPOS-001;Beispiel Leistung;m²;12,50;Erdarbeiten"
}

// GenerateTemplateExcel renders the same template as a styled XLSX
// workbook.
func GenerateTemplateExcel() ([]byte, error) {
	const op = "lvimport.GenerateTemplateExcel"

	workbook := excelize.NewFile()
	defer workbook.Close()
	workbook.SetSheetName("Sheet1", TemplateSheetName)

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, header := range AllHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		workbook.SetCellValue(TemplateSheetName, cell, string(header))
	}
	for i, value := range templateExampleRow {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		workbook.SetCellValue(TemplateSheetName, cell, value)
	}

	lastColumn, _ := excelize.CoordinatesToCellName(len(AllHeaders), 1)
	workbook.SetCellStyle(TemplateSheetName, "A1", lastColumn, headerStyle)
	workbook.SetColWidth(TemplateSheetName, "A", "E", 18)

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buffer.Bytes(), nil
}
