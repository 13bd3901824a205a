package lvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptyFile         = errors.New("file contains no rows")
	ErrEmptySheet        = errors.New("sheet contains no rows")
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx, .xls or .csv")
	ErrSheetNotFound     = errors.New("sheet not found")
)

const (
	FileTypeCSV   = "csv"
	FileTypeExcel = "excel"
)

// ParsedFile is the result of reading an upload: raw rows plus the
// proposed column mapping for the UI to confirm or adjust.
type ParsedFile struct {
	FileName      string        `json:"fileName"`
	FileSize      int64         `json:"fileSize"`
	FileType      string        `json:"fileType"`
	Sheets        []string      `json:"sheets"`
	SelectedSheet string        `json:"selectedSheet"`
	Headers       []string      `json:"headers"`
	RawData       [][]Cell      `json:"rawData"`
	Mapping       ColumnMapping `json:"mapping"`
	IsCanonical   bool          `json:"isCanonical"`
}

// ParseFile reads an uploaded CSV or Excel container. For Excel the
// first sheet is selected; use ParseSheet to read another one.
func ParseFile(fileName string, data []byte) (*ParsedFile, error) {
	const op = "lvimport.ParseFile"

	parsed := &ParsedFile{
		FileName: fileName,
		FileSize: int64(len(data)),
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		parsed.FileType = FileTypeCSV
		content, err := decodeText(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rows, err := parseCSV(content, DetectDelimiter(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(rows) == 0 {
			return nil, ErrEmptyFile
		}
		parsed.Sheets = []string{"CSV"}
		parsed.SelectedSheet = "CSV"
		parsed.Headers = cellTexts(rows[0])
		parsed.RawData = rows[1:]

	case ".xlsx", ".xls":
		parsed.FileType = FileTypeExcel
		workbook, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: open workbook: %w", op, err)
		}
		defer workbook.Close()

		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySheet
		}
		parsed.Sheets = sheets
		parsed.SelectedSheet = sheets[0]
		parsed.Headers, parsed.RawData, err = sheetRows(workbook, sheets[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

	default:
		return nil, ErrUnsupportedFormat
	}

	parsed.Mapping = AutoMapHeaders(parsed.Headers)
	parsed.IsCanonical = IsCanonicalSchema(parsed.Headers)
	return parsed, nil
}

// ParseSheet re-reads a specific sheet of an Excel upload, for
// workbooks where the LV is not on the first sheet.
func ParseSheet(fileName string, data []byte, sheetName string) (*ParsedFile, error) {
	const op = "lvimport.ParseSheet"

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", op, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if !slices.Contains(sheets, sheetName) {
		return nil, fmt.Errorf("%s: %q: %w", op, sheetName, ErrSheetNotFound)
	}

	parsed := &ParsedFile{
		FileName:      fileName,
		FileSize:      int64(len(data)),
		FileType:      FileTypeExcel,
		Sheets:        sheets,
		SelectedSheet: sheetName,
	}
	parsed.Headers, parsed.RawData, err = sheetRows(workbook, sheetName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	parsed.Mapping = AutoMapHeaders(parsed.Headers)
	parsed.IsCanonical = IsCanonicalSchema(parsed.Headers)
	return parsed, nil
}

func sheetRows(workbook *excelize.File, sheet string) ([]string, [][]Cell, error) {
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptySheet
	}

	headers := rows[0]
	rawData := make([][]Cell, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]Cell, len(row))
		for i, value := range row {
			cells[i] = StringCell(value)
		}
		rawData = append(rawData, cells)
	}
	return headers, rawData, nil
}

var csvDelimiters = []rune{';', ',', '\t'}

// DetectDelimiter picks the most frequent candidate delimiter in the
// first five lines. Semicolon wins ties, German exports default to it.
func DetectDelimiter(content string) rune {
	lines := strings.SplitN(content, "\n", 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}
	sample := strings.Join(lines, "\n")

	best := ';'
	bestCount := 0
	for _, delimiter := range csvDelimiters {
		if count := strings.Count(sample, string(delimiter)); count > bestCount {
			best, bestCount = delimiter, count
		}
	}
	return best
}

func parseCSV(content string, delimiter rune) ([][]Cell, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	rows := make([][]Cell, 0, len(records))
	for _, record := range records {
		cells := make([]Cell, len(record))
		blank := true
		for i, field := range record {
			field = strings.TrimSpace(field)
			cells[i] = StringCell(field)
			if field != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func cellTexts(cells []Cell) []string {
	texts := make([]string, len(cells))
	for i, cell := range cells {
		texts[i] = cell.Text()
	}
	return texts
}
