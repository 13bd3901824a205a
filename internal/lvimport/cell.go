package lvimport

import (
	"math"
	"strconv"
	"strings"

	"kolonnen-backend/internal/numbers"
)

// Cell is one spreadsheet cell. Rows arrive as positionally indexed
// heterogeneous values; a cell is either a string or a number, never
// both.
type Cell struct {
	Str   string  `json:"str,omitempty"`
	Num   float64 `json:"num,omitempty"`
	IsNum bool    `json:"isNum,omitempty"`
}

func StringCell(value string) Cell {
	return Cell{Str: value}
}

func NumberCell(value float64) Cell {
	return Cell{Num: value, IsNum: true}
}

// Text renders the cell the way it would read in the source file.
func (c Cell) Text() string {
	if c.IsNum {
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	}
	return c.Str
}

func (c Cell) Empty() bool {
	if c.IsNum {
		return false
	}
	return strings.TrimSpace(c.Str) == ""
}

// number reads the cell as a numeric value: numbers pass through when
// finite, strings go through the locale-aware parser.
func (c Cell) number() *float64 {
	if c.IsNum {
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return nil
		}
		value := c.Num
		return &value
	}
	return numbers.ParseNumber(c.Str)
}
