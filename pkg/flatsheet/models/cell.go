// Package models defines data structures for workbook flattening.
package models

import (
	"strconv"
	"time"
)

// CellKind tags the scalar type held by a Cell.
type CellKind int

const (
	// CellEmpty is an absent or blank cell.
	CellEmpty CellKind = iota
	// CellString holds text (also used for booleans, errors and anything else coerced to text).
	CellString
	// CellNumber holds a numeric value.
	CellNumber
	// CellDate holds a date or date-time value.
	CellDate
)

func (k CellKind) String() string {
	switch k {
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a tagged scalar value with an optional cached display string.
type Cell struct {
	// Kind determines which of Str, Num or Time is meaningful.
	Kind CellKind `json:"kind"`
	// Str is the value of a string cell.
	Str string `json:"str,omitempty"`
	// Num is the value of a number cell.
	Num float64 `json:"num,omitempty"`
	// Time is the value of a date cell.
	Time time.Time `json:"time,omitempty"`
	// Text is the formatted text the workbook displays for the cell, if known.
	Text string `json:"text,omitempty"`
}

// StringCell returns a string cell.
func StringCell(s string) Cell {
	return Cell{Kind: CellString, Str: s}
}

// NumberCell returns a number cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Num: v}
}

// DateCell returns a date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t}
}

// IsEmpty reports whether the cell holds no value. A string cell holding ""
// counts as empty.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellString:
		return c.Str == "" && c.Text == ""
	default:
		return false
	}
}

// String returns the display form of the cell. The cached workbook text wins
// over the canonical rendering of the typed value.
func (c Cell) String() string {
	if c.Text != "" {
		return c.Text
	}
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
