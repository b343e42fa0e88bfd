// Package parser reads worksheets into the flatsheet data model.
package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// builtInDateFormats lists the built-in number format IDs that render dates or times.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormat reports whether a number format renders a date or time.
func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	return builtInDateFormats[numFmt]
}

// isDateFormatCode inspects a custom format code for date/time tokens.
// Quoted literals, escaped characters and bracketed sections ([Red], [$-419])
// are ignored, elapsed-time brackets ([h], [mm], [ss]) count.
func isDateFormatCode(code string) bool {
	// Only the first (positive) section decides.
	if i := strings.Index(code, ";"); i >= 0 {
		code = code[:i]
	}
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case ch == '"':
			inQuote = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			inner := strings.ToLower(code[i+1 : i+end])
			if inner != "" && strings.Trim(inner, "hms") == "" {
				return true
			}
			i += end
		default:
			b.WriteByte(ch)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydhms")
}

// styleCache memoizes the date classification of cell style IDs.
type styleCache struct {
	f         *excelize.File
	sheetName string
	dates     map[int]bool
}

func newStyleCache(f *excelize.File, sheetName string) *styleCache {
	return &styleCache{f: f, sheetName: sheetName, dates: make(map[int]bool)}
}

func (s *styleCache) isDate(cellName string) bool {
	styleID, err := s.f.GetCellStyle(s.sheetName, cellName)
	if err != nil {
		return false
	}
	if v, ok := s.dates[styleID]; ok {
		return v
	}
	v := false
	if style, err := s.f.GetStyle(styleID); err == nil && style != nil {
		v = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	s.dates[styleID] = v
	return v
}
