// Package excel wraps excelize for the narrow workbook shapes this
// application deals in: a single sheet with a header row followed by data
// rows, read from and written to in-memory byte buffers.
package excel

import (
	"bytes"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheets = errors.New("workbook has no sheets")
	ErrNoHeader = errors.New("workbook has no header row")
)

// Book is a decoded first-sheet view of a workbook. Cell values are the
// formatted strings excelize renders, except date-styled cells, which are
// converted from their stored serial to an ISO date: the stock Excel date
// style formats as "m-d-yy", which loses the century. Every row is padded
// to the header width.
type Book struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// ReadBook decodes the first sheet of an xlsx workbook held in memory.
func ReadBook(data []byte) (*Book, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, "read rows")
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	headers := rows[0]
	book := &Book{
		Sheet:   sheet,
		Headers: headers,
		Rows:    make([][]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		padded := make([]string, len(headers))
		copy(padded, row)
		book.Rows = append(book.Rows, padded)
	}

	if err := overlayDateCells(f, sheet, book); err != nil {
		return nil, err
	}
	return book, nil
}

// overlayDateCells replaces the formatted text of date-styled cells with the
// ISO date decoded from the stored serial number.
func overlayDateCells(f *excelize.File, sheet string, book *Book) error {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return errors.Wrap(err, "read raw rows")
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	dateStyles := map[int]bool{}
	for ri, row := range book.Rows {
		if ri+1 >= len(raw) {
			break
		}
		rawRow := raw[ri+1]
		for ci := range row {
			if ci >= len(rawRow) || rawRow[ci] == "" || rawRow[ci] == row[ci] {
				continue
			}
			serial, err := strconv.ParseFloat(rawRow[ci], 64)
			if err != nil || serial < 1 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				continue
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				continue
			}
			isDate, seen := dateStyles[styleID]
			if !seen {
				isDate = dateStyled(f, styleID)
				dateStyles[styleID] = isDate
			}
			if !isDate {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			book.Rows[ri][ci] = t.Format("2006-01-02")
		}
	}
	return nil
}

// Built-in date/time number formats per ECMA-376 part 1, §18.8.30.
var builtInDateFormats = map[int]struct{}{
	14: {}, 15: {}, 16: {}, 17: {}, 18: {}, 19: {}, 20: {}, 21: {}, 22: {},
	27: {}, 28: {}, 29: {}, 30: {}, 31: {}, 32: {}, 33: {}, 34: {}, 35: {}, 36: {},
	45: {}, 46: {}, 47: {},
	50: {}, 51: {}, 52: {}, 53: {}, 54: {}, 55: {}, 56: {}, 57: {}, 58: {},
}

func dateStyled(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if _, ok := builtInDateFormats[style.NumFmt]; ok {
		return true
	}
	if style.CustomNumFmt == nil {
		return false
	}
	return customFormatHasDate(*style.CustomNumFmt)
}

// customFormatHasDate reports whether a custom number format contains date
// or time tokens outside quoted literals, bracketed sections, and escapes.
func customFormatHasDate(numFmt string) bool {
	inQuote := false
	for i := 0; i < len(numFmt); i++ {
		c := numFmt[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '\\':
			i++
		case c == '[':
			for i < len(numFmt) && numFmt[i] != ']' {
				i++
			}
		default:
			switch c {
			case 'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S':
				return true
			}
		}
	}
	return false
}

// Cell returns the value under the given header for row i, or "" when the
// header is absent.
func (b *Book) Cell(i int, header string) string {
	if i < 0 || i >= len(b.Rows) {
		return ""
	}
	for col, h := range b.Headers {
		if h == header {
			return b.Rows[i][col]
		}
	}
	return ""
}

// SheetBuilder assembles a single-sheet workbook.
type SheetBuilder struct {
	sheet   string
	headers []string
	rows    [][]string
}

func NewSheetBuilder(sheet string) *SheetBuilder {
	return &SheetBuilder{sheet: sheet}
}

func (b *SheetBuilder) Headers(headers ...string) *SheetBuilder {
	b.headers = headers
	return b
}

func (b *SheetBuilder) AddRow(cells ...string) *SheetBuilder {
	b.rows = append(b.rows, cells)
	return b
}

// Bytes encodes the sheet as xlsx.
func (b *SheetBuilder) Bytes() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := b.sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, errors.Wrap(err, "rename sheet")
		}
	}

	writeRow := func(rowNum int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := writeRow(1, b.headers); err != nil {
		return nil, errors.Wrap(err, "write header row")
	}
	for i, row := range b.rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, errors.Wrapf(err, "write row %d", i+2)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "encode workbook")
	}
	return buf.Bytes(), nil
}
