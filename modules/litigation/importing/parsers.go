package importing

import (
	"strings"
	"time"
)

// nullTokens are cell values treated as "no value". The spreadsheet
// libraries that produced legacy files render missing dates as NaT and
// missing cells as nan, so both spellings appear here.
var nullTokens = map[string]struct{}{
	"nat":  {},
	"none": {},
	"null": {},
	"-":    {},
	"na":   {},
	"n/a":  {},
}

func isNullToken(s string) bool {
	_, ok := nullTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

var boolTruths = map[string]struct{}{
	"yes": {}, "y": {}, "true": {}, "1": {}, "on": {}, "checked": {}, "x": {},
}

// ParseBool accepts the loose yes/no vocabulary found in tracking sheets.
// Anything unrecognized, empty, or missing is false; it never fails.
func ParseBool(raw string) bool {
	_, ok := boolTruths[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// dateFormats are tried in order; first parse wins. Each zero-padded layout
// is followed by its unpadded twin because Go, unlike the strptime family,
// does not accept single-digit components against padded layouts.
var dateFormats = []string{
	"2006-01-02", "2006-1-2",
	"02-01-2006", "2-1-2006",
	"02/01/2006", "2/1/2006",
	"01/02/2006", "1/2/2006",
	"02-Jan-2006", "2-Jan-2006",
	"02 Jan 2006", "2 Jan 2006",
	"02-January-2006", "2-January-2006",
	"02 January 2006", "2 January 2006",
	"2006/01/02", "2006/1/2",
	"02.01.2006", "2.1.2006",
	"2006.01.02", "2006.1.2",
}

// acceptedDateFormats is the guidance shown in strict-mode error messages.
const acceptedDateFormats = "YYYY-MM-DD, DD-MM-YYYY, DD/MM/YYYY"

// ParseDate leniently parses a cell into a calendar date. Missing values and
// null tokens yield (nil). Unparseable values also yield nil: the lenient
// path never fails.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || isNullToken(s) {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &date
		}
	}
	return nil
}

// ParseDateStrict wraps ParseDate: a present, non-null value that no pattern
// accepts is a validation failure naming the field and the offending literal.
func ParseDateStrict(raw, fieldName string) (*time.Time, error) {
	result := ParseDate(raw)
	if result != nil {
		return result, nil
	}
	s := strings.TrimSpace(raw)
	if s == "" || isNullToken(s) {
		return nil, nil
	}
	return nil, validationf(fieldName,
		"Invalid date format for '%s': '%s'. Use formats like %s", fieldName, raw, acceptedDateFormats)
}

// CleanString trims a cell and maps null tokens (and the stray "nan" that
// numeric tooling leaves behind) to empty.
func CleanString(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null", "-", "na", "n/a":
		return ""
	}
	return s
}
