// Package readinglog parses the legacy reading-log export format, one entry
// per line:
//
//	"Title, possibly with commas",Author,★★★★,"December 3, 1969"
//
// The trailing columns have a fixed shape while the title may contain
// arbitrary commas, so lines are scanned right to left: date, rating, author,
// and whatever remains on the left is the title.
package readinglog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Entry is one parsed reading-log line.
type Entry struct {
	Title    string
	Author   string
	Rating   int
	ReadDate time.Time
}

var months = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// Translate converts a (day, month-name, year) triple into a calendar date.
// The month name must exactly match one of the twelve English month names.
func Translate(day, monthName, year string) (time.Time, error) {
	month, ok := months[monthName]
	if !ok {
		return time.Time{}, &ParseError{
			Kind:   KindUnknownMonth,
			Detail: fmt.Sprintf("unrecognized month name %q", monthName),
		}
	}

	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, &ParseError{
			Kind:   KindInvalidNumber,
			Detail: fmt.Sprintf("day %q is not a number", day),
		}
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, &ParseError{
			Kind:   KindInvalidNumber,
			Detail: fmt.Sprintf("year %q is not a number", year),
		}
	}

	date := time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 2),
	// so a round-trip mismatch means the triple was not a real date.
	if date.Year() != y || date.Month() != month || date.Day() != d {
		return time.Time{}, &ParseError{
			Kind:   KindInvalidNumber,
			Detail: fmt.Sprintf("%s %d, %d is not a valid calendar date", monthName, d, y),
		}
	}

	return date, nil
}

// ParseDate parses the textual "Month Day, Year" form used by the date column.
func ParseDate(text string) (time.Time, error) {
	comma := strings.Index(text, ",")
	if comma == -1 {
		return time.Time{}, malformed(fmt.Sprintf("date %q must have the form \"Month Day, Year\"", text))
	}

	fields := strings.Fields(text[:comma])
	if len(fields) != 2 {
		return time.Time{}, malformed(fmt.Sprintf("date %q must have the form \"Month Day, Year\"", text))
	}

	return Translate(fields[1], fields[0], strings.TrimSpace(text[comma+1:]))
}

// ParseLine parses one reading-log export line into an Entry. Any deviation
// from the expected column shape fails the whole line.
func ParseLine(line string) (*Entry, error) {
	s := &lineScanner{line: strings.TrimSpace(line)}

	readDate, err := s.scanDate()
	if err != nil {
		return nil, err
	}
	rating, err := s.scanRating()
	if err != nil {
		return nil, err
	}
	author, err := s.scanAuthor()
	if err != nil {
		return nil, err
	}

	return &Entry{
		Title:    s.scanTitle(),
		Author:   author,
		Rating:   rating,
		ReadDate: readDate,
	}, nil
}

// lineScanner consumes a line right to left. pos marks the end of the still
// unconsumed prefix; each scan step moves it past one column and its
// delimiter.
type lineScanner struct {
	line string
	pos  int
}

// scanDate consumes the trailing double-quoted date column and the comma
// delimiting it from the rating column.
func (s *lineScanner) scanDate() (time.Time, error) {
	if s.line == "" {
		return time.Time{}, malformed("empty line")
	}
	if !strings.HasSuffix(s.line, `"`) {
		return time.Time{}, malformed("line must end with a quoted date column")
	}

	closeQuote := len(s.line) - 1
	openQuote := strings.LastIndex(s.line[:closeQuote], `"`)
	if openQuote == -1 {
		return time.Time{}, malformed("unterminated date quote")
	}

	date, err := ParseDate(s.line[openQuote+1 : closeQuote])
	if err != nil {
		return time.Time{}, err
	}

	s.pos = openQuote
	if err := s.expectComma(); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// scanRating consumes the star-run column. The rating is the number of runes
// in the column, not a numeric value: ★★★★ encodes 4.
func (s *lineScanner) scanRating() (int, error) {
	field, err := s.scanField("rating")
	if err != nil {
		return 0, err
	}
	if field == "" {
		return 0, malformed("empty rating column")
	}
	return utf8.RuneCountInString(field), nil
}

// scanAuthor consumes the author column.
func (s *lineScanner) scanAuthor() (string, error) {
	return s.scanField("author")
}

// scanTitle consumes everything that remains, stripping at most one leading
// and one trailing quote.
func (s *lineScanner) scanTitle() string {
	title := strings.TrimSpace(s.line[:s.pos])
	title = strings.TrimPrefix(title, `"`)
	title = strings.TrimSuffix(title, `"`)
	return strings.TrimSpace(title)
}

func (s *lineScanner) scanField(name string) (string, error) {
	comma := strings.LastIndex(s.line[:s.pos], ",")
	if comma == -1 {
		return "", malformed("missing " + name + " column")
	}
	field := strings.TrimSpace(s.line[comma+1 : s.pos])
	s.pos = comma
	return field, nil
}

// expectComma requires the next unconsumed character (ignoring spaces) to be
// the comma separating two columns and consumes it.
func (s *lineScanner) expectComma() error {
	i := s.pos - 1
	for i >= 0 && s.line[i] == ' ' {
		i--
	}
	if i < 0 || s.line[i] != ',' {
		return malformed("missing delimiter before date column")
	}
	s.pos = i
	return nil
}
