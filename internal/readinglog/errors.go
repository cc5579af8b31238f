package readinglog

import "fmt"

// ErrorKind classifies what exactly could not be parsed.
type ErrorKind string

const (
	KindMalformedLine ErrorKind = "malformed_line"
	KindUnknownMonth  ErrorKind = "unknown_month"
	KindInvalidNumber ErrorKind = "invalid_number"
)

// ParseError reports a malformed reading-log line or date. Line is 1-based
// and zero when the error is not tied to a specific line of a document.
type ParseError struct {
	Kind   ErrorKind
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func malformed(detail string) *ParseError {
	return &ParseError{Kind: KindMalformedLine, Detail: detail}
}
