package readinglog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_AllMonths(t *testing.T) {
	names := []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}

	for i, name := range names {
		date, err := Translate("15", name, "2001")
		require.NoError(t, err, name)
		assert.Equal(t, 2001, date.Year())
		assert.Equal(t, time.Month(i+1), date.Month())
		assert.Equal(t, 15, date.Day())
	}
}

func TestTranslate_UnknownMonth(t *testing.T) {
	for _, name := range []string{"december", "DECEMBER", "Dec", "Smarch", ""} {
		_, err := Translate("3", name, "1969")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, name)
		assert.Equal(t, KindUnknownMonth, parseErr.Kind, name)
	}
}

func TestTranslate_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		day  string
		year string
	}{
		{name: "non-numeric day", day: "third", year: "1969"},
		{name: "non-numeric year", day: "3", year: "MCMLXIX"},
		{name: "empty day", day: "", year: "1969"},
		{name: "impossible date", day: "30", year: "1969"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.day, "February", tt.year)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, KindInvalidNumber, parseErr.Kind)
		})
	}
}

func TestTranslate_LeapYear(t *testing.T) {
	_, err := Translate("29", "February", "2000")
	require.NoError(t, err)

	_, err = Translate("29", "February", "1900")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("December 3, 1969")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1969, time.December, 3, 0, 0, 0, 0, time.UTC), date)
}

func TestParseDate_Malformed(t *testing.T) {
	for _, text := range []string{"December 3 1969", "December 3 4, 1969", "1969", ""} {
		_, err := ParseDate(text)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, text)
		assert.Equal(t, KindMalformedLine, parseErr.Kind, text)
	}
}

func TestParseLine(t *testing.T) {
	entry, err := ParseLine(`The Dispossessed,Ursula Le Guin,★★★★,"December 3, 1969"`)
	require.NoError(t, err)

	assert.Equal(t, "The Dispossessed", entry.Title)
	assert.Equal(t, "Ursula Le Guin", entry.Author)
	assert.Equal(t, 4, entry.Rating)
	assert.Equal(t, time.Date(1969, time.December, 3, 0, 0, 0, 0, time.UTC), entry.ReadDate)
}

func TestParseLine_QuotedTitleWithCommas(t *testing.T) {
	entry, err := ParseLine(`"The Left Hand of Darkness, or Winter",Le Guin,★★★★★,"March 1, 1970"`)
	require.NoError(t, err)

	assert.Equal(t, "The Left Hand of Darkness, or Winter", entry.Title)
	assert.Equal(t, "Le Guin", entry.Author)
	assert.Equal(t, 5, entry.Rating)
}

func TestParseLine_RatingIsRuneCount(t *testing.T) {
	for stars := 1; stars <= 5; stars++ {
		line := `Title,Author,` + runOf('★', stars) + `,"June 10, 1999"`
		entry, err := ParseLine(line)
		require.NoError(t, err)
		assert.Equal(t, stars, entry.Rating)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "empty line", line: ""},
		{name: "no quoted date", line: `Title,Author,★★★,June 10 1999`},
		{name: "unterminated date quote", line: `Title,Author,★★★,June 10, 1999"`},
		{name: "missing comma before date", line: `Title,Author ★★★"June 10, 1999"`},
		{name: "missing author column", line: `Title ★★★,"June 10, 1999"`},
		{name: "empty rating column", line: `Title,Author,,"June 10, 1999"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, KindMalformedLine, parseErr.Kind)
		})
	}
}

func TestParseLine_PropagatesDateErrors(t *testing.T) {
	_, err := ParseLine(`Title,Author,★★★,"Smarch 10, 1999"`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, KindUnknownMonth, parseErr.Kind)
}

func runOf(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
