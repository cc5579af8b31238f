package readinglog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/entities"
)

// Cover placeholder illustrations come in six variants.
const (
	minCoverIndex = 1
	maxCoverIndex = 6
)

// maxLineBytes bounds a single export line. Longer lines are rejected as
// malformed instead of surfacing as an opaque read error.
const maxLineBytes = 1 << 20

// Importer ingests a whole reading-log export into one destination shelf.
// The import is all-or-nothing: every line must parse before anything is
// persisted, and all records are created in a single transaction.
type Importer struct {
	db   *gorm.DB
	rand RandomSource
}

// NewImporter creates an importer. A nil random source falls back to the
// default math/rand-backed one.
func NewImporter(db *gorm.DB, rand RandomSource) *Importer {
	if rand == nil {
		rand = NewRandomSource()
	}
	return &Importer{db: db, rand: rand}
}

// Import parses every line of the document and persists one record per entry
// on the destination shelf. Blank lines are skipped. On any parse failure the
// returned error carries the 1-based line number and nothing is persisted.
// The caller must already have verified shelf ownership.
func (i *Importer) Import(shelf *entities.Shelf, r io.Reader) ([]uint, error) {
	drafts, err := i.parseAll(shelf.ID, r)
	if err != nil {
		return nil, err
	}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		for idx := range drafts {
			if err := tx.Create(&drafts[idx]).Error; err != nil {
				return fmt.Errorf("failed to create record %q: %w", drafts[idx].Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(drafts))
	for idx := range drafts {
		ids[idx] = drafts[idx].ID
	}
	return ids, nil
}

func (i *Importer) parseAll(shelfID uint, r io.Reader) ([]entities.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	var drafts []entities.Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := ParseLine(line)
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				parseErr.Line = lineNo
			}
			return nil, err
		}

		drafts = append(drafts, entities.Record{
			ShelfID:     shelfID,
			Title:       entry.Title,
			Author:      entry.Author,
			Rating:      entry.Rating,
			ReadDate:    entry.ReadDate,
			RandomCover: i.rand.NextInt(minCoverIndex, maxCoverIndex),
		})
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{
				Kind:   KindMalformedLine,
				Line:   lineNo + 1,
				Detail: fmt.Sprintf("line exceeds the maximum length of %d bytes", maxLineBytes),
			}
		}
		return nil, fmt.Errorf("error reading document: %w", err)
	}

	return drafts, nil
}
