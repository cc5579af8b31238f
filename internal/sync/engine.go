// Package sync implements graph batch synchronization: a single request
// describing new shelves and new records that reference shelves by symbolic
// codes, resolved and persisted atomically.
package sync

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/entities"
)

const readDateLayout = "2006-01-02"

// ShelfDraft describes a shelf within one batch. A draft carrying a non-zero
// ID refers to an already-persisted shelf; otherwise a new shelf is created
// for the caller.
type ShelfDraft struct {
	Code    string `json:"code" binding:"required"`
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Private bool   `json:"private"`
}

// CoverPayload carries an uploaded cover image. Data is base64 on the wire.
type CoverPayload struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// RecordDraft describes a record within one batch. ShelfCode references a
// ShelfDraft of the same request by its symbolic code, never by id.
type RecordDraft struct {
	Code        string        `json:"code" binding:"required"`
	ShelfCode   string        `json:"shelf_code"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Rating      int           `json:"rating"`
	Comment     string        `json:"comment"`
	ReadDate    string        `json:"read_date"`
	RandomCover int           `json:"random_cover"`
	Cover       *CoverPayload `json:"cover"`
}

// BatchRequest is the whole draft graph submitted in one call.
type BatchRequest struct {
	Shelfs  []ShelfDraft  `json:"shelfs"`
	Records []RecordDraft `json:"records"`
}

// BatchResult maps the request-scoped symbolic codes to persisted ids.
type BatchResult struct {
	Shelfs  map[string]uint `json:"shelfs"`
	Records map[string]uint `json:"records"`
}

// CoverStore persists cover blobs outside the database. Files written during
// a batch are removed again if the surrounding transaction rolls back.
type CoverStore interface {
	Save(name string, data []byte) (string, error)
	Remove(filename string) error
}

// OwnerFunc is the ownership capability supplied by the auth collaborator.
type OwnerFunc func(userID uint, shelf *entities.Shelf) bool

// Engine resolves and persists draft graphs. All writes of one Apply call
// happen inside a single transaction.
type Engine struct {
	db      *gorm.DB
	covers  CoverStore
	isOwner OwnerFunc
}

// NewEngine creates a sync engine. A nil isOwner falls back to comparing the
// shelf's owner id with the caller.
func NewEngine(db *gorm.DB, covers CoverStore, isOwner OwnerFunc) *Engine {
	if isOwner == nil {
		isOwner = func(userID uint, shelf *entities.Shelf) bool {
			return shelf.OwnerID == userID
		}
	}
	return &Engine{db: db, covers: covers, isOwner: isOwner}
}

// Apply resolves the draft graph under the caller's identity and commits it
// atomically. On any failure the whole batch is rolled back and the caller
// observes the store unchanged.
func (e *Engine) Apply(userID uint, req *BatchRequest) (*BatchResult, error) {
	result := &BatchResult{
		Shelfs:  make(map[string]uint, len(req.Shelfs)),
		Records: make(map[string]uint, len(req.Records)),
	}

	var savedCovers []string
	err := e.db.Transaction(func(tx *gorm.DB) error {
		shelfIDs, err := e.resolveShelves(tx, userID, req.Shelfs)
		if err != nil {
			return err
		}
		result.Shelfs = shelfIDs

		return e.resolveRecords(tx, userID, req.Records, shelfIDs, result, &savedCovers)
	})
	if err != nil {
		// The database rolled back; stored cover files must follow.
		for _, filename := range savedCovers {
			if rmErr := e.covers.Remove(filename); rmErr != nil {
				log.Printf("Failed to remove cover %s after rollback: %v", filename, rmErr)
			}
		}
		return nil, err
	}

	return result, nil
}

// resolveShelves builds the immutable shelf code to id table consumed by
// record resolution. Drafts carrying an id are passed through unchanged;
// ownership of those shelves is checked when a record references them.
func (e *Engine) resolveShelves(tx *gorm.DB, userID uint, drafts []ShelfDraft) (map[string]uint, error) {
	shelfIDs := make(map[string]uint, len(drafts))

	for _, draft := range drafts {
		if draft.ID != 0 {
			shelfIDs[draft.Code] = draft.ID
			continue
		}

		if reason := validateShelfDraft(&draft); reason != "" {
			return nil, &ValidationError{Code: draft.Code, Reason: reason}
		}

		shelf := entities.Shelf{
			Name:    draft.Title,
			Private: draft.Private,
			OwnerID: userID,
		}
		if err := tx.Create(&shelf).Error; err != nil {
			return nil, fmt.Errorf("failed to create shelf %q: %w", draft.Code, err)
		}
		shelfIDs[draft.Code] = shelf.ID
	}

	return shelfIDs, nil
}

// resolveRecords consumes the shelf table read-only, in the order the drafts
// were supplied.
func (e *Engine) resolveRecords(tx *gorm.DB, userID uint, drafts []RecordDraft, shelfIDs map[string]uint, result *BatchResult, savedCovers *[]string) error {
	for _, draft := range drafts {
		shelfID, ok := shelfIDs[draft.ShelfCode]
		if !ok {
			return &ReferenceError{Code: draft.Code, ShelfCode: draft.ShelfCode}
		}

		var shelf entities.Shelf
		if err := tx.First(&shelf, shelfID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Code: draft.Code, ShelfID: shelfID}
			}
			return fmt.Errorf("failed to load shelf %d: %w", shelfID, err)
		}

		if !e.isOwner(userID, &shelf) {
			return &PermissionError{Code: draft.Code, ShelfID: shelfID}
		}

		if reason := validateRecordDraft(&draft); reason != "" {
			return &ValidationError{Code: draft.Code, Reason: reason}
		}

		readDate, err := time.Parse(readDateLayout, draft.ReadDate)
		if err != nil {
			return &ValidationError{Code: draft.Code, Reason: fmt.Sprintf("read_date %q must be YYYY-MM-DD", draft.ReadDate)}
		}

		record := entities.Record{
			ShelfID:     shelf.ID,
			Title:       draft.Title,
			Author:      draft.Author,
			Rating:      draft.Rating,
			Comment:     draft.Comment,
			ReadDate:    readDate,
			RandomCover: draft.RandomCover,
		}

		if draft.Cover != nil {
			if draft.Cover.Name == "" || len(draft.Cover.Data) == 0 {
				return &ValidationError{Code: draft.Code, Reason: "cover must contain both name and data"}
			}
			filename, err := e.covers.Save(draft.Cover.Name, draft.Cover.Data)
			if err != nil {
				return fmt.Errorf("failed to store cover for record %q: %w", draft.Code, err)
			}
			*savedCovers = append(*savedCovers, filename)
			record.CoverPath = filename
		}

		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create record %q: %w", draft.Code, err)
		}
		result.Records[draft.Code] = record.ID
	}

	return nil
}

func validateShelfDraft(draft *ShelfDraft) string {
	if draft.Title == "" {
		return "title must not be empty"
	}
	if len(draft.Title) > 256 {
		return "title must not exceed 256 characters"
	}
	return ""
}

func validateRecordDraft(draft *RecordDraft) string {
	if draft.Title == "" {
		return "title must not be empty"
	}
	if len(draft.Title) > 512 {
		return "title must not exceed 512 characters"
	}
	if draft.Rating < 0 || draft.Rating > 5 {
		return "rating must be between 0 and 5"
	}
	if draft.RandomCover < 1 || draft.RandomCover > 6 {
		return "random_cover must be between 1 and 6"
	}
	return ""
}
