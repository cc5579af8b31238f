package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/audit"
	"github.com/mlutsenko/bookshelf/internal/database/shelves"
	"github.com/mlutsenko/bookshelf/internal/readinglog"
)

// ReadingLogImportController handles legacy reading-log uploads.
type ReadingLogImportController struct {
	importer     *readinglog.Importer
	shelves      *shelves.Repository
	auditService *audit.Service
}

func NewReadingLogImportController(importer *readinglog.Importer, shelvesRepo *shelves.Repository, auditService *audit.Service) *ReadingLogImportController {
	return &ReadingLogImportController{
		importer:     importer,
		shelves:      shelvesRepo,
		auditService: auditService,
	}
}

// ReadingLogImportResult reports an atomic import outcome.
type ReadingLogImportResult struct {
	Created   int    `json:"created"`
	RecordIDs []uint `json:"record_ids"`
}

// Import ingests a whole reading-log document into the shelf named in the
// path. Only the shelf owner may import; the operation is all-or-nothing.
// The document is read from the uploaded "file" form field, or from the raw
// request body when no multipart form is present.
func (ctrl *ReadingLogImportController) Import(c *gin.Context) {
	shelfID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid shelf id",
			Code:  "invalid_request",
		})
		return
	}

	shelf, err := ctrl.shelves.GetByID(uint(shelfID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "Shelf not found",
				Code:  "shelf_not_found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to load shelf: " + err.Error(),
			Code:  "internal_error",
		})
		return
	}

	userID := GetUserID(c)
	if shelf.OwnerID != userID {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "Only the shelf owner may import records",
			Code:  "permission_denied",
		})
		return
	}

	document, closeDoc, err := importDocument(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "No document provided: " + err.Error(),
			Code:  "invalid_request",
		})
		return
	}
	defer closeDoc()

	ids, err := ctrl.importer.Import(shelf, document)

	if ctrl.auditService != nil {
		ctrl.auditService.LogImport(userID, shelf.ID, len(ids), err)
	}

	if err != nil {
		var parseErr *readinglog.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   parseErr.Error(),
				Code:    string(parseErr.Kind),
				Details: gin.H{"line": parseErr.Line},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Import failed: " + err.Error(),
			Code:  "internal_error",
		})
		return
	}

	c.JSON(http.StatusCreated, ReadingLogImportResult{
		Created:   len(ids),
		RecordIDs: ids,
	})
}

func importDocument(c *gin.Context) (io.Reader, func(), error) {
	file, _, err := c.Request.FormFile("file")
	if err == nil {
		return file, func() { file.Close() }, nil
	}
	if c.Request.Body == nil {
		return nil, nil, errors.New("empty request body")
	}
	return c.Request.Body, func() {}, nil
}
