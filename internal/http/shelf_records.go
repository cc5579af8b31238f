package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/database/records"
	"github.com/mlutsenko/bookshelf/internal/database/shelves"
	"github.com/mlutsenko/bookshelf/internal/entities"
	"github.com/mlutsenko/bookshelf/internal/pagination"
)

const (
	recordsPageSize = 20
	// Half-width of the page-number window shown in listings.
	pageWindowHalf = 3
)

// ShelfRecordsController serves paginated shelf listings.
type ShelfRecordsController struct {
	shelves *shelves.Repository
	records *records.Repository
}

func NewShelfRecordsController(shelvesRepo *shelves.Repository, recordsRepo *records.Repository) *ShelfRecordsController {
	return &ShelfRecordsController{
		shelves: shelvesRepo,
		records: recordsRepo,
	}
}

// ShelfRecordsPage is one page of a shelf's records plus the page-number
// window for navigation.
type ShelfRecordsPage struct {
	Records    []entities.Record `json:"records"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Pages      []int             `json:"pages"`
}

// List returns one page of a shelf's records. Public shelves are readable by
// anyone; private shelves only by their owner.
func (ctrl *ShelfRecordsController) List(c *gin.Context) {
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

	if shelf.Private && shelf.OwnerID != GetUserID(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "This shelf is private",
			Code:  "permission_denied",
		})
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		page, err = strconv.Atoi(p)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Invalid page number",
				Code:  "invalid_request",
			})
			return
		}
	}

	count, err := ctrl.records.CountForShelf(shelf.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to count records: " + err.Error(),
			Code:  "internal_error",
		})
		return
	}

	totalPages := int((count + recordsPageSize - 1) / recordsPageSize)

	recs, err := ctrl.records.GetPageForShelf(shelf.ID, page, recordsPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to load records: " + err.Error(),
			Code:  "internal_error",
		})
		return
	}

	if recs == nil {
		recs = []entities.Record{}
	}

	pages := pagination.Window(totalPages, pageWindowHalf, page)
	if pages == nil {
		pages = []int{}
	}

	c.JSON(http.StatusOK, ShelfRecordsPage{
		Records:    recs,
		Page:       page,
		TotalPages: totalPages,
		Pages:      pages,
	})
}
