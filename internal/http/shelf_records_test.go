package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/entities"
)

func getPage(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedShelfRecords(t *testing.T, db *gorm.DB, shelfID uint, n int) {
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&entities.Record{
			ShelfID:     shelfID,
			Title:       fmt.Sprintf("Book %02d", i),
			ReadDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			RandomCover: 1,
		}).Error)
	}
}

func TestShelfRecordsList(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	shelf := createOwnShelf(t, db)
	seedShelfRecords(t, db, shelf.ID, 45)

	w := getPage(router, "/api/shelves/1/records?page=2")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page ShelfRecordsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Records, recordsPageSize)
	assert.Equal(t, []int{1, 2, 3}, page.Pages)
	// Newest read date first, so page two starts after the 20 newest.
	assert.Equal(t, "Book 24", page.Records[0].Title)
}

func TestShelfRecordsList_DefaultsToFirstPage(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	shelf := createOwnShelf(t, db)
	seedShelfRecords(t, db, shelf.ID, 5)

	w := getPage(router, "/api/shelves/1/records")
	require.Equal(t, http.StatusOK, w.Code)

	var page ShelfRecordsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Records, 5)
}

func TestShelfRecordsList_EmptyShelf(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	createOwnShelf(t, db)

	w := getPage(router, "/api/shelves/1/records")
	require.Equal(t, http.StatusOK, w.Code)

	var page ShelfRecordsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Records)
	assert.Zero(t, page.TotalPages)

	// Empty collections serialize as [] rather than null.
	assert.Contains(t, w.Body.String(), `"pages":[]`)
	assert.Contains(t, w.Body.String(), `"records":[]`)
}

func TestShelfRecordsList_InvalidPage(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	createOwnShelf(t, db)

	for _, q := range []string{"page=0", "page=-1", "page=two"} {
		w := getPage(router, "/api/shelves/1/records?"+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestShelfRecordsList_PrivateShelfOfAnotherUser(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	private := &entities.Shelf{Name: "Secret", OwnerID: 42, Private: true}
	require.NoError(t, db.Create(private).Error)

	w := getPage(router, "/api/shelves/1/records")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShelfRecordsList_NotFound(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := getPage(router, "/api/shelves/7/records")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
