package shelves

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mlutsenko/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_shelves_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Shelf{},
		&entities.Record{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_Create(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	shelf := &entities.Shelf{Name: "Science Fiction", OwnerID: 1, Private: true}
	require.NoError(t, repo.Create(shelf))
	assert.NotZero(t, shelf.ID)

	got, err := repo.GetByID(shelf.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", got.Name)
	assert.True(t, got.Private)
	assert.Equal(t, uint(1), got.OwnerID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetAllForOwner(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Shelf{Name: "Mine A", OwnerID: 1}))
	require.NoError(t, repo.Create(&entities.Shelf{Name: "Mine B", OwnerID: 1}))
	require.NoError(t, repo.Create(&entities.Shelf{Name: "Not mine", OwnerID: 2}))

	shelves, err := repo.GetAllForOwner(1)
	require.NoError(t, err)
	require.Len(t, shelves, 2)
	assert.Equal(t, "Mine A", shelves[0].Name)
	assert.Equal(t, "Mine B", shelves[1].Name)
}

func TestRepository_DeleteCascadesRecords(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	shelf := &entities.Shelf{Name: "Doomed", OwnerID: 1}
	require.NoError(t, repo.Create(shelf))

	other := &entities.Shelf{Name: "Survivor", OwnerID: 1}
	require.NoError(t, repo.Create(other))

	for _, shelfID := range []uint{shelf.ID, shelf.ID, other.ID} {
		require.NoError(t, db.Create(&entities.Record{
			ShelfID:     shelfID,
			Title:       "A Book",
			ReadDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			RandomCover: 1,
		}).Error)
	}

	require.NoError(t, repo.Delete(shelf.ID))

	_, err := repo.GetByID(shelf.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var remaining int64
	require.NoError(t, db.Model(&entities.Record{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "only the other shelf's record should remain")
}
