package http

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mlutsenko/bookshelf/internal/auth"
	"github.com/mlutsenko/bookshelf/internal/config"
	"github.com/mlutsenko/bookshelf/internal/database"
	"github.com/mlutsenko/bookshelf/internal/database/records"
	"github.com/mlutsenko/bookshelf/internal/database/shelves"
	"github.com/mlutsenko/bookshelf/internal/database/users"
	"github.com/mlutsenko/bookshelf/internal/entities"
	"github.com/mlutsenko/bookshelf/internal/readinglog"
	"github.com/mlutsenko/bookshelf/internal/sync"
)

// nullCoverStore discards covers; handler tests never inspect the files.
type nullCoverStore struct{}

func (nullCoverStore) Save(name string, data []byte) (string, error) { return "stored-" + name, nil }
func (nullCoverStore) Remove(filename string) error                  { return nil }

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Shelf{},
		&entities.Record{},
		&entities.AuditEvent{},
	)
	require.NoError(t, err)

	shelvesRepo := shelves.NewRepository(db)
	recordsRepo := records.NewRepository(db)
	usersRepo := users.NewRepository(db)

	authService := auth.NewService(usersRepo, 4)
	authMiddleware := auth.NewMiddleware(authService, config.AuthModeNone)

	engine := sync.NewEngine(db, nullCoverStore{}, nil)
	importer := readinglog.NewImporter(db, nil)

	router := NewRouter(RouterConfig{
		AuthMiddleware: authMiddleware,
		Health:         NewHealthController(&database.Database{DB: db}, "test"),
		Batch:          NewBatchController(engine, nil),
		Import:         NewReadingLogImportController(importer, shelvesRepo, nil),
		ShelfRecords:   NewShelfRecordsController(shelvesRepo, recordsRepo),
	})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return router, db, cleanup
}
