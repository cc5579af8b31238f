// Package entrypoint wires the application together and runs the HTTP server.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlutsenko/bookshelf/internal/audit"
	"github.com/mlutsenko/bookshelf/internal/auth"
	"github.com/mlutsenko/bookshelf/internal/config"
	"github.com/mlutsenko/bookshelf/internal/covers"
	"github.com/mlutsenko/bookshelf/internal/database"
	auditdb "github.com/mlutsenko/bookshelf/internal/database/audit"
	"github.com/mlutsenko/bookshelf/internal/database/records"
	"github.com/mlutsenko/bookshelf/internal/database/shelves"
	"github.com/mlutsenko/bookshelf/internal/database/users"
	http_controllers "github.com/mlutsenko/bookshelf/internal/http"
	"github.com/mlutsenko/bookshelf/internal/readinglog"
	"github.com/mlutsenko/bookshelf/internal/scheduler"
	"github.com/mlutsenko/bookshelf/internal/sync"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down gracefully.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run builds every component from configuration and serves the API.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	coverStore, err := covers.NewStore(cfg.Covers.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize cover store: %v", err)
	}

	shelvesRepo := shelves.NewRepository(db.DB)
	recordsRepo := records.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)
	auditRepo := auditdb.NewRepository(db.DB)

	auditService := audit.NewService(auditRepo)
	authService := auth.NewService(usersRepo, cfg.Auth.BcryptCost)
	authMiddleware := auth.NewMiddleware(authService, cfg.Auth.Mode)

	engine := sync.NewEngine(db.DB, coverStore, nil)
	importer := readinglog.NewImporter(db.DB, nil)

	cleanup := scheduler.NewAuditCleanupScheduler(auditRepo, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
	if err := cleanup.Start(); err != nil {
		log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthMiddleware: authMiddleware,
		Health:         http_controllers.NewHealthController(db, version),
		Batch:          http_controllers.NewBatchController(engine, auditService),
		Import:         http_controllers.NewReadingLogImportController(importer, shelvesRepo, auditService),
		ShelfRecords:   http_controllers.NewShelfRecordsController(shelvesRepo, recordsRepo),
	})

	Serve(router, cfg, func(ctx context.Context) {
		cleanup.Stop()
	})
}
