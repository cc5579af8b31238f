// Package cli implements the command-line subcommands.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/config"
	"github.com/mlutsenko/bookshelf/internal/database"
	"github.com/mlutsenko/bookshelf/internal/database/shelves"
	"github.com/mlutsenko/bookshelf/internal/readinglog"
)

// ReadingLogImportCommand imports a legacy reading-log export into a shelf.
type ReadingLogImportCommand struct {
	FilePath     string
	DatabasePath string
	ShelfID      uint
	DryRun       bool
}

func NewReadingLogImportCommand() *ReadingLogImportCommand {
	return &ReadingLogImportCommand{}
}

func (cmd *ReadingLogImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("readinglog-import", flag.ExitOnError)

	var shelfID uint64
	fs.StringVar(&cmd.FilePath, "file", "", "Path to the reading-log export file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.Uint64Var(&shelfID, "shelf", 0, "ID of the destination shelf (required)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse the file without persisting anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s readinglog-import -file <path> -shelf <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import a legacy reading-log export (one entry per line) into a shelf.\n")
		fmt.Fprintf(os.Stderr, "The import is all-or-nothing: a single malformed line aborts it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.ShelfID = uint(shelfID)

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.ShelfID == 0 {
		return fmt.Errorf("required flag -shelf not provided")
	}

	return nil
}

func (cmd *ReadingLogImportCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shelf, err := shelves.NewRepository(db.DB).GetByID(cmd.ShelfID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("shelf %d not found", cmd.ShelfID)
		}
		return fmt.Errorf("failed to load shelf: %w", err)
	}

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		// An import into a throwaway transaction never commits.
		var parseErr error
		txErr := db.DB.Transaction(func(tx *gorm.DB) error {
			_, parseErr = readinglog.NewImporter(tx, nil).Import(shelf, file)
			if parseErr != nil {
				return parseErr
			}
			return errDryRun
		})
		if parseErr != nil {
			return parseErr
		}
		if txErr != nil && !errors.Is(txErr, errDryRun) {
			return txErr
		}
		fmt.Println("All lines parsed successfully")
		return nil
	}

	ids, err := readinglog.NewImporter(db.DB, nil).Import(shelf, file)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d records into shelf %q (id %d)\n", len(ids), shelf.Name, shelf.ID)
	return nil
}

var errDryRun = errors.New("dry run rollback")
