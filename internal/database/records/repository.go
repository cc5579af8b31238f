// Package records provides database operations for shelf records.
package records

import (
	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/entities"
)

// Repository handles all record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new records repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new record.
func (r *Repository) Create(record *entities.Record) error {
	return r.db.Create(record).Error
}

// GetByID retrieves a record by its ID.
func (r *Repository) GetByID(id uint) (*entities.Record, error) {
	var record entities.Record
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetPageForShelf retrieves one page of a shelf's records ordered by read date,
// newest first. Page numbers are 1-indexed.
func (r *Repository) GetPageForShelf(shelfID uint, page, pageSize int) ([]entities.Record, error) {
	if page < 1 {
		page = 1
	}
	var recs []entities.Record
	err := r.db.Where("shelf_id = ?", shelfID).
		Order("read_date DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&recs).Error
	return recs, err
}

// CountForShelf returns the number of records on a shelf.
func (r *Repository) CountForShelf(shelfID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Record{}).Where("shelf_id = ?", shelfID).Count(&count).Error
	return count, err
}

// Count returns the total number of records.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Record{}).Count(&count).Error
	return count, err
}
