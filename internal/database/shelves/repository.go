// Package shelves provides database operations for shelf management.
package shelves

import (
	"gorm.io/gorm"

	"github.com/mlutsenko/bookshelf/internal/entities"
)

// Repository handles all shelf database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new shelves repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new shelf. The owner is fixed at creation time.
func (r *Repository) Create(shelf *entities.Shelf) error {
	return r.db.Create(shelf).Error
}

// GetByID retrieves a shelf by its ID.
func (r *Repository) GetByID(id uint) (*entities.Shelf, error) {
	var shelf entities.Shelf
	err := r.db.First(&shelf, id).Error
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}

// GetAllForOwner retrieves all shelves belonging to a user.
func (r *Repository) GetAllForOwner(ownerID uint) ([]entities.Shelf, error) {
	var shelves []entities.Shelf
	err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&shelves).Error
	return shelves, err
}

// Delete removes a shelf together with all its records.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shelf_id = ?", id).Delete(&entities.Record{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Shelf{}, id).Error
	})
}

// Count returns the total number of shelves.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Shelf{}).Count(&count).Error
	return count, err
}
