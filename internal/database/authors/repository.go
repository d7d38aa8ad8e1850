// Package authors provides database operations for author records.
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/locallibrary/catalog/internal/entities"
	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error
	if domainerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.NotFound("Author not found")
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// FindAll retrieves every author sorted by family name.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("family_name ASC, first_name ASC").Find(&authors).Error
	return authors, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Count(&count).Error
	return count, err
}

func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// Update overwrites the author identified by author.ID. Unset dates are cleared.
func (r *Repository) Update(ctx context.Context, author *entities.Author) error {
	result := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", author.ID).Updates(map[string]any{
		"first_name":    author.FirstName,
		"family_name":   author.FamilyName,
		"date_of_birth": author.DateOfBirth,
		"date_of_death": author.DateOfDeath,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.NotFound("Author not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Author{}, "id = ?", id).Error
}
