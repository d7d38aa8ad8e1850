// Package genres provides database operations for genre records.
//
// Genre names are unique by convention only: there is no unique index, the
// create and update handlers look a name up before writing it.
//
// # Interface Implementation
//
//	var _ http.GenreStore = (*Repository)(nil)
package genres

import (
	"context"

	"gorm.io/gorm"

	"github.com/locallibrary/catalog/internal/entities"
	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves a genre by ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error
	if domainerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.NotFound("Genre not found")
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindByName retrieves the genre with exactly this name (case-sensitive).
// Returns nil without error when there is none.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&genres).Error
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, nil
	}
	return &genres[0], nil
}

// FindAll retrieves every genre sorted by name ascending.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Genre{}).Count(&count).Error
	return count, err
}

// Create inserts a new genre and assigns its ID.
func (r *Repository) Create(ctx context.Context, genre *entities.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// Update renames the genre identified by genre.ID.
func (r *Repository) Update(ctx context.Context, genre *entities.Genre) error {
	result := r.db.WithContext(ctx).Model(&entities.Genre{}).Where("id = ?", genre.ID).
		Updates(map[string]any{"name": genre.Name})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.NotFound("Genre not found")
	}
	return nil
}

// Delete removes a genre. Deleting a missing genre is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Genre{}, "id = ?", id).Error
}
