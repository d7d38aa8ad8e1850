// Package bookinstances provides database operations for physical book copies.
package bookinstances

import (
	"context"

	"gorm.io/gorm"

	"github.com/locallibrary/catalog/internal/entities"
	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves an instance with its book resolved.
func (r *Repository) FindByID(ctx context.Context, id string) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").First(&instance, "id = ?", id).Error
	if domainerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.NotFound("Book copy not found")
	}
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// FindAll retrieves every instance with its book resolved.
func (r *Repository) FindAll(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Order("due_back ASC").Find(&instances).Error
	return instances, err
}

// FindByBook retrieves the copies of one book.
func (r *Repository) FindByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Order("due_back ASC").Find(&instances).Error
	return instances, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountByStatus(ctx context.Context, status entities.BookInstanceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *Repository) Create(ctx context.Context, instance *entities.BookInstance) error {
	return r.db.WithContext(ctx).Omit("Book").Create(instance).Error
}

func (r *Repository) Update(ctx context.Context, instance *entities.BookInstance) error {
	status := instance.Status
	if status == "" {
		status = entities.StatusMaintenance
	}
	result := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Where("id = ?", instance.ID).Updates(map[string]any{
		"book_id":  instance.BookID,
		"imprint":  instance.Imprint,
		"due_back": instance.DueBack,
		"status":   status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.NotFound("Book copy not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.BookInstance{}, "id = ?", id).Error
}
