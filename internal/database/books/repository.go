// Package books provides database operations for books and their genre links.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.FindByID(ctx, "bok-V1StGXR8_Z5jdHi6B-myT")
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/locallibrary/catalog/internal/entities"
	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves a book with its author and genres resolved.
func (r *Repository) FindByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name ASC")
		}).
		First(&book, "id = ?", id).Error
	if domainerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.NotFound("Book not found")
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindAll retrieves every book ordered by title, with authors resolved.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// FindByGenre retrieves the books carrying the given genre.
func (r *Repository) FindByGenre(ctx context.Context, genreID string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

// FindByAuthor retrieves the books written by the given author.
func (r *Repository) FindByAuthor(ctx context.Context, authorID string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("title ASC").Find(&books).Error
	return books, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// Create inserts a new book. Genre references are resolved to existing genres;
// unknown genre IDs are dropped. Genres themselves are never written.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := resolveGenres(tx, book.Genres)
		if err != nil {
			return err
		}
		book.Genres = genres
		return tx.Omit("Author", "Genres.*").Create(book).Error
	})
}

// Update overwrites the book identified by book.ID and replaces its genre set.
func (r *Repository) Update(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(map[string]any{
			"title":     book.Title,
			"author_id": book.AuthorID,
			"summary":   book.Summary,
			"isbn":      book.ISBN,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.NotFound("Book not found")
		}

		genres, err := resolveGenres(tx, book.Genres)
		if err != nil {
			return err
		}
		book.Genres = genres
		return tx.Model(&entities.Book{ID: book.ID}).Association("Genres").Replace(genres)
	})
}

// Delete removes the book and its genre links. Deleting a missing book is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Select("Genres").Delete(&entities.Book{ID: id}).Error
}

func resolveGenres(tx *gorm.DB, refs []entities.Genre) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	if len(refs) == 0 {
		return genres, nil
	}

	ids := make([]string, 0, len(refs))
	for _, g := range refs {
		ids = append(ids, g.ID)
	}
	if err := tx.Where("id IN ?", ids).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}
