package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/locallibrary/catalog/internal/entities"
)

// This file consolidates the store interfaces used by the catalog controllers.
// The gorm repositories under internal/database satisfy them; handler tests
// use an in-memory implementation.

// AuthorStore provides access to authors.
type AuthorStore interface {
	FindByID(ctx context.Context, id string) (*entities.Author, error)
	FindAll(ctx context.Context) ([]entities.Author, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, author *entities.Author) error
	Update(ctx context.Context, author *entities.Author) error
	Delete(ctx context.Context, id string) error
}

// GenreStore provides access to genres. FindByName returns nil, nil when no
// genre has exactly that name.
type GenreStore interface {
	FindByID(ctx context.Context, id string) (*entities.Genre, error)
	FindByName(ctx context.Context, name string) (*entities.Genre, error)
	FindAll(ctx context.Context) ([]entities.Genre, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, genre *entities.Genre) error
	Update(ctx context.Context, genre *entities.Genre) error
	Delete(ctx context.Context, id string) error
}

// BookStore provides access to books. FindByID resolves author and genres;
// FindAll resolves authors.
type BookStore interface {
	FindByID(ctx context.Context, id string) (*entities.Book, error)
	FindAll(ctx context.Context) ([]entities.Book, error)
	FindByGenre(ctx context.Context, genreID string) ([]entities.Book, error)
	FindByAuthor(ctx context.Context, authorID string) ([]entities.Book, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, book *entities.Book) error
	Update(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, id string) error
}

// BookInstanceStore provides access to book copies. FindByID and FindAll
// resolve the book.
type BookInstanceStore interface {
	FindByID(ctx context.Context, id string) (*entities.BookInstance, error)
	FindAll(ctx context.Context) ([]entities.BookInstance, error)
	FindByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.BookInstanceStatus) (int64, error)
	Create(ctx context.Context, instance *entities.BookInstance) error
	Update(ctx context.Context, instance *entities.BookInstance) error
	Delete(ctx context.Context, id string) error
}

// Stores groups the catalog stores handed to the router.
type Stores struct {
	Authors   AuthorStore
	Genres    GenreStore
	Books     BookStore
	Instances BookInstanceStore
}

// Flasher keeps one-shot messages across a redirect.
type Flasher interface {
	Flash(c *gin.Context, message string)
	PopFlash(c *gin.Context) string
}

// Sessions is a Flasher that also needs its own middleware.
type Sessions interface {
	Flasher
	LoadSave() gin.HandlerFunc
}
