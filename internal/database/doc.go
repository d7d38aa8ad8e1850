// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into per-entity sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── authors/         # Author records
//	├── genres/          # Genre records
//	├── books/           # Books and their genre links
//	└── bookinstances/   # Physical copies of books
//
// # Using Sub-packages
//
// Each sub-package provides a Repository with the same capability set:
// find-by-id, find-many, count, create, update-by-id and delete-by-id.
//
//	db, err := database.NewDatabase("./catalog.db")
//	booksRepo := books.NewRepository(db.DB)
//	book, err := booksRepo.FindByID(ctx, "bok-V1StGXR8_Z5jdHi6B-myT")
//
// Missing records are reported as a NotFound domain error. Any other error is
// a store failure and is returned as-is.
//
// # Interface Implementations
//
// Each sub-package implements one interface from internal/http/stores.go:
//
//   - authors.Repository: implements http.AuthorStore
//   - genres.Repository: implements http.GenreStore
//   - books.Repository: implements http.BookStore
//   - bookinstances.Repository: implements http.BookInstanceStore
//
// There are no cascading deletes and no foreign key constraints. Referential
// checks before deletion are made by the handlers.
package database
