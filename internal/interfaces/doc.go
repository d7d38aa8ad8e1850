// Package interfaces documents the core abstractions of the catalog and holds
// the compile-time checks that tie implementations to them.
//
// # Store Interfaces
//
// Handlers depend only on the store interfaces in internal/http/stores.go:
//
//   - AuthorStore: authors (internal/database/authors)
//   - GenreStore: genres, including exact-name lookup (internal/database/genres)
//   - BookStore: books with author and genre references (internal/database/books)
//   - BookInstanceStore: physical copies (internal/database/bookinstances)
//
// Every Find and Update reports a missing record as a NotFound domain error
// from internal/errors.
//
// # Supporting Interfaces
//
//   - Pinger: connectivity check used by /health (internal/database.Database)
//   - Flasher and Sessions: one-shot messages across redirects (internal/session.Manager)
//   - MetricsCollector: request metrics middleware and handler (internal/metrics.Metrics)
//
// # Adding a New Record Type
//
//  1. Add the entity to internal/entities and to database.Migrate.
//
//  2. Create a sub-package such as internal/database/publishers:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface in internal/http/stores.go and add it to Stores.
//
//  4. Add a compile-time check to checks.go:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
//  5. Write the controller and register its routes in registerCatalogRoutes.
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
