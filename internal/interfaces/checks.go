package interfaces

// This file contains compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/locallibrary/catalog/internal/database"
	"github.com/locallibrary/catalog/internal/database/authors"
	"github.com/locallibrary/catalog/internal/database/bookinstances"
	"github.com/locallibrary/catalog/internal/database/books"
	"github.com/locallibrary/catalog/internal/database/genres"
	"github.com/locallibrary/catalog/internal/http"
	"github.com/locallibrary/catalog/internal/metrics"
	"github.com/locallibrary/catalog/internal/session"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.GenreStore = (*genres.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.BookInstanceStore = (*bookinstances.Repository)(nil)

var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Sessions and Metrics
// =============================================================================

var _ http.Sessions = (*session.Manager)(nil)
var _ http.MetricsCollector = (*metrics.Metrics)(nil)
