// Package session keeps per-visitor session state in SQLite. The catalog only
// stores one-shot flash messages shown after a redirect.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

const keyFlash = "flash"

// Options configures the session cookie.
type Options struct {
	Lifetime      time.Duration
	SecureCookies bool
}

// Manager wraps scs.SessionManager with flash helpers.
type Manager struct {
	*scs.SessionManager
	store *sqlite3store.SQLite3Store
}

// New creates a session manager. sqlDB should be the *sql.DB behind gorm so
// sessions live in the catalog database.
func New(sqlDB *sql.DB, opts Options) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	if opts.Lifetime <= 0 {
		opts.Lifetime = 24 * time.Hour
	}

	store := sqlite3store.New(sqlDB)

	sm := scs.New()
	sm.Store = store
	sm.Lifetime = opts.Lifetime
	sm.Cookie.Name = "catalog_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = opts.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm, store: store}, nil
}

// Close stops the store's expired-session cleanup goroutine.
func (m *Manager) Close() {
	m.store.StopCleanup()
}

// Flash stores a message to be shown on the next rendered page.
func (m *Manager) Flash(c *gin.Context, message string) {
	m.Put(c.Request.Context(), keyFlash, message)
}

// PopFlash returns and clears the pending flash message.
func (m *Manager) PopFlash(c *gin.Context) string {
	return m.PopString(c.Request.Context(), keyFlash)
}
