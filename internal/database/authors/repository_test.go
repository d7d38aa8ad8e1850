package authors

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/locallibrary/catalog/internal/database"
	"github.com/locallibrary/catalog/internal/entities"
	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "authors.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func date(s string) *time.Time {
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date("1920-01-02"), DateOfDeath: date("1992-04-06")}
	require.NoError(t, repo.Create(ctx, author))
	assert.Contains(t, author.ID, "aut-")

	found, err := repo.FindByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asimov, Isaac", found.Name())
	assert.Equal(t, "January 2nd, 1920", found.DateOfBirthFormatted())
	assert.Equal(t, "1992-04-06", found.DateOfDeathISO())
}

func TestRepository_FindAllSortedByFamilyName(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, a := range []entities.Author{
		{FirstName: "Ben", FamilyName: "Bova"},
		{FirstName: "Isaac", FamilyName: "Asimov"},
		{FirstName: "Patrick", FamilyName: "Rothfuss"},
	} {
		author := a
		require.NoError(t, repo.Create(ctx, &author))
	}

	authors, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Asimov", authors[0].FamilyName)
	assert.Equal(t, "Bova", authors[1].FamilyName)
	assert.Equal(t, "Rothfuss", authors[2].FamilyName)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepository_UpdateClearsDates(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{FirstName: "Bob", FamilyName: "Billings", DateOfBirth: date("1971-12-16")}
	require.NoError(t, repo.Create(ctx, author))

	require.NoError(t, repo.Update(ctx, &entities.Author{ID: author.ID, FirstName: "Bob", FamilyName: "Billings"}))

	found, err := repo.FindByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, found.ID)
	assert.Nil(t, found.DateOfBirth)
	assert.Empty(t, found.Lifespan())
}

func TestRepository_NotFound(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "aut-missing")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	err = repo.Update(ctx, &entities.Author{ID: "aut-missing", FirstName: "x", FamilyName: "y"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{FirstName: "Jim", FamilyName: "Jones"}
	require.NoError(t, repo.Create(ctx, author))
	require.NoError(t, repo.Delete(ctx, author.ID))

	_, err := repo.FindByID(ctx, author.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
