package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/locallibrary/catalog/internal/entities"
	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

// fetchAll runs independent lookups concurrently and waits for all of them.
// The first failure is returned; the others are left to finish on their own.
func fetchAll(fetches ...func() error) error {
	var g errgroup.Group
	for _, fetch := range fetches {
		g.Go(fetch)
	}
	return g.Wait()
}

// fail forwards err to ErrorHandler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// isNotFound reports whether a lookup found no record.
func isNotFound(err error) bool {
	return domainerrors.Is(err, domainerrors.ErrNotFound)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// genreOptions marks every genre whose ID is among selected.
func genreOptions(genres []entities.Genre, selected []string) []entities.GenreOption {
	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	options := make([]entities.GenreOption, 0, len(genres))
	for _, g := range genres {
		options = append(options, entities.GenreOption{Genre: g, Checked: chosen[g.ID]})
	}
	return options
}

// genreRefs turns selected genre IDs into ID-only references.
func genreRefs(ids []string) []entities.Genre {
	refs := make([]entities.Genre, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, entities.Genre{ID: id})
	}
	return refs
}
