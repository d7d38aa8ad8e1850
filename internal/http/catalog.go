package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locallibrary/catalog/internal/entities"
)

// CatalogCounts are the totals shown on the home page.
type CatalogCounts struct {
	Books              int64
	Instances          int64
	AvailableInstances int64
	Authors            int64
	Genres             int64
}

type CatalogController struct {
	stores Stores
}

func NewCatalogController(stores Stores) *CatalogController {
	return &CatalogController{stores: stores}
}

// Index shows record counts. A failed count is reported on the page instead
// of failing the request.
// GET /
func (cc *CatalogController) Index(c *gin.Context) {
	ctx := c.Request.Context()

	var counts CatalogCounts
	err := fetchAll(
		func() (err error) {
			counts.Books, err = cc.stores.Books.Count(ctx)
			return err
		},
		func() (err error) {
			counts.Instances, err = cc.stores.Instances.Count(ctx)
			return err
		},
		func() (err error) {
			counts.AvailableInstances, err = cc.stores.Instances.CountByStatus(ctx, entities.StatusAvailable)
			return err
		},
		func() (err error) {
			counts.Authors, err = cc.stores.Authors.Count(ctx)
			return err
		},
		func() (err error) {
			counts.Genres, err = cc.stores.Genres.Count(ctx)
			return err
		},
	)

	data := gin.H{
		"Title":  "Local Library Home",
		"Counts": counts,
	}
	if err != nil {
		log.Printf("Failed to load catalog counts: %v", err)
		data["Error"] = "Unable to load catalog counts."
	}

	render(c, http.StatusOK, "index", data)
}
