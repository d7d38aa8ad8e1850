package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

// ErrorHandler renders the error view for anything a handler forwarded with fail.
// Untagged errors are store failures and become 500s; their details are logged, not shown.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := domainerrors.StatusOf(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Internal error (%s %s): %v", c.Request.Method, c.Request.URL.Path, err)
		}

		render(c, status, "error", gin.H{
			"Title":   http.StatusText(status),
			"Status":  status,
			"Message": domainerrors.MessageOf(err),
		})
	}
}

func notFound(c *gin.Context) {
	fail(c, domainerrors.NotFound("Page not found"))
}
