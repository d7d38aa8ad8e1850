package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

const (
	csrfTokenKey = "csrf_token"
	flasherKey   = "flasher"
)

// TemplateFuncs are the helpers available to every view.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Stored text is escaped once on the way in; re-escaping would show entities.
		"raw": func(s string) template.HTML {
			return template.HTML(s)
		},
	}
}

// render adds the CSRF token and any pending flash message, then renders the named view.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFToken"] = c.GetString(csrfTokenKey)
	if f := flasherFrom(c); f != nil {
		data["Flash"] = f.PopFlash(c)
	}
	c.HTML(status, name, data)
}

// FlashMiddleware makes f available to handlers and render.
func FlashMiddleware(f Flasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(flasherKey, f)
		c.Next()
	}
}

func flasherFrom(c *gin.Context) Flasher {
	v, ok := c.Get(flasherKey)
	if !ok {
		return nil
	}
	f, _ := v.(Flasher)
	return f
}

// flash is a no-op when no session store is configured.
func flash(c *gin.Context, message string) {
	if f := flasherFrom(c); f != nil {
		f.Flash(c, message)
	}
}
