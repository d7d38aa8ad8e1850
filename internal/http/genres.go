package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locallibrary/catalog/internal/entities"
	"github.com/locallibrary/catalog/internal/forms"
)

var genreRules = []forms.Rule{
	{Field: "name", Message: "Genre name must be between 3 and 100 characters", Tag: "min=3,max=100"},
}

type GenresController struct {
	genres GenreStore
	books  BookStore
}

func NewGenresController(genres GenreStore, books BookStore) *GenresController {
	return &GenresController{genres: genres, books: books}
}

// List renders every genre sorted by name.
// GET /genres
func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.genres.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "genre_list", gin.H{"Title": "Genre List", "Genres": genres})
}

// Detail renders a genre with the books carrying it.
// GET /genre/:id
func (gc *GenresController) Detail(c *gin.Context) {
	genre, books, err := gc.withBooks(c)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "genre_detail", gin.H{"Title": "Genre Detail", "Genre": genre, "Books": books})
}

// CreateForm renders an empty genre form.
// GET /genre/create
func (gc *GenresController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "genre_form", gin.H{"Title": "Create Genre", "Genre": &entities.Genre{}})
}

// Create stores a new genre. Submitting a name that already exists redirects
// to the existing genre instead.
// POST /genre/create
func (gc *GenresController) Create(c *gin.Context) {
	ctx := c.Request.Context()
	result := forms.Check(forms.Values(c, "name"), genreRules)
	genre := &entities.Genre{Name: result.Get("name")}

	if !result.Valid() {
		render(c, http.StatusOK, "genre_form", gin.H{"Title": "Create Genre", "Genre": genre, "Errors": result.Errors})
		return
	}

	existing, err := gc.genres.FindByName(ctx, genre.Name)
	if err != nil {
		fail(c, err)
		return
	}
	if existing != nil {
		redirect(c, existing.URL())
		return
	}

	if err := gc.genres.Create(ctx, genre); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Genre created")
	redirect(c, genre.URL())
}

// UpdateForm renders the form pre-filled with the stored genre.
// GET /genre/:id/update
func (gc *GenresController) UpdateForm(c *gin.Context) {
	genre, err := gc.genres.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "genre_form", gin.H{"Title": "Update Genre", "Genre": genre})
}

// Update renames the genre. When any genre already has the submitted name the
// client is sent there and nothing changes.
// POST /genre/:id/update
func (gc *GenresController) Update(c *gin.Context) {
	ctx := c.Request.Context()
	result := forms.Check(forms.Values(c, "name"), genreRules)
	genre := &entities.Genre{ID: c.Param("id"), Name: result.Get("name")}

	if !result.Valid() {
		render(c, http.StatusOK, "genre_form", gin.H{"Title": "Update Genre", "Genre": genre, "Errors": result.Errors})
		return
	}

	existing, err := gc.genres.FindByName(ctx, genre.Name)
	if err != nil {
		fail(c, err)
		return
	}
	if existing != nil {
		redirect(c, existing.URL())
		return
	}

	if err := gc.genres.Update(ctx, genre); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Genre updated")
	redirect(c, genre.URL())
}

// DeleteForm lists the books that block deleting the genre.
// GET /genre/:id/delete
func (gc *GenresController) DeleteForm(c *gin.Context) {
	genre, books, err := gc.withBooks(c)
	if isNotFound(err) {
		redirect(c, "/genres")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "genre_delete", gin.H{"Title": "Delete Genre", "Genre": genre, "Books": books})
}

// Delete removes the genre unless books still carry it.
// POST /genre/:id/delete
func (gc *GenresController) Delete(c *gin.Context) {
	genre, books, err := gc.withBooks(c)
	if isNotFound(err) {
		redirect(c, "/genres")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "genre_delete", gin.H{"Title": "Delete Genre", "Genre": genre, "Books": books})
		return
	}

	if err := gc.genres.Delete(c.Request.Context(), genre.ID); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Genre deleted")
	redirect(c, "/genres")
}

func (gc *GenresController) withBooks(c *gin.Context) (*entities.Genre, []entities.Book, error) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var genre *entities.Genre
	var books []entities.Book
	err := fetchAll(
		func() (err error) {
			genre, err = gc.genres.FindByID(ctx, id)
			return err
		},
		func() (err error) {
			books, err = gc.books.FindByGenre(ctx, id)
			return err
		},
	)
	return genre, books, err
}
