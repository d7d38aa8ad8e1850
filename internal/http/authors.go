package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locallibrary/catalog/internal/entities"
	"github.com/locallibrary/catalog/internal/forms"
)

var authorFields = []string{"first_name", "family_name", "date_of_birth", "date_of_death"}

var authorRules = []forms.Rule{
	{Field: "first_name", Message: "First name must be specified.", Tag: "required"},
	{Field: "first_name", Message: "First name must not exceed 100 characters.", Tag: "max=100"},
	{Field: "family_name", Message: "Family name must be specified.", Tag: "required"},
	{Field: "family_name", Message: "Family name must not exceed 100 characters.", Tag: "max=100"},
	{Field: "date_of_birth", Message: "Invalid date of birth", Tag: "omitempty,datetime=2006-01-02"},
	{Field: "date_of_death", Message: "Invalid date of death", Tag: "omitempty,datetime=2006-01-02"},
}

type AuthorsController struct {
	authors AuthorStore
	books   BookStore
}

func NewAuthorsController(authors AuthorStore, books BookStore) *AuthorsController {
	return &AuthorsController{authors: authors, books: books}
}

// List renders every author sorted by family name.
// GET /authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.authors.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "author_list", gin.H{"Title": "Author List", "Authors": authors})
}

// Detail renders an author with their books.
// GET /author/:id
func (ac *AuthorsController) Detail(c *gin.Context) {
	author, books, err := ac.withBooks(c)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "author_detail", gin.H{"Title": "Author Detail", "Author": author, "Books": books})
}

// CreateForm renders an empty author form.
// GET /author/create
func (ac *AuthorsController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "author_form", gin.H{"Title": "Create Author", "Author": &entities.Author{}})
}

// Create validates the form and stores a new author.
// POST /author/create
func (ac *AuthorsController) Create(c *gin.Context) {
	result := forms.Check(forms.Values(c, authorFields...), authorRules)
	author := authorFromForm(result)

	if !result.Valid() {
		render(c, http.StatusOK, "author_form", gin.H{"Title": "Create Author", "Author": author, "Input": result.Values, "Errors": result.Errors})
		return
	}

	if err := ac.authors.Create(c.Request.Context(), author); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Author created")
	redirect(c, author.URL())
}

// UpdateForm renders the form pre-filled with the stored author.
// GET /author/:id/update
func (ac *AuthorsController) UpdateForm(c *gin.Context) {
	author, err := ac.authors.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "author_form", gin.H{"Title": "Update Author", "Author": author})
}

// Update validates the form and overwrites the author in place.
// POST /author/:id/update
func (ac *AuthorsController) Update(c *gin.Context) {
	result := forms.Check(forms.Values(c, authorFields...), authorRules)
	author := authorFromForm(result)
	author.ID = c.Param("id")

	if !result.Valid() {
		render(c, http.StatusOK, "author_form", gin.H{"Title": "Update Author", "Author": author, "Input": result.Values, "Errors": result.Errors})
		return
	}

	if err := ac.authors.Update(c.Request.Context(), author); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Author updated")
	redirect(c, author.URL())
}

// DeleteForm lists the author's books, which block deletion.
// GET /author/:id/delete
func (ac *AuthorsController) DeleteForm(c *gin.Context) {
	author, books, err := ac.withBooks(c)
	if isNotFound(err) {
		redirect(c, "/authors")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "author_delete", gin.H{"Title": "Delete Author", "Author": author, "Books": books})
}

// Delete removes the author unless books still reference them.
// POST /author/:id/delete
func (ac *AuthorsController) Delete(c *gin.Context) {
	author, books, err := ac.withBooks(c)
	if isNotFound(err) {
		redirect(c, "/authors")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "author_delete", gin.H{"Title": "Delete Author", "Author": author, "Books": books})
		return
	}

	if err := ac.authors.Delete(c.Request.Context(), author.ID); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Author deleted")
	redirect(c, "/authors")
}

func (ac *AuthorsController) withBooks(c *gin.Context) (*entities.Author, []entities.Book, error) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var author *entities.Author
	var books []entities.Book
	err := fetchAll(
		func() (err error) {
			author, err = ac.authors.FindByID(ctx, id)
			return err
		},
		func() (err error) {
			books, err = ac.books.FindByAuthor(ctx, id)
			return err
		},
	)
	return author, books, err
}

// authorFromForm builds an author from sanitized values. Dates that failed
// validation are left unset; the form shows them again from Input.
func authorFromForm(result forms.Result) *entities.Author {
	author := &entities.Author{
		FirstName:  result.Get("first_name"),
		FamilyName: result.Get("family_name"),
	}
	if d, err := forms.ParseDate(result.Get("date_of_birth")); err == nil {
		author.DateOfBirth = d
	}
	if d, err := forms.ParseDate(result.Get("date_of_death")); err == nil {
		author.DateOfDeath = d
	}
	return author
}
