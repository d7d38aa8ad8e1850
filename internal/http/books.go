package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locallibrary/catalog/internal/entities"
	"github.com/locallibrary/catalog/internal/forms"
)

var bookFields = []string{"title", "author", "summary", "isbn"}

var bookRules = []forms.Rule{
	{Field: "title", Message: "Title must not be empty.", Tag: "required"},
	{Field: "author", Message: "Author must not be empty.", Tag: "required"},
	{Field: "summary", Message: "Summary must not be empty.", Tag: "required"},
	{Field: "isbn", Message: "ISBN must not be empty.", Tag: "required"},
}

type BooksController struct {
	books     BookStore
	authors   AuthorStore
	genres    GenreStore
	instances BookInstanceStore
}

func NewBooksController(books BookStore, authors AuthorStore, genres GenreStore, instances BookInstanceStore) *BooksController {
	return &BooksController{books: books, authors: authors, genres: genres, instances: instances}
}

// List renders every book with its author.
// GET /books
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.books.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "book_list", gin.H{"Title": "Book List", "Books": books})
}

// Detail renders a book with its author, genres and copies.
// GET /book/:id
func (bc *BooksController) Detail(c *gin.Context) {
	book, instances, err := bc.withInstances(c)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "book_detail", gin.H{"Title": book.Title, "Book": book, "Instances": instances})
}

// CreateForm renders an empty book form with author and genre choices.
// GET /book/create
func (bc *BooksController) CreateForm(c *gin.Context) {
	bc.renderForm(c, "Create Book", &entities.Book{}, nil)
}

// Create validates the form and stores a new book.
// POST /book/create
func (bc *BooksController) Create(c *gin.Context) {
	book, result := bookFromForm(c)

	if !result.Valid() {
		bc.renderForm(c, "Create Book", book, result.Errors)
		return
	}

	if err := bc.books.Create(c.Request.Context(), book); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Book created")
	redirect(c, book.URL())
}

// UpdateForm renders the form with the book's current genres checked.
// GET /book/:id/update
func (bc *BooksController) UpdateForm(c *gin.Context) {
	ctx := c.Request.Context()

	var book *entities.Book
	var authors []entities.Author
	var genres []entities.Genre
	err := fetchAll(
		func() (err error) {
			book, err = bc.books.FindByID(ctx, c.Param("id"))
			return err
		},
		func() (err error) {
			authors, err = bc.authors.FindAll(ctx)
			return err
		},
		func() (err error) {
			genres, err = bc.genres.FindAll(ctx)
			return err
		},
	)
	if err != nil {
		fail(c, err)
		return
	}

	render(c, http.StatusOK, "book_form", gin.H{
		"Title":   "Update Book",
		"Book":    book,
		"Authors": authors,
		"Genres":  genreOptions(genres, book.GenreIDs()),
	})
}

// Update validates the form and overwrites the book in place.
// POST /book/:id/update
func (bc *BooksController) Update(c *gin.Context) {
	book, result := bookFromForm(c)
	book.ID = c.Param("id")

	if !result.Valid() {
		bc.renderForm(c, "Update Book", book, result.Errors)
		return
	}

	if err := bc.books.Update(c.Request.Context(), book); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Book updated")
	redirect(c, book.URL())
}

// DeleteForm lists the copies that block deleting the book.
// GET /book/:id/delete
func (bc *BooksController) DeleteForm(c *gin.Context) {
	book, instances, err := bc.withInstances(c)
	if isNotFound(err) {
		redirect(c, "/books")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "book_delete", gin.H{"Title": "Delete Book", "Book": book, "Instances": instances})
}

// Delete removes the book unless copies of it remain.
// POST /book/:id/delete
func (bc *BooksController) Delete(c *gin.Context) {
	book, instances, err := bc.withInstances(c)
	if isNotFound(err) {
		redirect(c, "/books")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	if len(instances) > 0 {
		render(c, http.StatusOK, "book_delete", gin.H{"Title": "Delete Book", "Book": book, "Instances": instances})
		return
	}

	if err := bc.books.Delete(c.Request.Context(), book.ID); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Book deleted")
	redirect(c, "/books")
}

func (bc *BooksController) withInstances(c *gin.Context) (*entities.Book, []entities.BookInstance, error) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var book *entities.Book
	var instances []entities.BookInstance
	err := fetchAll(
		func() (err error) {
			book, err = bc.books.FindByID(ctx, id)
			return err
		},
		func() (err error) {
			instances, err = bc.instances.FindByBook(ctx, id)
			return err
		},
	)
	return book, instances, err
}

// renderForm re-fetches the author and genre choices and marks the genres the
// book references.
func (bc *BooksController) renderForm(c *gin.Context, title string, book *entities.Book, errs []forms.FieldError) {
	ctx := c.Request.Context()

	var authors []entities.Author
	var genres []entities.Genre
	err := fetchAll(
		func() (err error) {
			authors, err = bc.authors.FindAll(ctx)
			return err
		},
		func() (err error) {
			genres, err = bc.genres.FindAll(ctx)
			return err
		},
	)
	if err != nil {
		fail(c, err)
		return
	}

	render(c, http.StatusOK, "book_form", gin.H{
		"Title":   title,
		"Book":    book,
		"Authors": authors,
		"Genres":  genreOptions(genres, book.GenreIDs()),
		"Errors":  errs,
	})
}

// bookFromForm normalizes the genre selection, then validates and sanitizes
// the scalar fields.
func bookFromForm(c *gin.Context) (*entities.Book, forms.Result) {
	genreIDs := forms.Normalize(c.PostFormArray("genre"))
	result := forms.Check(forms.Values(c, bookFields...), bookRules)

	book := &entities.Book{
		Title:    result.Get("title"),
		AuthorID: result.Get("author"),
		Summary:  result.Get("summary"),
		ISBN:     result.Get("isbn"),
		Genres:   genreRefs(genreIDs),
	}
	return book, result
}
