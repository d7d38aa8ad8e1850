package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/locallibrary/catalog/internal/entities"
	"github.com/locallibrary/catalog/internal/forms"
)

var instanceFields = []string{"book", "imprint", "due_back", "status"}

var instanceRules = []forms.Rule{
	{Field: "book", Message: "Book must be specified", Tag: "required"},
	{Field: "imprint", Message: "Imprint must be specified", Tag: "required"},
	{Field: "due_back", Message: "Invalid date", Tag: "omitempty,datetime=2006-01-02"},
	{Field: "status", Message: "Invalid status", Tag: "omitempty,oneof=Available Maintenance Loaned Reserved"},
}

type BookInstancesController struct {
	instances BookInstanceStore
	books     BookStore
}

func NewBookInstancesController(instances BookInstanceStore, books BookStore) *BookInstancesController {
	return &BookInstancesController{instances: instances, books: books}
}

// List renders every copy with its book.
// GET /bookinstances
func (ic *BookInstancesController) List(c *gin.Context) {
	instances, err := ic.instances.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "bookinstance_list", gin.H{"Title": "Book Instance List", "Instances": instances})
}

// GET /bookinstance/:id
func (ic *BookInstancesController) Detail(c *gin.Context) {
	instance, err := ic.instances.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "bookinstance_detail", gin.H{"Title": "Copy: " + instance.Book.Title, "Instance": instance})
}

// GET /bookinstance/create
func (ic *BookInstancesController) CreateForm(c *gin.Context) {
	ic.renderForm(c, "Create BookInstance", &entities.BookInstance{}, forms.Result{})
}

// Create validates the form and stores a new copy.
// POST /bookinstance/create
func (ic *BookInstancesController) Create(c *gin.Context) {
	instance, result := instanceFromForm(c)

	if !result.Valid() {
		ic.renderForm(c, "Create BookInstance", instance, result)
		return
	}

	if err := ic.instances.Create(c.Request.Context(), instance); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Book copy created")
	redirect(c, instance.URL())
}

// GET /bookinstance/:id/update
func (ic *BookInstancesController) UpdateForm(c *gin.Context) {
	instance, err := ic.instances.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ic.renderForm(c, "Update BookInstance", instance, forms.Result{})
}

// Update validates the form and overwrites the copy in place.
// POST /bookinstance/:id/update
func (ic *BookInstancesController) Update(c *gin.Context) {
	instance, result := instanceFromForm(c)
	instance.ID = c.Param("id")

	if !result.Valid() {
		ic.renderForm(c, "Update BookInstance", instance, result)
		return
	}

	if err := ic.instances.Update(c.Request.Context(), instance); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Book copy updated")
	redirect(c, instance.URL())
}

// Copies have no dependents, so the confirmation only shows the copy.
// GET /bookinstance/:id/delete
func (ic *BookInstancesController) DeleteForm(c *gin.Context) {
	instance, err := ic.instances.FindByID(c.Request.Context(), c.Param("id"))
	if isNotFound(err) {
		redirect(c, "/bookinstances")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "bookinstance_delete", gin.H{"Title": "Delete BookInstance", "Instance": instance})
}

// POST /bookinstance/:id/delete
func (ic *BookInstancesController) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	instance, err := ic.instances.FindByID(ctx, c.Param("id"))
	if isNotFound(err) {
		redirect(c, "/bookinstances")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	if err := ic.instances.Delete(ctx, instance.ID); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Book copy deleted")
	redirect(c, "/bookinstances")
}

// renderForm shows the copy form. A failed submission passes its result so
// the typed values, including an invalid due date, are shown again.
func (ic *BookInstancesController) renderForm(c *gin.Context, title string, instance *entities.BookInstance, result forms.Result) {
	books, err := ic.books.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	render(c, http.StatusOK, "bookinstance_form", gin.H{
		"Title":    title,
		"Instance": instance,
		"Books":    books,
		"Statuses": entities.Statuses(),
		"Input":    result.Values,
		"Errors":   result.Errors,
	})
}

// instanceFromForm applies the defaults for a blank due date and status.
func instanceFromForm(c *gin.Context) (*entities.BookInstance, forms.Result) {
	result := forms.Check(forms.Values(c, instanceFields...), instanceRules)

	instance := &entities.BookInstance{
		BookID:  result.Get("book"),
		Imprint: result.Get("imprint"),
		DueBack: time.Now(),
		Status:  entities.StatusMaintenance,
	}
	if d, err := forms.ParseDate(result.Get("due_back")); err == nil && d != nil {
		instance.DueBack = *d
	}
	if !result.Has("status") && result.Get("status") != "" {
		instance.Status = entities.BookInstanceStatus(result.Get("status"))
	}
	return instance, result
}
