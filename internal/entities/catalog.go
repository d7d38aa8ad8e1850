package entities

import (
	"time"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"

	"github.com/locallibrary/catalog/internal/id"
)

// BookInstanceStatus is the loan state of a physical copy.
type BookInstanceStatus string

const (
	StatusAvailable   BookInstanceStatus = "Available"
	StatusMaintenance BookInstanceStatus = "Maintenance"
	StatusLoaned      BookInstanceStatus = "Loaned"
	StatusReserved    BookInstanceStatus = "Reserved"
)

// Statuses returns every instance status in display order.
func Statuses() []BookInstanceStatus {
	return []BookInstanceStatus{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}
}

const isoDate = "2006-01-02"

type Author struct {
	ID          string     `gorm:"primaryKey;size:32" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100;not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Genre struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Name      string    `gorm:"index;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Book references its author by ID and its genres through the book_genres join table.
// When a Book is built from a form, Genres holds ID-only references.
type Book struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	AuthorID  string    `gorm:"index;size:32;not null" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	ISBN      string    `gorm:"size:32;not null" json:"isbn"`
	Genres    []Genre   `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookInstance struct {
	ID        string             `gorm:"primaryKey;size:32" json:"id"`
	BookID    string             `gorm:"index;size:32;not null" json:"book_id"`
	Book      Book               `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint   string             `gorm:"size:512;not null" json:"imprint"`
	DueBack   time.Time          `json:"due_back"`
	Status    BookInstanceStatus `gorm:"index;size:20;default:'Maintenance'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}

// BeforeCreate assigns a store-generated ID. An ID that is already set is kept.
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	return assignID(&a.ID, id.PrefixAuthor)
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	return assignID(&g.ID, id.PrefixGenre)
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	return assignID(&b.ID, id.PrefixBook)
}

// BeforeCreate also applies the defaults for status and due date.
func (bi *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if bi.Status == "" {
		bi.Status = StatusMaintenance
	}
	if bi.DueBack.IsZero() {
		bi.DueBack = time.Now()
	}
	return assignID(&bi.ID, id.PrefixBookInstance)
}

func assignID(target *string, prefix string) error {
	if *target != "" {
		return nil
	}
	generated, err := id.Generate(prefix)
	if err != nil {
		return err
	}
	*target = generated
	return nil
}

// Name returns "family_name, first_name".
func (a Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) URL() string {
	return "/author/" + a.ID
}

func (a Author) DateOfBirthFormatted() string {
	return formatLong(a.DateOfBirth)
}

func (a Author) DateOfDeathFormatted() string {
	return formatLong(a.DateOfDeath)
}

// DateOfBirthISO is the YYYY-MM-DD form used to pre-fill date inputs.
func (a Author) DateOfBirthISO() string {
	return formatISO(a.DateOfBirth)
}

func (a Author) DateOfDeathISO() string {
	return formatISO(a.DateOfDeath)
}

// Lifespan renders "birth - death", leaving either side blank when unknown.
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}

func (g Genre) URL() string {
	return "/genre/" + g.ID
}

func (b Book) URL() string {
	return "/book/" + b.ID
}

// GenreIDs returns the IDs of the book's genre references.
func (b Book) GenreIDs() []string {
	ids := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// HasGenre reports whether the book references the genre with the given ID.
func (b Book) HasGenre(genreID string) bool {
	for _, g := range b.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}

func (bi BookInstance) URL() string {
	return "/bookinstance/" + bi.ID
}

func (bi BookInstance) DueBackFormatted() string {
	return formatLong(&bi.DueBack)
}

func (bi BookInstance) DueBackISO() string {
	return formatISO(&bi.DueBack)
}

// GenreOption is a genre as offered in the book form's checkbox list.
type GenreOption struct {
	Genre
	Checked bool
}

// formatLong renders dates like "January 2nd, 2006".
func formatLong(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("January ") + humanize.Ordinal(t.Day()) + t.Format(", 2006")
}

func formatISO(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(isoDate)
}
