package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/locallibrary/catalog/internal/config"
	"github.com/locallibrary/catalog/internal/database"
	"github.com/locallibrary/catalog/internal/database/authors"
	"github.com/locallibrary/catalog/internal/database/bookinstances"
	"github.com/locallibrary/catalog/internal/database/books"
	"github.com/locallibrary/catalog/internal/database/genres"
	"github.com/locallibrary/catalog/internal/entities"
	"github.com/locallibrary/catalog/internal/forms"
)

// SeedCommand populates the catalog with sample records.
type SeedCommand struct {
	DatabasePath string
	Reset        bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.Reset, "reset", false, "Remove every existing record before seeding")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with sample authors, genres, books and copies.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Start over with a fresh sample catalog:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -db ./catalog.db -reset\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("Catalog Seed")
	fmt.Println("============")

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	if cmd.Reset {
		fmt.Println("Removing existing records...")
		if err := db.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}

	summary, err := Seed(ctx, db)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d authors, %d genres, %d books and %d copies\n",
		summary.Authors, summary.Genres, summary.Books, summary.Instances)
	return nil
}

// SeedSummary counts the records a seed run created.
type SeedSummary struct {
	Authors   int
	Genres    int
	Books     int
	Instances int
}

type sampleBook struct {
	title   string
	summary string
	isbn    string
	author  int
	genres  []int
}

type sampleInstance struct {
	book    int
	imprint string
	status  entities.BookInstanceStatus
	dueBack string
}

var (
	sampleAuthors = []struct {
		first, family, born, died string
	}{
		{"Patrick", "Rothfuss", "1973-06-06", ""},
		{"Ben", "Bova", "1932-11-08", ""},
		{"Isaac", "Asimov", "1920-01-02", "1992-04-06"},
		{"Bob", "Billings", "", ""},
		{"Jim", "Jones", "1971-12-16", ""},
	}

	sampleGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}

	sampleBooks = []sampleBook{
		{
			title:   "The Name of the Wind (The Kingkiller Chronicle, #1)",
			summary: "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.",
			isbn:    "9781473211896",
			author:  0,
			genres:  []int{0},
		},
		{
			title:   "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
			summary: "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
			isbn:    "9788401352836",
			author:  0,
			genres:  []int{0},
		},
		{
			title:   "The Slow Regard of Silent Things (Kingkiller Chronicle)",
			summary: "Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.",
			isbn:    "9780756411336",
			author:  0,
			genres:  []int{0},
		},
		{
			title:   "Apes and Angels",
			summary: "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
			isbn:    "9780765379528",
			author:  1,
			genres:  []int{1},
		},
		{
			title:   "Death Wave",
			summary: "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.",
			isbn:    "9780765379504",
			author:  1,
			genres:  []int{1},
		},
		{
			title:   "Test Book 1",
			summary: "Summary of test book 1",
			isbn:    "ISBN111111",
			author:  4,
			genres:  []int{0, 1},
		},
		{
			title:   "Test Book 2",
			summary: "Summary of test book 2",
			isbn:    "ISBN222222",
			author:  4,
		},
	}

	sampleInstances = []sampleInstance{
		{book: 0, imprint: "London Gollancz, 2014.", status: entities.StatusAvailable},
		{book: 1, imprint: " Gollancz, 2011.", status: entities.StatusLoaned, dueBack: "2020-06-06"},
		{book: 2, imprint: " Gollancz, 2015."},
		{book: 3, imprint: "New York Tom Doherty Associates, 2016.", status: entities.StatusAvailable},
		{book: 3, imprint: "New York Tom Doherty Associates, 2016.", status: entities.StatusAvailable},
		{book: 3, imprint: "New York Tom Doherty Associates, 2016.", status: entities.StatusAvailable},
		{book: 4, imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", status: entities.StatusAvailable},
		{book: 4, imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", status: entities.StatusMaintenance},
		{book: 4, imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", status: entities.StatusLoaned, dueBack: "2020-06-06"},
		{book: 0, imprint: "Imprint XXX2"},
		{book: 1, imprint: "Imprint XXX3"},
	}
)

// Seed inserts the sample catalog through the repositories. Text goes through
// the same sanitizer as form input so seeded and submitted records match.
func Seed(ctx context.Context, db *database.Database) (SeedSummary, error) {
	var summary SeedSummary

	authorRepo := authors.NewRepository(db.DB)
	genreRepo := genres.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	instanceRepo := bookinstances.NewRepository(db.DB)

	createdAuthors := make([]entities.Author, 0, len(sampleAuthors))
	for _, sample := range sampleAuthors {
		born, err := forms.ParseDate(sample.born)
		if err != nil {
			return summary, err
		}
		died, err := forms.ParseDate(sample.died)
		if err != nil {
			return summary, err
		}

		author := entities.Author{
			FirstName:   forms.Sanitize(sample.first),
			FamilyName:  forms.Sanitize(sample.family),
			DateOfBirth: born,
			DateOfDeath: died,
		}
		if err := authorRepo.Create(ctx, &author); err != nil {
			return summary, fmt.Errorf("failed to create author %s: %w", sample.family, err)
		}
		createdAuthors = append(createdAuthors, author)
		summary.Authors++
	}

	createdGenres := make([]entities.Genre, 0, len(sampleGenres))
	for _, name := range sampleGenres {
		genre := entities.Genre{Name: forms.Sanitize(name)}
		if err := genreRepo.Create(ctx, &genre); err != nil {
			return summary, fmt.Errorf("failed to create genre %s: %w", name, err)
		}
		createdGenres = append(createdGenres, genre)
		summary.Genres++
	}

	createdBooks := make([]entities.Book, 0, len(sampleBooks))
	for _, sample := range sampleBooks {
		book := entities.Book{
			Title:    forms.Sanitize(sample.title),
			AuthorID: createdAuthors[sample.author].ID,
			Summary:  forms.Sanitize(sample.summary),
			ISBN:     forms.Sanitize(sample.isbn),
		}
		for _, g := range sample.genres {
			book.Genres = append(book.Genres, entities.Genre{ID: createdGenres[g].ID})
		}
		if err := bookRepo.Create(ctx, &book); err != nil {
			return summary, fmt.Errorf("failed to create book %s: %w", sample.title, err)
		}
		createdBooks = append(createdBooks, book)
		summary.Books++
	}

	for _, sample := range sampleInstances {
		instance := entities.BookInstance{
			BookID:  createdBooks[sample.book].ID,
			Imprint: forms.Sanitize(sample.imprint),
			Status:  sample.status,
		}
		if sample.dueBack != "" {
			due, err := time.Parse(forms.DateLayout, sample.dueBack)
			if err != nil {
				return summary, err
			}
			instance.DueBack = due
		}
		if err := instanceRepo.Create(ctx, &instance); err != nil {
			return summary, fmt.Errorf("failed to create copy of %s: %w", createdBooks[sample.book].Title, err)
		}
		summary.Instances++
	}

	return summary, nil
}
