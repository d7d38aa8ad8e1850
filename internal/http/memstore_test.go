package http

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/locallibrary/catalog/internal/entities"
	domainerrors "github.com/locallibrary/catalog/internal/errors"
)

// memDB is an in-memory catalog shared by the fake stores. Set failures to
// make a named operation, e.g. "instances.FindByBook", return an error.
type memDB struct {
	mu        sync.Mutex
	seq       int
	authors   map[string]entities.Author
	genres    map[string]entities.Genre
	books     map[string]entities.Book
	instances map[string]entities.BookInstance
	failures  map[string]error
	calls     map[string]int
}

func newMemDB() *memDB {
	return &memDB{
		authors:   map[string]entities.Author{},
		genres:    map[string]entities.Genre{},
		books:     map[string]entities.Book{},
		instances: map[string]entities.BookInstance{},
		failures:  map[string]error{},
		calls:     map[string]int{},
	}
}

func (m *memDB) stores() Stores {
	return Stores{
		Authors:   &memAuthors{m},
		Genres:    &memGenres{m},
		Books:     &memBooks{m},
		Instances: &memInstances{m},
	}
}

func (m *memDB) failOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

func (m *memDB) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// fault records a call to op and returns its injected failure. Callers hold mu.
func (m *memDB) fault(op string) error {
	m.calls[op]++
	return m.failures[op]
}

func (m *memDB) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memDB) addAuthor(first, family string) entities.Author {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := entities.Author{ID: m.nextID("aut"), FirstName: first, FamilyName: family}
	m.authors[a.ID] = a
	return a
}

func (m *memDB) addGenre(name string) entities.Genre {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := entities.Genre{ID: m.nextID("gen"), Name: name}
	m.genres[g.ID] = g
	return g
}

func (m *memDB) addBook(title, authorID string, genres ...entities.Genre) entities.Book {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := entities.Book{ID: m.nextID("bok"), Title: title, AuthorID: authorID, Summary: "summary", ISBN: "isbn", Genres: genres}
	m.books[b.ID] = b
	return b
}

func (m *memDB) addInstance(bookID string, status entities.BookInstanceStatus) entities.BookInstance {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := entities.BookInstance{ID: m.nextID("ins"), BookID: bookID, Imprint: "imprint", Status: status}
	m.instances[i.ID] = i
	return i
}

func (m *memDB) genresByID(refs []entities.Genre) []entities.Genre {
	resolved := []entities.Genre{}
	for _, ref := range refs {
		if g, ok := m.genres[ref.ID]; ok {
			resolved = append(resolved, g)
		}
	}
	return resolved
}

type memAuthors struct{ db *memDB }

func (s *memAuthors) FindByID(_ context.Context, id string) (*entities.Author, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("authors.FindByID"); err != nil {
		return nil, err
	}
	a, ok := s.db.authors[id]
	if !ok {
		return nil, domainerrors.NotFound("Author not found")
	}
	return &a, nil
}

func (s *memAuthors) FindAll(_ context.Context) ([]entities.Author, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("authors.FindAll"); err != nil {
		return nil, err
	}
	authors := []entities.Author{}
	for _, a := range s.db.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].FamilyName < authors[j].FamilyName })
	return authors, nil
}

func (s *memAuthors) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("authors.Count"); err != nil {
		return 0, err
	}
	return int64(len(s.db.authors)), nil
}

func (s *memAuthors) Create(_ context.Context, author *entities.Author) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("authors.Create"); err != nil {
		return err
	}
	author.ID = s.db.nextID("aut")
	s.db.authors[author.ID] = *author
	return nil
}

func (s *memAuthors) Update(_ context.Context, author *entities.Author) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("authors.Update"); err != nil {
		return err
	}
	if _, ok := s.db.authors[author.ID]; !ok {
		return domainerrors.NotFound("Author not found")
	}
	s.db.authors[author.ID] = *author
	return nil
}

func (s *memAuthors) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("authors.Delete"); err != nil {
		return err
	}
	delete(s.db.authors, id)
	return nil
}

type memGenres struct{ db *memDB }

func (s *memGenres) FindByID(_ context.Context, id string) (*entities.Genre, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("genres.FindByID"); err != nil {
		return nil, err
	}
	g, ok := s.db.genres[id]
	if !ok {
		return nil, domainerrors.NotFound("Genre not found")
	}
	return &g, nil
}

func (s *memGenres) FindByName(_ context.Context, name string) (*entities.Genre, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("genres.FindByName"); err != nil {
		return nil, err
	}
	for _, g := range s.db.genres {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, nil
}

func (s *memGenres) FindAll(_ context.Context) ([]entities.Genre, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("genres.FindAll"); err != nil {
		return nil, err
	}
	genres := []entities.Genre{}
	for _, g := range s.db.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

func (s *memGenres) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("genres.Count"); err != nil {
		return 0, err
	}
	return int64(len(s.db.genres)), nil
}

func (s *memGenres) Create(_ context.Context, genre *entities.Genre) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("genres.Create"); err != nil {
		return err
	}
	genre.ID = s.db.nextID("gen")
	s.db.genres[genre.ID] = *genre
	return nil
}

func (s *memGenres) Update(_ context.Context, genre *entities.Genre) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("genres.Update"); err != nil {
		return err
	}
	if _, ok := s.db.genres[genre.ID]; !ok {
		return domainerrors.NotFound("Genre not found")
	}
	s.db.genres[genre.ID] = *genre
	return nil
}

func (s *memGenres) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("genres.Delete"); err != nil {
		return err
	}
	delete(s.db.genres, id)
	return nil
}

type memBooks struct{ db *memDB }

func (s *memBooks) resolve(b entities.Book) entities.Book {
	b.Author = s.db.authors[b.AuthorID]
	b.Genres = s.db.genresByID(b.Genres)
	return b
}

func (s *memBooks) FindByID(_ context.Context, id string) (*entities.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.FindByID"); err != nil {
		return nil, err
	}
	b, ok := s.db.books[id]
	if !ok {
		return nil, domainerrors.NotFound("Book not found")
	}
	b = s.resolve(b)
	return &b, nil
}

func (s *memBooks) FindAll(_ context.Context) ([]entities.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.FindAll"); err != nil {
		return nil, err
	}
	return s.filter(func(entities.Book) bool { return true }), nil
}

func (s *memBooks) FindByGenre(_ context.Context, genreID string) ([]entities.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.FindByGenre"); err != nil {
		return nil, err
	}
	return s.filter(func(b entities.Book) bool { return b.HasGenre(genreID) }), nil
}

func (s *memBooks) FindByAuthor(_ context.Context, authorID string) ([]entities.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.FindByAuthor"); err != nil {
		return nil, err
	}
	return s.filter(func(b entities.Book) bool { return b.AuthorID == authorID }), nil
}

func (s *memBooks) filter(keep func(entities.Book) bool) []entities.Book {
	books := []entities.Book{}
	for _, b := range s.db.books {
		if keep(b) {
			books = append(books, s.resolve(b))
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books
}

func (s *memBooks) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.Count"); err != nil {
		return 0, err
	}
	return int64(len(s.db.books)), nil
}

func (s *memBooks) Create(_ context.Context, book *entities.Book) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.Create"); err != nil {
		return err
	}
	book.ID = s.db.nextID("bok")
	book.Genres = s.db.genresByID(book.Genres)
	s.db.books[book.ID] = *book
	return nil
}

func (s *memBooks) Update(_ context.Context, book *entities.Book) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.Update"); err != nil {
		return err
	}
	if _, ok := s.db.books[book.ID]; !ok {
		return domainerrors.NotFound("Book not found")
	}
	book.Genres = s.db.genresByID(book.Genres)
	s.db.books[book.ID] = *book
	return nil
}

func (s *memBooks) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("books.Delete"); err != nil {
		return err
	}
	delete(s.db.books, id)
	return nil
}

type memInstances struct{ db *memDB }

func (s *memInstances) FindByID(_ context.Context, id string) (*entities.BookInstance, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.FindByID"); err != nil {
		return nil, err
	}
	i, ok := s.db.instances[id]
	if !ok {
		return nil, domainerrors.NotFound("Book copy not found")
	}
	i.Book = s.db.books[i.BookID]
	return &i, nil
}

func (s *memInstances) FindAll(_ context.Context) ([]entities.BookInstance, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.FindAll"); err != nil {
		return nil, err
	}
	return s.filter(func(entities.BookInstance) bool { return true }), nil
}

func (s *memInstances) FindByBook(_ context.Context, bookID string) ([]entities.BookInstance, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.FindByBook"); err != nil {
		return nil, err
	}
	return s.filter(func(i entities.BookInstance) bool { return i.BookID == bookID }), nil
}

func (s *memInstances) filter(keep func(entities.BookInstance) bool) []entities.BookInstance {
	instances := []entities.BookInstance{}
	for _, i := range s.db.instances {
		if keep(i) {
			i.Book = s.db.books[i.BookID]
			instances = append(instances, i)
		}
	}
	sort.Slice(instances, func(a, b int) bool { return instances[a].ID < instances[b].ID })
	return instances
}

func (s *memInstances) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.Count"); err != nil {
		return 0, err
	}
	return int64(len(s.db.instances)), nil
}

func (s *memInstances) CountByStatus(_ context.Context, status entities.BookInstanceStatus) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.CountByStatus"); err != nil {
		return 0, err
	}
	var n int64
	for _, i := range s.db.instances {
		if i.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memInstances) Create(_ context.Context, instance *entities.BookInstance) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.Create"); err != nil {
		return err
	}
	instance.ID = s.db.nextID("ins")
	s.db.instances[instance.ID] = *instance
	return nil
}

func (s *memInstances) Update(_ context.Context, instance *entities.BookInstance) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.Update"); err != nil {
		return err
	}
	if _, ok := s.db.instances[instance.ID]; !ok {
		return domainerrors.NotFound("Book copy not found")
	}
	s.db.instances[instance.ID] = *instance
	return nil
}

func (s *memInstances) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fault("instances.Delete"); err != nil {
		return err
	}
	delete(s.db.instances, id)
	return nil
}
