package books

import (
	"context"
	"errors"
	"sync"
	"time"
)

var _ booksRepo = (*repoMock)(nil)

type repoMock struct {
	Books  map[int]*Book
	nextID int
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Books:  make(map[int]*Book),
		nextID: 1,
	}
}

func (r *repoMock) BooksCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.Books)
}

func (r *repoMock) AddBook(_ context.Context, book *Book) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, b := range r.Books {
		if b.Title == book.Title && b.Author == book.Author {
			return errors.New("book exists already")
		}
	}

	book.ID = r.nextID
	r.nextID++
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}
	if book.IsFree {
		book.Price = 0
	}

	r.Books[book.ID] = book
	return nil
}

func (r *repoMock) UpdateBook(_ context.Context, book *Book) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored, ok := r.Books[book.ID]
	if !ok {
		return ErrBookNotFound
	}

	book.CreatedAt = stored.CreatedAt
	if book.IsFree {
		book.Price = 0
	}
	r.Books[book.ID] = book
	return nil
}

func (r *repoMock) DeleteBook(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.Books[id]; !ok {
		return ErrBookNotFound
	}

	delete(r.Books, id)
	return nil
}

func (r *repoMock) GetBook(_ context.Context, id int) (*Book, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	book, ok := r.Books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	return book, nil
}

func (r *repoMock) All(_ context.Context) ([]*Book, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var all []*Book
	for id := range r.Books {
		all = append(all, r.Books[id])
	}
	return all, nil
}

func (r *repoMock) Categories(_ context.Context) ([]string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	seen := make(map[string]struct{})
	var categories []string
	for _, b := range r.Books {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		categories = append(categories, b.Category)
	}
	return categories, nil
}
