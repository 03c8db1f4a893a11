package books

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/avelic/bookstand/internal/telemetry/tracing"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookFieldsMissing = errors.New("book title, author or category empty")
)

type Book struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	IsFree        bool      `json:"is_free"`
	Category      string    `json:"category"`
	CoverImageURL string    `json:"cover_image_url"`
	BookURL       string    `json:"book_url"`
	CreatedAt     time.Time `json:"created_at"`
}

var _ booksRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddBook(ctx context.Context, book *Book) error {
	if book.Title == "" || book.Author == "" || book.Category == "" {
		return ErrBookFieldsMissing
	}

	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}
	if book.IsFree {
		book.Price = 0
	}

	err := r.db.QueryRow(
		ctx,
		`
			INSERT INTO books
				(title, author, description, price, is_free, category, cover_image_url, book_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;
		`,
		book.Title, book.Author, book.Description, book.Price,
		book.IsFree, book.Category, book.CoverImageURL, book.BookURL, book.CreatedAt,
	).Scan(&book.ID)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repo) UpdateBook(ctx context.Context, book *Book) error {
	if book.Title == "" || book.Author == "" || book.Category == "" {
		return ErrBookFieldsMissing
	}

	if book.IsFree {
		book.Price = 0
	}

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE books SET
				title = $1, author = $2, description = $3, price = $4,
				is_free = $5, category = $6, cover_image_url = $7, book_url = $8
			WHERE id = $9;
		`,
		book.Title, book.Author, book.Description, book.Price,
		book.IsFree, book.Category, book.CoverImageURL, book.BookURL, book.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}

	return nil
}

func (r *Repo) DeleteBook(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *Repo) GetBook(ctx context.Context, id int) (*Book, error) {
	log.Tracef("getting book %d", id)

	ctx, span := tracing.GlobalTracer.Start(ctx, "booksRepo.getBook")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, title, author, description, price, is_free, category, cover_image_url, book_url, created_at
			FROM books WHERE id = $1;
		`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrBookNotFound
	}

	return scanBook(rows)
}

// All returns the whole catalog, newest first
func (r *Repo) All(ctx context.Context) ([]*Book, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "booksRepo.all")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, title, author, description, price, is_free, category, cover_image_url, book_url, created_at
			FROM books ORDER BY created_at DESC;
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2books(rows)
}

func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "booksRepo.categories")
	defer span.End()

	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM books ORDER BY category;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func scanBook(rows pgx.Rows) (*Book, error) {
	var b Book
	if err := rows.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Price,
		&b.IsFree, &b.Category, &b.CoverImageURL, &b.BookURL, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func rows2books(rows pgx.Rows) ([]*Book, error) {
	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}
