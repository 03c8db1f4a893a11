package requests

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelic/bookstand/internal/telemetry/tracing"
)

var (
	ErrRequestNotFound      = errors.New("book request not found")
	ErrRequestFieldsMissing = errors.New("book request name, email or message missing")
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

type BookRequest struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	BookTitle string    `json:"book_title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

var _ requestsRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, request *BookRequest) error {
	if request.Name == "" || request.Email == "" || request.Message == "" {
		return ErrRequestFieldsMissing
	}

	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	if request.Status == "" {
		request.Status = StatusPending
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO book_requests (name, email, message, book_title, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		request.Name, request.Email, request.Message,
		request.BookTitle, request.Status, request.CreatedAt,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return err
	}

	if rows.Next() {
		var id int
		if err := rows.Scan(&id); err == nil {
			request.ID = id
			return nil
		}
	}

	return errors.New("unexpected error, failed to insert book request")
}

func (r *Repo) All(ctx context.Context) ([]*BookRequest, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "requestsRepo.All")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, email, message, book_title, status, created_at
			FROM book_requests ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var all []*BookRequest
	for rows.Next() {
		var req BookRequest
		if err := rows.Scan(
			&req.ID, &req.Name, &req.Email, &req.Message,
			&req.BookTitle, &req.Status, &req.CreatedAt,
		); err != nil {
			return nil, err
		}
		all = append(all, &req)
	}

	return all, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*BookRequest, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, name, email, message, book_title, status, created_at
			FROM book_requests WHERE id = $1`,
		id,
	)

	var req BookRequest
	if err := row.Scan(
		&req.ID, &req.Name, &req.Email, &req.Message,
		&req.BookTitle, &req.Status, &req.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &req, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE book_requests SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}
