package blog

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
	ErrPostNotFound            = errors.New("blog post not found")
	ErrPostTitleOrContentEmpty = errors.New("blog post title or content empty")
)

type Post struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Excerpt          string    `json:"excerpt"`
	Published        bool      `json:"published"`
	FeaturedImageURL string    `json:"featured_image_url"`
	Tags             []string  `json:"tags"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

var _ blogRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddPost(ctx context.Context, post *Post) error {
	if post.Content == "" || post.Title == "" {
		return ErrPostTitleOrContentEmpty
	}

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO blog_posts
			(title, content, excerpt, published, featured_image_url, tags, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`,
		post.Title, post.Content, post.Excerpt, post.Published,
		post.FeaturedImageURL, post.Tags, post.CreatedAt, post.UpdatedAt,
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
			post.ID = id
			return nil
		}
	}

	return errors.New("unexpected error, failed to insert blog post")
}

// UpdatePost updates everything except createdAt, and bumps updatedAt
func (r *Repo) UpdatePost(ctx context.Context, post *Post) error {
	if post.Content == "" || post.Title == "" {
		return ErrPostTitleOrContentEmpty
	}

	post.UpdatedAt = time.Now()
	if post.Tags == nil {
		post.Tags = []string{}
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE blog_posts
			SET title = $1, content = $2, excerpt = $3, published = $4,
				featured_image_url = $5, tags = $6, updated_at = $7
			WHERE id = $8`,
		post.Title, post.Content, post.Excerpt, post.Published,
		post.FeaturedImageURL, post.Tags, post.UpdatedAt, post.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *Repo) DeletePost(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *Repo) GetPost(ctx context.Context, id int) (*Post, error) {
	log.Tracef("getting blog post %d", id)

	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.GetPost")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	row := r.db.QueryRow(
		ctx,
		`SELECT id, title, content, excerpt, published, featured_image_url, tags, created_at, updated_at
			FROM blog_posts WHERE id = $1`,
		id,
	)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (r *Repo) All(ctx context.Context) ([]*Post, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.All")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, content, excerpt, published, featured_image_url, tags, created_at, updated_at
			FROM blog_posts ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2posts(rows)
}

func (r *Repo) AllPublished(ctx context.Context) ([]*Post, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.AllPublished")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, content, excerpt, published, featured_image_url, tags, created_at, updated_at
			FROM blog_posts WHERE published = true ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2posts(rows)
}

func scanPost(row pgx.Row) (*Post, error) {
	var post Post
	if err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Excerpt, &post.Published,
		&post.FeaturedImageURL, &post.Tags, &post.CreatedAt, &post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func rows2posts(rows pgx.Rows) ([]*Post, error) {
	var posts []*Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
