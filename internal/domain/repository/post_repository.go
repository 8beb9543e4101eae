package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	// List returns posts newest-first; status "" means all statuses.
	List(ctx context.Context, status model.PostStatus, page, pageSize int) ([]model.Post, int, error)
	// ListPublished returns published posts ordered by published_at desc.
	ListPublished(ctx context.Context, page, pageSize int) ([]model.Post, int, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

const postColumns = `id, title, slug, excerpt, content_html, tags, cover_image_url, status, published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...interface{}) error }) (*model.Post, error) {
	post := &model.Post{}
	var tagsJSON []byte
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.ContentHTML,
		&tagsJSON, &post.CoverImageURL, &post.Status, &post.PublishedAt,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return post, nil
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	query := `INSERT INTO posts (id, title, slug, excerpt, content_html, tags, cover_image_url, status, published_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.ContentHTML,
		tagsJSON, post.CoverImageURL, post.Status, post.PublishedAt,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("post with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.GetByID: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.GetBySlug: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, status model.PostStatus, page, pageSize int) ([]model.Post, int, error) {
	offset := (page - 1) * pageSize

	var total int
	var rows *sql.Rows
	var err error
	if status == "" {
		countQuery := `SELECT COUNT(*) FROM posts`
		if err = r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("pgPostRepository.List count: %w", err)
		}
		query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.db.QueryContext(ctx, query, pageSize, offset)
	} else {
		countQuery := `SELECT COUNT(*) FROM posts WHERE status = $1`
		if err = r.db.QueryRowContext(ctx, countQuery, status).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("pgPostRepository.List count: %w", err)
		}
		query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.db.QueryContext(ctx, query, status, pageSize, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List scan: %w", err)
	}
	return posts, total, nil
}

func (r *pgPostRepository) ListPublished(ctx context.Context, page, pageSize int) ([]model.Post, int, error) {
	offset := (page - 1) * pageSize

	var total int
	countQuery := `SELECT COUNT(*) FROM posts WHERE status = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, model.PostStatusPublished).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.ListPublished count: %w", err)
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY published_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, model.PostStatusPublished, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.ListPublished: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.ListPublished scan: %w", err)
	}
	return posts, total, nil
}

func collectPosts(rows *sql.Rows) ([]model.Post, error) {
	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (r *pgPostRepository) Update(ctx context.Context, post *model.Post) error {
	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	query := `UPDATE posts
	          SET title = $2, slug = $3, excerpt = $4, content_html = $5, tags = $6,
	              cover_image_url = $7, status = $8, published_at = $9, updated_at = $10
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.ContentHTML,
		tagsJSON, post.CoverImageURL, post.Status, post.PublishedAt, post.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("post with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
