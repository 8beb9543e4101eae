package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type GalleryRepository interface {
	CreateAlbum(ctx context.Context, album *model.GalleryAlbum) error
	ListAlbums(ctx context.Context) ([]model.GalleryAlbum, error)
	GetAlbumByID(ctx context.Context, id string) (*model.GalleryAlbum, error)
	GetAlbumBySlug(ctx context.Context, slug string) (*model.GalleryAlbum, error)
	UpdateAlbum(ctx context.Context, album *model.GalleryAlbum) error
	// DeleteAlbum removes the album and, via FK cascade, its images.
	DeleteAlbum(ctx context.Context, id string) error

	AddImage(ctx context.Context, image *model.GalleryImage) error
	ListImagesByAlbum(ctx context.Context, albumID string) ([]model.GalleryImage, error)
	GetImageByID(ctx context.Context, id string) (*model.GalleryImage, error)
	UpdateImage(ctx context.Context, image *model.GalleryImage) error
	DeleteImage(ctx context.Context, id string) error
}

type pgGalleryRepository struct {
	db *sql.DB
}

func NewPgGalleryRepository(db *sql.DB) GalleryRepository {
	return &pgGalleryRepository{db: db}
}

const albumColumns = `id, title, slug, description, cover_image_url, sort_order, created_at, updated_at`

func scanAlbum(row interface{ Scan(...interface{}) error }) (*model.GalleryAlbum, error) {
	album := &model.GalleryAlbum{}
	err := row.Scan(
		&album.ID, &album.Title, &album.Slug, &album.Description,
		&album.CoverImageURL, &album.SortOrder, &album.CreatedAt, &album.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return album, nil
}

func (r *pgGalleryRepository) CreateAlbum(ctx context.Context, album *model.GalleryAlbum) error {
	query := `INSERT INTO gallery_albums (id, title, slug, description, cover_image_url, sort_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		album.ID, album.Title, album.Slug, album.Description,
		album.CoverImageURL, album.SortOrder, album.CreatedAt, album.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("album with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgGalleryRepository.CreateAlbum: %w", err)
	}
	return nil
}

func (r *pgGalleryRepository) ListAlbums(ctx context.Context) ([]model.GalleryAlbum, error) {
	query := `SELECT ` + albumColumns + ` FROM gallery_albums ORDER BY sort_order ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgGalleryRepository.ListAlbums: %w", err)
	}
	defer rows.Close()

	albums := []model.GalleryAlbum{}
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("pgGalleryRepository.ListAlbums scan: %w", err)
		}
		albums = append(albums, *album)
	}
	return albums, rows.Err()
}

func (r *pgGalleryRepository) GetAlbumByID(ctx context.Context, id string) (*model.GalleryAlbum, error) {
	query := `SELECT ` + albumColumns + ` FROM gallery_albums WHERE id = $1`
	album, err := scanAlbum(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgGalleryRepository.GetAlbumByID: %w", err)
	}
	return album, nil
}

func (r *pgGalleryRepository) GetAlbumBySlug(ctx context.Context, slug string) (*model.GalleryAlbum, error) {
	query := `SELECT ` + albumColumns + ` FROM gallery_albums WHERE slug = $1`
	album, err := scanAlbum(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgGalleryRepository.GetAlbumBySlug: %w", err)
	}
	return album, nil
}

func (r *pgGalleryRepository) UpdateAlbum(ctx context.Context, album *model.GalleryAlbum) error {
	query := `UPDATE gallery_albums
	          SET title = $2, slug = $3, description = $4, cover_image_url = $5, sort_order = $6, updated_at = $7
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		album.ID, album.Title, album.Slug, album.Description,
		album.CoverImageURL, album.SortOrder, album.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("album with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgGalleryRepository.UpdateAlbum: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgGalleryRepository.UpdateAlbum rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgGalleryRepository) DeleteAlbum(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgGalleryRepository.DeleteAlbum: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgGalleryRepository.DeleteAlbum rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

const imageColumns = `id, album_id, image_url, thumb_url, caption, alt_text, sort_order, created_at, updated_at`

func scanImage(row interface{ Scan(...interface{}) error }) (*model.GalleryImage, error) {
	img := &model.GalleryImage{}
	err := row.Scan(
		&img.ID, &img.AlbumID, &img.ImageURL, &img.ThumbURL,
		&img.Caption, &img.AltText, &img.SortOrder, &img.CreatedAt, &img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *pgGalleryRepository) AddImage(ctx context.Context, image *model.GalleryImage) error {
	query := `INSERT INTO gallery_images (id, album_id, image_url, thumb_url, caption, alt_text, sort_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		image.ID, image.AlbumID, image.ImageURL, image.ThumbURL,
		image.Caption, image.AltText, image.SortOrder, image.CreatedAt, image.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation: album gone
			return fmt.Errorf("album does not exist: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgGalleryRepository.AddImage: %w", err)
	}
	return nil
}

func (r *pgGalleryRepository) ListImagesByAlbum(ctx context.Context, albumID string) ([]model.GalleryImage, error) {
	query := `SELECT ` + imageColumns + ` FROM gallery_images WHERE album_id = $1 ORDER BY sort_order ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("pgGalleryRepository.ListImagesByAlbum: %w", err)
	}
	defer rows.Close()

	images := []model.GalleryImage{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("pgGalleryRepository.ListImagesByAlbum scan: %w", err)
		}
		images = append(images, *img)
	}
	return images, rows.Err()
}

func (r *pgGalleryRepository) GetImageByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	query := `SELECT ` + imageColumns + ` FROM gallery_images WHERE id = $1`
	img, err := scanImage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgGalleryRepository.GetImageByID: %w", err)
	}
	return img, nil
}

func (r *pgGalleryRepository) UpdateImage(ctx context.Context, image *model.GalleryImage) error {
	query := `UPDATE gallery_images
	          SET caption = $2, alt_text = $3, sort_order = $4, updated_at = $5
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		image.ID, image.Caption, image.AltText, image.SortOrder, image.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgGalleryRepository.UpdateImage: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgGalleryRepository.UpdateImage rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgGalleryRepository) DeleteImage(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgGalleryRepository.DeleteImage: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgGalleryRepository.DeleteImage rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
