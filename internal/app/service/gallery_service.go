package service

import (
	"context"
	"net/url"
	"time"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"
	"studio_cms/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type GalleryService struct {
	galleryRepo repository.GalleryRepository
}

func NewGalleryService(galleryRepo repository.GalleryRepository) *GalleryService {
	return &GalleryService{galleryRepo: galleryRepo}
}

type CreateAlbumRequest struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	SortOrder     int     `json:"sort_order"`
}

type UpdateAlbumRequest struct {
	Title         *string `json:"title,omitempty"`
	Slug          *string `json:"slug,omitempty"`
	Description   *string `json:"description,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	SortOrder     *int    `json:"sort_order,omitempty"`
}

type AddImageRequest struct {
	ImageURL  string `json:"image_url"`
	ThumbURL  string `json:"thumb_url"`
	Caption   string `json:"caption"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
}

type UpdateImageRequest struct {
	Caption   *string `json:"caption,omitempty"`
	AltText   *string `json:"alt_text,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// AlbumWithImages is the public album detail payload.
type AlbumWithImages struct {
	Album  *model.GalleryAlbum  `json:"album"`
	Images []model.GalleryImage `json:"images"`
}

func (s *GalleryService) CreateAlbum(ctx context.Context, req CreateAlbumRequest) (*model.GalleryAlbum, error) {
	if req.Title == "" {
		return nil, common.Errorf("title is required: %w", common.ErrValidation)
	}
	albumSlug := req.Slug
	if albumSlug == "" {
		albumSlug = slug.Make(req.Title)
	} else if !slugPattern.MatchString(albumSlug) {
		return nil, common.Errorf("slug must be lowercase with hyphens only: %w", common.ErrValidation)
	}
	if req.SortOrder < 0 {
		return nil, common.Errorf("sort order cannot be negative: %w", common.ErrValidation)
	}

	now := time.Now()
	album := &model.GalleryAlbum{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Slug:          albumSlug,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		SortOrder:     req.SortOrder,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.galleryRepo.CreateAlbum(ctx, album); err != nil {
		return nil, common.Errorf("failed to create album: %w", err)
	}
	return album, nil
}

func (s *GalleryService) ListAlbums(ctx context.Context) ([]model.GalleryAlbum, error) {
	albums, err := s.galleryRepo.ListAlbums(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}

func (s *GalleryService) GetAlbum(ctx context.Context, id string) (*model.GalleryAlbum, error) {
	return s.galleryRepo.GetAlbumByID(ctx, id)
}

// GetAlbumBySlug returns the album plus its images, the shape the
// public gallery page consumes.
func (s *GalleryService) GetAlbumBySlug(ctx context.Context, albumSlug string) (*AlbumWithImages, error) {
	album, err := s.galleryRepo.GetAlbumBySlug(ctx, albumSlug)
	if err != nil {
		return nil, err
	}
	images, err := s.galleryRepo.ListImagesByAlbum(ctx, album.ID)
	if err != nil {
		return nil, common.Errorf("failed to list album images: %w", err)
	}
	return &AlbumWithImages{Album: album, Images: images}, nil
}

func (s *GalleryService) UpdateAlbum(ctx context.Context, id string, req UpdateAlbumRequest) (*model.GalleryAlbum, error) {
	album, err := s.galleryRepo.GetAlbumByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, common.Errorf("title cannot be empty: %w", common.ErrValidation)
		}
		album.Title = *req.Title
	}
	if req.Slug != nil {
		if !slugPattern.MatchString(*req.Slug) {
			return nil, common.Errorf("slug must be lowercase with hyphens only: %w", common.ErrValidation)
		}
		album.Slug = *req.Slug
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.CoverImageURL != nil {
		album.CoverImageURL = req.CoverImageURL
	}
	if req.SortOrder != nil {
		if *req.SortOrder < 0 {
			return nil, common.Errorf("sort order cannot be negative: %w", common.ErrValidation)
		}
		album.SortOrder = *req.SortOrder
	}
	album.UpdatedAt = time.Now()

	if err := s.galleryRepo.UpdateAlbum(ctx, album); err != nil {
		return nil, common.Errorf("failed to update album: %w", err)
	}
	return album, nil
}

func (s *GalleryService) DeleteAlbum(ctx context.Context, id string) error {
	return s.galleryRepo.DeleteAlbum(ctx, id)
}

func (s *GalleryService) AddImage(ctx context.Context, albumID string, req AddImageRequest) (*model.GalleryImage, error) {
	if _, err := url.ParseRequestURI(req.ImageURL); err != nil {
		return nil, common.Errorf("invalid image URL: %w", common.ErrValidation)
	}
	if req.SortOrder < 0 {
		return nil, common.Errorf("sort order cannot be negative: %w", common.ErrValidation)
	}
	if _, err := s.galleryRepo.GetAlbumByID(ctx, albumID); err != nil {
		return nil, err
	}

	thumbURL := req.ThumbURL
	if thumbURL == "" {
		thumbURL = req.ImageURL
	}

	now := time.Now()
	image := &model.GalleryImage{
		ID:        uuid.NewString(),
		AlbumID:   albumID,
		ImageURL:  req.ImageURL,
		ThumbURL:  thumbURL,
		Caption:   req.Caption,
		AltText:   req.AltText,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.galleryRepo.AddImage(ctx, image); err != nil {
		return nil, common.Errorf("failed to add image: %w", err)
	}
	return image, nil
}

func (s *GalleryService) ListImages(ctx context.Context, albumID string) ([]model.GalleryImage, error) {
	images, err := s.galleryRepo.ListImagesByAlbum(ctx, albumID)
	if err != nil {
		return nil, common.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

func (s *GalleryService) UpdateImage(ctx context.Context, id string, req UpdateImageRequest) (*model.GalleryImage, error) {
	image, err := s.galleryRepo.GetImageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Caption != nil {
		image.Caption = *req.Caption
	}
	if req.AltText != nil {
		image.AltText = *req.AltText
	}
	if req.SortOrder != nil {
		if *req.SortOrder < 0 {
			return nil, common.Errorf("sort order cannot be negative: %w", common.ErrValidation)
		}
		image.SortOrder = *req.SortOrder
	}
	image.UpdatedAt = time.Now()

	if err := s.galleryRepo.UpdateImage(ctx, image); err != nil {
		return nil, common.Errorf("failed to update image: %w", err)
	}
	return image, nil
}

func (s *GalleryService) DeleteImage(ctx context.Context, id string) error {
	return s.galleryRepo.DeleteImage(ctx, id)
}
