package service

import (
	"context"
	"regexp"
	"time"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"
	"studio_cms/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	ContentHTML   string   `json:"content_html"`
	Tags          []string `json:"tags"`
	CoverImageURL *string  `json:"cover_image_url,omitempty"`
	Status        string   `json:"status"`
}

type UpdatePostRequest struct {
	Title         *string   `json:"title,omitempty"`
	Slug          *string   `json:"slug,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	ContentHTML   *string   `json:"content_html,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	Status        *string   `json:"status,omitempty"`
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (*model.Post, error) {
	if req.Title == "" {
		return nil, common.Errorf("title is required: %w", common.ErrValidation)
	}
	if req.ContentHTML == "" {
		return nil, common.Errorf("content is required: %w", common.ErrValidation)
	}

	postSlug := req.Slug
	if postSlug == "" {
		postSlug = slug.Make(req.Title)
	} else if !slugPattern.MatchString(postSlug) {
		return nil, common.Errorf("slug must be lowercase with hyphens only: %w", common.ErrValidation)
	}

	status := model.PostStatus(req.Status)
	if req.Status == "" {
		status = model.PostStatusDraft
	} else if !status.Valid() {
		return nil, common.Errorf("status must be draft or published: %w", common.ErrValidation)
	}

	now := time.Now()
	post := &model.Post{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Slug:          postSlug,
		Excerpt:       req.Excerpt,
		ContentHTML:   req.ContentHTML,
		Tags:          req.Tags,
		CoverImageURL: req.CoverImageURL,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if status == model.PostStatusPublished {
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, common.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// ListPosts is the admin listing: drafts included, optional status
// filter, newest first.
func (s *PostService) ListPosts(ctx context.Context, status string, page, pageSize int) ([]model.Post, int, error) {
	filter := model.PostStatus(status)
	if status != "" && status != "all" && !filter.Valid() {
		return nil, 0, common.Errorf("unknown status filter %q: %w", status, common.ErrValidation)
	}
	if status == "all" {
		filter = ""
	}
	posts, total, err := s.postRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, common.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

func (s *PostService) ListPublishedPosts(ctx context.Context, page, pageSize int) ([]model.Post, int, error) {
	posts, total, err := s.postRepo.ListPublished(ctx, page, pageSize)
	if err != nil {
		return nil, 0, common.Errorf("failed to list published posts: %w", err)
	}
	return posts, total, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetPublishedPost is the public lookup: drafts are indistinguishable
// from missing posts.
func (s *PostService) GetPublishedPost(ctx context.Context, postSlug string) (*model.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if post.Status != model.PostStatusPublished {
		return nil, common.ErrNotFound
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, common.Errorf("title cannot be empty: %w", common.ErrValidation)
		}
		post.Title = *req.Title
	}
	if req.Slug != nil {
		if !slugPattern.MatchString(*req.Slug) {
			return nil, common.Errorf("slug must be lowercase with hyphens only: %w", common.ErrValidation)
		}
		post.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.ContentHTML != nil {
		if *req.ContentHTML == "" {
			return nil, common.Errorf("content cannot be empty: %w", common.ErrValidation)
		}
		post.ContentHTML = *req.ContentHTML
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.CoverImageURL != nil {
		post.CoverImageURL = req.CoverImageURL
	}
	if req.Status != nil {
		status := model.PostStatus(*req.Status)
		if !status.Valid() {
			return nil, common.Errorf("status must be draft or published: %w", common.ErrValidation)
		}
		// First transition to published stamps publishedAt; it is
		// never reset afterwards.
		if status == model.PostStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = status
	}
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, common.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	return s.postRepo.Delete(ctx, id)
}
