package service

import (
	"context"
	"io"

	"studio_cms/internal/common"
	"studio_cms/internal/platform/imagehost"
)

type UploadService struct {
	uploader imagehost.Uploader
}

func NewUploadService(uploader imagehost.Uploader) *UploadService {
	return &UploadService{uploader: uploader}
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

func (s *UploadService) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResponse, error) {
	if s.uploader == nil {
		return nil, common.Errorf("image host not configured: %w", common.ErrServiceUnavailable)
	}
	result, err := s.uploader.Upload(ctx, filename, content)
	if err != nil {
		return nil, common.Errorf("upload failed: %w: %v", common.ErrServiceUnavailable, err)
	}
	return &UploadResponse{Success: true, URL: result.URL, PublicID: result.PublicID}, nil
}
