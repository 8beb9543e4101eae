package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/mail"
	"time"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"
	"studio_cms/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "site_settings"

// SettingsService serves the singleton site settings, with a redis
// read cache in front of the store for the public endpoint.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	rdb          *redis.Client
	cacheTTL     time.Duration
}

func NewSettingsService(settingsRepo repository.SettingsRepository, rdb *redis.Client, cacheTTL time.Duration) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, rdb: rdb, cacheTTL: cacheTTL}
}

type UpdateSettingsRequest struct {
	HeroTitle    string             `json:"hero_title"`
	HeroSubtitle string             `json:"hero_subtitle"`
	HeroImageURL *string            `json:"hero_image_url,omitempty"`
	AboutText    string             `json:"about_text"`
	Services     []string           `json:"services"`
	ContactEmail string             `json:"contact_email"`
	ContactPhone string             `json:"contact_phone"`
	SocialLinks  []model.SocialLink `json:"social_links"`
}

// GetSettings returns the stored settings, defaults when nothing has
// been saved yet. Cache errors are logged and bypassed.
func (s *SettingsService) GetSettings(ctx context.Context) (*model.SiteSettings, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			settings = model.DefaultSiteSettings()
		} else {
			return nil, common.Errorf("failed to load settings: %w", err)
		}
	}

	s.toCache(ctx, settings)
	return settings, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*model.SiteSettings, error) {
	if req.HeroTitle == "" || req.HeroSubtitle == "" || req.AboutText == "" {
		return nil, common.Errorf("hero title, hero subtitle and about text are required: %w", common.ErrValidation)
	}
	if _, err := mail.ParseAddress(req.ContactEmail); err != nil {
		return nil, common.Errorf("invalid contact email: %w", common.ErrValidation)
	}
	for _, link := range req.SocialLinks {
		if link.Platform == "" || link.URL == "" {
			return nil, common.Errorf("social links need both platform and url: %w", common.ErrValidation)
		}
	}

	settings := &model.SiteSettings{
		HeroTitle:    req.HeroTitle,
		HeroSubtitle: req.HeroSubtitle,
		HeroImageURL: req.HeroImageURL,
		AboutText:    req.AboutText,
		Services:     req.Services,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		SocialLinks:  req.SocialLinks,
		UpdatedAt:    time.Now(),
	}
	if settings.Services == nil {
		settings.Services = []string{}
	}
	if settings.SocialLinks == nil {
		settings.SocialLinks = []model.SocialLink{}
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, common.Errorf("failed to save settings: %w", err)
	}
	s.invalidate(ctx)
	return settings, nil
}

func (s *SettingsService) fromCache(ctx context.Context) *model.SiteSettings {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, settingsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN: settings cache read failed: %v", err)
		}
		return nil
	}
	settings := &model.SiteSettings{}
	if err := json.Unmarshal(raw, settings); err != nil {
		log.Printf("WARN: settings cache entry corrupt, dropping: %v", err)
		s.invalidate(ctx)
		return nil
	}
	return settings
}

func (s *SettingsService) toCache(ctx context.Context, settings *model.SiteSettings) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, settingsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		log.Printf("WARN: settings cache write failed: %v", err)
	}
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, settingsCacheKey).Err(); err != nil {
		log.Printf("WARN: settings cache invalidation failed: %v", err)
	}
}
