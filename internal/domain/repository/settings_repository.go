package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"
)

type SettingsRepository interface {
	// Get returns the single settings row, common.ErrNotFound when no
	// admin has saved settings yet.
	Get(ctx context.Context) (*model.SiteSettings, error)
	Upsert(ctx context.Context, settings *model.SiteSettings) error
}

type pgSettingsRepository struct {
	db *sql.DB
}

func NewPgSettingsRepository(db *sql.DB) SettingsRepository {
	return &pgSettingsRepository{db: db}
}

// settingsRowID pins the singleton row; every upsert targets it.
const settingsRowID = "site"

func (r *pgSettingsRepository) Get(ctx context.Context) (*model.SiteSettings, error) {
	query := `SELECT id, hero_title, hero_subtitle, hero_image_url, about_text, services, contact_email, contact_phone, social_links, updated_at
	          FROM site_settings WHERE id = $1`
	settings := &model.SiteSettings{}
	var servicesJSON, socialJSON []byte
	err := r.db.QueryRowContext(ctx, query, settingsRowID).Scan(
		&settings.ID, &settings.HeroTitle, &settings.HeroSubtitle, &settings.HeroImageURL,
		&settings.AboutText, &servicesJSON, &settings.ContactEmail, &settings.ContactPhone,
		&socialJSON, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSettingsRepository.Get: %w", err)
	}
	if len(servicesJSON) > 0 {
		if err := json.Unmarshal(servicesJSON, &settings.Services); err != nil {
			return nil, fmt.Errorf("unmarshal services: %w", err)
		}
	}
	if len(socialJSON) > 0 {
		if err := json.Unmarshal(socialJSON, &settings.SocialLinks); err != nil {
			return nil, fmt.Errorf("unmarshal social links: %w", err)
		}
	}
	if settings.Services == nil {
		settings.Services = []string{}
	}
	if settings.SocialLinks == nil {
		settings.SocialLinks = []model.SocialLink{}
	}
	return settings, nil
}

func (r *pgSettingsRepository) Upsert(ctx context.Context, settings *model.SiteSettings) error {
	servicesJSON, err := json.Marshal(settings.Services)
	if err != nil {
		return fmt.Errorf("marshal services: %w", err)
	}
	socialJSON, err := json.Marshal(settings.SocialLinks)
	if err != nil {
		return fmt.Errorf("marshal social links: %w", err)
	}

	query := `INSERT INTO site_settings (id, hero_title, hero_subtitle, hero_image_url, about_text, services, contact_email, contact_phone, social_links, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (id) DO UPDATE SET
	            hero_title = EXCLUDED.hero_title,
	            hero_subtitle = EXCLUDED.hero_subtitle,
	            hero_image_url = EXCLUDED.hero_image_url,
	            about_text = EXCLUDED.about_text,
	            services = EXCLUDED.services,
	            contact_email = EXCLUDED.contact_email,
	            contact_phone = EXCLUDED.contact_phone,
	            social_links = EXCLUDED.social_links,
	            updated_at = EXCLUDED.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		settingsRowID, settings.HeroTitle, settings.HeroSubtitle, settings.HeroImageURL,
		settings.AboutText, servicesJSON, settings.ContactEmail, settings.ContactPhone,
		socialJSON, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgSettingsRepository.Upsert: %w", err)
	}
	settings.ID = settingsRowID
	return nil
}
