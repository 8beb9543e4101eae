package model

import (
	"time"
)

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SiteSettings is a singleton document: one row holds everything the
// public pages need.
type SiteSettings struct {
	ID           string       `json:"id"`
	HeroTitle    string       `json:"hero_title"`
	HeroSubtitle string       `json:"hero_subtitle"`
	HeroImageURL *string      `json:"hero_image_url,omitempty"`
	AboutText    string       `json:"about_text"`
	Services     []string     `json:"services"`
	ContactEmail string       `json:"contact_email"`
	ContactPhone string       `json:"contact_phone"`
	SocialLinks  []SocialLink `json:"social_links"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// DefaultSiteSettings is what the public endpoint serves before an
// admin has saved anything.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		HeroTitle:    "Built to Last. Designed to Stand Out.",
		HeroSubtitle: "Premium signage solutions and expert fabrication.",
		AboutText:    "We are a full-service creative studio.",
		Services:     []string{},
		ContactEmail: "info@example.com",
		ContactPhone: "+1 234 567 8900",
		SocialLinks:  []SocialLink{},
	}
}
