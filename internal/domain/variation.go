package domain

import "time"

// Category groups the fixed variation set for presentation.
type Category string

const (
	CategoryHeroShots        Category = "hero_shots"
	CategorySiteContext      Category = "site_context"
	CategoryFeatures         Category = "architectural_features"
	CategoryInteriors        Category = "interior_spaces"
	CategorySpatial          Category = "spatial_experience"
	CategoryLifestyle        Category = "lifestyle_atmosphere"
)

// PassThreshold is the strict consistency bar: a score of exactly 80 fails.
const PassThreshold = 80

// VariationResult is one generated deliverable in a job's manifest.
type VariationResult struct {
	ID             string         `json:"id"`
	VariationName  string         `json:"variationType"`
	Category       Category       `json:"category"`
	Name           string         `json:"name"`
	Filename       string         `json:"filename"`
	URL            string         `json:"url"`
	IsHero         bool           `json:"isHero"`
	Score          int            `json:"consistencyScore"`
	ScoreBreakdown map[string]int `json:"scoreBreakdown,omitempty"`
	Attempts       int            `json:"attempts"`
	LowConfidence  bool           `json:"lowConfidence"`
	AspectRatio    string         `json:"aspectRatio"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Passed reports whether the result cleared the strict consistency threshold.
func (v VariationResult) Passed() bool {
	return v.Score > PassThreshold
}
