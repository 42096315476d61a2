package domain

import "strings"

// Project types form a closed set; anything else degrades to dual occupancy.
const (
	ProjectDualOccupancy = "dual_occupancy"
	ProjectTownhouses    = "townhouses"
	ProjectApartments    = "apartments"
)

// Finish levels recognized by the brief parser.
const (
	FinishStandard = "standard"
	FinishPremium  = "premium"
	FinishLuxury   = "luxury"
)

// DefaultSuburb anchors generation when no suburb was parsed or supplied.
const DefaultSuburb = "balwyn"

// Attributes are the structured project details extracted from a brief or
// derived from an inspiration image. Mutable until the hero is finalized.
type Attributes struct {
	ProjectType     string   `json:"project_type"`
	Suburb          string   `json:"suburb,omitempty"`
	NumUnits        int      `json:"num_units,omitempty"`
	Storeys         int      `json:"storeys,omitempty"`
	StyleKeywords   []string `json:"style_keywords,omitempty"`
	Materials       []string `json:"materials,omitempty"`
	SpecialFeatures []string `json:"special_features,omitempty"`
	FinishLevel     string   `json:"finish_level,omitempty"`
	Summary         string   `json:"summary,omitempty"`
}

// ApplyDefaults fills unset fields with the degraded-mode values used when
// parsing could not determine them.
func (a *Attributes) ApplyDefaults() {
	if !ValidProjectType(a.ProjectType) {
		a.ProjectType = ProjectDualOccupancy
	}
	if strings.TrimSpace(a.Suburb) == "" {
		a.Suburb = DefaultSuburb
	}
	if a.NumUnits <= 0 {
		a.NumUnits = 2
	}
	if a.Storeys <= 0 {
		a.Storeys = 2
	}
	if len(a.StyleKeywords) == 0 {
		a.StyleKeywords = []string{"modern", "contemporary"}
	}
	if len(a.Materials) == 0 {
		a.Materials = []string{"brick", "render"}
	}
	if a.FinishLevel == "" {
		a.FinishLevel = FinishPremium
	}
}

// ApplyOverrides replaces parsed values with explicit caller-supplied ones.
// Overrides always win over parsed values.
func (a *Attributes) ApplyOverrides(projectType, suburb string) {
	if ValidProjectType(projectType) {
		a.ProjectType = projectType
	}
	if strings.TrimSpace(suburb) != "" {
		a.Suburb = NormalizeSuburb(suburb)
	}
}

// MultiUnit reports whether the project gets the two extra multi-unit shots.
func (a Attributes) MultiUnit() bool {
	if a.ProjectType == ProjectApartments {
		return true
	}
	return a.ProjectType == ProjectTownhouses && a.NumUnits >= 3
}

// ValidProjectType checks membership in the closed project type set.
func ValidProjectType(t string) bool {
	switch t {
	case ProjectDualOccupancy, ProjectTownhouses, ProjectApartments:
		return true
	default:
		return false
	}
}

// NormalizeSuburb canonicalizes a suburb name to its gazetteer key form:
// lower case with underscores ("Balwyn North" -> "balwyn_north").
func NormalizeSuburb(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.Join(strings.Fields(s), "_")
	return s
}
