package domain

// StyleAnalysis is the structured style extraction from an inspiration
// photograph. It guides generation of a new design in a similar aesthetic
// without copying the source building.
type StyleAnalysis struct {
	ArchitecturalStyle ArchitecturalStyle `json:"architectural_style"`
	Materials          MaterialsPalette   `json:"materials"`
	DesignElements     DesignElements     `json:"design_elements"`
	ColourScheme       ColourScheme       `json:"colour_scheme"`
	SpatialQualities   SpatialQualities   `json:"spatial_qualities"`
	DistinctiveFeature []string           `json:"distinctive_features"`
	StyleSummary       string             `json:"style_summary"`
}

type ArchitecturalStyle struct {
	Primary           string `json:"primary"`
	EraInfluence      string `json:"era_influence"`
	RegionalInfluence string `json:"regional_influence"`
	DesignPhilosophy  string `json:"design_philosophy"`
}

type MaterialsPalette struct {
	PrimaryMaterial    string   `json:"primary_material"`
	SecondaryMaterial  string   `json:"secondary_material"`
	AccentMaterials    []string `json:"accent_materials"`
	ProportionsSummary string   `json:"proportions_summary"`
}

type DesignElements struct {
	RoofForm        string   `json:"roof_form"`
	KeyFeatures     []string `json:"key_features"`
	WindowTreatment string   `json:"window_treatment"`
	EntryDesign     string   `json:"entry_design"`
}

type ColourScheme struct {
	DominantColours []string `json:"dominant_colours"`
	AccentColours   []string `json:"accent_colours"`
	Temperature     string   `json:"temperature"`
	ContrastLevel   string   `json:"contrast_level"`
}

type SpatialQualities struct {
	Massing        string `json:"massing"`
	Proportions    string `json:"proportions"`
	SolidVoidRatio string `json:"solid_void_ratio"`
	ScaleFeeling   string `json:"scale_feeling"`
}

// DefaultStyleAnalysis degrades gracefully when the vision call fails so the
// inspiration flow can still produce a hero.
func DefaultStyleAnalysis() StyleAnalysis {
	return StyleAnalysis{
		ArchitecturalStyle: ArchitecturalStyle{
			Primary:          "Contemporary",
			EraInfluence:     "Current",
			DesignPhilosophy: "Quality-focused",
		},
		Materials: MaterialsPalette{
			PrimaryMaterial:    "quality materials",
			SecondaryMaterial:  "complementary materials",
			ProportionsSummary: "balanced mix",
		},
		DesignElements: DesignElements{
			RoofForm:        "Contemporary form",
			WindowTreatment: "Well-proportioned openings",
			EntryDesign:     "Welcoming threshold",
		},
		ColourScheme: ColourScheme{
			DominantColours: []string{"neutral tones"},
			Temperature:     "neutral",
			ContrastLevel:   "Medium",
		},
		SpatialQualities: SpatialQualities{
			Massing:        "Articulated",
			Proportions:    "Balanced",
			SolidVoidRatio: "Balanced",
			ScaleFeeling:   "Human-scale",
		},
		StyleSummary: "Contemporary residential design with a balanced material palette",
	}
}
