package prompts

import (
	"fmt"
	"strings"

	"showcase/internal/domain"
)

// StyleAnalysisPrompt asks the vision model to extract the visual DNA of an
// inspiration photograph as structured JSON.
const StyleAnalysisPrompt = `<task>
Analyze this architectural photograph as a style reference for generating a new building design.
You are extracting the visual DNA of this design to inspire a NEW building, not to copy it.
</task>

<extraction_requirements>

<architectural_style>
- Primary style classification (Modern, Contemporary, Heritage, Art Deco, Mid-Century, Brutalist, Minimalist, etc.)
- Era influence if apparent (1950s mid-century, 2020s contemporary, etc.)
- Regional influence if visible (Melbourne, Mediterranean, Japanese, Scandinavian, etc.)
- Design philosophy (clean lines, organic forms, geometric patterns, etc.)
</architectural_style>

<materials_palette>
Extract specific material details that define the aesthetic: brick colour,
bond pattern and finish; render colour and texture; timber species, orientation
and finish; metal type, colour and application; glazing extent and frame
colours. Summarize facade proportions (e.g., "60% dark brick, 25% white
render, 15% timber battens").
</materials_palette>

<design_elements>
Key architectural features that define the character:
- Roof form: flat, pitched, skillion, butterfly, parapet
- Roof materials and colour
- Cantilevers or projecting elements
- Screens or privacy elements (timber, metal, perforated)
- Voids or recesses
- Balconies: type and materials
- Entry treatment: canopy, portico, recessed
- Window patterns: regular, irregular, feature
- Garage door style and integration
</design_elements>

<colour_scheme>
- Dominant colour(s): specific shades
- Accent colours: where and what
- Warm/cool balance and contrast level
</colour_scheme>

<spatial_qualities>
- Building massing: compact, elongated, L-shaped, articulated
- Proportions: horizontal emphasis, vertical emphasis, balanced
- Solid-to-void ratio: heavy/solid, light/open, balanced
- Scale: intimate, grand, human-scale
</spatial_qualities>

<distinctive_features>
List 3-5 memorable design elements that make this building unique.
</distinctive_features>

</extraction_requirements>

<output_format>
Return a JSON object with all extracted style elements:
{
    "architectural_style": {
        "primary": "<main style>",
        "era_influence": "<if apparent>",
        "regional_influence": "<if visible>",
        "design_philosophy": "<key characteristics>"
    },
    "materials": {
        "primary_material": "<dominant material with details>",
        "secondary_material": "<second most prominent>",
        "accent_materials": ["<list of accent materials>"],
        "proportions_summary": "<e.g., 60% brick, 30% render, 10% timber>"
    },
    "design_elements": {
        "roof_form": "<description>",
        "key_features": ["<list of notable features>"],
        "window_treatment": "<description>",
        "entry_design": "<description>"
    },
    "colour_scheme": {
        "dominant_colours": ["<list with specific shades>"],
        "accent_colours": ["<if any>"],
        "temperature": "<warm/cool/neutral>",
        "contrast_level": "<high/medium/low>"
    },
    "spatial_qualities": {
        "massing": "<description>",
        "proportions": "<horizontal/vertical/balanced>",
        "solid_void_ratio": "<heavy/balanced/light>",
        "scale_feeling": "<intimate/human-scale/grand>"
    },
    "distinctive_features": ["<list 3-5 memorable elements>"],
    "style_summary": "<One paragraph describing the overall aesthetic in a way that could guide new design generation>"
}
</output_format>`

func bulletList(items []string, fallback string) string {
	if len(items) == 0 {
		return "- " + fallback
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}

// StyleTransferHeroPrompt builds the generation prompt for a new hero design
// that captures the aesthetic of an analyzed inspiration image without
// copying the source building.
func StyleTransferHeroPrompt(analysis domain.StyleAnalysis, brief string, attrs domain.Attributes, suburbContext string) string {
	projectType := DisplayProjectType(attrs.ProjectType)
	if strings.TrimSpace(brief) == "" {
		brief = fmt.Sprintf("Create a premium %s development", strings.ToLower(projectType))
	}

	materialsBlock := fmt.Sprintf(`Primary: %s
Secondary: %s
Accents: %s
Proportions: %s`,
		orDefault(analysis.Materials.PrimaryMaterial, "quality materials"),
		orDefault(analysis.Materials.SecondaryMaterial, "complementary materials"),
		strings.Join(analysis.Materials.AccentMaterials, ", "),
		orDefault(analysis.Materials.ProportionsSummary, "balanced mix"))

	return fmt.Sprintf(`<role>
You are a professional architectural visualization specialist creating a NEW building design
inspired by a reference image's style and aesthetic.

CRITICAL: You are NOT copying the inspiration building. You are creating a COMPLETELY NEW design
that captures the SPIRIT, AESTHETIC, and MATERIAL LANGUAGE of the inspiration.
</role>

<inspiration_analysis>
<style_summary>
%s
</style_summary>

<architectural_language>
Primary Style: %s
Era Influence: %s
Design Philosophy: %s
</architectural_language>

<materials_to_apply>
%s
</materials_to_apply>

<design_elements_to_incorporate>
Roof Form: %s
Key Features:
%s
Window Treatment: %s
Entry Design: %s
</design_elements_to_incorporate>

<colour_palette>
Dominant: %s, Temperature: %s
Contrast: %s
</colour_palette>

<spatial_approach>
Massing: %s
Proportions: %s
Solid-Void Ratio: %s
Scale: %s
</spatial_approach>

<distinctive_elements_to_capture>
%s
</distinctive_elements_to_capture>
</inspiration_analysis>

<project_brief>
<user_description>%s</user_description>
<type>%s</type>
<units>%d</units>
<storeys>%d</storeys>
<finish_level>%s</finish_level>
</project_brief>

<location>
%s
</location>

<critical_instructions>
CREATE A NEW BUILDING THAT:

1. CAPTURES THE AESTHETIC of the inspiration:
   - Use the SAME or SIMILAR material palette
   - Apply the SAME proportional relationships
   - Echo the DESIGN LANGUAGE (how elements are composed)
   - Match the COLOUR TEMPERATURE and contrast level

2. IS COMPLETELY UNIQUE:
   - Different building footprint and form
   - Different window arrangement (but similar style)
   - Different entry composition (but similar quality)
   - Your own interpretation of the distinctive elements

3. FITS THE CONTEXT:
   - Appropriate for %s Melbourne
   - Suitable for a %s (%d units)
   - Reflects %s finish level expectations

4. MAINTAINS QUALITY:
   - Professional architectural standard
   - Developer marketing quality
   - Suitable for realestate.com.au listings

DO NOT:
- Copy the exact building shape from the inspiration
- Replicate the same window pattern exactly
- Mirror the exact entry design
- Clone the landscaping or context
</critical_instructions>

<photorealistic_requirements>
%s
</photorealistic_requirements>

<shot_specification>
<type>Primary Facade - Hero Shot</type>
<camera>
- Eye-level perspective from footpath opposite the building
- 35mm lens equivalent, f/11 aperture for maximum sharpness
- Perfectly straight vertical lines - absolutely NO keystoning
- Two-point perspective with building centred in frame
</camera>
<composition>
- Full building visible from ground to roofline
- 20-30%% sky visible at top of frame
- Front garden, setback, and driveway included
- Melbourne suburban street context visible
</composition>
<lighting>
- Soft overcast daylight OR morning sun (not harsh midday)
- Even illumination showing materials and textures
- Subtle shadows for depth and definition
</lighting>
</shot_specification>

<output>
Generate a single photorealistic exterior photograph of this NEW building design.
The image should look like professional DSLR photography, not CGI.
</output>`,
		orDefault(analysis.StyleSummary, "Contemporary residential design"),
		orDefault(analysis.ArchitecturalStyle.Primary, "Contemporary"),
		orDefault(analysis.ArchitecturalStyle.EraInfluence, "Current"),
		orDefault(analysis.ArchitecturalStyle.DesignPhilosophy, "Quality-focused"),
		materialsBlock,
		orDefault(analysis.DesignElements.RoofForm, "Contemporary form"),
		bulletList(analysis.DesignElements.KeyFeatures, "Quality architectural detailing"),
		orDefault(analysis.DesignElements.WindowTreatment, "Well-proportioned openings"),
		orDefault(analysis.DesignElements.EntryDesign, "Welcoming threshold"),
		joinOr(analysis.ColourScheme.DominantColours, "neutral tones"),
		orDefault(analysis.ColourScheme.Temperature, "neutral"),
		orDefault(analysis.ColourScheme.ContrastLevel, "Medium"),
		orDefault(analysis.SpatialQualities.Massing, "Articulated"),
		orDefault(analysis.SpatialQualities.Proportions, "Balanced"),
		orDefault(analysis.SpatialQualities.SolidVoidRatio, "Balanced"),
		orDefault(analysis.SpatialQualities.ScaleFeeling, "Human-scale"),
		bulletList(analysis.DistinctiveFeature, "Memorable design presence"),
		brief,
		projectType,
		attrs.NumUnits,
		attrs.Storeys,
		titleCaser.String(attrs.FinishLevel),
		suburbContext,
		DisplaySuburb(attrs.Suburb),
		strings.ToLower(projectType),
		attrs.NumUnits,
		strings.ToLower(attrs.FinishLevel),
		PhotorealBlock(attrs.ProjectType, LightingDaylightSoft))
}

// WithFeedback splices user feedback into a generation prompt ahead of the
// output section so a regenerated hero addresses the requested changes.
func WithFeedback(basePrompt, feedback string) string {
	section := fmt.Sprintf(`
<user_feedback>
The previous generation was not quite right. Please make these adjustments:
%s
</user_feedback>

<regeneration_instruction>
Generate a NEW image that addresses the feedback above while maintaining:
- The same inspiration style and material language
- The same project requirements (type, units, suburb)
- Professional photorealistic quality
</regeneration_instruction>
`, feedback)

	if i := strings.LastIndex(basePrompt, "<output>"); i >= 0 {
		return basePrompt[:i] + section + basePrompt[i:]
	}
	return basePrompt + section
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
