package prompts

import (
	"fmt"
	"sort"
	"strings"

	"showcase/internal/domain"
)

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DisplayProjectType renders a project type key for prompts,
// for example "dual_occupancy" becomes "Dual Occupancy".
func DisplayProjectType(projectType string) string {
	return titleCaser.String(strings.ReplaceAll(projectType, "_", " "))
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// BriefParsePrompt asks the text model to extract structured project
// attributes from a free-form brief as a bare JSON object.
func BriefParsePrompt(brief string) string {
	return fmt.Sprintf(`<task>
Analyze the architectural project description and extract structured details.
</task>

<input>
%s
</input>

<output_format>
Return a single JSON object with these fields:
{
    "project_type": "dual_occupancy" | "townhouses" | "apartments",
    "suburb": "<suburb name or null if not mentioned>",
    "num_units": <number or null>,
    "storeys": <number or null>,
    "style_keywords": ["modern", "heritage", "contemporary", etc],
    "materials": ["brick", "render", "timber", "glass", etc],
    "special_features": ["cantilever", "courtyard", "rooftop", etc],
    "finish_level": "standard" | "premium" | "luxury",
    "summary": "<one sentence summary>"
}
</output_format>

<rules>
- If suburb not mentioned, set to null
- Default project_type to "dual_occupancy" if unclear
- Extract ALL mentioned materials and style keywords
- finish_level: "luxury" if premium/high-end/luxury mentioned, "standard" if basic/affordable, else "premium"
- Return ONLY the JSON object, no markdown formatting
</rules>`, brief)
}

// HeroPrompt builds the generation prompt for the primary facade shot that
// establishes the design for every later variation.
func HeroPrompt(brief string, attrs domain.Attributes, suburbContext string) string {
	return fmt.Sprintf(`<role>
You are a professional architectural photographer creating a hero image for a Melbourne property development.
</role>

<project>
<description>%s</description>
<type>%s</type>
<units>%d</units>
<storeys>%d</storeys>
<style>%s</style>
<materials>%s</materials>
<features>%s</features>
<finish_level>%s</finish_level>
</project>

<location>
%s
</location>

<photorealistic_requirements>
%s
</photorealistic_requirements>

<shot_specification>
<type>Primary Facade - Hero Shot</type>
<camera>
- Eye-level perspective from footpath opposite the building
- 35mm lens equivalent, f/11 aperture for maximum sharpness
- Perfectly straight vertical lines - absolutely NO keystoning or perspective distortion
- Two-point perspective with building centred in frame
</camera>
<composition>
- Full building visible from ground to roofline
- 20-30%% sky visible at top of frame
- Front garden, setback, and driveway included
- Street trees or landscaping framing the edges
- Melbourne suburban street context visible
</composition>
<lighting>
- Soft overcast daylight OR morning sun (not harsh midday)
- Even illumination across the facade
- Subtle shadows showing depth and material texture
</lighting>
</shot_specification>

<critical_requirements>
This is the PRIMARY HERO IMAGE that establishes the building design for all subsequent shots.
- Must be the highest quality, most compelling view
- All architectural features must be clearly visible and well-defined
- This image sets the visual standard for the entire 18-image showcase package
- Quality must match professional real estate photography on realestate.com.au
</critical_requirements>

<output>
Generate a single photorealistic exterior photograph of this building.
</output>`,
		brief,
		DisplayProjectType(attrs.ProjectType),
		attrs.NumUnits,
		attrs.Storeys,
		joinOr(attrs.StyleKeywords, "modern"),
		joinOr(attrs.Materials, "brick, render"),
		joinOr(attrs.SpecialFeatures, "quality architectural detailing"),
		titleCaser.String(attrs.FinishLevel),
		suburbContext,
		PhotorealBlock(attrs.ProjectType, LightingDaylightSoft))
}

// VariationPrompt builds the generation prompt for one non-hero shot. The
// hero image travels alongside as a reference part and its text description
// is embedded so the model holds the design constant.
func VariationPrompt(shot Shot, attrs domain.Attributes, suburbContext, heroDescription string) string {
	return fmt.Sprintf(`<role>
You are a professional architectural photographer creating a variation shot of an existing building.
The reference image shows the EXACT building you must photograph from a different angle/time/focus.
</role>

<reference_building>
%s
</reference_building>

<project>
<type>%s</type>
<style>%s</style>
<materials>%s</materials>
</project>

<location>
%s
</location>

<photorealistic_requirements>
%s
</photorealistic_requirements>

<shot_specification>
%s
</shot_specification>

<consistency_requirements>
CRITICAL - You must show the EXACT SAME BUILDING as the reference image:
- Building shape, silhouette, and massing MUST match exactly
- Materials and facade treatment MUST be identical
- Window patterns, sizes, and placements MUST be consistent
- Architectural style and detailing MUST be the same
- Roof form and materials MUST match
- Only the ANGLE, TIME OF DAY, or FOCUS changes - NOT the building design
</consistency_requirements>

<output>
Generate a single photorealistic photograph showing this exact building from the specified angle/perspective.
</output>`,
		heroDescription,
		DisplayProjectType(attrs.ProjectType),
		joinOr(attrs.StyleKeywords, "modern"),
		joinOr(attrs.Materials, "brick, render"),
		suburbContext,
		PhotorealBlock(attrs.ProjectType, shot.Lighting),
		shot.Spec)
}

// DescribeHeroPrompt asks the vision model for a reference description of
// the approved hero so every variation prompt carries the same design facts.
const DescribeHeroPrompt = `<task>
Describe this architectural photograph in precise detail for use as a reference to ensure consistency in other views of the same building.
</task>

<required_details>
1. Building shape and silhouette (outline, form, massing)
2. Number of storeys and floor-to-floor heights
3. Facade materials with specific details:
   - Brick: colour, bond pattern, texture
   - Render: colour, finish (smooth/textured)
   - Timber: species appearance, orientation (horizontal/vertical)
   - Glass: tinted/clear, frame colours
4. Window patterns: sizes, shapes, placements, frame details
5. Roof form: pitch, materials, colour
6. Entry design: door style, canopy, steps, lighting
7. Architectural style characteristics
8. Distinctive features: cantilevers, screens, voids, balconies
9. Garage doors: style, colour, number
10. Landscaping visible: plants, paving, fencing
</required_details>

<output_format>
Provide a detailed paragraph description that another AI could use to recreate this exact building from a different angle.
Be specific about proportions, colours, and spatial relationships.
</output_format>`

// DefaultHeroDescription is used when the vision call fails; generation
// continues on the reference image alone.
const DefaultHeroDescription = "Modern residential building with quality architectural detailing"

// VerifyExteriorPrompt scores an exterior variation against the hero across
// five facade-consistency axes of 0-20 points each.
func VerifyExteriorPrompt(shotName string) string {
	return fmt.Sprintf(`<task>
Compare these two architectural images and score the consistency of the generated image against the reference.
</task>

<images>
- Image 1: Original hero/reference image (the source of truth)
- Image 2: AI-generated variation (%s)
</images>

<scoring_criteria>
Score each criterion from 0-20 points:

1. BUILDING_SHAPE (0-20): Does the silhouette and overall form match?
2. ARCHITECTURAL_STYLE (0-20): Is the design language consistent?
3. MATERIALS_FACADE (0-20): Are materials, colours, and textures the same?
4. WINDOWS_OPENINGS (0-20): Do window patterns and placements match?
5. PROPORTIONS (0-20): Are scale and dimensional relationships correct?
</scoring_criteria>

<output_format>
Return ONLY a JSON object:
{
    "total_score": <sum of all criteria, 0-100>,
    "breakdown": {
        "building_shape": <0-20>,
        "architectural_style": <0-20>,
        "materials_facade": <0-20>,
        "windows_openings": <0-20>,
        "proportions": <0-20>
    },
    "issues": ["list specific inconsistencies found"],
    "suggestions": ["specific fixes to improve consistency"]
}
</output_format>`, shotName)
}

// VerifyInteriorPrompt scores an interior shot for style and quality match
// with the project rather than facade consistency.
func VerifyInteriorPrompt(shotName string, attrs domain.Attributes) string {
	projectType := strings.ReplaceAll(attrs.ProjectType, "_", " ")
	return fmt.Sprintf(`<task>
Analyze this interior image for quality and style consistency with the project.
</task>

<context>
- Image 1: EXTERIOR of a %s building (style reference only)
- Image 2: INTERIOR space (%s) - this is what you are scoring
</context>

<project_details>
<type>%s</type>
<style_keywords>%s</style_keywords>
<exterior_materials>%s</exterior_materials>
<finish_level>%s</finish_level>
</project_details>

<important_note>
Interior shots naturally look different from exteriors. Do NOT check for building shape or facade consistency.
Instead, verify style and quality consistency.
</important_note>

<scoring_criteria>
Score each criterion from 0-20 points:

1. INTERIOR_STYLE_CONSISTENCY (0-20):
   - Does the interior style match the exterior's architectural language?
   - Modern exterior = modern interior, traditional = traditional, etc.
   - Are design language cues consistent (clean lines, materials, details)?

2. MATERIAL_FINISH_QUALITY (0-20):
   - Does the finish level match the project brief (%s)?
   - Are materials appropriate for the stated finish level?
   - Premium exterior shouldn't have budget interior, and vice versa.

3. LIGHTING_APPROPRIATENESS (0-20):
   - Is the lighting quality photorealistic?
   - Does it match Melbourne residential standards?
   - Is natural light handled realistically?

4. SPATIAL_QUALITY (0-20):
   - Do room proportions feel appropriate for the project type?
   - Is the space representative of this development type?
   - Does ceiling height/room size match expectations?

5. PROJECT_CONTEXT_MATCH (0-20):
   - Does this interior "belong" to this building?
   - Is there a cohesive design story between exterior and interior?
   - Is it appropriate for the market level?
</scoring_criteria>

<output_format>
Return ONLY a JSON object:
{
    "total_score": <sum of all criteria, 0-100>,
    "breakdown": {
        "interior_style_consistency": <0-20>,
        "material_finish_quality": <0-20>,
        "lighting_appropriateness": <0-20>,
        "spatial_quality": <0-20>,
        "project_context_match": <0-20>
    },
    "issues": ["list specific issues found"],
    "suggestions": ["specific improvements to make"]
}
</output_format>`,
		projectType,
		shotName,
		DisplayProjectType(attrs.ProjectType),
		joinOr(attrs.StyleKeywords, "modern"),
		joinOr(attrs.Materials, "brick, render"),
		titleCaser.String(attrs.FinishLevel),
		attrs.FinishLevel)
}

// fixAxisFloor is the per-axis score below which a repair attempt calls the
// axis out explicitly (80% of the 20-point axis).
const fixAxisFloor = 16

// FixBlock renders the repair directives appended to a retry prompt. Axes
// scoring under the floor are flagged alongside the verifier's issues and
// suggestions. Breakdown keys are emitted in sorted order so retries are
// reproducible.
func FixBlock(breakdown map[string]int, issues, suggestions []string) string {
	lines := []string{"<fixes_required>"}
	for _, axis := range sortedKeys(breakdown) {
		if score := breakdown[axis]; score < fixAxisFloor {
			lines = append(lines, fmt.Sprintf("<fix criterion='%s' score='%d/20'>Improve this aspect significantly</fix>", axis, score))
		}
	}
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf("<issue>%s</issue>", issue))
	}
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("<suggestion>%s</suggestion>", s))
	}
	lines = append(lines, "</fixes_required>")
	return strings.Join(lines, "\n")
}
