// Package prompts holds the fixed showcase shot table, the Melbourne suburb
// gazetteer and the deterministic prompt builders used for generation,
// repair and verification. Everything here is pure string assembly.
package prompts

import (
	"sort"

	"showcase/internal/domain"
)

// Shot describes one deliverable in the showcase package: how it is framed,
// lit and exported. The 18 base shots span 6 fixed categories; multi-unit
// projects append 2 extras.
type Shot struct {
	ID          string
	Category    domain.Category
	Name        string
	Order       int
	IsHero      bool
	Interior    bool
	AspectRatio string
	Lighting    string
	Spec        string
}

var shotTable = []Shot{
	{
		ID:          "hero_facade",
		Category:    domain.CategoryHeroShots,
		Name:        "Primary Facade",
		Order:       1,
		IsHero:      true,
		AspectRatio: "16:9",
		Lighting:    LightingDaylightSoft,
		Spec: `SHOT TYPE: Primary Facade (Hero Shot)

CAMERA SETUP:
- Eye-level perspective, standing on footpath opposite the building
- 35mm lens equivalent, f/11 for maximum sharpness
- Perfectly straight vertical lines - NO keystoning/perspective distortion
- Two-point perspective, building centred in frame

COMPOSITION:
- Full building visible from ground to roofline
- 20-30% sky at top of frame
- Front garden, setback and driveway included
- Street trees or landscaping at the edges

REQUIREMENTS:
- This is the PRIMARY hero image that defines the building design
- Must show all key architectural features clearly
- Premium real estate photography quality`,
	},
	{
		ID:          "hero_twilight",
		Category:    domain.CategoryHeroShots,
		Name:        "Twilight Hero",
		Order:       2,
		AspectRatio: "16:9",
		Lighting:    LightingBlueHour,
		Spec: `SHOT TYPE: Twilight Hero Shot

CAMERA SETUP:
- Same angle as the primary facade, tripod-stable with no motion blur
- Perfectly straight verticals

LIGHTING - BLUE HOUR:
- Deep blue twilight sky, about 20 minutes after sunset
- Interior lights glowing warm through the windows
- Warm/cool contrast between interior and sky

MOOD:
- Dramatic but realistic, inviting and aspirational`,
	},
	{
		ID:          "hero_elevated",
		Category:    domain.CategoryHeroShots,
		Name:        "Elevated 3/4 Angle",
		Order:       3,
		AspectRatio: "16:9",
		Lighting:    LightingDaylightSunny,
		Spec: `SHOT TYPE: Elevated 3/4 Angle (Drone Perspective)

CAMERA SETUP:
- Drone height approximately 10-15 metres
- 45-degree diagonal angle showing two facades
- Slight downward tilt to reveal the roof form

REVEALS:
- Roof design and materials
- Overall building massing
- Relationship to site boundaries, outdoor areas and landscaping
- Driveway and parking arrangement`,
	},
	{
		ID:          "context_street",
		Category:    domain.CategorySiteContext,
		Name:        "Street Scene",
		Order:       4,
		AspectRatio: "16:9",
		Lighting:    LightingDaylightSoft,
		Spec: `SHOT TYPE: Street Scene Context

CAMERA SETUP:
- Wide shot from footpath, 24mm lens equivalent, eye-level
- Building in context with neighbours on either side

COMPOSITION:
- Subject building as the clear focal point in the centre third
- 1-2 neighbouring properties visible on each side
- Street trees, nature strip, footpath and a portion of road

PURPOSE:
- Show the building is sympathetic to the streetscape and appropriately
  scaled relative to its neighbours (planning permit justification)`,
	},
	{
		ID:          "context_aerial",
		Category:    domain.CategorySiteContext,
		Name:        "Aerial/Drone View",
		Order:       5,
		AspectRatio: "4:3",
		Lighting:    LightingDaylightSunny,
		Spec: `SHOT TYPE: Aerial Site View

CAMERA SETUP:
- Drone perspective at 20-30 metres, looking down at about 60 degrees
- Wide enough to show full site boundaries

DEMONSTRATES:
- Site coverage, setbacks, private open space
- Vehicle access and parking
- Relationship to neighbouring properties`,
	},
	{
		ID:          "context_approach",
		Category:    domain.CategorySiteContext,
		Name:        "Pedestrian Approach",
		Order:       6,
		AspectRatio: "4:3",
		Lighting:    LightingDaylightSoft,
		Spec: `SHOT TYPE: Pedestrian Approach

CAMERA SETUP:
- Walking towards the entry, eye-level, 35mm lens equivalent
- Slightly lower angle looking up at the entry

COMPOSITION:
- View as a visitor walking to the front door
- Path or driveway leading to the entry canopy as the focal point
- Front garden, house number and letterbox visible

CAPTURES: the arrival sequence, curb appeal and sense of welcome`,
	},
	{
		ID:          "feature_entry",
		Category:    domain.CategoryFeatures,
		Name:        "Entry Threshold",
		Order:       7,
		AspectRatio: "4:3",
		Lighting:    LightingDaylightSoft,
		Spec: `SHOT TYPE: Entry Threshold Detail

CAMERA SETUP:
- Close-up of entry door and surrounds, 50mm equivalent for true proportions

COMPOSITION:
- Front door as the centrepiece, entry canopy above
- Lighting fixtures, door hardware and threshold treatment

DESIGN INTENT: the arrival moment and material quality at touch points`,
	},
	{
		ID:          "feature_material",
		Category:    domain.CategoryFeatures,
		Name:        "Material Detail",
		Order:       8,
		AspectRatio: "1:1",
		Lighting:    LightingDaylightSunny,
		Spec: `SHOT TYPE: Material Detail Close-up

CAMERA SETUP:
- Extreme close-up, 85mm equivalent, shallow depth of field on texture

COMPOSITION:
- Junction of 2-3 materials meeting across roughly 1m x 1m of facade
- Brick coursing, timber grain or render texture in natural light

SHOWCASES: craftsmanship in material selection and finish quality`,
	},
	{
		ID:          "feature_signature",
		Category:    domain.CategoryFeatures,
		Name:        "Signature Element",
		Order:       9,
		AspectRatio: "4:3",
		Lighting:    LightingGoldenHour,
		Spec: `SHOT TYPE: Signature Architectural Element

COMPOSITION:
- The memorable design move: cantilever, screening, void or feature window
- Isolated against sky or a neutral background to emphasize it

CAPTURES: the defining architectural gesture that sets this project apart`,
	},
	{
		ID:          "interior_living",
		Category:    domain.CategoryInteriors,
		Name:        "Living to Outdoor",
		Order:       10,
		Interior:    true,
		AspectRatio: "16:9",
		Lighting:    LightingInteriorDaylight,
		Spec: `SHOT TYPE: Living Room to Outdoor Connection

CAMERA SETUP:
- Wide angle 24mm equivalent from the living room corner towards the garden

COMPOSITION:
- Open plan living with large sliding/bifold doors to the garden
- Outdoor living area visible through glass, natural light flooding in
- Furniture arrangement showing scale

DEMONSTRATES: indoor-outdoor flow and spatial generosity`,
	},
	{
		ID:          "interior_kitchen",
		Category:    domain.CategoryInteriors,
		Name:        "Kitchen",
		Order:       11,
		Interior:    true,
		AspectRatio: "16:9",
		Lighting:    LightingInteriorStyled,
		Spec: `SHOT TYPE: Kitchen Feature Shot

CAMERA SETUP:
- Wide angle from the dining area, 24-28mm equivalent, eye-level

COMPOSITION:
- Island bench as the focal point with pendant lighting above
- Stone benchtop, splashback detail, integrated appliances and joinery`,
	},
	{
		ID:          "interior_master",
		Category:    domain.CategoryInteriors,
		Name:        "Master Suite",
		Order:       12,
		Interior:    true,
		AspectRatio: "16:9",
		Lighting:    LightingInteriorDaylight,
		Spec: `SHOT TYPE: Master Bedroom Suite

CAMERA SETUP:
- From the doorway or corner, 28mm equivalent

COMPOSITION:
- King bed with styled bedding, window with natural light
- Walk-in robe entrance and ensuite doorway glimpsed

CONVEYS: room proportions, light quality and a sense of retreat`,
	},
	{
		ID:          "interior_bathroom",
		Category:    domain.CategoryInteriors,
		Name:        "Bathroom",
		Order:       13,
		Interior:    true,
		AspectRatio: "4:3",
		Lighting:    LightingInteriorStyled,
		Spec: `SHOT TYPE: Feature Bathroom

COMPOSITION:
- Freestanding bath OR feature shower as the hero
- Floor-to-ceiling tiles, double vanity, quality tapware
- Natural light from a window if present

FINISH INDICATORS: tile selection, fixture quality, spa-like retreat feel`,
	},
	{
		ID:          "spatial_staircase",
		Category:    domain.CategorySpatial,
		Name:        "Staircase Void",
		Order:       14,
		Interior:    true,
		AspectRatio: "3:4",
		Lighting:    LightingInteriorDaylight,
		Spec: `SHOT TYPE: Staircase and Void

CAMERA SETUP:
- Looking up through the stairwell void, wide angle for vertical space

COMPOSITION:
- Stair treads and balustrade, void above, skylight or high window
- Natural light from above, sculptural stair element`,
	},
	{
		ID:          "spatial_window",
		Category:    domain.CategorySpatial,
		Name:        "Window Moment",
		Order:       15,
		Interior:    true,
		AspectRatio: "4:3",
		Lighting:    LightingDaylightSunny,
		Spec: `SHOT TYPE: Window Moment / Light Quality

COMPOSITION:
- Feature window as the focal point with light streaming into the space
- View framed through the window, interior furniture silhouetted

CAPTURES: how light enters the home and frames the outdoors`,
	},
	{
		ID:          "spatial_volume",
		Category:    domain.CategorySpatial,
		Name:        "Volume Shot",
		Order:       16,
		Interior:    true,
		AspectRatio: "3:4",
		Lighting:    LightingInteriorDaylight,
		Spec: `SHOT TYPE: Double Height / Volume Space

CAMERA SETUP:
- Wide angle 24mm equivalent, looking up to show ceiling detail

COMPOSITION:
- Double-height void OR raking ceiling with clerestory windows
- Pendant lighting at scale, lower and upper levels connected

WOW FACTOR: spatial generosity and light from above`,
	},
	{
		ID:          "lifestyle_morning",
		Category:    domain.CategoryLifestyle,
		Name:        "Morning Light",
		Order:       17,
		Interior:    true,
		AspectRatio: "16:9",
		Lighting:    LightingGoldenHour,
		Spec: `SHOT TYPE: Morning Light Scene

COMPOSITION:
- Kitchen or dining area with eastern light streaming in
- Breakfast setting (coffee cup, newspaper), signs of life but no people
- Fresh, optimistic atmosphere`,
	},
	{
		ID:          "lifestyle_evening",
		Category:    domain.CategoryLifestyle,
		Name:        "Evening Entertaining",
		Order:       18,
		Interior:    true,
		AspectRatio: "16:9",
		Lighting:    LightingBlueHour,
		Spec: `SHOT TYPE: Evening Entertaining / Alfresco

COMPOSITION:
- Alfresco dining area at twilight with warm interior light spilling out
- Outdoor kitchen or BBQ, string lights, a set table suggesting entertaining
- Interior visible through glass doors

MELBOURNE LIFESTYLE: outdoor entertaining with the garden as an extension
of the living space`,
	},
}

// multiUnitExtras are appended for apartments and townhouses of 3+ units.
var multiUnitExtras = []Shot{
	{
		ID:          "multi_unit_variety",
		Category:    domain.CategoryFeatures,
		Name:        "Unit Variety",
		Order:       19,
		AspectRatio: "16:9",
		Lighting:    LightingDaylightSoft,
		Spec: `SHOT TYPE: Unit Variety / Facade Differentiation

CAMERA SETUP:
- Wide shot showing 2-4 different unit facades, 28mm equivalent, eye-level

COMPOSITION:
- Multiple unit entries visible with facade treatment variations
- Individual entries clear yet a consistent overall design language

DEMONSTRATES: individual identity within a cohesive development`,
	},
	{
		ID:          "multi_shared_spaces",
		Category:    domain.CategoryLifestyle,
		Name:        "Shared Spaces",
		Order:       20,
		AspectRatio: "16:9",
		Lighting:    LightingDaylightSoft,
		Spec: `SHOT TYPE: Shared Spaces / Common Areas

COMPOSITION:
- Common garden, courtyard or driveway with landscaping between units
- How private entries relate to the shared space

DEMONSTRATES: community design thinking and quality of common areas`,
	},
}

var shotsByID = func() map[string]Shot {
	m := make(map[string]Shot, len(shotTable)+len(multiUnitExtras))
	for _, s := range shotTable {
		m[s.ID] = s
	}
	for _, s := range multiUnitExtras {
		m[s.ID] = s
	}
	return m
}()

// ShotByID looks up a shot definition by its variation name.
func ShotByID(id string) (Shot, bool) {
	s, ok := shotsByID[id]
	return s, ok
}

// HeroShot returns the primary facade shot that establishes the design.
func HeroShot() Shot {
	return shotTable[0]
}

// BaseShots returns the 18 standard shots in generation order.
func BaseShots() []Shot {
	out := make([]Shot, len(shotTable))
	copy(out, shotTable)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ShotsForProject returns the shot list for the given attributes. Multi-unit
// projects (apartments, or townhouses with 3+ units) get the two extras.
func ShotsForProject(attrs domain.Attributes) []Shot {
	shots := BaseShots()
	if attrs.MultiUnit() {
		shots = append(shots, multiUnitExtras...)
	}
	return shots
}
