package prompts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"showcase/internal/domain"
)

// SuburbContext captures the visual character of a Melbourne suburb so that
// generated imagery sits believably in its street.
type SuburbContext struct {
	Style       string
	Trees       string
	Streets     string
	Neighbours  string
	FinishLevel string
	TypicalLots string
	Character   string
}

var defaultSuburbContext = SuburbContext{
	Style:       "contemporary suburban",
	Trees:       "mix of native and exotic trees",
	Streets:     "typical suburban streets",
	Neighbours:  "mixed housing types",
	FinishLevel: "mid-range",
	TypicalLots: "500-700sqm",
	Character:   "Melbourne suburban area",
}

var suburbGazetteer = map[string]SuburbContext{
	"balwyn": {
		Style:       "premium established",
		Trees:       "mature elms, oaks, plane trees",
		Streets:     "wide tree-lined avenues",
		Neighbours:  "period homes, quality modern infill",
		FinishLevel: "high-end",
		TypicalLots: "600-900sqm",
		Character:   "Prestigious family area with heritage character and leafy streetscapes",
	},
	"balwyn_north": {
		Style:       "family premium",
		Trees:       "mixed deciduous, silver birch, ornamental pear",
		Streets:     "quieter residential streets",
		Neighbours:  "1960s brick, modern rebuilds",
		FinishLevel: "high-end",
		TypicalLots: "600-800sqm",
		Character:   "Family-oriented with quality schools, mix of period and contemporary homes",
	},
	"camberwell": {
		Style:       "heritage premium",
		Trees:       "mature elms, established gardens",
		Streets:     "heritage overlay areas, wide streets",
		Neighbours:  "Victorian, Edwardian, Federation homes",
		FinishLevel: "premium",
		TypicalLots: "700-1000sqm",
		Character:   "Highly sought-after with heritage character, prestigious schools nearby",
	},
	"canterbury": {
		Style:       "exclusive heritage",
		Trees:       "mature exotic trees, manicured gardens",
		Streets:     "wide, quiet, leafy",
		Neighbours:  "grand period homes, architect-designed modern",
		FinishLevel: "premium",
		TypicalLots: "800-1500sqm",
		Character:   "Melbourne's most prestigious residential area, significant gardens",
	},
	"doncaster": {
		Style:       "contemporary diverse",
		Trees:       "native and exotic mix",
		Streets:     "sloping terrain common",
		Neighbours:  "mixed ages, many rebuilds, townhouse developments",
		FinishLevel: "mid to high",
		TypicalLots: "500-700sqm",
		Character:   "Multicultural, hilly terrain, strong development activity",
	},
	"doncaster_east": {
		Style:       "family suburban",
		Trees:       "natives, eucalypts, ornamental",
		Streets:     "curving streets, cul-de-sacs",
		Neighbours:  "1970s-80s brick, some rebuilds",
		FinishLevel: "mid-range",
		TypicalLots: "600-800sqm",
		Character:   "Established family area, good schools, quieter than Doncaster",
	},
	"box_hill": {
		Style:       "urban multicultural",
		Trees:       "street trees, less established",
		Streets:     "higher density closer to station",
		Neighbours:  "apartments, townhouses common",
		FinishLevel: "mid-range",
		TypicalLots: "400-600sqm",
		Character:   "Urban hub with transport, shopping, Asian cultural influence",
	},
	"box_hill_north": {
		Style:       "suburban family",
		Trees:       "mix of natives and exotics",
		Streets:     "quieter residential",
		Neighbours:  "1970s brick, modern townhouses",
		FinishLevel: "mid-range",
		TypicalLots: "500-700sqm",
		Character:   "Family area, more suburban feel than Box Hill",
	},
	"templestowe": {
		Style:       "leafy bush feel",
		Trees:       "native eucalypts, established gardens",
		Streets:     "winding, larger lots",
		Neighbours:  "larger homes, bush blocks",
		FinishLevel: "high-end",
		TypicalLots: "800-1200sqm",
		Character:   "Bushland feel, larger properties, privacy-focused",
	},
	"templestowe_lower": {
		Style:       "suburban family",
		Trees:       "native and exotic mix",
		Streets:     "suburban streets, some hills",
		Neighbours:  "mixed periods, family homes",
		FinishLevel: "mid to high",
		TypicalLots: "600-900sqm",
		Character:   "Family-focused, river corridor nearby, quieter suburban feel",
	},
	"kew": {
		Style:       "heritage premium",
		Trees:       "mature deciduous, established gardens",
		Streets:     "tree-lined, heritage overlays",
		Neighbours:  "Victorian, Edwardian, quality contemporary",
		FinishLevel: "premium",
		TypicalLots: "600-1000sqm",
		Character:   "Inner-east prestige, heritage charm, excellent schools",
	},
	"kew_east": {
		Style:       "established family",
		Trees:       "mature trees, well-maintained gardens",
		Streets:     "quiet residential",
		Neighbours:  "period homes, modern infill",
		FinishLevel: "high-end",
		TypicalLots: "600-800sqm",
		Character:   "Quieter family area, close to parks and golf courses",
	},
	"glen_waverley": {
		Style:       "modern multicultural",
		Trees:       "japanese maples, ornamental cherry, magnolia",
		Streets:     "flat suburban grid",
		Neighbours:  "mix of periods, Asian-influenced landscaping",
		FinishLevel: "mid to high",
		TypicalLots: "500-700sqm",
		Character:   "Strong Asian community, excellent schools, modern developments",
	},
	"mount_waverley": {
		Style:       "established family",
		Trees:       "mature natives and exotics",
		Streets:     "gentle slopes, suburban",
		Neighbours:  "1970s brick, modern updates",
		FinishLevel: "mid-range",
		TypicalLots: "600-800sqm",
		Character:   "Family area with good schools, established gardens",
	},
	"burwood": {
		Style:       "diverse suburban",
		Trees:       "mixed street trees",
		Streets:     "suburban, some high-density pockets",
		Neighbours:  "varied ages, student housing near uni",
		FinishLevel: "mid-range",
		TypicalLots: "500-700sqm",
		Character:   "Near Deakin University, mix of housing types",
	},
	"ashburton": {
		Style:       "established family",
		Trees:       "mature natives and exotics",
		Streets:     "quiet residential",
		Neighbours:  "1950s-60s brick, quality rebuilds",
		FinishLevel: "mid to high",
		TypicalLots: "600-800sqm",
		Character:   "Village feel, family-oriented, quality redevelopments",
	},
	"hawthorn": {
		Style:       "heritage premium",
		Trees:       "London planes, elms, mature gardens",
		Streets:     "heritage overlays common",
		Neighbours:  "Victorian, Edwardian, quality modern",
		FinishLevel: "premium",
		TypicalLots: "400-800sqm",
		Character:   "Inner-city prestige, heritage streetscapes, cafes and shopping",
	},
	"hawthorn_east": {
		Style:       "established prestige",
		Trees:       "mature trees, established gardens",
		Streets:     "quieter than Hawthorn, leafy",
		Neighbours:  "period and quality contemporary",
		FinishLevel: "high-end",
		TypicalLots: "500-800sqm",
		Character:   "Prestigious, quieter than Hawthorn, close to parks",
	},
	"richmond": {
		Style:       "urban village",
		Trees:       "street trees, small gardens",
		Streets:     "narrow, inner city",
		Neighbours:  "workers cottages, warehouses, apartments",
		FinishLevel: "varied",
		TypicalLots: "200-400sqm",
		Character:   "Inner-city urban, warehouse conversions, vibrant street life",
	},
	"south_yarra": {
		Style:       "urban premium",
		Trees:       "plane trees, ornamental",
		Streets:     "mix of commercial and residential",
		Neighbours:  "Victorian terraces, modern apartments",
		FinishLevel: "premium",
		TypicalLots: "200-500sqm",
		Character:   "High-end inner-city living, fashion and dining precinct",
	},
	"toorak": {
		Style:       "prestige exclusive",
		Trees:       "mature European trees, manicured gardens",
		Streets:     "wide, leafy, exclusive",
		Neighbours:  "grand mansions, architect-designed",
		FinishLevel: "ultra-premium",
		TypicalLots: "800-2000sqm",
		Character:   "Melbourne's most exclusive suburb, significant estates",
	},
	"armadale": {
		Style:       "heritage premium",
		Trees:       "plane trees, established gardens",
		Streets:     "heritage shopping strip, leafy residential",
		Neighbours:  "Victorian, Edwardian, quality modern",
		FinishLevel: "premium",
		TypicalLots: "400-700sqm",
		Character:   "High-end shopping, heritage homes, prestigious",
	},
	"malvern": {
		Style:       "established prestige",
		Trees:       "mature deciduous, well-maintained",
		Streets:     "leafy residential, heritage pockets",
		Neighbours:  "period homes, quality contemporary",
		FinishLevel: "high-end",
		TypicalLots: "500-900sqm",
		Character:   "Family prestige, excellent schools, established character",
	},
	"malvern_east": {
		Style:       "family premium",
		Trees:       "mature trees, gardens",
		Streets:     "quiet residential",
		Neighbours:  "period and modern mix",
		FinishLevel: "high-end",
		TypicalLots: "600-800sqm",
		Character:   "Family-focused, quieter, close to parks and schools",
	},
	"ivanhoe": {
		Style:       "established leafy",
		Trees:       "mature natives, river red gums nearby",
		Streets:     "hilly, winding in parts",
		Neighbours:  "period homes, quality rebuilds",
		FinishLevel: "mid to high",
		TypicalLots: "600-900sqm",
		Character:   "Artistic community, close to Yarra River, leafy",
	},
	"heidelberg": {
		Style:       "artistic heritage",
		Trees:       "native gums, established gardens",
		Streets:     "mix of terrains, some steep",
		Neighbours:  "varied ages, artistic community",
		FinishLevel: "mid-range",
		TypicalLots: "500-800sqm",
		Character:   "Heidelberg School art connection, hospital precinct",
	},
	"eltham": {
		Style:       "bush suburban",
		Trees:       "native bushland, eucalypts",
		Streets:     "winding, bush character",
		Neighbours:  "mud brick, bush architecture",
		FinishLevel: "varied",
		TypicalLots: "800-2000sqm",
		Character:   "Artistic, environmental focus, bush blocks",
	},
	"essendon": {
		Style:       "established character",
		Trees:       "mature street trees, elm-lined",
		Streets:     "heritage streetscapes",
		Neighbours:  "Edwardian, Victorian, modern infill",
		FinishLevel: "mid to high",
		TypicalLots: "500-700sqm",
		Character:   "Character homes, cafe culture, family-oriented",
	},
	"moonee_ponds": {
		Style:       "urban village",
		Trees:       "plane trees, ornamental",
		Streets:     "heritage overlay areas",
		Neighbours:  "Victorian, Edwardian, apartments",
		FinishLevel: "mid to high",
		TypicalLots: "400-600sqm",
		Character:   "Queens Park nearby, heritage shopping, inner-northwest",
	},
	"brighton": {
		Style:       "coastal premium",
		Trees:       "mature trees, salt-tolerant plantings",
		Streets:     "wide, leafy, beach proximity",
		Neighbours:  "grand homes, modern luxury",
		FinishLevel: "premium",
		TypicalLots: "600-1200sqm",
		Character:   "Beachside prestige, bathing boxes, family estates",
	},
	"sandringham": {
		Style:       "coastal family",
		Trees:       "tea trees, coastal natives, Norfolk pines",
		Streets:     "village feel, beach access",
		Neighbours:  "character homes, modern rebuilds",
		FinishLevel: "high-end",
		TypicalLots: "500-800sqm",
		Character:   "Village atmosphere, beach lifestyle, family-focused",
	},
	"elwood": {
		Style:       "beachside eclectic",
		Trees:       "palms, plane trees, salt-tolerant",
		Streets:     "mix of apartments and houses",
		Neighbours:  "Art Deco, Victorian, modern apartments",
		FinishLevel: "varied",
		TypicalLots: "300-600sqm",
		Character:   "Bohemian beach suburb, cafes, diverse housing",
	},
}

// SuburbContextFor returns the gazetteer entry for a suburb, falling back to
// a generic Melbourne suburban context for unknown names.
func SuburbContextFor(name string) SuburbContext {
	if ctx, ok := suburbGazetteer[domain.NormalizeSuburb(name)]; ok {
		return ctx
	}
	return defaultSuburbContext
}

// SuburbNames returns the normalized gazetteer keys, longest first so that
// callers matching free text find "balwyn_north" before "balwyn".
func SuburbNames() []string {
	names := make([]string, 0, len(suburbGazetteer))
	for name := range suburbGazetteer {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// KnownSuburb reports whether a name resolves to a gazetteer entry.
func KnownSuburb(name string) bool {
	_, ok := suburbGazetteer[domain.NormalizeSuburb(name)]
	return ok
}

var titleCaser = cases.Title(language.English)

// DisplaySuburb renders a normalized suburb key for human display,
// for example "balwyn_north" becomes "Balwyn North".
func DisplaySuburb(name string) string {
	return titleCaser.String(strings.ReplaceAll(domain.NormalizeSuburb(name), "_", " "))
}

// SuburbContextPrompt renders the location block injected into every
// generation prompt so the imagery reflects the suburb's character.
func SuburbContextPrompt(name string) string {
	ctx := SuburbContextFor(name)
	return fmt.Sprintf(`MELBOURNE SUBURB CONTEXT - %s:

Neighbourhood Character: %s
Architectural Style: %s
Street Trees: %s
Street Character: %s
Neighbouring Properties: %s
Finish Level Expected: %s
Typical Lot Sizes: %s

The generated images must reflect this specific Melbourne suburb's character.
Include appropriate vegetation, neighbouring property styles, and finish levels.`,
		DisplaySuburb(name),
		ctx.Character, ctx.Style, ctx.Trees, ctx.Streets,
		ctx.Neighbours, ctx.FinishLevel, ctx.TypicalLots)
}
