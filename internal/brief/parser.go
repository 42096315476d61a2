// Package brief turns a free-form project description into structured
// attributes. Parsing is model-assisted when a vision provider is available
// and degrades to keyword heuristics otherwise; it never fails a job.
package brief

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"showcase/internal/domain"
	"showcase/internal/infra"
	"showcase/internal/prompts"
	"showcase/internal/providers/vision"
)

type Parser struct {
	analyzer vision.Analyzer
	logger   infra.Logger
}

func NewParser(analyzer vision.Analyzer, logger infra.Logger) *Parser {
	return &Parser{analyzer: analyzer, logger: logger}
}

type parsePayload struct {
	ProjectType     string      `json:"project_type"`
	Suburb          string      `json:"suburb"`
	NumUnits        json.Number `json:"num_units"`
	Storeys         json.Number `json:"storeys"`
	StyleKeywords   []string    `json:"style_keywords"`
	Materials       []string    `json:"materials"`
	SpecialFeatures []string    `json:"special_features"`
	FinishLevel     string      `json:"finish_level"`
	Summary         string      `json:"summary"`
}

// Parse extracts project attributes from the brief. Model failures fall back
// to Heuristic; the result always carries complete defaults.
func (p *Parser) Parse(ctx context.Context, text string) domain.Attributes {
	if p.analyzer == nil {
		return Heuristic(text)
	}

	raw, err := p.analyzer.AnalyzeJSON(ctx, prompts.BriefParsePrompt(text), nil)
	if err != nil {
		p.logger.Warn().Err(err).Msg("brief: model parse failed; using heuristics")
		return Heuristic(text)
	}

	var payload parsePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Some models wrap the object in a single-element array.
		var list []parsePayload
		if err2 := json.Unmarshal(raw, &list); err2 != nil || len(list) == 0 {
			p.logger.Warn().Err(err).Msg("brief: undecodable parse payload; using heuristics")
			return Heuristic(text)
		}
		payload = list[0]
	}

	attrs := domain.Attributes{
		ProjectType:     strings.TrimSpace(payload.ProjectType),
		Suburb:          domain.NormalizeSuburb(payload.Suburb),
		NumUnits:        numberToInt(payload.NumUnits),
		Storeys:         numberToInt(payload.Storeys),
		StyleKeywords:   cleanList(payload.StyleKeywords),
		Materials:       cleanList(payload.Materials),
		SpecialFeatures: cleanList(payload.SpecialFeatures),
		FinishLevel:     strings.TrimSpace(strings.ToLower(payload.FinishLevel)),
		Summary:         strings.TrimSpace(payload.Summary),
	}
	if attrs.Summary == "" {
		attrs.Summary = text
	}
	attrs.ApplyDefaults()
	return attrs
}

var (
	unitCountPattern  = regexp.MustCompile(`(\d+)\s*(?:x\s*)?(?:units?|townhouses?|apartments?|dwellings?)`)
	storeyPattern     = regexp.MustCompile(`(\d+)\s*(?:storey|story|level)s?`)
	materialKeywords  = []string{"dark brick", "red brick", "blonde brick", "brick", "render", "timber", "glass", "stone", "concrete", "steel", "zinc", "weatherboard", "cladding"}
	styleKeywordsList = []string{"modern", "contemporary", "minimalist", "heritage", "hamptons", "industrial", "coastal", "mid-century", "scandinavian", "art deco", "japandi", "brutalist"}
	featureKeywords   = []string{"cantilever", "courtyard", "rooftop", "void", "skylight", "balcony", "alfresco", "pool", "basement"}
)

// Heuristic is the deterministic fallback parser. It lowercases the brief and
// scans for project type, suburb, counts, materials and style keywords, then
// fills defaults for anything it could not find.
func Heuristic(text string) domain.Attributes {
	lower := strings.ToLower(text)
	attrs := domain.Attributes{Summary: strings.TrimSpace(text)}

	switch {
	case strings.Contains(lower, "apartment"):
		attrs.ProjectType = domain.ProjectApartments
	case strings.Contains(lower, "townhouse"):
		attrs.ProjectType = domain.ProjectTownhouses
	default:
		attrs.ProjectType = domain.ProjectDualOccupancy
	}

	normalized := domain.NormalizeSuburb(lower)
	for _, name := range prompts.SuburbNames() {
		if strings.Contains(normalized, name) {
			attrs.Suburb = name
			break
		}
	}

	if m := unitCountPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n <= 50 {
			attrs.NumUnits = n
		}
	}
	switch {
	case strings.Contains(lower, "single storey") || strings.Contains(lower, "single story"):
		attrs.Storeys = 1
	case strings.Contains(lower, "three storey") || strings.Contains(lower, "triple storey"):
		attrs.Storeys = 3
	default:
		if m := storeyPattern.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n <= 10 {
				attrs.Storeys = n
			}
		}
	}

	for _, kw := range materialKeywords {
		if strings.Contains(lower, kw) {
			attrs.Materials = append(attrs.Materials, kw)
		}
	}
	attrs.Materials = dropSubsumed(attrs.Materials)
	for _, kw := range styleKeywordsList {
		if strings.Contains(lower, kw) {
			attrs.StyleKeywords = append(attrs.StyleKeywords, kw)
		}
	}
	for _, kw := range featureKeywords {
		if strings.Contains(lower, kw) {
			attrs.SpecialFeatures = append(attrs.SpecialFeatures, kw)
		}
	}

	switch {
	case strings.Contains(lower, "luxury") || strings.Contains(lower, "high-end") || strings.Contains(lower, "high end"):
		attrs.FinishLevel = domain.FinishLuxury
	case strings.Contains(lower, "basic") || strings.Contains(lower, "affordable") || strings.Contains(lower, "budget"):
		attrs.FinishLevel = domain.FinishStandard
	}

	attrs.ApplyDefaults()
	return attrs
}

// dropSubsumed removes generic matches covered by a more specific one, so a
// brief mentioning "dark brick" does not also list "brick".
func dropSubsumed(values []string) []string {
	var out []string
	for _, v := range values {
		subsumed := false
		for _, other := range values {
			if other != v && strings.Contains(other, v) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, v)
		}
	}
	return out
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func numberToInt(n json.Number) int {
	v, err := n.Int64()
	if err != nil {
		if f, ferr := n.Float64(); ferr == nil {
			return int(f)
		}
		return 0
	}
	return int(v)
}
