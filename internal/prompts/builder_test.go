package prompts

import (
	"strings"
	"testing"

	"showcase/internal/domain"
)

func testAttrs() domain.Attributes {
	a := domain.Attributes{
		ProjectType:   domain.ProjectDualOccupancy,
		Suburb:        "balwyn_north",
		StyleKeywords: []string{"modern", "minimalist"},
		Materials:     []string{"dark brick", "render"},
	}
	a.ApplyDefaults()
	return a
}

func TestHeroPromptContents(t *testing.T) {
	attrs := testAttrs()
	got := HeroPrompt("Dual occupancy in Balwyn North, dark brick", attrs, SuburbContextPrompt(attrs.Suburb))

	for _, want := range []string{
		"<description>Dual occupancy in Balwyn North, dark brick</description>",
		"<type>Dual Occupancy</type>",
		"dark brick, render",
		"PHOTOREALISTIC MANDATORY REQUIREMENTS",
		"LIGHTING CONDITION: Soft Daylight",
		"PROJECT TYPE: Dual Occupancy Development",
		"Balwyn North",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("hero prompt missing %q", want)
		}
	}
}

func TestVariationPromptCarriesHeroDescription(t *testing.T) {
	attrs := testAttrs()
	shot, _ := ShotByID("hero_twilight")
	got := VariationPrompt(shot, attrs, SuburbContextPrompt(attrs.Suburb), "Two storey charcoal brick duplex")

	if !strings.Contains(got, "Two storey charcoal brick duplex") {
		t.Fatalf("variation prompt missing hero description")
	}
	if !strings.Contains(got, "LIGHTING CONDITION: Blue Hour / Twilight") {
		t.Fatalf("variation prompt missing shot lighting block")
	}
	if !strings.Contains(got, "EXACT SAME BUILDING") {
		t.Fatalf("variation prompt missing consistency requirements")
	}
	if !strings.Contains(got, shot.Spec) {
		t.Fatalf("variation prompt missing shot specification")
	}
}

func TestVariationPromptDeterministic(t *testing.T) {
	attrs := testAttrs()
	shot, _ := ShotByID("context_street")
	ctx := SuburbContextPrompt(attrs.Suburb)
	a := VariationPrompt(shot, attrs, ctx, "desc")
	b := VariationPrompt(shot, attrs, ctx, "desc")
	if a != b {
		t.Fatalf("variation prompt should be deterministic")
	}
}

func TestFixBlockFlagsWeakAxes(t *testing.T) {
	got := FixBlock(
		map[string]int{
			"building_shape":      12,
			"architectural_style": 18,
			"materials_facade":    15,
			"windows_openings":    20,
			"proportions":         16,
		},
		[]string{"roofline differs"},
		[]string{"match the parapet height"},
	)

	if !strings.Contains(got, "<fix criterion='building_shape' score='12/20'>") {
		t.Fatalf("fix block missing building_shape flag:\n%s", got)
	}
	if !strings.Contains(got, "<fix criterion='materials_facade' score='15/20'>") {
		t.Fatalf("fix block missing materials_facade flag:\n%s", got)
	}
	if strings.Contains(got, "architectural_style") || strings.Contains(got, "proportions") {
		t.Fatalf("fix block flagged passing axes:\n%s", got)
	}
	if !strings.Contains(got, "<issue>roofline differs</issue>") {
		t.Fatalf("fix block missing issue:\n%s", got)
	}
	if !strings.Contains(got, "<suggestion>match the parapet height</suggestion>") {
		t.Fatalf("fix block missing suggestion:\n%s", got)
	}
}

func TestVerifyPromptsSelectAxes(t *testing.T) {
	ext := VerifyExteriorPrompt("hero_twilight")
	if !strings.Contains(ext, "building_shape") || strings.Contains(ext, "interior_style_consistency") {
		t.Fatalf("exterior prompt has wrong axis set")
	}

	in := VerifyInteriorPrompt("interior_kitchen", testAttrs())
	if !strings.Contains(in, "interior_style_consistency") || strings.Contains(in, "windows_openings") {
		t.Fatalf("interior prompt has wrong axis set")
	}
	if !strings.Contains(in, "Do NOT check for building shape") {
		t.Fatalf("interior prompt missing exclusion note")
	}
}

func TestStyleTransferHeroPrompt(t *testing.T) {
	analysis := domain.DefaultStyleAnalysis()
	analysis.StyleSummary = "Charcoal brick minimalism with timber accents"
	attrs := testAttrs()

	got := StyleTransferHeroPrompt(analysis, "", attrs, SuburbContextPrompt(attrs.Suburb))
	if !strings.Contains(got, "Charcoal brick minimalism with timber accents") {
		t.Fatalf("style transfer prompt missing analysis summary")
	}
	if !strings.Contains(got, "Create a premium dual occupancy development") {
		t.Fatalf("empty brief should get synthesized description:\n%s", got[:400])
	}
	if !strings.Contains(got, "NOT copying the inspiration building") {
		t.Fatalf("prompt missing new-design directive")
	}
}

func TestWithFeedbackInsertsBeforeOutput(t *testing.T) {
	base := "<role>r</role>\n<output>\nGenerate.\n</output>"
	got := WithFeedback(base, "make the brick lighter")

	fi := strings.Index(got, "make the brick lighter")
	oi := strings.LastIndex(got, "<output>")
	if fi == -1 || oi == -1 || fi > oi {
		t.Fatalf("feedback not inserted before output section:\n%s", got)
	}

	noOutput := WithFeedback("<role>r</role>", "fix it")
	if !strings.Contains(noOutput, "fix it") {
		t.Fatalf("feedback should be appended when no output section exists")
	}
}

func TestBriefParsePromptEmbedsBrief(t *testing.T) {
	got := BriefParsePrompt("3 townhouses in Kew")
	if !strings.Contains(got, "3 townhouses in Kew") {
		t.Fatalf("parse prompt missing brief text")
	}
	if !strings.Contains(got, `"project_type"`) {
		t.Fatalf("parse prompt missing output schema")
	}
}
