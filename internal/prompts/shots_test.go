package prompts

import (
	"strings"
	"testing"

	"showcase/internal/domain"
)

func TestBaseShotsTableIntegrity(t *testing.T) {
	shots := BaseShots()
	if len(shots) != 18 {
		t.Fatalf("base shots = %d, want 18", len(shots))
	}

	seen := map[string]bool{}
	categories := map[domain.Category]int{}
	heroes := 0
	for i, s := range shots {
		if seen[s.ID] {
			t.Fatalf("duplicate shot id %q", s.ID)
		}
		seen[s.ID] = true
		if s.Order != i+1 {
			t.Fatalf("shot %q order = %d, want %d", s.ID, s.Order, i+1)
		}
		if s.Spec == "" {
			t.Fatalf("shot %q has no specification", s.ID)
		}
		if s.Lighting == "" {
			t.Fatalf("shot %q has no lighting condition", s.ID)
		}
		categories[s.Category]++
		if s.IsHero {
			heroes++
		}
	}
	if heroes != 1 {
		t.Fatalf("hero shots = %d, want exactly 1", heroes)
	}
	if len(categories) != 6 {
		t.Fatalf("categories = %d, want 6", len(categories))
	}
	if categories[domain.CategoryHeroShots] != 3 {
		t.Fatalf("hero_shots category = %d shots, want 3", categories[domain.CategoryHeroShots])
	}
	if categories[domain.CategoryInteriors] != 4 {
		t.Fatalf("interior_spaces category = %d shots, want 4", categories[domain.CategoryInteriors])
	}
}

func TestHeroShotIsPrimaryFacade(t *testing.T) {
	hero := HeroShot()
	if hero.ID != "hero_facade" {
		t.Fatalf("hero id = %q, want hero_facade", hero.ID)
	}
	if !hero.IsHero {
		t.Fatalf("hero shot not flagged as hero")
	}
	if hero.AspectRatio != "16:9" {
		t.Fatalf("hero aspect ratio = %q, want 16:9", hero.AspectRatio)
	}
}

func TestShotsForProjectMultiUnitExtras(t *testing.T) {
	tests := []struct {
		name  string
		attrs domain.Attributes
		want  int
	}{
		{"dual occupancy", domain.Attributes{ProjectType: domain.ProjectDualOccupancy, NumUnits: 2}, 18},
		{"two townhouses", domain.Attributes{ProjectType: domain.ProjectTownhouses, NumUnits: 2}, 18},
		{"three townhouses", domain.Attributes{ProjectType: domain.ProjectTownhouses, NumUnits: 3}, 20},
		{"apartments", domain.Attributes{ProjectType: domain.ProjectApartments, NumUnits: 12}, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shots := ShotsForProject(tc.attrs)
			if len(shots) != tc.want {
				t.Fatalf("shots = %d, want %d", len(shots), tc.want)
			}
		})
	}
}

func TestShotByIDKnownAndUnknown(t *testing.T) {
	if _, ok := ShotByID("interior_kitchen"); !ok {
		t.Fatalf("interior_kitchen should resolve")
	}
	if _, ok := ShotByID("multi_unit_variety"); !ok {
		t.Fatalf("multi_unit_variety should resolve")
	}
	if _, ok := ShotByID("no_such_shot"); ok {
		t.Fatalf("unknown id should not resolve")
	}
}

func TestInteriorShotSet(t *testing.T) {
	interiors := map[string]bool{
		"interior_living": true, "interior_kitchen": true,
		"interior_master": true, "interior_bathroom": true,
		"spatial_staircase": true, "spatial_window": true,
		"spatial_volume": true, "lifestyle_morning": true,
		"lifestyle_evening": true,
	}
	for _, s := range BaseShots() {
		if s.Interior != interiors[s.ID] {
			t.Fatalf("shot %q interior = %v, want %v", s.ID, s.Interior, interiors[s.ID])
		}
	}
}

func TestAspectRatios(t *testing.T) {
	valid := map[string]bool{"16:9": true, "4:3": true, "3:4": true, "1:1": true}
	for _, s := range ShotsForProject(domain.Attributes{ProjectType: domain.ProjectApartments}) {
		if !valid[s.AspectRatio] {
			t.Fatalf("shot %q has unsupported aspect ratio %q", s.ID, s.AspectRatio)
		}
	}
	if s, _ := ShotByID("spatial_staircase"); s.AspectRatio != "3:4" {
		t.Fatalf("spatial_staircase aspect ratio = %q, want 3:4", s.AspectRatio)
	}
	if s, _ := ShotByID("feature_material"); s.AspectRatio != "1:1" {
		t.Fatalf("feature_material aspect ratio = %q, want 1:1", s.AspectRatio)
	}
}

func TestSuburbContextPrompt(t *testing.T) {
	got := SuburbContextPrompt("Balwyn North")
	if !strings.Contains(got, "Balwyn North") {
		t.Fatalf("prompt missing display name:\n%s", got)
	}
	if !strings.Contains(got, "silver birch") {
		t.Fatalf("prompt missing gazetteer detail:\n%s", got)
	}

	fallback := SuburbContextPrompt("narnia")
	if !strings.Contains(fallback, "Melbourne suburban area") {
		t.Fatalf("unknown suburb should use default context:\n%s", fallback)
	}
}

func TestKnownSuburbNormalization(t *testing.T) {
	for _, name := range []string{"balwyn", "Balwyn North", "box-hill", "GLEN WAVERLEY"} {
		if !KnownSuburb(name) {
			t.Fatalf("suburb %q should be known", name)
		}
	}
	if KnownSuburb("narnia") {
		t.Fatalf("narnia should not be known")
	}
}
