package brief

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"showcase/internal/domain"
	"showcase/internal/infra"
	"showcase/internal/providers/vision"
)

type stubAnalyzer struct {
	payload []byte
	err     error
}

func (s *stubAnalyzer) AnalyzeJSON(context.Context, string, []vision.Reference) ([]byte, error) {
	return s.payload, s.err
}

func (s *stubAnalyzer) Describe(context.Context, string, []vision.Reference) (string, error) {
	return "", nil
}

func discardLogger() infra.Logger {
	return infra.Logger(zerolog.New(io.Discard))
}

func TestHeuristicDualOccupancyBrief(t *testing.T) {
	attrs := Heuristic("Dual occupancy in Balwyn North, dark brick")

	if attrs.ProjectType != domain.ProjectDualOccupancy {
		t.Fatalf("project_type = %q, want dual_occupancy", attrs.ProjectType)
	}
	if attrs.Suburb != "balwyn_north" {
		t.Fatalf("suburb = %q, want balwyn_north", attrs.Suburb)
	}
	if len(attrs.Materials) != 1 || attrs.Materials[0] != "dark brick" {
		t.Fatalf("materials = %v, want [dark brick]", attrs.Materials)
	}
	if attrs.NumUnits != 2 || attrs.Storeys != 2 {
		t.Fatalf("defaults not applied: units=%d storeys=%d", attrs.NumUnits, attrs.Storeys)
	}
	if attrs.FinishLevel != domain.FinishPremium {
		t.Fatalf("finish_level = %q, want premium", attrs.FinishLevel)
	}
}

func TestHeuristicTownhousesWithCounts(t *testing.T) {
	attrs := Heuristic("4 luxury townhouses in Glen Waverley, three storey, timber and glass")

	if attrs.ProjectType != domain.ProjectTownhouses {
		t.Fatalf("project_type = %q, want townhouses", attrs.ProjectType)
	}
	if attrs.NumUnits != 4 {
		t.Fatalf("num_units = %d, want 4", attrs.NumUnits)
	}
	if attrs.Storeys != 3 {
		t.Fatalf("storeys = %d, want 3", attrs.Storeys)
	}
	if attrs.Suburb != "glen_waverley" {
		t.Fatalf("suburb = %q, want glen_waverley", attrs.Suburb)
	}
	if attrs.FinishLevel != domain.FinishLuxury {
		t.Fatalf("finish_level = %q, want luxury", attrs.FinishLevel)
	}
	if !attrs.MultiUnit() {
		t.Fatalf("4 townhouses should be multi-unit")
	}
}

func TestHeuristicUnknownSuburbFallsBackToDefault(t *testing.T) {
	attrs := Heuristic("Apartments somewhere unusual")
	if attrs.Suburb != domain.DefaultSuburb {
		t.Fatalf("suburb = %q, want default %q", attrs.Suburb, domain.DefaultSuburb)
	}
	if attrs.ProjectType != domain.ProjectApartments {
		t.Fatalf("project_type = %q, want apartments", attrs.ProjectType)
	}
}

func TestParseUsesModelPayload(t *testing.T) {
	p := NewParser(&stubAnalyzer{payload: []byte(`{
		"project_type": "townhouses",
		"suburb": "Kew East",
		"num_units": 3,
		"storeys": 2,
		"style_keywords": ["modern"],
		"materials": ["render", " "],
		"finish_level": "Luxury",
		"summary": "Three modern townhouses in Kew East"
	}`)}, discardLogger())

	attrs := p.Parse(context.Background(), "3 townhouses in Kew East")
	if attrs.ProjectType != domain.ProjectTownhouses {
		t.Fatalf("project_type = %q", attrs.ProjectType)
	}
	if attrs.Suburb != "kew_east" {
		t.Fatalf("suburb = %q, want kew_east", attrs.Suburb)
	}
	if attrs.NumUnits != 3 {
		t.Fatalf("num_units = %d, want 3", attrs.NumUnits)
	}
	if len(attrs.Materials) != 1 {
		t.Fatalf("materials should drop blanks: %v", attrs.Materials)
	}
	if attrs.FinishLevel != domain.FinishLuxury {
		t.Fatalf("finish_level = %q, want luxury", attrs.FinishLevel)
	}
}

func TestParseAcceptsArrayWrappedPayload(t *testing.T) {
	p := NewParser(&stubAnalyzer{payload: []byte(`[{"project_type":"apartments","num_units":8}]`)}, discardLogger())
	attrs := p.Parse(context.Background(), "boutique apartments")
	if attrs.ProjectType != domain.ProjectApartments || attrs.NumUnits != 8 {
		t.Fatalf("array payload not handled: %+v", attrs)
	}
}

func TestParseFallsBackOnAnalyzerError(t *testing.T) {
	p := NewParser(&stubAnalyzer{err: context.DeadlineExceeded}, discardLogger())
	attrs := p.Parse(context.Background(), "Dual occupancy in Balwyn North, dark brick")
	if attrs.Suburb != "balwyn_north" {
		t.Fatalf("fallback should use heuristics, got suburb %q", attrs.Suburb)
	}
}

func TestParseFallsBackOnGarbagePayload(t *testing.T) {
	p := NewParser(&stubAnalyzer{payload: []byte(`not json at all`)}, discardLogger())
	attrs := p.Parse(context.Background(), "townhouses in Brighton")
	if attrs.ProjectType != domain.ProjectTownhouses || attrs.Suburb != "brighton" {
		t.Fatalf("fallback attrs wrong: %+v", attrs)
	}
}
