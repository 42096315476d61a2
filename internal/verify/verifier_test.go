package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/domain"
	"showcase/internal/prompts"
	"showcase/internal/providers/genai"
	"showcase/internal/providers/vision"
)

type stubAnalyzer struct {
	payload []byte
	err     error
	prompt  string
	refs    int
}

func (s *stubAnalyzer) AnalyzeJSON(_ context.Context, prompt string, refs []vision.Reference) ([]byte, error) {
	s.prompt = prompt
	s.refs = len(refs)
	return s.payload, s.err
}

func (s *stubAnalyzer) Describe(context.Context, string, []vision.Reference) (string, error) {
	return "", nil
}

func exteriorShot(t *testing.T) prompts.Shot {
	t.Helper()
	shot, ok := prompts.ShotByID("hero_twilight")
	require.True(t, ok)
	return shot
}

func interiorShot(t *testing.T) prompts.Shot {
	t.Helper()
	shot, ok := prompts.ShotByID("interior_kitchen")
	require.True(t, ok)
	return shot
}

func TestScoreRecomputesTotalFromBreakdown(t *testing.T) {
	stub := &stubAnalyzer{payload: []byte(`{
		"total_score": 100,
		"breakdown": {
			"building_shape": 18,
			"architectural_style": 17,
			"materials_facade": 16,
			"windows_openings": 15,
			"proportions": 14
		},
		"issues": ["window grid differs"],
		"suggestions": ["align mullions"]
	}`)}
	v := New(stub)

	report, err := v.Score(context.Background(), []byte("hero"), []byte("cand"), exteriorShot(t), domain.Attributes{})
	require.NoError(t, err)

	assert.Equal(t, 80, report.TotalScore, "total must be the sum of the breakdown, not the model's claim")
	assert.Equal(t, 2, stub.refs, "hero and candidate must both travel as image parts")
	assert.Contains(t, stub.prompt, "building_shape")
	assert.Equal(t, []string{"window grid differs"}, report.Issues)
}

func TestScoreBoundaryAtThreshold(t *testing.T) {
	exactly80 := Report{Breakdown: map[string]int{
		"building_shape":      16,
		"architectural_style": 16,
		"materials_facade":    16,
		"windows_openings":    16,
		"proportions":         16,
	}}
	r := Normalize(exactly80, ExteriorAxes)
	assert.Equal(t, 80, r.TotalScore)
	assert.False(t, r.Passed(domain.PassThreshold), "a score of exactly 80 must fail")

	r.Breakdown["proportions"] = 17
	r = Normalize(r, ExteriorAxes)
	assert.Equal(t, 81, r.TotalScore)
	assert.True(t, r.Passed(domain.PassThreshold))
}

func TestNormalizeClampsAndFillsAxes(t *testing.T) {
	r := Normalize(Report{Breakdown: map[string]int{
		"building_shape":   35,
		"materials_facade": -3,
		"unexpected_axis":  20,
	}}, ExteriorAxes)

	assert.Equal(t, AxisMax, r.Breakdown["building_shape"])
	assert.Equal(t, 0, r.Breakdown["materials_facade"])
	assert.Equal(t, 0, r.Breakdown["windows_openings"], "missing axes score zero")
	assert.NotContains(t, r.Breakdown, "unexpected_axis")
	assert.Equal(t, 20, r.TotalScore)
}

func TestScoreInteriorUsesInteriorAxes(t *testing.T) {
	stub := &stubAnalyzer{payload: []byte(`{
		"breakdown": {
			"interior_style_consistency": 18,
			"material_finish_quality": 18,
			"lighting_appropriateness": 18,
			"spatial_quality": 18,
			"project_context_match": 18
		}
	}`)}
	v := New(stub)

	report, err := v.Score(context.Background(), []byte("hero"), []byte("cand"), interiorShot(t), domain.Attributes{ProjectType: domain.ProjectDualOccupancy, FinishLevel: domain.FinishPremium})
	require.NoError(t, err)

	assert.Equal(t, 90, report.TotalScore)
	assert.Contains(t, stub.prompt, "interior_style_consistency")
	assert.NotContains(t, stub.prompt, "windows_openings")
}

func TestScoreSyntheticWhenNotConfigured(t *testing.T) {
	v := New(&stubAnalyzer{err: genai.ErrNotConfigured})

	a, err := v.Score(context.Background(), []byte("hero"), []byte("cand"), exteriorShot(t), domain.Attributes{})
	require.NoError(t, err)
	b, err := v.Score(context.Background(), []byte("hero"), []byte("cand"), exteriorShot(t), domain.Attributes{})
	require.NoError(t, err)

	assert.Equal(t, a, b, "synthetic reports must be deterministic")
	assert.True(t, a.Passed(domain.PassThreshold))
	sum := 0
	for _, s := range a.Breakdown {
		sum += s
	}
	assert.Equal(t, sum, a.TotalScore)
}

func TestScorePropagatesAnalyzerErrors(t *testing.T) {
	v := New(&stubAnalyzer{err: context.DeadlineExceeded})
	_, err := v.Score(context.Background(), nil, nil, exteriorShot(t), domain.Attributes{})
	require.Error(t, err)
}
