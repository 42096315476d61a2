package state

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestReadStatusMissingJob(t *testing.T) {
	s := newStore(t)
	_, err := s.ReadStatus("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusCreatesAndMerges(t *testing.T) {
	s := newStore(t)

	st, err := s.UpdateStatus("job-1", func(st *Status) {
		st.State = domain.StateParsing
		st.Progress = 2
		st.TotalImages = 18
		st.Prompt = "dual occupancy in balwyn"
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", st.JobID)
	assert.False(t, st.UpdatedAt.IsZero())

	// A later update keeps earlier fields.
	st, err = s.UpdateStatus("job-1", func(st *Status) {
		st.State = domain.StateGenerating
		st.Progress = 40
	})
	require.NoError(t, err)
	assert.Equal(t, "dual occupancy in balwyn", st.Prompt)
	assert.Equal(t, 18, st.TotalImages)
	assert.Equal(t, domain.StateGenerating, st.State)

	got, err := s.ReadStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, st.Progress, got.Progress)
}

func TestJobDirRejectsTraversal(t *testing.T) {
	s := newStore(t)
	for _, id := range []string{"", "..", "a/b", `a\b`, "."} {
		_, err := s.JobDir(id)
		assert.Error(t, err, "job id %q", id)
	}
}

func TestAppendImageReplacesByVariationAndMirrorsStatus(t *testing.T) {
	s := newStore(t)

	first := domain.VariationResult{VariationName: "hero_twilight", Score: 62, Attempts: 1}
	require.NoError(t, s.AppendImage("job-2", first))
	second := domain.VariationResult{VariationName: "hero_twilight", Score: 88, Attempts: 2}
	require.NoError(t, s.AppendImage("job-2", second))
	other := domain.VariationResult{VariationName: "context_street", Score: 91, Attempts: 1}
	require.NoError(t, s.AppendImage("job-2", other))

	m, err := s.ReadManifest("job-2")
	require.NoError(t, err)
	require.Len(t, m.Images, 2)
	got, ok := m.Image("hero_twilight")
	require.True(t, ok)
	assert.Equal(t, 88, got.Score)
	assert.Equal(t, ManifestType, m.Type)

	st, err := s.ReadStatus("job-2")
	require.NoError(t, err)
	assert.Len(t, st.Images, 2, "status mirrors manifest images")
}

func TestManifestHeroLookup(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.AppendImage("job-3", domain.VariationResult{VariationName: "context_street"}))
	m, _ := s.ReadManifest("job-3")
	_, ok := m.Hero()
	assert.False(t, ok)

	require.NoError(t, s.AppendImage("job-3", domain.VariationResult{VariationName: "hero_facade", IsHero: true, Score: 100}))
	m, _ = s.ReadManifest("job-3")
	hero, ok := m.Hero()
	require.True(t, ok)
	assert.Equal(t, 100, hero.Score)
}

func TestWritesAreAtomic(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	_, err = s.UpdateStatus("job-4", func(st *Status) { st.State = domain.StateComplete })
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "job-4"))
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestReadManifestCorruptedDoc(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "job-5"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "job-5", "manifest.json"), []byte("{truncated"), 0o644))

	_, err = s.ReadManifest("job-5")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
