package orchestrator

import (
	"context"
	"fmt"
	"path"

	"showcase/internal/domain"
	"showcase/internal/prompts"
	"showcase/internal/state"
)

// RunRegenerateSingle re-runs the verify-and-repair loop for one non-hero
// variation of a completed job and replaces its manifest entry.
func (o *Orchestrator) RunRegenerateSingle(ctx context.Context, jobID string, payload domain.TaskPayload) error {
	shot, ok := prompts.ShotByID(payload.VariationName)
	if !ok {
		return fmt.Errorf("orchestrator: %w: %s", domain.ErrUnknownVariation, payload.VariationName)
	}
	if shot.IsHero {
		return fmt.Errorf("orchestrator: %w", domain.ErrHeroImmutable)
	}

	manifest, err := o.states.ReadManifest(jobID)
	if err != nil {
		return fmt.Errorf("orchestrator: manifest for regeneration: %w", err)
	}
	heroEntry, ok := manifest.Hero()
	if !ok {
		return fmt.Errorf("orchestrator: job %s has no hero to anchor regeneration", jobID)
	}
	heroBytes, err := o.assets.Read(ctx, path.Join(jobID, heroEntry.Filename))
	if err != nil {
		return fmt.Errorf("orchestrator: read hero: %w", err)
	}

	var attrs domain.Attributes
	if manifest.Parsed != nil {
		attrs = *manifest.Parsed
	} else {
		attrs = o.parser.Parse(ctx, manifest.Prompt)
	}
	suburbContext := prompts.SuburbContextPrompt(attrs.Suburb)

	heroDescription := manifest.HeroDescription
	if heroDescription == "" {
		heroDescription = prompts.DefaultHeroDescription
	}

	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateGenerating
		st.CurrentVariation = shot.ID
		st.Message = fmt.Sprintf("Regenerating %s...", shot.Name)
	}); err != nil {
		return err
	}

	result, data := o.generateVerified(ctx, jobID, shot, attrs, suburbContext, heroBytes, heroDescription)
	if data == nil {
		o.failJob(jobID, fmt.Sprintf("Failed to regenerate %s", shot.Name))
		return fmt.Errorf("orchestrator: regenerate %s: no image produced", shot.ID)
	}

	filename := fmt.Sprintf("%s_%s.png", shot.ID, o.now().UTC().Format("20060102_150405"))
	if _, err := o.assets.Write(ctx, path.Join(jobID, filename), data); err != nil {
		return fmt.Errorf("orchestrator: store %s: %w", shot.ID, err)
	}

	if previous, ok := manifest.Image(shot.ID); ok {
		result.ID = previous.ID
	} else {
		result.ID = fmt.Sprintf("%s_%s", jobID, shot.ID)
	}
	result.Filename = filename
	result.URL = imageURL(jobID, filename)
	result.CreatedAt = o.now().UTC()
	if err := o.states.AppendImage(jobID, result); err != nil {
		return err
	}

	_, err = o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateComplete
		st.Progress = 100
		st.CurrentVariation = ""
		st.Message = fmt.Sprintf("Regenerated %s", shot.Name)
	})
	if err != nil {
		return err
	}

	o.logger.Info().
		Str("job_id", jobID).
		Str("variation", shot.ID).
		Int("score", result.Score).
		Int("attempts", result.Attempts).
		Msg("orchestrator: variation regenerated")
	return nil
}
