package orchestrator

import (
	"context"
	"fmt"

	"showcase/internal/domain"
	"showcase/internal/prompts"
	"showcase/internal/state"
)

// Approve accepts the hero of an inspiration-flow job and queues the
// variation fan-out. The hero is immutable from this point on.
func (o *Orchestrator) Approve(ctx context.Context, jobID string) error {
	status, err := o.states.ReadStatus(jobID)
	if err != nil {
		return err
	}
	if status.State != domain.StateAwaitingApprov {
		return fmt.Errorf("orchestrator: %w (state %s)", domain.ErrNotAwaitingApproval, status.State)
	}
	if status.Hero == nil || status.Hero.Filename == "" {
		return fmt.Errorf("orchestrator: job %s awaiting approval without a hero", jobID)
	}

	manifest, err := o.states.ReadManifest(jobID)
	if err != nil {
		return err
	}
	payload := domain.TaskPayload{
		Brief:    manifest.Prompt,
		FromHero: status.Hero.Filename,
	}
	if manifest.Parsed != nil {
		payload.ProjectType = manifest.Parsed.ProjectType
		payload.Suburb = manifest.Parsed.Suburb
	}
	if err := o.enqueue(ctx, jobID, domain.TaskResumeShowcase, payload); err != nil {
		return err
	}

	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateGenerating
		st.Message = "Hero approved, generating showcase..."
	}); err != nil {
		return err
	}
	o.logger.Info().Str("job_id", jobID).Msg("orchestrator: hero approved")
	return nil
}

// Reject terminates an inspiration-flow job at the approval gate.
func (o *Orchestrator) Reject(ctx context.Context, jobID string) error {
	status, err := o.states.ReadStatus(jobID)
	if err != nil {
		return err
	}
	if status.State != domain.StateAwaitingApprov {
		return fmt.Errorf("orchestrator: %w (state %s)", domain.ErrNotAwaitingApproval, status.State)
	}
	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateRejected
		st.Message = "Hero rejected"
	}); err != nil {
		return err
	}
	o.logger.Info().Str("job_id", jobID).Msg("orchestrator: hero rejected")
	return nil
}

// RegenerateHero queues another hero attempt with user feedback. Attempts
// are capped per job; the cap does not reset on regeneration.
func (o *Orchestrator) RegenerateHero(ctx context.Context, jobID, feedback string) error {
	status, err := o.states.ReadStatus(jobID)
	if err != nil {
		return err
	}
	if status.State != domain.StateAwaitingApprov {
		return fmt.Errorf("orchestrator: %w (state %s)", domain.ErrNotAwaitingApproval, status.State)
	}
	if status.RegenCount >= o.heroRegenCap {
		return fmt.Errorf("orchestrator: %w (%d of %d used)", domain.ErrRegenCapExceeded, status.RegenCount, o.heroRegenCap)
	}

	if feedback == "" {
		feedback = "Try a different architectural interpretation"
	}
	if err := o.enqueue(ctx, jobID, domain.TaskHeroRegenerate, domain.TaskPayload{Feedback: feedback}); err != nil {
		return err
	}

	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateRegenerating
		st.RegenCount++
		st.Message = "Regenerating hero image..."
	}); err != nil {
		return err
	}
	o.logger.Info().
		Str("job_id", jobID).
		Int("regen_count", status.RegenCount+1).
		Msg("orchestrator: hero regeneration queued")
	return nil
}

// RegenerateOne queues regeneration of a single non-hero variation of a
// completed job.
func (o *Orchestrator) RegenerateOne(ctx context.Context, jobID, variationName string) error {
	shot, ok := prompts.ShotByID(variationName)
	if !ok {
		return fmt.Errorf("orchestrator: %w: %s", domain.ErrUnknownVariation, variationName)
	}
	if shot.IsHero {
		return fmt.Errorf("orchestrator: %w", domain.ErrHeroImmutable)
	}

	status, err := o.states.ReadStatus(jobID)
	if err != nil {
		return err
	}
	if status.State != domain.StateComplete {
		return fmt.Errorf("orchestrator: job %s is not complete (state %s)", jobID, status.State)
	}

	manifest, err := o.states.ReadManifest(jobID)
	if err != nil {
		return err
	}
	if _, ok := manifest.Image(variationName); !ok {
		return fmt.Errorf("orchestrator: %w: %s not in manifest", domain.ErrUnknownVariation, variationName)
	}

	if err := o.enqueue(ctx, jobID, domain.TaskRegenerateSingle, domain.TaskPayload{VariationName: variationName}); err != nil {
		return err
	}
	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateGenerating
		st.CurrentVariation = variationName
		st.Message = fmt.Sprintf("Regenerating %s...", shot.Name)
	}); err != nil {
		return err
	}
	o.logger.Info().
		Str("job_id", jobID).
		Str("variation", variationName).
		Msg("orchestrator: single regeneration queued")
	return nil
}
