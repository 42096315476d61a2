package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"showcase/internal/domain"
	"showcase/internal/prompts"
	"showcase/internal/providers/image"
	"showcase/internal/providers/vision"
	"showcase/internal/state"
)

// RunInspirationHero generates or regenerates the style-transferred hero
// for an inspiration-flow job, then parks the job at the approval gate.
// payload.Feedback distinguishes a regeneration from the initial pass.
func (o *Orchestrator) RunInspirationHero(ctx context.Context, jobID string, payload domain.TaskPayload) error {
	regenerating := payload.Feedback != ""

	manifest, err := o.states.ReadManifest(jobID)
	if err != nil && regenerating {
		return fmt.Errorf("orchestrator: manifest for regeneration: %w", err)
	}

	inspirationKey := payload.InspirationPath
	if inspirationKey == "" {
		inspirationKey = manifest.InspirationPath
	}
	if inspirationKey == "" {
		o.failJob(jobID, "Inspiration image is missing")
		return fmt.Errorf("orchestrator: job %s has no inspiration image", jobID)
	}
	inspiration, err := o.assets.Read(ctx, inspirationKey)
	if err != nil {
		o.failJob(jobID, "Inspiration image could not be read")
		return fmt.Errorf("orchestrator: read inspiration: %w", err)
	}

	// Keep a copy alongside the job's own images so the package is
	// self-contained even if the upload area is cleaned up.
	if path.Dir(inspirationKey) != jobID {
		ext := path.Ext(inspirationKey)
		if ext == "" {
			ext = ".png"
		}
		copyKey := path.Join(jobID, "inspiration"+ext)
		if _, err := o.assets.Write(ctx, copyKey, inspiration); err != nil {
			return fmt.Errorf("orchestrator: copy inspiration: %w", err)
		}
		inspirationKey = copyKey
	}

	analysis := o.styleAnalysis(ctx, jobID, regenerating, manifest, inspiration)

	briefText := payload.Brief
	if briefText == "" {
		briefText = manifest.Prompt
	}
	attrs := o.parser.Parse(ctx, briefText)
	attrs.ApplyOverrides(payload.ProjectType, payload.Suburb)
	suburbContext := prompts.SuburbContextPrompt(attrs.Suburb)

	prompt := prompts.StyleTransferHeroPrompt(analysis, briefText, attrs, suburbContext)
	if regenerating {
		prompt = prompts.WithFeedback(prompt, payload.Feedback)
	}

	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		if regenerating {
			st.State = domain.StateRegenerating
			st.Message = "Regenerating hero from your feedback..."
		} else {
			st.State = domain.StateInspirationHero
			st.Message = "Designing hero from inspiration..."
		}
		st.Progress = 5
		st.CurrentImage = 1
		st.CurrentVariation = prompts.HeroShot().ID
	}); err != nil {
		return err
	}

	hero := prompts.HeroShot()
	var data []byte
	for attempt := 1; attempt <= o.attemptBudget(); attempt++ {
		asset, err := o.generator.Generate(ctx, image.GenerateRequest{
			Prompt:      prompt,
			AspectRatio: hero.AspectRatio,
			References:  []image.Reference{{MIME: "image/png", Data: inspiration}},
			RequestID:   jobID + "/" + hero.ID,
		})
		if err != nil {
			o.logger.Warn().Err(err).
				Str("job_id", jobID).
				Int("attempt", attempt).
				Msg("orchestrator: inspiration hero attempt failed")
			continue
		}
		if asset != nil && len(asset.Data) > 0 {
			data = asset.Data
			break
		}
	}
	if data == nil {
		o.failJob(jobID, "Failed to generate hero image")
		return fmt.Errorf("orchestrator: %w", domain.ErrHeroGenerationFailed)
	}

	filename := fmt.Sprintf("%s_%s.png", hero.ID, o.now().UTC().Format("20060102_150405"))
	if _, err := o.assets.Write(ctx, path.Join(jobID, filename), data); err != nil {
		return fmt.Errorf("orchestrator: store hero: %w", err)
	}

	if _, err := o.states.UpdateManifest(jobID, func(m *state.Manifest) {
		m.StyleAnalysis = &analysis
		m.Parsed = &attrs
		m.Suburb = attrs.Suburb
		m.Model = o.model
		if m.InspirationPath == "" {
			m.InspirationPath = inspirationKey
		}
	}); err != nil {
		return err
	}
	if err := o.states.AppendImage(jobID, domain.VariationResult{
		ID:            jobID + "_1",
		VariationName: hero.ID,
		Category:      hero.Category,
		Name:          hero.Name,
		Filename:      filename,
		URL:           imageURL(jobID, filename),
		IsHero:        true,
		Score:         100,
		Attempts:      1,
		AspectRatio:   hero.AspectRatio,
		CreatedAt:     o.now().UTC(),
	}); err != nil {
		return err
	}

	_, err = o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateAwaitingApprov
		st.Progress = 10
		st.Message = "Hero image ready for review"
		st.CurrentVariation = ""
		st.Hero = &state.HeroRef{
			ImagePath: imageURL(jobID, filename),
			Filename:  filename,
		}
	})
	if err != nil {
		return err
	}

	o.logger.Info().
		Str("job_id", jobID).
		Str("filename", filename).
		Bool("regenerated", regenerating).
		Msg("orchestrator: hero awaiting approval")
	return nil
}

// styleAnalysis returns the stored analysis on regeneration, otherwise runs
// the vision model over the inspiration photo. Failures degrade to the
// generic contemporary profile so the pipeline always proceeds.
func (o *Orchestrator) styleAnalysis(ctx context.Context, jobID string, regenerating bool, manifest state.Manifest, inspiration []byte) domain.StyleAnalysis {
	if regenerating && manifest.StyleAnalysis != nil {
		return *manifest.StyleAnalysis
	}

	raw, err := o.analyzer.AnalyzeJSON(ctx, prompts.StyleAnalysisPrompt, []vision.Reference{{MIME: "image/png", Data: inspiration}})
	if err != nil {
		o.logger.Warn().Err(err).Str("job_id", jobID).Msg("orchestrator: style analysis unavailable, using default profile")
		return domain.DefaultStyleAnalysis()
	}
	var analysis domain.StyleAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		o.logger.Warn().Err(err).Str("job_id", jobID).Msg("orchestrator: style analysis undecodable, using default profile")
		return domain.DefaultStyleAnalysis()
	}
	if analysis.StyleSummary == "" {
		analysis.StyleSummary = domain.DefaultStyleAnalysis().StyleSummary
	}
	return analysis
}
