package orchestrator

import (
	"context"
	"fmt"
	"path"

	"showcase/internal/domain"
	"showcase/internal/prompts"
	"showcase/internal/providers/image"
	"showcase/internal/providers/vision"
	"showcase/internal/state"
)

// RunShowcase runs the full showcase pipeline for a job. With
// payload.FromHero set (approved inspiration hero) the hero generation step
// is skipped and variations fan out from the stored hero.
func (o *Orchestrator) RunShowcase(ctx context.Context, jobID string, payload domain.TaskPayload) error {
	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateParsing
		st.Progress = 2
		st.CurrentImage = 0
		st.Message = "Analyzing project description..."
		st.Prompt = payload.Brief
		st.Model = o.model
	}); err != nil {
		return err
	}

	attrs := o.parser.Parse(ctx, payload.Brief)
	attrs.ApplyOverrides(payload.ProjectType, payload.Suburb)

	shots := prompts.ShotsForProject(attrs)
	total := len(shots)
	suburbContext := prompts.SuburbContextPrompt(attrs.Suburb)

	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.TotalImages = total
		st.Message = "Project parsed, starting generation..."
	}); err != nil {
		return err
	}
	if _, err := o.states.UpdateManifest(jobID, func(m *state.Manifest) {
		m.Prompt = payload.Brief
		m.Parsed = &attrs
		m.Suburb = attrs.Suburb
		m.Model = o.model
	}); err != nil {
		return err
	}

	heroBytes, _, err := o.ensureHero(ctx, jobID, payload, attrs, suburbContext)
	if err != nil {
		o.failJob(jobID, "Failed to generate hero image")
		return err
	}

	heroDescription := o.describeHero(ctx, jobID, heroBytes)

	completed := 1
	for _, shot := range shots {
		if shot.IsHero {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
			st.State = domain.StateGenerating
			st.Progress = completed * 100 / total
			st.CurrentImage = completed + 1
			st.CurrentVariation = shot.ID
			st.Message = fmt.Sprintf("Generating %s...", shot.Name)
		}); err != nil {
			return err
		}

		result, data := o.generateVerified(ctx, jobID, shot, attrs, suburbContext, heroBytes, heroDescription)
		if data == nil {
			o.logger.Warn().
				Str("job_id", jobID).
				Str("variation", shot.ID).
				Msg("orchestrator: no image produced, skipping variation")
			continue
		}

		filename := fmt.Sprintf("%s_%s.png", shot.ID, o.now().UTC().Format("20060102_150405"))
		if _, err := o.assets.Write(ctx, path.Join(jobID, filename), data); err != nil {
			return fmt.Errorf("orchestrator: store %s: %w", shot.ID, err)
		}
		result.ID = fmt.Sprintf("%s_%d", jobID, completed+1)
		result.Filename = filename
		result.URL = imageURL(jobID, filename)
		result.CreatedAt = o.now().UTC()
		if err := o.states.AppendImage(jobID, result); err != nil {
			return err
		}
		completed++

		logEvent := o.logger.Info()
		if result.LowConfidence {
			logEvent = o.logger.Warn()
		}
		logEvent.
			Str("job_id", jobID).
			Str("variation", shot.ID).
			Int("score", result.Score).
			Int("attempts", result.Attempts).
			Bool("low_confidence", result.LowConfidence).
			Msg("orchestrator: variation stored")
	}

	_, err = o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateComplete
		st.Progress = 100
		st.CurrentImage = total
		st.CurrentVariation = ""
		st.Message = fmt.Sprintf("Generated %d images", completed)
	})
	return err
}

// ensureHero resolves the hero image for the fan-out: either the approved
// hero named by the payload, or a freshly generated primary facade. Hero
// generation failure is fatal for the job.
func (o *Orchestrator) ensureHero(ctx context.Context, jobID string, payload domain.TaskPayload, attrs domain.Attributes, suburbContext string) ([]byte, string, error) {
	hero := prompts.HeroShot()

	if payload.FromHero != "" {
		key := path.Join(jobID, payload.FromHero)
		data, err := o.assets.Read(ctx, key)
		if err != nil {
			return nil, "", fmt.Errorf("orchestrator: approved hero missing: %w", err)
		}
		if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
			st.State = domain.StateGenerating
			st.Progress = 10
			st.CurrentImage = 1
			st.CurrentVariation = hero.ID
			st.Message = "Using approved hero image..."
		}); err != nil {
			return nil, "", err
		}
		if err := o.recordHeroIfAbsent(jobID, payload.FromHero, hero); err != nil {
			return nil, "", err
		}
		return data, payload.FromHero, nil
	}

	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateGeneratingHero
		st.Progress = 5
		st.CurrentImage = 1
		st.CurrentVariation = hero.ID
		st.Message = "Generating primary facade (hero image)..."
	}); err != nil {
		return nil, "", err
	}

	prompt := prompts.HeroPrompt(payload.Brief, attrs, suburbContext)
	var data []byte
	for attempt := 1; attempt <= o.attemptBudget(); attempt++ {
		asset, err := o.generator.Generate(ctx, image.GenerateRequest{
			Prompt:      prompt,
			AspectRatio: hero.AspectRatio,
			RequestID:   jobID + "/" + hero.ID,
		})
		if err != nil {
			o.logger.Warn().Err(err).
				Str("job_id", jobID).
				Int("attempt", attempt).
				Msg("orchestrator: hero generation attempt failed")
			continue
		}
		if asset != nil && len(asset.Data) > 0 {
			data = asset.Data
			break
		}
	}
	if data == nil {
		return nil, "", fmt.Errorf("orchestrator: %w", domain.ErrHeroGenerationFailed)
	}

	filename := fmt.Sprintf("%s_%s.png", hero.ID, o.now().UTC().Format("20060102_150405"))
	if _, err := o.assets.Write(ctx, path.Join(jobID, filename), data); err != nil {
		return nil, "", fmt.Errorf("orchestrator: store hero: %w", err)
	}
	if err := o.recordHeroIfAbsent(jobID, filename, hero); err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

// recordHeroIfAbsent writes the hero manifest entry unless one already
// exists (the inspiration flow records its hero before the resume task).
// The hero scores 100 against itself.
func (o *Orchestrator) recordHeroIfAbsent(jobID, filename string, hero prompts.Shot) error {
	m, err := o.states.ReadManifest(jobID)
	if err == nil {
		if _, ok := m.Hero(); ok {
			return nil
		}
	}
	return o.states.AppendImage(jobID, domain.VariationResult{
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
	})
}

// describeHero captures a textual design reference for every variation
// prompt. Analysis failures degrade to a generic description.
func (o *Orchestrator) describeHero(ctx context.Context, jobID string, heroBytes []byte) string {
	description, err := o.analyzer.Describe(ctx, prompts.DescribeHeroPrompt, []vision.Reference{{MIME: "image/png", Data: heroBytes}})
	if err != nil || description == "" {
		o.logger.Warn().Err(err).Str("job_id", jobID).Msg("orchestrator: hero description unavailable, using fallback")
		description = prompts.DefaultHeroDescription
	}
	if _, err := o.states.UpdateManifest(jobID, func(m *state.Manifest) {
		m.HeroDescription = description
	}); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("orchestrator: failed to persist hero description")
	}
	return description
}

// generateVerified runs the verify-and-repair loop for one variation. The
// best-scoring attempt is kept; exhausting the budget accepts it flagged
// low confidence. The returned bytes are nil when no attempt produced an
// image at all.
func (o *Orchestrator) generateVerified(ctx context.Context, jobID string, shot prompts.Shot, attrs domain.Attributes, suburbContext string, heroBytes []byte, heroDescription string) (domain.VariationResult, []byte) {
	basePrompt := prompts.VariationPrompt(shot, attrs, suburbContext, heroDescription)

	var (
		bestScore     = -1
		bestData      []byte
		bestBreakdown map[string]int
		fixBlock      string
		attempts      int
		passed        bool
	)

	for attempts < o.attemptBudget() {
		if ctx.Err() != nil {
			break
		}
		attempts++

		prompt := basePrompt
		if fixBlock != "" {
			prompt += "\n\n" + fixBlock
		}

		asset, err := o.generator.Generate(ctx, image.GenerateRequest{
			Prompt:      prompt,
			AspectRatio: shot.AspectRatio,
			References:  []image.Reference{{MIME: "image/png", Data: heroBytes}},
			RequestID:   fmt.Sprintf("%s/%s/%d", jobID, shot.ID, attempts),
		})
		if err != nil || asset == nil || len(asset.Data) == 0 {
			o.logger.Warn().Err(err).
				Str("job_id", jobID).
				Str("variation", shot.ID).
				Int("attempt", attempts).
				Msg("orchestrator: generation attempt failed")
			continue
		}

		if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
			st.State = domain.StateVerifying
			st.Message = fmt.Sprintf("Verifying %s...", shot.Name)
		}); err != nil {
			o.logger.Error().Err(err).Str("job_id", jobID).Msg("orchestrator: status update failed")
		}

		report, err := o.verifier.Score(ctx, heroBytes, asset.Data, shot, attrs)
		if err != nil {
			o.logger.Warn().Err(err).
				Str("job_id", jobID).
				Str("variation", shot.ID).
				Int("attempt", attempts).
				Msg("orchestrator: verification attempt failed")
			continue
		}

		if report.TotalScore > bestScore {
			bestScore = report.TotalScore
			bestData = asset.Data
			bestBreakdown = report.Breakdown
		}
		if report.Passed(o.threshold) {
			passed = true
			break
		}
		fixBlock = prompts.FixBlock(report.Breakdown, report.Issues, report.Suggestions)
	}

	if bestData == nil {
		return domain.VariationResult{}, nil
	}
	if bestScore < 0 {
		bestScore = 0
	}
	return domain.VariationResult{
		VariationName:  shot.ID,
		Category:       shot.Category,
		Name:           shot.Name,
		Score:          bestScore,
		ScoreBreakdown: bestBreakdown,
		Attempts:       attempts,
		LowConfidence:  !passed,
		AspectRatio:    shot.AspectRatio,
	}, bestData
}

func imageURL(jobID, filename string) string {
	return fmt.Sprintf("/api/images/%s/%s", jobID, filename)
}
