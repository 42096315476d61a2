// Package orchestrator drives showcase jobs through their lifecycle: brief
// parsing, hero generation (text or inspiration flow), the approval gate,
// sequential variation generation with verify-and-repair retries, and single
// image regeneration. Job progress is persisted as polled status/manifest
// documents; work arrives as claimed tasks from the registry.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"showcase/internal/brief"
	"showcase/internal/domain"
	"showcase/internal/infra"
	"showcase/internal/prompts"
	"showcase/internal/providers/image"
	"showcase/internal/providers/vision"
	"showcase/internal/state"
	"showcase/internal/storage"
	"showcase/internal/verify"
)

// Options wires the orchestrator's collaborators.
type Options struct {
	Parser    *brief.Parser
	Analyzer  vision.Analyzer
	Generator image.Generator
	Verifier  *verify.Verifier
	States    *state.Store
	Assets    *storage.FileStore
	Tasks     domain.TaskRepository
	Logger    infra.Logger

	// Threshold is the strict consistency bar; a score equal to it fails.
	Threshold int
	// MaxRetries bounds repair attempts after the initial try.
	MaxRetries int
	// HeroRegenCap bounds pre-approval hero regenerations per job.
	HeroRegenCap int
	// Model is recorded in status documents for the UI.
	Model string
}

type Orchestrator struct {
	parser    *brief.Parser
	analyzer  vision.Analyzer
	generator image.Generator
	verifier  *verify.Verifier
	states    *state.Store
	assets    *storage.FileStore
	tasks     domain.TaskRepository
	logger    infra.Logger

	threshold    int
	maxRetries   int
	heroRegenCap int
	model        string
	now          func() time.Time
	newID        func() string
}

func New(opts Options) *Orchestrator {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = domain.PassThreshold
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	cap := opts.HeroRegenCap
	if cap <= 0 {
		cap = 5
	}
	return &Orchestrator{
		parser:       opts.Parser,
		analyzer:     opts.Analyzer,
		generator:    opts.Generator,
		verifier:     opts.Verifier,
		states:       opts.States,
		assets:       opts.Assets,
		tasks:        opts.Tasks,
		logger:       opts.Logger,
		threshold:    threshold,
		maxRetries:   maxRetries,
		heroRegenCap: cap,
		model:        opts.Model,
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
	}
}

// attemptBudget is the total tries per image: one initial generation plus the
// configured repair retries.
func (o *Orchestrator) attemptBudget() int {
	return 1 + o.maxRetries
}

// Dispatch routes a claimed task to its pipeline.
func (o *Orchestrator) Dispatch(ctx context.Context, task domain.Task) error {
	var payload domain.TaskPayload
	if len(task.Payload) > 0 {
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return fmt.Errorf("orchestrator: decode payload for task %d: %w", task.ID, err)
		}
	}

	switch task.Type {
	case domain.TaskTextShowcase:
		return o.RunShowcase(ctx, task.JobID, payload)
	case domain.TaskInspirationHero:
		return o.RunInspirationHero(ctx, task.JobID, payload)
	case domain.TaskHeroRegenerate:
		return o.RunInspirationHero(ctx, task.JobID, payload)
	case domain.TaskResumeShowcase:
		return o.RunShowcase(ctx, task.JobID, payload)
	case domain.TaskRegenerateSingle:
		return o.RunRegenerateSingle(ctx, task.JobID, payload)
	default:
		return fmt.Errorf("orchestrator: unknown task type %q", task.Type)
	}
}

func (o *Orchestrator) enqueue(ctx context.Context, jobID string, taskType domain.TaskType, payload domain.TaskPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("orchestrator: encode payload: %w", err)
	}
	task := &domain.Task{JobID: jobID, Type: taskType, Payload: raw}
	if err := o.tasks.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("orchestrator: enqueue %s: %w", taskType, err)
	}
	return nil
}

// CreateTextJob registers a text-flow job and queues its showcase task.
func (o *Orchestrator) CreateTextJob(ctx context.Context, briefText, projectType, suburb string) (string, error) {
	jobID := o.newID()
	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateParsing
		st.Flow = domain.FlowText
		st.TotalImages = len(prompts.BaseShots())
		st.Prompt = briefText
		st.Model = o.model
		st.Message = "Queued for generation"
	}); err != nil {
		return "", err
	}
	err := o.enqueue(ctx, jobID, domain.TaskTextShowcase, domain.TaskPayload{
		Brief:       briefText,
		ProjectType: projectType,
		Suburb:      suburb,
	})
	if err != nil {
		return "", err
	}
	o.logger.Info().Str("job_id", jobID).Msg("orchestrator: text job queued")
	return jobID, nil
}

// CreateInspirationJob registers an inspiration-flow job and queues hero
// generation. inspirationKey is the stored upload's asset key.
func (o *Orchestrator) CreateInspirationJob(ctx context.Context, inspirationKey, briefText, projectType, suburb string) (string, error) {
	jobID := o.newID()
	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateAnalyzing
		st.Flow = domain.FlowInspiration
		st.TotalImages = len(prompts.BaseShots())
		st.Prompt = briefText
		st.Model = o.model
		st.Message = "Queued for style analysis"
	}); err != nil {
		return "", err
	}
	if _, err := o.states.UpdateManifest(jobID, func(m *state.Manifest) {
		m.InspirationPath = inspirationKey
		m.Prompt = briefText
		m.Model = o.model
	}); err != nil {
		return "", err
	}
	err := o.enqueue(ctx, jobID, domain.TaskInspirationHero, domain.TaskPayload{
		Brief:           briefText,
		InspirationPath: inspirationKey,
		ProjectType:     projectType,
		Suburb:          suburb,
	})
	if err != nil {
		return "", err
	}
	o.logger.Info().Str("job_id", jobID).Msg("orchestrator: inspiration job queued")
	return jobID, nil
}

func (o *Orchestrator) failJob(jobID, message string) {
	if _, err := o.states.UpdateStatus(jobID, func(st *state.Status) {
		st.State = domain.StateError
		st.Error = message
		st.Message = message
	}); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("orchestrator: failed to record error state")
	}
}
