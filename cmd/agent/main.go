// Command agent runs showcase jobs from the shell, without the API server or
// the task database. It covers three modes: a fresh run from -brief or
// -inspiration, a resume of an existing job from its frozen hero (-job with
// -from-hero), and a single-variation regeneration (-job with -regenerate).
// Inspiration jobs auto-approve the hero unless -approve=false, in which case
// the run stops at the gate.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"

	"showcase/internal/brief"
	"showcase/internal/domain"
	"showcase/internal/infra"
	"showcase/internal/orchestrator"
	"showcase/internal/providers/genai"
	"showcase/internal/providers/image"
	"showcase/internal/providers/vision"
	"showcase/internal/state"
	"showcase/internal/storage"
	"showcase/internal/verify"
)

// inlineTasks queues tasks in memory for a single synchronous run.
type inlineTasks struct {
	mu     sync.Mutex
	nextID int64
	queue  []*domain.Task
}

func (q *inlineTasks) Enqueue(_ context.Context, task *domain.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	task.ID = q.nextID
	task.Status = domain.TaskStatusQueued
	q.queue = append(q.queue, task)
	return nil
}

func (q *inlineTasks) Claim(_ context.Context) (*domain.Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, task := range q.queue {
		if task.Status == domain.TaskStatusQueued {
			task.Status = domain.TaskStatusRunning
			return task, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (q *inlineTasks) Finish(_ context.Context, taskID int64, status domain.TaskStatus, errMsg string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, task := range q.queue {
		if task.ID == taskID {
			task.Status = status
			task.ErrorMessage = errMsg
			return nil
		}
	}
	return domain.ErrNotFound
}

func (q *inlineTasks) LatestByJobID(_ context.Context, jobID string) (*domain.Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := len(q.queue) - 1; i >= 0; i-- {
		if q.queue[i].JobID == jobID {
			return q.queue[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type options struct {
	brief       string
	inspiration string
	projectType string
	suburb      string
	outDir      string
	approve     bool
	jobID       string
	fromHero    string
	feedback    string
	regenerate  string
}

func main() {
	var opts options
	flag.StringVar(&opts.brief, "brief", "", "project brief, e.g. \"Dual occupancy in Balwyn North, dark brick\"")
	flag.StringVar(&opts.inspiration, "inspiration", "", "path to an inspiration photo (PNG or JPEG)")
	flag.StringVar(&opts.projectType, "project-type", "", "override parsed project type (dual_occupancy, townhouses, apartments)")
	flag.StringVar(&opts.suburb, "suburb", "", "override parsed suburb")
	flag.StringVar(&opts.outDir, "out", "./generated-images", "output directory for job state and images")
	flag.BoolVar(&opts.approve, "approve", true, "auto-approve the inspiration hero")
	flag.StringVar(&opts.jobID, "job", "", "existing job id, for -from-hero or -regenerate")
	flag.StringVar(&opts.fromHero, "from-hero", "", "resume the showcase for -job from this hero filename")
	flag.StringVar(&opts.feedback, "feedback", "", "regenerate the inspiration hero once with this feedback before the approval decision")
	flag.StringVar(&opts.regenerate, "regenerate", "", "regenerate a single variation of the completed -job")
	flag.Parse()

	switch {
	case opts.regenerate != "" || opts.fromHero != "":
		if opts.jobID == "" {
			fmt.Fprintln(os.Stderr, "agent: -regenerate and -from-hero require -job")
			flag.Usage()
			os.Exit(2)
		}
	case opts.brief == "" && opts.inspiration == "":
		fmt.Fprintln(os.Stderr, "agent: either -brief or -inspiration is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	if err := run(context.Background(), logger, opts); err != nil {
		logger.Error().Err(err).Msg("agent: run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, logger infra.Logger, opts options) error {
	states, err := state.NewStore(opts.outDir)
	if err != nil {
		return err
	}
	assets, err := storage.NewFileStore(opts.outDir)
	if err != nil {
		return err
	}
	client, err := genai.NewClient(genai.Options{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		BaseURL:    os.Getenv("GEMINI_BASE_URL"),
		TextModel:  os.Getenv("GEMINI_MODEL"),
		ImageModel: os.Getenv("GEMINI_IMAGE_MODEL"),
		Logger:     &logger,
	})
	if err != nil {
		return err
	}
	if !client.Configured() {
		logger.Warn().Msg("agent: gemini api key missing, using synthetic asset generation")
	}
	analyzer := vision.NewGeminiAnalyzer(client)
	tasks := &inlineTasks{}

	orch := orchestrator.New(orchestrator.Options{
		Parser:    brief.NewParser(analyzer, logger),
		Analyzer:  analyzer,
		Generator: image.NewGeminiGenerator(client),
		Verifier:  verify.New(analyzer),
		States:    states,
		Assets:    assets,
		Tasks:     tasks,
		Logger:    logger,
		Model:     client.ImageModel(),
	})

	switch {
	case opts.regenerate != "":
		return regenerateOne(ctx, tasks, orch, states, opts)
	case opts.fromHero != "":
		return resumeFromHero(ctx, tasks, orch, states, assets, opts)
	default:
		return runJob(ctx, tasks, orch, states, assets, opts)
	}
}

func runJob(ctx context.Context, tasks *inlineTasks, orch *orchestrator.Orchestrator, states *state.Store, assets *storage.FileStore, opts options) error {
	var jobID string
	var err error
	if opts.inspiration != "" {
		data, err := os.ReadFile(opts.inspiration)
		if err != nil {
			return fmt.Errorf("agent: read inspiration: %w", err)
		}
		key, err := assets.Write(ctx, "uploads/inspiration.png", data)
		if err != nil {
			return err
		}
		jobID, err = orch.CreateInspirationJob(ctx, key, opts.brief, opts.projectType, opts.suburb)
		if err != nil {
			return err
		}
	} else {
		jobID, err = orch.CreateTextJob(ctx, opts.brief, opts.projectType, opts.suburb)
		if err != nil {
			return err
		}
	}

	if err := drain(ctx, tasks, orch); err != nil {
		return err
	}

	status, err := states.ReadStatus(jobID)
	if err != nil {
		return err
	}
	if status.State == domain.StateAwaitingApprov && opts.feedback != "" {
		if err := orch.RegenerateHero(ctx, jobID, opts.feedback); err != nil {
			return err
		}
		if err := drain(ctx, tasks, orch); err != nil {
			return err
		}
		status, err = states.ReadStatus(jobID)
		if err != nil {
			return err
		}
	}
	if status.State == domain.StateAwaitingApprov {
		if !opts.approve {
			fmt.Printf("job %s: hero awaiting approval at %s\n", jobID, status.Hero.Filename)
			return nil
		}
		if err := orch.Approve(ctx, jobID); err != nil {
			return err
		}
		if err := drain(ctx, tasks, orch); err != nil {
			return err
		}
		status, err = states.ReadStatus(jobID)
		if err != nil {
			return err
		}
	}
	switch status.State {
	case domain.StateComplete:
		return printManifest(states, assets, jobID)
	case domain.StateRejected:
		fmt.Printf("job %s rejected\n", jobID)
		return nil
	default:
		return fmt.Errorf("agent: job %s finished in state %s: %s", jobID, status.State, status.Error)
	}
}

// resumeFromHero re-enters the showcase fan-out for an existing job using the
// hero already on disk, so an interrupted run can finish without regenerating.
func resumeFromHero(ctx context.Context, tasks *inlineTasks, orch *orchestrator.Orchestrator, states *state.Store, assets *storage.FileStore, opts options) error {
	if _, err := assets.Read(ctx, opts.jobID+"/"+opts.fromHero); err != nil {
		return fmt.Errorf("agent: hero %s not found for job %s: %w", opts.fromHero, opts.jobID, err)
	}
	manifest, err := states.ReadManifest(opts.jobID)
	if err != nil {
		return err
	}
	payload := domain.TaskPayload{
		Brief:    manifest.Prompt,
		FromHero: opts.fromHero,
	}
	if opts.brief != "" {
		payload.Brief = opts.brief
	}
	if manifest.Parsed != nil {
		payload.ProjectType = manifest.Parsed.ProjectType
		payload.Suburb = manifest.Parsed.Suburb
	}
	if opts.projectType != "" {
		payload.ProjectType = opts.projectType
	}
	if opts.suburb != "" {
		payload.Suburb = opts.suburb
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := tasks.Enqueue(ctx, &domain.Task{JobID: opts.jobID, Type: domain.TaskResumeShowcase, Payload: raw}); err != nil {
		return err
	}
	if err := drain(ctx, tasks, orch); err != nil {
		return err
	}
	status, err := states.ReadStatus(opts.jobID)
	if err != nil {
		return err
	}
	if status.State != domain.StateComplete {
		return fmt.Errorf("agent: job %s finished in state %s: %s", opts.jobID, status.State, status.Error)
	}
	return printManifest(states, assets, opts.jobID)
}

func regenerateOne(ctx context.Context, tasks *inlineTasks, orch *orchestrator.Orchestrator, states *state.Store, opts options) error {
	if err := orch.RegenerateOne(ctx, opts.jobID, opts.regenerate); err != nil {
		return err
	}
	if err := drain(ctx, tasks, orch); err != nil {
		return err
	}
	manifest, err := states.ReadManifest(opts.jobID)
	if err != nil {
		return err
	}
	for _, img := range manifest.Images {
		if img.VariationName == opts.regenerate {
			fmt.Printf("job %s: regenerated %s, score %d in %d attempts, %s\n",
				opts.jobID, img.VariationName, img.Score, img.Attempts, img.Filename)
			return nil
		}
	}
	return fmt.Errorf("agent: variation %s missing from manifest after regeneration", opts.regenerate)
}

func printManifest(states *state.Store, assets *storage.FileStore, jobID string) error {
	manifest, err := states.ReadManifest(jobID)
	if err != nil {
		return err
	}
	fmt.Printf("job %s complete: %d images in %s/%s\n", jobID, len(manifest.Images), assets.BasePath(), jobID)
	for _, img := range manifest.Images {
		marker := " "
		if img.IsHero {
			marker = "*"
		}
		note := ""
		if img.LowConfidence {
			note = " (low confidence)"
		}
		fmt.Printf("%s %-22s score %3d attempts %d  %s%s\n", marker, img.VariationName, img.Score, img.Attempts, img.Filename, note)
	}
	return nil
}

func drain(ctx context.Context, tasks *inlineTasks, orch *orchestrator.Orchestrator) error {
	for {
		task, err := tasks.Claim(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := orch.Dispatch(ctx, *task); err != nil {
			_ = tasks.Finish(ctx, task.ID, domain.TaskStatusFailed, err.Error())
			return err
		}
		if err := tasks.Finish(ctx, task.ID, domain.TaskStatusSucceeded, ""); err != nil {
			return err
		}
	}
}
