package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"showcase/internal/adapter/repo"
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

const taskPollInterval = 2 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	tasks := repo.NewTaskRepository(pool, cfg.WorkerLease)
	if err := tasks.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to ensure task schema")
	}

	states, err := state.NewStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure state store")
	}
	assets, err := storage.NewFileStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	client, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure gemini client")
	}
	if !client.Configured() {
		logger.Warn().Str("model", client.ImageModel()).Msg("worker: gemini api key missing, using synthetic asset generation")
	}
	analyzer := vision.NewGeminiAnalyzer(client)

	orch := orchestrator.New(orchestrator.Options{
		Parser:       brief.NewParser(analyzer, logger),
		Analyzer:     analyzer,
		Generator:    image.NewGeminiGenerator(client),
		Verifier:     verify.New(analyzer),
		States:       states,
		Assets:       assets,
		Tasks:        tasks,
		Logger:       logger,
		Threshold:    cfg.VerifyThreshold,
		MaxRetries:   cfg.MaxRetries,
		HeroRegenCap: cfg.HeroRegenCap,
		Model:        client.ImageModel(),
	})

	logger.Info().Msg("worker: started")
	if err := run(ctx, tasks, orch, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func run(ctx context.Context, tasks domain.TaskRepository, orch *orchestrator.Orchestrator, logger infra.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		task, err := tasks.Claim(ctx)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Error().Err(err).Msg("worker: failed to claim task")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(taskPollInterval):
			}
			continue
		}

		handle(ctx, tasks, orch, logger, task)
	}
}

func handle(ctx context.Context, tasks domain.TaskRepository, orch *orchestrator.Orchestrator, logger infra.Logger, task *domain.Task) {
	logger.Info().
		Int64("task_id", task.ID).
		Str("job_id", task.JobID).
		Str("type", string(task.Type)).
		Msg("worker: picked task")

	status := domain.TaskStatusSucceeded
	errMsg := ""
	if err := orch.Dispatch(ctx, *task); err != nil {
		logger.Error().Err(err).
			Int64("task_id", task.ID).
			Str("job_id", task.JobID).
			Msg("worker: task failed")
		status = domain.TaskStatusFailed
		errMsg = err.Error()
	}
	if err := tasks.Finish(ctx, task.ID, status, errMsg); err != nil {
		logger.Error().Err(err).
			Int64("task_id", task.ID).
			Msg("worker: failed to record task status")
	}
}
