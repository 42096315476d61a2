package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"showcase/internal/adapter/repo"
	"showcase/internal/brief"
	"showcase/internal/http/handlers"
	"showcase/internal/http/httpapi"
	"showcase/internal/infra"
	"showcase/internal/middleware"
	"showcase/internal/orchestrator"
	"showcase/internal/providers/genai"
	"showcase/internal/providers/image"
	"showcase/internal/providers/vision"
	"showcase/internal/state"
	"showcase/internal/storage"
	"showcase/internal/verify"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to connect database")
	}
	defer pool.Close()

	tasks := repo.NewTaskRepository(pool, cfg.WorkerLease)
	if err := tasks.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("api: failed to ensure task schema")
	}

	states, err := state.NewStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure state store")
	}
	assets, err := storage.NewFileStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure storage")
	}

	client, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure gemini client")
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

	app := handlers.NewApp(orch, states, assets, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    middleware.NewMemoryLimitStore(cfg.RateLimitPerMin, time.Minute, 10000),
	})

	server := infra.NewHTTPServer(cfg, router)
	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("api: http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api: failed to shutdown server")
	}
	logger.Info().Msg("api: stopped")
}
