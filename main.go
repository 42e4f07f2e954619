package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/antonvlasov/hookah-mix-helper/internal/api"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot/handlers"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot/state"
	"github.com/antonvlasov/hookah-mix-helper/internal/config"
	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/logger"
	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		logger.Warningf(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting Hookah Mix Helper...")

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	llmService := services.NewLLMService(cfg.LLM)
	userService := services.NewUserService(db)
	tobaccoService := services.NewTobaccoService(db)
	mixService := services.NewMixService(llmService, db)

	stateManager, err := newStateManager(cfg.State)
	if err != nil {
		logger.Fatalf("Failed to init state manager: %v", err)
	}

	deps := handlers.Dependencies{
		UserService:    userService,
		TobaccoService: tobaccoService,
		MixService:     mixService,
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	router := api.NewRouter(api.Services{
		UserService:    userService,
		TobaccoService: tobaccoService,
		MixService:     mixService,
	}, splitOrigins(cfg.HTTP.CORSOrigins))

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("Bot stopped with error: %v", err)
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Infof("HTTP API listening on :%s", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("HTTP server stopped with error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown failed: %v", err)
	}

	wg.Wait()
	logger.Info("Stopped")
}

func newStateManager(cfg config.StateConfig) (state.StateManager, error) {
	if cfg.Backend == "redis" {
		return state.NewRedisManager(cfg.RedisHost, cfg.RedisPort)
	}
	return state.NewManager(), nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
