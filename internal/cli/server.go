package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shujaa-quiz-service/internal/app"
	"shujaa-quiz-service/internal/config"
	"shujaa-quiz-service/internal/infra/gemini"
	"shujaa-quiz-service/internal/infra/memory"
	pginfra "shujaa-quiz-service/internal/infra/postgres"
	redisinfra "shujaa-quiz-service/internal/infra/redis"
	"shujaa-quiz-service/internal/infra/wikipedia"
	transport "shujaa-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	cacheTTL := config.TTLDuration(cfg.Quiz.CacheTTL, 0)
	var cache app.QuizCache
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = redisinfra.NewQuizCache(client, cacheTTL)
	} else {
		cache = memory.NewQuizCache(cacheTTL)
	}

	var leaderboard app.LeaderboardRepository
	if cfg.Postgres.URL != "" {
		db := pginfra.NewDB(cfg.Postgres.URL)
		defer db.Close()
		leaderboard = pginfra.NewLeaderboardRepository(db)
	} else {
		logger.Warn("no postgres url configured, leaderboard is in-memory only")
		leaderboard = memory.NewLeaderboardStore()
	}

	generator := gemini.NewClient(&http.Client{}, cfg.Gemini.APIKey, cfg.Gemini.Model)
	timeout := config.TTLDuration(cfg.Gemini.Timeout, app.DefaultGenerationTimeout)
	service := app.NewQuizService(generator, cache, leaderboard, logger, timeout)

	images := wikipedia.NewClient(&http.Client{Timeout: 10 * time.Second})
	handler := transport.NewHandler(service, images, logger)
	wsHandler := transport.NewWSHandler(service, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(transport.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	handler.Register(e)
	e.GET("/ws/leaderboard", wsHandler.ServeLeaderboard)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	go func() {
		logger.Info("starting quiz service", zap.String("port", finalPort))
		if err := e.Start(":" + finalPort); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
