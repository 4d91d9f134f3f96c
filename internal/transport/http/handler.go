package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shujaa-quiz-service/internal/app"
	"shujaa-quiz-service/internal/domain"
	"shujaa-quiz-service/internal/infra/wikipedia"
)

const (
	defaultHeroName = "Kenyan Hero"
	defaultAvatar   = "/avatars/default-hero.png"
)

// Handler serves the quiz and leaderboard REST API.
type Handler struct {
	service  *app.QuizService
	images   *wikipedia.Client
	logger   *zap.Logger
	validate *validator.Validate
}

func NewHandler(service *app.QuizService, images *wikipedia.Client, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		images:   images,
		logger:   logger,
		validate: validator.New(),
	}
}

// Register mounts the API routes.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/generate-initial-questions", h.GenerateInitialQuestions)
	api.POST("/generate-questions", h.GenerateQuestions)
	api.POST("/submit-score", h.SubmitScore)
	api.GET("/leaderboard", h.Leaderboard)
	api.POST("/performance-message", h.PerformanceMessage)
	api.POST("/fetch-hero-image", h.FetchHeroImage)
	api.GET("/facts/random", h.RandomFact)
}

type generateRequest struct {
	HeroName string `json:"heroName" validate:"required"`
}

// GenerateQuestions returns a full ten-question quiz. If the orchestrator
// fails outright, the fallback quiz is served directly so the player never
// sees a hard generation failure.
func (h *Handler) GenerateQuestions(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Hero name is required")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Hero name is required")
	}

	quiz, err := h.service.GenerateQuiz(c.Request().Context(), req.HeroName)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyHeroName) {
			return badRequest(c, "Hero name is required")
		}
		h.logger.Error("quiz generation failed, serving fallback", zap.Error(err))
		name := strings.TrimSpace(req.HeroName)
		if name == "" {
			name = defaultHeroName
		}
		return c.JSON(http.StatusOK, app.FallbackQuiz(name))
	}
	return c.JSON(http.StatusOK, quiz)
}

// GenerateInitialQuestions returns the quick three-question batch.
func (h *Handler) GenerateInitialQuestions(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Hero name is required")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Hero name is required")
	}

	quiz, err := h.service.GenerateInitialQuestions(c.Request().Context(), req.HeroName)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyHeroName) {
			return badRequest(c, "Hero name is required")
		}
		h.logger.Error("initial question generation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate initial questions"})
	}
	return c.JSON(http.StatusOK, quiz)
}

type submitScoreRequest struct {
	PlayerName     string `json:"playerName" validate:"required,max=100"`
	HeroName       string `json:"heroName" validate:"required,max=100"`
	Score          *int   `json:"score" validate:"required,min=0"`
	TotalQuestions *int   `json:"totalQuestions" validate:"required,min=0"`
	CorrectAnswers *int   `json:"correctAnswers" validate:"required,min=0"`
}

// SubmitScore persists a finished session and returns the player's rank.
func (h *Handler) SubmitScore(c echo.Context) error {
	var req submitScoreRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "All fields are required")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "All fields are required")
	}
	if *req.CorrectAnswers > *req.TotalQuestions {
		return badRequest(c, "correctAnswers cannot exceed totalQuestions")
	}

	result, err := h.service.SubmitScore(c.Request().Context(), domain.ScoreSubmission{
		PlayerName:     req.PlayerName,
		HeroName:       req.HeroName,
		Score:          *req.Score,
		TotalQuestions: *req.TotalQuestions,
		CorrectAnswers: *req.CorrectAnswers,
	})
	if err != nil {
		h.logger.Error("score submission failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit score"})
	}
	return c.JSON(http.StatusOK, result)
}

// Leaderboard returns the filtered, ordered leaderboard. The entries are
// carried under both "leaderboard" and "scores" for caller convenience.
func (h *Handler) Leaderboard(c echo.Context) error {
	filter := domain.ParseFilter(c.QueryParam("filter"))
	limit := app.DefaultLeaderboardLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	page, err := h.service.Leaderboard(c.Request().Context(), filter, limit)
	if err != nil {
		h.logger.Error("leaderboard query failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch leaderboard"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"leaderboard": page.Entries,
		"scores":      page.Entries,
		"totalCount":  page.TotalCount,
		"filter":      page.Filter,
	})
}

type performanceMessageRequest struct {
	Score          *int   `json:"score" validate:"required,min=0"`
	TotalQuestions *int   `json:"totalQuestions" validate:"required,min=0"`
	HeroName       string `json:"heroName" validate:"required"`
}

// PerformanceMessage returns a post-game message; generation failures are
// masked with the templated sentence inside the service.
func (h *Handler) PerformanceMessage(c echo.Context) error {
	var req performanceMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Score, totalQuestions, and heroName are required")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Score, totalQuestions, and heroName are required")
	}

	message := h.service.PerformanceMessage(c.Request().Context(), *req.Score, *req.TotalQuestions, req.HeroName)
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}

// FetchHeroImage looks up a hero portrait on Wikipedia, falling back to the
// bundled default avatar.
func (h *Handler) FetchHeroImage(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Hero name is required")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Hero name is required")
	}

	imageURL, err := h.images.FindPortrait(c.Request().Context(), strings.TrimSpace(req.HeroName))
	if err != nil || imageURL == "" {
		if err != nil {
			h.logger.Warn("hero image lookup failed", zap.String("hero", req.HeroName), zap.Error(err))
		}
		return c.JSON(http.StatusOK, echo.Map{"imageUrl": defaultAvatar, "source": "default"})
	}
	return c.JSON(http.StatusOK, echo.Map{"imageUrl": imageURL, "source": "wikipedia"})
}

// RandomFact returns one Kenyan fact for loading screens.
func (h *Handler) RandomFact(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"fact": app.RandomFact()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
