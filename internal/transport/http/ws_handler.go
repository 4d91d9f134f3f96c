package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shujaa-quiz-service/internal/app"
	"shujaa-quiz-service/internal/domain"
)

// WSHandler streams leaderboard snapshots to websocket clients. Watchers
// get an initial snapshot and a fresh one whenever a score is submitted.
type WSHandler struct {
	service  *app.QuizService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string                 `json:"type"`
	Payload domain.LeaderboardPage `json:"payload"`
}

// ServeLeaderboard upgrades the request and pushes leaderboard pages for
// the requested filter until the client disconnects.
func (h *WSHandler) ServeLeaderboard(c echo.Context) error {
	filter := domain.ParseFilter(c.QueryParam("filter"))
	limit := app.DefaultLeaderboardLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	updates, cancel := h.service.Feed().Subscribe()
	defer cancel()

	ctx := c.Request().Context()
	if err := h.writeSnapshot(ctx, conn, filter, limit); err != nil {
		return nil
	}

	// Reader loop only detects disconnects; clients send nothing.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-readerDone:
			return nil
		case <-ctx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			if err := h.writeSnapshot(ctx, conn, filter, limit); err != nil {
				return nil
			}
		}
	}
}

func (h *WSHandler) writeSnapshot(ctx context.Context, conn *websocket.Conn, filter domain.LeaderboardFilter, limit int) error {
	page, err := h.service.Leaderboard(ctx, filter, limit)
	if err != nil {
		h.logger.Warn("ws leaderboard query failed", zap.Error(err))
		return err
	}
	if err := conn.WriteJSON(outboundMessage{Type: "leaderboard", Payload: page}); err != nil {
		h.logger.Warn("ws write failed", zap.Error(err))
		return err
	}
	return nil
}
