package http

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shujaa-quiz-service/internal/app"
	"shujaa-quiz-service/internal/domain"
	"shujaa-quiz-service/internal/infra/memory"
)

func newWSTestServer(t *testing.T) (*httptest.Server, *app.QuizService) {
	t.Helper()
	service := app.NewQuizService(
		stubGenerator{respond: func(string) (string, error) { return "", errors.New("unused") }},
		memory.NewQuizCache(0),
		memory.NewLeaderboardStore(),
		zap.NewNop(),
		time.Second,
	)

	e := echo.New()
	ws := NewWSHandler(service, zap.NewNop())
	e.GET("/ws/leaderboard", ws.ServeLeaderboard)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, service
}

func readLeaderboardMessage(t *testing.T, conn *websocket.Conn) outboundMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg outboundMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "leaderboard", msg.Type)
	return msg
}

func TestServeLeaderboardInitialSnapshot(t *testing.T) {
	srv, service := newWSTestServer(t)

	_, err := service.SubmitScore(context.Background(), domain.ScoreSubmission{
		PlayerName: "Asha", HeroName: "Tom Mboya",
		Score: 150, TotalQuestions: 10, CorrectAnswers: 8,
	})
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/leaderboard?filter=all"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	msg := readLeaderboardMessage(t, conn)
	assert.Equal(t, domain.FilterAll, msg.Payload.Filter)
	require.Len(t, msg.Payload.Entries, 1)
	assert.Equal(t, "Asha", msg.Payload.Entries[0].PlayerName)
}

func TestServeLeaderboardPushesOnSubmit(t *testing.T) {
	srv, service := newWSTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/leaderboard"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	initial := readLeaderboardMessage(t, conn)
	assert.Equal(t, 0, initial.Payload.TotalCount)

	_, err = service.SubmitScore(context.Background(), domain.ScoreSubmission{
		PlayerName: "Juma", HeroName: "Wangari Maathai",
		Score: 200, TotalQuestions: 10, CorrectAnswers: 9,
	})
	require.NoError(t, err)

	pushed := readLeaderboardMessage(t, conn)
	assert.Equal(t, 1, pushed.Payload.TotalCount)
	require.Len(t, pushed.Payload.Entries, 1)
	assert.Equal(t, "Juma", pushed.Payload.Entries[0].PlayerName)
}
