package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger returns a zap-based request logging middleware.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Resolve errors here so the logged status is final, and
			// return nil to keep echo from handling them a second time.
			if err := next(c); err != nil {
				c.Error(err)
			}

			logger.Info("request",
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("client_ip", c.RealIP()),
			)
			return nil
		}
	}
}
