package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyHeroName is returned when a generation request carries no hero name.
	ErrEmptyHeroName = errors.New("hero name is required")
	// ErrNoRowInserted indicates the leaderboard insert returned no row.
	ErrNoRowInserted = errors.New("leaderboard insert returned no row")
)

// UpstreamError wraps a failure of the generative API call: network errors,
// non-2xx responses, and deadline expiry. The orchestrator masks these with
// fallback content.
type UpstreamError struct {
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("generative API timeout: %v", e.Err)
	}
	return fmt.Sprintf("generative API error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// ParseError indicates the model output contained no JSON object or the
// extracted object was not syntactically valid JSON.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates parsed quiz data that does not satisfy the quiz
// shape contract.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }
