package osquery

import (
	"context"
	"errors"
	"time"

	"github.com/fosrl/posture/internal/logger"
)

// Runner wraps a Querier and absorbs every failure into an empty Result.
// Callers only ever see rows or no rows.
type Runner struct {
	querier Querier
	timeout time.Duration
}

// NewRunner returns a Runner. A zero timeout leaves each query unbounded.
func NewRunner(q Querier, timeout time.Duration) *Runner {
	return &Runner{querier: q, timeout: timeout}
}

// Run executes query and returns its rows, or an empty Result if the engine
// failed or produced unparseable output.
func (r *Runner) Run(ctx context.Context, query string) Result {
	logger.Info("Executing query: %s", query)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result, err := r.querier.Query(ctx, query)
	if err != nil {
		reportFailure(err)
		return Result{}
	}
	if result == nil {
		return Result{}
	}
	return result
}

func reportFailure(err error) {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		logger.Warning("Error decoding JSON response: %v", decodeErr)
		logger.Debug("Raw output: %s", decodeErr.Output)
		return
	}

	logger.Warning("Error executing the query: %v", err)

	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		logger.Warning("Error output: %s", execErr.Stderr)
	}
}
