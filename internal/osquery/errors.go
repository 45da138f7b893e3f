package osquery

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// ErrEngineNotFound is matched by ExecutionError when the engine binary
// could not be started at all.
var ErrEngineNotFound = errors.New("query engine not found")

// ExecutionError reports an engine that could not be run or exited non-zero.
type ExecutionError struct {
	Query    string
	Engine   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s exited with status %d", e.Engine, e.ExitCode)
	}
	return fmt.Sprintf("failed to run %s: %v", e.Engine, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is reports missing binaries as ErrEngineNotFound.
func (e *ExecutionError) Is(target error) bool {
	return target == ErrEngineNotFound && e.notFound()
}

func (e *ExecutionError) notFound() bool {
	return errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, fs.ErrNotExist)
}

// DecodeError reports engine output that is not a JSON array of objects.
type DecodeError struct {
	Query  string
	Output string
	Err    error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
