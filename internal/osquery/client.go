package osquery

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// DefaultEngine is the interactive osquery shell looked up on PATH.
const DefaultEngine = "osqueryi"

// Querier executes a single query against the inspection engine.
type Querier interface {
	Query(ctx context.Context, query string) (Result, error)
}

// Client runs queries by shelling out to `<engine> --json <query>`.
type Client struct {
	engine string
}

// NewClient returns a Client for the given engine binary. An empty path
// selects DefaultEngine.
func NewClient(engine string) *Client {
	if engine == "" {
		engine = DefaultEngine
	}
	return &Client{engine: engine}
}

// Engine returns the binary this client invokes.
func (c *Client) Engine() string {
	return c.engine
}

// Query runs the engine and waits for it to exit. Cancellation or a
// deadline on ctx kills the engine process.
func (c *Client) Query(ctx context.Context, query string) (Result, error) {
	stdout, err := c.run(ctx, query, "--json", query)
	if err != nil {
		return nil, err
	}

	result, err := decodeResult(stdout)
	if err != nil {
		return nil, &DecodeError{Query: query, Output: string(stdout), Err: err}
	}
	return result, nil
}

// EngineVersion returns the raw output of `<engine> --version`.
func (c *Client) EngineVersion(ctx context.Context) (string, error) {
	stdout, err := c.run(ctx, "", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}

func (c *Client) run(ctx context.Context, query string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.engine, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		execErr := &ExecutionError{
			Query:  query,
			Engine: c.engine,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			execErr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			execErr.Err = ctxErr
			execErr.ExitCode = 0
		}
		return nil, execErr
	}

	return stdout.Bytes(), nil
}
