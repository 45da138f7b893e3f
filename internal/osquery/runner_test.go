package osquery

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fosrl/posture/internal/logger"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	result   Result
	err      error
	queries  []string
	deadline bool
}

func (f *fakeQuerier) Query(ctx context.Context, query string) (Result, error) {
	f.queries = append(f.queries, query)
	_, f.deadline = ctx.Deadline()
	return f.result, f.err
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitLogger(logger.LogLevelInfo)
	logger.GetLogger().SetOutput(&buf)
	logger.GetLogger().SetErrorOutput(&buf)
	t.Cleanup(func() { logger.InitLogger(logger.LogLevelInfo) })
	return &buf
}

func TestRunReturnsRows(t *testing.T) {
	logs := captureLogs(t)
	q := &fakeQuerier{result: Result{{"encrypted": "1"}}}

	result := NewRunner(q, 0).Run(context.Background(), "SELECT * FROM disk_encryption;")

	require.Equal(t, Result{{"encrypted": "1"}}, result)
	require.Equal(t, []string{"SELECT * FROM disk_encryption;"}, q.queries)
	require.Equal(t, "Executing query: SELECT * FROM disk_encryption;\n", logs.String())
	require.False(t, q.deadline)
}

func TestRunAbsorbsExecutionError(t *testing.T) {
	logs := captureLogs(t)
	q := &fakeQuerier{err: &ExecutionError{
		Engine:   "osqueryi",
		ExitCode: 1,
		Stderr:   "Error: no such table: bitlocker_info",
		Err:      errors.New("exit status 1"),
	}}

	result := NewRunner(q, 0).Run(context.Background(), "SELECT * FROM bitlocker_info;")

	require.NotNil(t, result)
	require.Empty(t, result)
	require.Contains(t, logs.String(), "Error executing the query: osqueryi exited with status 1")
	require.Contains(t, logs.String(), "Error output: Error: no such table: bitlocker_info")
}

func TestRunAbsorbsDecodeError(t *testing.T) {
	logs := captureLogs(t)
	q := &fakeQuerier{err: &DecodeError{Output: "garbage", Err: errors.New("invalid character 'g'")}}

	result := NewRunner(q, 0).Run(context.Background(), "SELECT 1;")

	require.Empty(t, result)
	require.Contains(t, logs.String(), "Error decoding JSON response: invalid character 'g'")
}

func TestRunNilResultIsEmpty(t *testing.T) {
	captureLogs(t)
	result := NewRunner(&fakeQuerier{}, 0).Run(context.Background(), "SELECT 1;")
	require.NotNil(t, result)
	require.Empty(t, result)
}

func TestRunAppliesTimeout(t *testing.T) {
	captureLogs(t)
	q := &fakeQuerier{result: Result{}}

	NewRunner(q, time.Minute).Run(context.Background(), "SELECT 1;")

	require.True(t, q.deadline)
}

func TestExecutionErrorIsNotFound(t *testing.T) {
	_, lookErr := execLookPathMissing()
	err := &ExecutionError{Engine: "missing", Err: lookErr}
	require.ErrorIs(t, err, ErrEngineNotFound)

	err = &ExecutionError{Engine: "osqueryi", ExitCode: 1, Err: errors.New("exit status 1")}
	require.NotErrorIs(t, err, ErrEngineNotFound)
}
