package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/fosrl/posture/internal/config"
	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/osquery"
	"github.com/stretchr/testify/require"
)

type emptyQuerier struct {
	queries []string
}

func (e *emptyQuerier) Query(ctx context.Context, query string) (osquery.Result, error) {
	e.queries = append(e.queries, query)
	return osquery.Result{}, nil
}

func TestRootCommandWithoutResources(t *testing.T) {
	cmd, err := RootCommand(false)
	require.NoError(t, err)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"check", "queries", "version", "completion"})
}

func TestRootRunsEveryCheck(t *testing.T) {
	var buf bytes.Buffer
	logger.InitLogger(logger.LogLevelInfo)
	logger.GetLogger().SetOutput(&buf)
	t.Cleanup(func() { logger.InitLogger(logger.LogLevelInfo) })

	cfg, err := config.LoadConfigFrom(t.TempDir())
	require.NoError(t, err)
	cfg.Platform = "linux"

	q := &emptyQuerier{}
	ctx := config.WithConfig(context.Background(), cfg)
	ctx = osquery.WithQuerier(ctx, q)

	cmd, err := RootCommand(false)
	require.NoError(t, err)
	cmd.SetContext(ctx)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	require.Len(t, q.queries, 3)
	require.Contains(t, buf.String(), "Verifying system security...")
	require.Contains(t, buf.String(), "❌ Screen lock is not configured or is disabled.")
}

func TestRootAcceptsCheckFlags(t *testing.T) {
	var logs, out bytes.Buffer
	logger.InitLogger(logger.LogLevelInfo)
	logger.GetLogger().SetOutput(&logs)
	t.Cleanup(func() { logger.InitLogger(logger.LogLevelInfo) })

	cfg, err := config.LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = osquery.WithQuerier(ctx, &emptyQuerier{})

	cmd, err := RootCommand(false)
	require.NoError(t, err)
	cmd.SetContext(ctx)
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs([]string{"--output", "json", "--platform", "windows"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), `"platform": "windows"`)
	require.NotContains(t, out.String(), "Executing query")
}
