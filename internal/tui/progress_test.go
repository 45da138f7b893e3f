package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fosrl/posture/internal/osquery"
	"github.com/fosrl/posture/internal/platform"
	"github.com/fosrl/posture/internal/posture"
	"github.com/stretchr/testify/require"
)

type staticRunner map[string]osquery.Result

func (s staticRunner) Run(ctx context.Context, query string) osquery.Result {
	return s[query]
}

func newTestModel() *progressModel {
	p := posture.ProfileFor(platform.Linux)
	runner := staticRunner{
		p.DiskEncryption.Query: {{"encrypted": "1"}},
	}
	return newProgressModel(context.Background(), ProgressConfig{
		Header:  "Verifying system security...",
		Checker: posture.NewChecker(runner, platform.Linux),
		Checks:  posture.AllChecks,
	})
}

func TestProgressRunsChecksInOrder(t *testing.T) {
	m := newTestModel()

	view := m.View()
	require.Contains(t, view, "Checking disk encryption...")
	require.Contains(t, view, "  Antivirus")

	for i := range posture.AllChecks {
		msg := m.runCurrent()()
		require.Equal(t, checkDoneMsg{check: posture.AllChecks[i]}, msg)
		_, cmd := m.Update(msg)
		if i < len(posture.AllChecks)-1 {
			require.NotNil(t, cmd)
		}
	}

	require.True(t, m.done())
	require.Nil(t, m.runCurrent())

	view = m.View()
	require.Contains(t, view, "✅ The disk is encrypted with LUKS.")
	require.Contains(t, view, "❌ No antivirus detected.")
	require.Contains(t, view, "❌ Screen lock is not configured or is disabled.")
}

func TestProgressCtrlCCancels(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	require.True(t, m.cancelled)
	require.Error(t, m.ctx.Err())
	require.NotContains(t, m.View(), "Checking")
}

func TestSpinnerStopsWhenDone(t *testing.T) {
	m := newTestModel()
	m.current = len(m.config.Checks)

	_, cmd := m.Update(spinnerTickMsg{})
	require.Nil(t, cmd)
}
