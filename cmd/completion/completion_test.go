package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "posture"}
	root.AddCommand(CompletionCmd())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestCompletionShells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		out, err := execute(t, "completion", shell)
		require.NoError(t, err, shell)
		require.NotEmpty(t, out, shell)
		require.Contains(t, out, "posture", shell)
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	_, err := execute(t, "completion", "tcsh")
	require.Error(t, err)

	_, err = execute(t, "completion")
	require.Error(t, err)
}
