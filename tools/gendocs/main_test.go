package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fosrl/posture/cmd"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesEveryCommand(t *testing.T) {
	root, err := cmd.RootCommand(false)
	require.NoError(t, err)

	dir := t.TempDir()
	files, err := generate(root, docOptions{Dir: dir})
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	require.Subset(t, names, []string{"posture.md", "posture_check.md", "posture_queries.md", "posture_version.md"})

	data, err := os.ReadFile(filepath.Join(dir, "posture_check.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "--strict")
}

func TestGenerateFrontMatter(t *testing.T) {
	root, err := cmd.RootCommand(false)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "docs")
	_, err = generate(root, docOptions{Dir: dir, FrontMatter: true, BaseURL: "/commands"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "posture_check.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), `title: "posture check"`)
	require.Contains(t, string(data), "url: /commands/posture_check/")
	require.Contains(t, string(data), "(/commands/posture/)")
}
