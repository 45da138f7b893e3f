package queries

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueriesMacOS(t *testing.T) {
	var buf bytes.Buffer

	cmd := QueriesCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--platform", "macos"})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Platform: macos\n\nCHECK"))
	require.Contains(t, out, "SELECT * FROM xprotect_entries;")
	require.Contains(t, out, "SELECT * FROM processes WHERE name LIKE '%MRT%' OR name LIKE '%XProtect%';")
	// header + encryption + four antivirus queries + screen lock
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2+1+1+4+1)
}

func TestQueriesWindows(t *testing.T) {
	var buf bytes.Buffer

	cmd := QueriesCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--platform", "windows"})
	require.NoError(t, cmd.Execute())

	require.Contains(t, buf.String(), "SELECT * FROM bitlocker_info;")
	require.Contains(t, buf.String(), "SELECT * FROM windows_security_products;")
}

func TestQueriesUnknownPlatform(t *testing.T) {
	cmd := QueriesCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--platform", "amiga"})
	require.Error(t, cmd.Execute())
}
