package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAnalyzeTextOutputListsStructureAndDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ember")
	require.NoError(t, os.WriteFile(path, []byte("fn f() {\n  break;\n}\n"), 0o600))

	out, _, err := runRoot(t, []string{"analyze", path})
	require.NoError(t, err)
	assert.Contains(t, out, "Function f")
	assert.Contains(t, out, "BREAK_OUTSIDE_LOOP")
}

func TestAnalyzeJSONOutputIsWellFormed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.ember")
	require.NoError(t, os.WriteFile(path, []byte("struct S { x: int }\n"), 0o600))

	out, _, err := runRoot(t, []string{"analyze", "--json", path})
	require.NoError(t, err)

	var reports []fileDiagnosticsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, path, reports[0].Path)
	require.Len(t, reports[0].Structure, 2)
	assert.Equal(t, "Struct", reports[0].Structure[1].Kind)
}

func TestAnalyzeRequiresAtLeastOneFile(t *testing.T) {
	_, _, err := runRoot(t, []string{"analyze"})
	assert.Error(t, err)
}
