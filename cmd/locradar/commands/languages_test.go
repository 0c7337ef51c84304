package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLanguages(t *testing.T, args ...string) string {
	t.Helper()

	cmd := NewLanguagesCommand()

	var stdout bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	return stdout.String()
}

func TestLanguages_ProgrammingOnlyByDefault(t *testing.T) {
	t.Parallel()

	var rows []languageRow
	require.NoError(t, json.Unmarshal([]byte(runLanguages(t, "--json")), &rows))

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		assert.Equal(t, "programming", r.Kind)
		names = append(names, r.Name)
	}

	assert.Contains(t, names, "Go")
	assert.Contains(t, names, "Rust")
	assert.NotContains(t, names, "Markdown")
}

func TestLanguages_All(t *testing.T) {
	t.Parallel()

	out := runLanguages(t, "--all")
	assert.Contains(t, out, "Markdown")
	assert.Contains(t, out, "prose")
}

func TestLanguages_Ext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".go: Go (programming, counted)\n", runLanguages(t, "--ext", ".go"))
	assert.Equal(t, ".md: Markdown (prose, not counted)\n", runLanguages(t, "--ext", "md"))
	assert.Equal(t, ".zzz: unknown\n", runLanguages(t, "--ext", ".zzz"))
	assert.Equal(t, ".h: Objective-C (programming, counted)\n", runLanguages(t, "--ext", ".h"))
}

func TestLanguages_RowsListOwnedExtensions(t *testing.T) {
	t.Parallel()

	var rows []languageRow
	require.NoError(t, json.Unmarshal([]byte(runLanguages(t, "--json")), &rows))

	byName := make(map[string][]string, len(rows))
	for _, r := range rows {
		byName[r.Name] = r.Extensions
	}

	assert.Contains(t, byName["C"], ".c")
	assert.NotContains(t, byName["C"], ".h")
	assert.NotContains(t, byName["C++"], ".h")
	assert.Contains(t, byName["Objective-C"], ".h")
}

func TestLanguages_UnknownCatalog(t *testing.T) {
	t.Parallel()

	cmd := NewLanguagesCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", "ctags"})
	require.Error(t, cmd.Execute())
}
