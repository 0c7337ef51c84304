package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locradar/internal/observability"
	"github.com/Sumatoshi-tech/locradar/pkg/config"
	"github.com/Sumatoshi-tech/locradar/pkg/identity"
	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
	"github.com/Sumatoshi-tech/locradar/pkg/oracle"
	"github.com/Sumatoshi-tech/locradar/pkg/render"
	"github.com/Sumatoshi-tech/locradar/pkg/walker"
)

type scanFixture struct {
	root    string
	out     string
	cfgPath string
	fake    *oracle.Fake
	deps    scanDeps
}

// newScanFixture lays out two sibling repositories: A with Go and Markdown,
// B with Rust.
func newScanFixture(t *testing.T) *scanFixture {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "src")
	repoA := filepath.Join(root, "A")
	repoB := filepath.Join(root, "B")

	for _, repo := range []string{repoA, repoB} {
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	}

	fake := oracle.NewFake()
	fake.AddRepo(repoA, oracle.FakeRepo{
		Files: []string{"main.go", "README.md"},
		Blame: map[string]string{
			"main.go":   oracle.Porcelain(append(oracle.Lines("alice", 6), oracle.Lines("dave", 4)...)...),
			"README.md": oracle.Porcelain(oracle.Lines("alice", 20)...),
		},
	})
	fake.AddRepo(repoB, oracle.FakeRepo{
		Files: []string{"lib.rs"},
		Blame: map[string]string{"lib.rs": oracle.Porcelain(oracle.Lines("alice", 4)...)},
	})

	cfgPath := filepath.Join(base, "empty.yaml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o600))

	fx := &scanFixture{
		root:    root,
		out:     filepath.Join(base, "out"),
		cfgPath: cfgPath,
		fake:    fake,
	}

	fx.deps = scanDeps{
		newOracle: func(string, string) (oracle.Oracle, error) { return fake, nil },
		lookupIdentity: func() (string, error) {
			return "alice", nil
		},
		initTelemetry: observability.Init,
		newRunID:      func() string { return "test-run" },
	}

	return fx
}

func (fx *scanFixture) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newScanCommandWithDeps(fx.deps)

	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", fx.cfgPath, "--svg", filepath.Join(fx.out, "radar.svg")}, args...))

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func TestScan_EndToEndJSON(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)

	stdout, _, err := fx.run(t, "--author", "alice", "--format", "json", fx.root)
	require.NoError(t, err)

	var report render.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, []string{"alice"}, report.Authors)
	assert.Equal(t, 10, report.TotalLines)
	assert.Equal(t, []linecount.Entry{{Language: "Go", Lines: 6}, {Language: "Rust", Lines: 4}}, report.Languages)

	svg, err := os.ReadFile(filepath.Join(fx.out, "radar.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "Go (6)")
	assert.Contains(t, string(svg), "Rust (4)")
}

func TestScan_TextTableAndHTML(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	htmlPath := filepath.Join(fx.out, "radar.html")

	stdout, _, err := fx.run(t, "-a", "alice", "--no-color", "--html", htmlPath, "--path", fx.root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Top 2 languages for alice")
	assert.Contains(t, stdout, "Go")
	assert.Contains(t, stdout, "60.0%")

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Rust")
}

func TestScan_NothingToRender(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)

	stdout, _, err := fx.run(t, "--author", "bob", fx.root)
	require.NoError(t, err)
	assert.Equal(t, msgNothingToRender+"\n", stdout)

	_, statErr := os.Stat(filepath.Join(fx.out, "radar.svg"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestScan_DefaultIdentity(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	calls := 0
	fx.deps.lookupIdentity = func() (string, error) {
		calls++

		return "alice", nil
	}

	stdout, _, err := fx.run(t, "--format", "json", fx.root)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, stdout, `"Rust"`)
}

func TestScan_NoIdentity(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	fx.deps.lookupIdentity = func() (string, error) { return "", identity.ErrNoAuthors }

	_, _, err := fx.run(t, fx.root)
	require.ErrorIs(t, err, identity.ErrNoAuthors)
}

func TestScan_BlankAuthorFlagIsRejected(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	calls := 0
	fx.deps.lookupIdentity = func() (string, error) {
		calls++

		return "alice", nil
	}

	_, _, err := fx.run(t, "--author", "", fx.root)
	require.ErrorIs(t, err, identity.ErrNoAuthors)

	_, _, err = fx.run(t, "--author", " ", fx.root)
	require.ErrorIs(t, err, identity.ErrNoAuthors)
	assert.Zero(t, calls)
}

func TestScan_DepthZeroSkipsNestedRepositories(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)

	stdout, _, err := fx.run(t, "-a", "alice", "--depth", "0", fx.root)
	require.NoError(t, err)
	assert.Equal(t, msgNothingToRender+"\n", stdout)
	assert.Empty(t, fx.fake.Listed())
}

func TestScan_ConfigFileAndFlagPrecedence(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	require.NoError(t, os.WriteFile(fx.cfgPath, []byte("scan:\n  top_n: 1\n  authors: [alice]\noutput:\n  format: yaml\n"), 0o600))

	stdout, _, err := fx.run(t, fx.root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "language: Go")
	assert.NotContains(t, stdout, "Rust")

	stdout, _, err = fx.run(t, "--top-n", "2", fx.root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "language: Rust")
}

func TestScan_InvalidFlagValue(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)

	_, _, err := fx.run(t, "--format", "xml", fx.root)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = fx.run(t, "--backend", "svn", fx.root)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestScan_RootNotADirectory(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	file := filepath.Join(fx.root, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0o600))

	_, _, err := fx.run(t, "-a", "alice", file)
	require.ErrorIs(t, err, walker.ErrNotADirectory)
}

func TestScan_BackendFailure(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	fx.deps.newOracle = func(string, string) (oracle.Oracle, error) {
		return nil, oracle.ErrUnknownBackend
	}

	_, _, err := fx.run(t, "-a", "alice", fx.root)
	require.ErrorIs(t, err, oracle.ErrUnknownBackend)
}

func TestScan_LogsCarryRunID(t *testing.T) {
	t.Parallel()

	fx := newScanFixture(t)
	require.NoError(t, os.WriteFile(fx.cfgPath, []byte("logging:\n  level: info\n  json: true\n"), 0o600))

	_, stderr, err := fx.run(t, "-a", "alice", "--format", "json", fx.root)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"run_id":"test-run"`)
	assert.Contains(t, stderr, `"msg":"scan finished"`)
}
