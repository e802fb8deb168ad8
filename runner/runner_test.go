package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/typedoc/docstring"
	"github.com/viant/typedoc/inspector/info"
	"github.com/viant/typedoc/rewriter"
	"github.com/viant/typedoc/runner"
)

const (
	eligible   = "def area(w: float, h: float) -> float:\n    return w * h\n"
	documented = "def area(w: float, h: float) -> float:\n    \"\"\"Area.\"\"\"\n    return w * h\n"
	broken     = "def area(w: float, h: float -> float:\n    return w * h\n"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func newRunner(t *testing.T, config *info.Config) *runner.Runner {
	t.Helper()
	formatter, err := docstring.Default(config.Quote).Lookup(config.Style)
	require.NoError(t, err)
	return runner.New(rewriter.New(formatter, rewriter.WithConfig(config)), runner.WithConfig(config))
}

func TestRunner_Run(t *testing.T) {
	root := writeTree(t, map[string]string{
		".git/HEAD":           "ref: refs/heads/main\n",
		".gitignore":          "build/\n*_pb2.py\n",
		"shapes.py":           eligible,
		"done.py":             documented,
		"broken.py":           broken,
		"pkg/geometry.py":     eligible,
		"pkg/messages_pb2.py": eligible,
		"build/gen.py":        eligible,
		".venv/lib.py":        eligible,
		"notes.txt":           eligible,
	})
	config := info.DefaultConfig()
	config.Workers = 2

	reports, err := newRunner(t, config).Run(context.Background(), []string{root})
	require.NoError(t, err)

	var paths []string
	statuses := map[string]runner.Status{}
	for _, report := range reports {
		relative, err := filepath.Rel(root, report.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(relative))
		statuses[filepath.ToSlash(relative)] = report.Status
	}
	assert.Equal(t, []string{"broken.py", "done.py", "pkg/geometry.py", "shapes.py"}, paths)
	assert.Equal(t, runner.Failed, statuses["broken.py"])
	assert.Equal(t, runner.Unchanged, statuses["done.py"])
	assert.Equal(t, runner.Changed, statuses["pkg/geometry.py"])
	assert.Equal(t, runner.Changed, statuses["shapes.py"])
	assert.Equal(t, runner.ExitChanged|runner.ExitFailed, runner.ExitCode(reports))

	for _, report := range reports {
		switch report.Status {
		case runner.Failed:
			assert.Equal(t, "syntax", report.Reason)
			assert.True(t, errors.Is(report.Err, rewriter.ErrSyntax))
		case runner.Changed:
			assert.Equal(t, []string{"area"}, report.Functions)
			assert.NotEqual(t, report.Before, report.After)
		case runner.Unchanged:
			assert.Equal(t, report.Before, report.After)
		}
	}

	content, err := os.ReadFile(filepath.Join(root, "shapes.py"))
	require.NoError(t, err)
	assert.Contains(t, string(content), ":param w: [w description]")
	untouched, err := os.ReadFile(filepath.Join(root, "build/gen.py"))
	require.NoError(t, err)
	assert.Equal(t, eligible, string(untouched))

	again, err := newRunner(t, config).Run(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, runner.ExitFailed, runner.ExitCode(again), "second run only reports the broken file")
}

func TestRunner_Run_Check(t *testing.T) {
	root := writeTree(t, map[string]string{"shapes.py": eligible})
	config := info.DefaultConfig()
	config.Check = true

	reports, err := newRunner(t, config).Run(context.Background(), []string{filepath.Join(root, "shapes.py")})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, runner.Changed, reports[0].Status)
	assert.Equal(t, runner.ExitChanged, runner.ExitCode(reports))

	content, err := os.ReadFile(filepath.Join(root, "shapes.py"))
	require.NoError(t, err)
	assert.Equal(t, eligible, string(content))
}

func TestRunner_Expand(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app/main.py":         eligible,
		"app/test_main.py":    eligible,
		"app/stubs/types.pyi": eligible,
		"scripts/run.py":      eligible,
	})
	config := info.DefaultConfig()
	config.Exclude = []string{"test_*.py"}
	config.Include = []string{"*.py", "*.pyi"}
	r := newRunner(t, config)

	files, err := r.Expand(context.Background(), []string{
		filepath.Join(root, "app"),
		filepath.Join(root, "app/main.py"),
		filepath.Join(root, "scripts/run.py"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "app/main.py"),
		filepath.Join(root, "app/stubs/types.pyi"),
		filepath.Join(root, "scripts/run.py"),
	}, files)

	files, err = r.Expand(context.Background(), []string{
		filepath.Join(root, "scripts/run.py"),
		filepath.Join(root, "missing.py"),
		filepath.Join(root, "app/main.py"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "scripts/run.py"),
		filepath.Join(root, "missing.py"),
		filepath.Join(root, "app/main.py"),
	}, files, "explicit targets keep their order")
}

func TestRunner_Run_MissingFile(t *testing.T) {
	root := writeTree(t, map[string]string{"shapes.py": eligible})
	missing := filepath.Join(root, "missing.py")

	reports, err := newRunner(t, info.DefaultConfig()).Run(context.Background(), []string{missing, filepath.Join(root, "shapes.py")})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, missing, reports[0].Path)
	assert.Equal(t, runner.Failed, reports[0].Status)
	assert.Equal(t, "io", reports[0].Reason)
	assert.NotEmpty(t, reports[0].Error)

	assert.Equal(t, runner.Changed, reports[1].Status)
	assert.Equal(t, []string{"area"}, reports[1].Functions)
	assert.Equal(t, runner.ExitChanged|runner.ExitFailed, runner.ExitCode(reports))

	content, err := os.ReadFile(filepath.Join(root, "shapes.py"))
	require.NoError(t, err)
	assert.Contains(t, string(content), ":param w: [w description]")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		description string
		statuses    []runner.Status
		expect      int
	}{
		{description: "no files", expect: 0},
		{description: "all unchanged", statuses: []runner.Status{runner.Unchanged, runner.Unchanged}, expect: 0},
		{description: "one changed", statuses: []runner.Status{runner.Unchanged, runner.Changed}, expect: 1},
		{description: "one failed", statuses: []runner.Status{runner.Failed, runner.Unchanged}, expect: 2},
		{description: "changed and failed", statuses: []runner.Status{runner.Changed, runner.Failed}, expect: 3},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var reports []*runner.Report
			for _, status := range tc.statuses {
				reports = append(reports, &runner.Report{Status: status})
			}
			assert.Equal(t, tc.expect, runner.ExitCode(reports))
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := runner.Summarize([]*runner.Report{
		{Status: runner.Changed, Functions: []string{"a", "b"}},
		{Status: runner.Unchanged},
		{Status: runner.Failed},
		{Status: runner.Changed, Functions: []string{"c"}},
	})
	assert.Equal(t, runner.Summary{Changed: 2, Unchanged: 1, Failed: 1, Functions: 3}, summary)
}

func TestDigest(t *testing.T) {
	first, err := runner.Digest([]byte(eligible))
	require.NoError(t, err)
	second, err := runner.Digest([]byte(eligible))
	require.NoError(t, err)
	other, err := runner.Digest([]byte(documented))
	require.NoError(t, err)
	assert.Len(t, first, 16)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}
