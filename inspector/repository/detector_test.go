package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
}

func TestDetector_DetectProject(t *testing.T) {
	tests := []struct {
		description string
		files       map[string]string
		target      string
		root        string
		kind        string
		name        string
		relative    string
	}{
		{
			description: "pyproject",
			files: map[string]string{
				"proj/pyproject.toml": "[project]\nname = \"shapes\"\nversion = \"0.1\"\n",
				"proj/pkg/mod.py":     "x = 1\n",
			},
			target:   "proj/pkg/mod.py",
			root:     "proj",
			kind:     "pyproject",
			name:     "shapes",
			relative: "pkg/mod.py",
		},
		{
			description: "setup.py",
			files: map[string]string{
				"lib/setup.py":      "from setuptools import setup\nsetup(name='geometry', version='1.0')\n",
				"lib/geometry/a.py": "x = 1\n",
			},
			target:   "lib/geometry",
			root:     "lib",
			kind:     "setuptools",
			name:     "geometry",
			relative: "geometry",
		},
		{
			description: "config file takes precedence",
			files: map[string]string{
				"mono/pyproject.toml":      "[project]\nname = \"mono\"\n",
				"mono/svc/.typedoc.yaml":   "style: google\n",
				"mono/svc/src/handlers.py": "x = 1\n",
			},
			target:   "mono/svc/src/handlers.py",
			root:     "mono/svc",
			kind:     "typedoc",
			name:     "svc",
			relative: "src/handlers.py",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			base := t.TempDir()
			writeFiles(t, base, tc.files)
			project, err := New().DetectProject(filepath.Join(base, tc.target))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(base, tc.root), project.RootPath)
			assert.Equal(t, tc.kind, project.Type)
			assert.Equal(t, tc.name, project.Name)
			assert.Equal(t, tc.relative, project.RelativePath)
			assert.Equal(t, filepath.Join(base, tc.root, ".typedoc.yaml"), project.ConfigURL(".typedoc.yaml"))
		})
	}
}

func TestDetector_DetectRepository(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, map[string]string{
		"repo/.git/config":   "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/shapes.git\n",
		"repo/.gitignore":    "build/\n",
		"repo/app/setup.cfg": "[metadata]\nname = shapes-app\n",
		"repo/app/main.py":   "x = 1\n",
	})

	repo, err := New().DetectRepository(filepath.Join(base, "repo/app/main.py"))
	require.NoError(t, err)
	assert.Equal(t, "git", repo.Kind)
	assert.Equal(t, filepath.Join(base, "repo"), repo.Root)
	assert.Equal(t, "git@github.com:acme/shapes.git", repo.Origin)
	assert.Equal(t, filepath.Join(base, "repo", ".gitignore"), repo.IgnoreFile())
	require.NotNil(t, repo.Info)
	assert.Equal(t, filepath.Join(base, "repo/app"), repo.Info.RootPath)
	assert.Equal(t, "shapes-app", repo.Info.Name)

	_, err = New().DetectRepository(filepath.Join(base, "missing.py"))
	assert.Error(t, err)
}
