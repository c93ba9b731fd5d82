package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/trailcomma/inspector/repository"
)

func TestDetector_DetectProject(t *testing.T) {
	var testCases = []struct {
		description string
		files       map[string]string
		target      string
		expectType  string
		expectName  string
		config      string
	}{
		{
			description: "pyproject with tool table",
			files: map[string]string{
				"pyproject.toml":  "[project]\nname = \"demo\"\n\n[tool.trailcomma]\nremove-comma = true\n",
				"pkg/__init__.py": "",
				"pkg/mod.py":      "x = 1\n",
			},
			target:     "pkg/mod.py",
			expectType: "pyproject",
			expectName: "demo",
			config:     "pyproject.toml",
		},
		{
			description: "poetry project without tool table",
			files: map[string]string{
				"pyproject.toml": "[tool.poetry]\nname = \"poetic\"\n",
				"mod.py":         "x = 1\n",
			},
			target:     "mod.py",
			expectType: "pyproject",
			expectName: "poetic",
		},
		{
			description: "yaml config wins",
			files: map[string]string{
				".trailcomma.yaml": "removeComma: true\n",
				"setup.cfg":        "[metadata]\nname = legacy\n",
				"src/mod.py":       "x = 1\n",
			},
			target:     "src",
			expectType: "trailcomma",
			expectName: "legacy",
			config:     ".trailcomma.yaml",
		},
		{
			description: "setup.py project",
			files: map[string]string{
				"setup.py": "from setuptools import setup\nsetup(name='classic')\n",
				"mod.py":   "x = 1\n",
			},
			target:     "mod.py",
			expectType: "setuptools",
			expectName: "classic",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range testCase.files {
				location := filepath.Join(root, name)
				require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
				require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
			}
			project, err := repository.New().DetectProject(context.Background(), filepath.Join(root, testCase.target))
			require.NoError(t, err)
			assert.Equal(t, root, project.RootPath)
			assert.Equal(t, testCase.expectType, project.Type)
			assert.Equal(t, testCase.expectName, project.Name)
			if testCase.config == "" {
				assert.False(t, project.HasConfig())
				return
			}
			assert.Equal(t, filepath.Join(root, testCase.config), project.ConfigURL)
		})
	}
}

func TestDetector_DetectProject_Missing(t *testing.T) {
	_, err := repository.New().DetectProject(context.Background(), filepath.Join(t.TempDir(), "absent.py"))
	assert.Error(t, err)
}
