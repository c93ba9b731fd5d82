package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/trailcomma/analyzer"
	"github.com/viant/trailcomma/config"
)

func TestLoad(t *testing.T) {
	var testCases = []struct {
		description string
		name        string
		content     string
		expect      func(t *testing.T, cfg *config.Config)
		hasError    bool
	}{
		{
			description: "pyproject tool table",
			name:        "pyproject.toml",
			content:     "[project]\nname = \"demo\"\n\n[tool.trailcomma]\nremove-comma = true\ntarget-version = \"3.6\"\njobs = 2\n",
			expect: func(t *testing.T, cfg *config.Config) {
				assert.True(t, cfg.RemoveComma)
				assert.Equal(t, analyzer.Remove, cfg.Mode())
				assert.Equal(t, "3.6", cfg.TargetVersion)
				assert.Equal(t, 2, cfg.Jobs)
				assert.NotEmpty(t, cfg.Exclude, "defaults are kept")
			},
		},
		{
			description: "yaml file",
			name:        ".trailcomma.yaml",
			content:     "exitZeroEvenIfChanged: true\nexclude:\n  - build\n  - '*_pb2.py'\nnoCache: true\n",
			expect: func(t *testing.T, cfg *config.Config) {
				assert.False(t, cfg.RemoveComma)
				assert.True(t, cfg.ExitZeroEvenIfChanged)
				assert.True(t, cfg.NoCache)
				assert.Equal(t, []string{"build", "*_pb2.py"}, cfg.Exclude)
				assert.True(t, cfg.Excluded("service_pb2.py"))
				assert.False(t, cfg.Excluded("service.py"))
			},
		},
		{
			description: "invalid target version",
			name:        ".trailcomma.yaml",
			content:     "targetVersion: three\n",
			hasError:    true,
		},
		{
			description: "invalid jobs",
			name:        "pyproject.toml",
			content:     "[tool.trailcomma]\njobs = 0\n",
			hasError:    true,
		},
		{
			description: "malformed toml",
			name:        "pyproject.toml",
			content:     "[tool.trailcomma\n",
			hasError:    true,
		},
		{
			description: "unsupported format",
			name:        "setup.cfg",
			content:     "[metadata]\n",
			hasError:    true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			location := filepath.Join(t.TempDir(), testCase.name)
			require.NoError(t, os.WriteFile(location, []byte(testCase.content), 0o644))
			cfg, err := config.Load(context.Background(), location)
			if testCase.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, location, cfg.Source)
			testCase.expect(t, cfg)
		})
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[tool.trailcomma]\nremove-comma = true\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "mod.py"), []byte("x = 1\n"), 0o644))

	cfg, err := config.Discover(context.Background(), filepath.Join(root, "pkg", "mod.py"))
	require.NoError(t, err)
	assert.True(t, cfg.RemoveComma)
	require.NotNil(t, cfg.Project)
	assert.Equal(t, "pyproject", cfg.Project.Type)
	assert.Equal(t, filepath.Base(root), cfg.Project.Name)

	plain := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(plain, "setup.py"), []byte("setup()\n"), 0o644))
	cfg, err = config.Discover(context.Background(), plain)
	require.NoError(t, err)
	assert.False(t, cfg.RemoveComma)
	assert.Empty(t, cfg.Source)
	require.NotNil(t, cfg.Project)
	assert.Equal(t, "setuptools", cfg.Project.Type)
}

func TestConfig_Validate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	cfg.TargetVersion = "py38"
	assert.NoError(t, cfg.Validate())
	cfg.Exclude = []string{"[unterminated"}
	assert.Error(t, cfg.Validate())
}
