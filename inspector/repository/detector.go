package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
)

const (
	// YAMLConfig is the standalone trailcomma configuration file
	YAMLConfig = ".trailcomma.yaml"
	// PyProject holds the [tool.trailcomma] table
	PyProject = "pyproject.toml"
)

// Detector identifies python project root folders and the configuration they carry
type Detector struct {
	// Common project root marker files/directories
	markers []string
	fs      afs.Service
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			YAMLConfig,         // trailcomma settings
			PyProject,          // PEP 517/518 projects
			"setup.cfg",        // setuptools projects
			"setup.py",         // legacy setuptools projects
			"tox.ini",          // tox managed projects
			"requirements.txt", // pip managed projects
			".git",             // Generic VCS marker
		},
		fs: afs.New(),
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(ctx, startDir)
	project := &Project{Type: "unknown", RootPath: startDir}
	if rootPath != "" {
		project.RootPath = rootPath
		project.Type = projectType
		project.Name = d.extractProjectName(ctx, rootPath)
		project.ConfigURL = d.findConfig(ctx, rootPath)
	}
	return project, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, marker)); ok {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findConfig returns the yaml config, or pyproject.toml when it has a [tool.trailcomma] table
func (d *Detector) findConfig(ctx context.Context, rootPath string) string {
	yamlPath := filepath.Join(rootPath, YAMLConfig)
	if ok, _ := d.fs.Exists(ctx, yamlPath); ok {
		return yamlPath
	}
	pyprojectPath := filepath.Join(rootPath, PyProject)
	manifest, ok := d.loadPyProject(ctx, pyprojectPath)
	if !ok {
		return ""
	}
	if _, ok := manifest.Tool["trailcomma"]; ok {
		return pyprojectPath
	}
	return ""
}

type pyProject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool map[string]toml.Primitive `toml:"tool"`
}

func (d *Detector) loadPyProject(ctx context.Context, location string) (*pyProject, bool) {
	data, err := d.fs.DownloadWithURL(ctx, location)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	manifest := &pyProject{}
	meta, err := toml.Decode(string(data), manifest)
	if err != nil {
		return nil, false
	}
	if manifest.Project.Name == "" {
		poetry := struct {
			Name string `toml:"name"`
		}{}
		if primitive, ok := manifest.Tool["poetry"]; ok && meta.PrimitiveDecode(primitive, &poetry) == nil {
			manifest.Project.Name = poetry.Name
		}
	}
	return manifest, true
}

var (
	setupCfgName = regexp.MustCompile(`(?m)^\s*name\s*=\s*(\S+)\s*$`)
	setupPyName  = regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)
)

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(ctx context.Context, rootPath string) string {
	if manifest, ok := d.loadPyProject(ctx, filepath.Join(rootPath, PyProject)); ok && manifest.Project.Name != "" {
		return manifest.Project.Name
	}
	if data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "setup.cfg")); err == nil {
		if matches := setupCfgName.FindSubmatch(data); len(matches) >= 2 {
			return string(matches[1])
		}
	}
	if data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "setup.py")); err == nil {
		if matches := setupPyName.FindSubmatch(data); len(matches) >= 2 {
			return string(matches[1])
		}
	}
	return filepath.Base(rootPath)
}

func determineProjectType(marker string) string {
	switch marker {
	case YAMLConfig:
		return "trailcomma"
	case PyProject:
		return "pyproject"
	case "setup.cfg", "setup.py":
		return "setuptools"
	case "tox.ini":
		return "tox"
	case "requirements.txt":
		return "pip"
	case ".git":
		return "git"
	}
	return "unknown"
}
