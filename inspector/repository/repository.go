package repository

// Project represents information about a detected python project
type Project struct {
	RootPath  string // Absolute path to the project root directory
	Type      string // Marker kind that identified the root (pyproject, setuptools, git, ...)
	Name      string // Name of the project (extracted from config files)
	ConfigURL string // trailcomma configuration file found at the root, empty when none
}

// HasConfig reports whether a trailcomma configuration file was found
func (p *Project) HasConfig() bool {
	return p != nil && p.ConfigURL != ""
}
