package repository

import "path/filepath"

type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// IgnoreFile returns the repository level .gitignore location
func (r *Repository) IgnoreFile() string {
	if r.Kind != "git" {
		return ""
	}
	return filepath.Join(r.Root, ".gitignore")
}

// Project represents information about a detected Python project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Marker kind: pyproject, setuptools, requirements, git or unknown
	Name         string // Name of the project (extracted from config files)
	RelativePath string // Path from project root to the specified file
}

// ConfigURL returns the location of the project configuration file
func (p *Project) ConfigURL(name string) string {
	return filepath.Join(p.RootPath, name)
}
