package repository

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
)

var (
	pyProjectName = regexp.MustCompile(`(?m)^\s*name\s*=\s*["']([^"']+)["']`)
	setupName     = regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)
	setupCfgName  = regexp.MustCompile(`(?m)^\s*name\s*=\s*(\S+)`)
)

// Detector identifies Python project root folders
type Detector struct {
	fs afs.Service
	// project root marker files/directories, in priority order
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			".typedoc.yaml",
			"pyproject.toml",
			"setup.py",
			"setup.cfg",
			"requirements.txt",
			".git",
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, startDir, err := d.startDir(filePath)
	if err != nil {
		return nil, err
	}
	rootPath, marker := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = determineProjectType(marker)
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.extractProjectName(info.RootPath)
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(filePath string) (*Repository, error) {
	_, startDir, err := d.startDir(filePath)
	if err != nil {
		return nil, err
	}
	info, err := d.DetectProject(filePath)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		return &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: extractGitOrigin(gitRoot),
			Info:   info,
		}, nil
	}
	return &Repository{Kind: info.Type, Root: info.RootPath, Info: info}, nil
}

func (d *Detector) startDir(filePath string) (string, string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", "", err
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return "", "", err
	}
	if !fileInfo.IsDir() {
		return absPath, filepath.Dir(absPath), nil
	}
	return absPath, absPath, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
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

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || (homeDir != "" && parent == homeDir) {
			return ""
		}
		dir = parent
	}
}

// extractProjectName attempts to extract a project name from packaging files
func (d *Detector) extractProjectName(rootPath string) string {
	ctx := context.Background()
	candidates := []struct {
		file    string
		pattern *regexp.Regexp
	}{
		{"pyproject.toml", pyProjectName},
		{"setup.py", setupName},
		{"setup.cfg", setupCfgName},
	}
	for _, candidate := range candidates {
		content, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, candidate.file))
		if err != nil || len(content) == 0 {
			continue
		}
		if matches := candidate.pattern.FindSubmatch(content); len(matches) >= 2 {
			return string(matches[1])
		}
	}
	return filepath.Base(rootPath)
}

// extractGitOrigin extracts the origin URL from git config
func extractGitOrigin(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = strings.Contains(line, `[remote "origin"]`)
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case ".typedoc.yaml":
		return "typedoc"
	case "pyproject.toml":
		return "pyproject"
	case "setup.py", "setup.cfg":
		return "setuptools"
	case "requirements.txt":
		return "requirements"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
