package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/afs"
	"github.com/viant/typedoc/inspector/info"
	"github.com/viant/typedoc/inspector/repository"
	"github.com/viant/typedoc/log"
	"github.com/viant/typedoc/rewriter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner rewrites Python files in parallel and reports per file outcomes
type Runner struct {
	fs       afs.Service
	config   *info.Config
	logger   *zap.SugaredLogger
	rewriter *rewriter.Rewriter
	detector *repository.Detector

	mux     sync.Mutex
	ignores map[string]*ignoreRule
}

type ignoreRule struct {
	root    string
	matcher *gitignore.GitIgnore
}

// New creates a runner applying rw to every selected file
func New(rw *rewriter.Rewriter, options ...Option) *Runner {
	ret := &Runner{
		rewriter: rw,
		config:   info.DefaultConfig(),
		detector: repository.New(),
		ignores:  map[string]*ignoreRule{},
	}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = log.Logger()
	}
	return ret
}

// Run expands targets and processes every selected file; reports follow the Expand order
func (r *Runner) Run(ctx context.Context, targets []string) ([]*Report, error) {
	files, err := r.Expand(ctx, targets)
	if err != nil {
		return nil, err
	}
	reports := make([]*Report, len(files))
	workers := r.config.Workers
	if workers < 1 {
		workers = 1
	}
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, location := range files {
		i, location := i, location
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = r.Process(ctx, location)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	r.logger.Debugw("run completed", "files", len(files), "workers", workers)
	return reports, nil
}

// Expand resolves targets to a de-duplicated list of Python files in target order.
// Explicit files are kept as given, even when missing, so that Process reports
// them as failed; directories are walked skipping hidden entries, .gitignore
// matches and configured exclusions, and their files are sorted.
func (r *Runner) Expand(ctx context.Context, targets []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	add := func(location string) {
		if !seen[location] {
			seen[location] = true
			files = append(files, location)
		}
	}
	for _, target := range targets {
		location, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", target, err)
		}
		object, err := r.fs.Object(ctx, location)
		if err != nil || !object.IsDir() {
			add(location)
			continue
		}
		var found []string
		if err := r.walk(ctx, location, func(location string) { found = append(found, location) }); err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, location := range found {
			add(location)
		}
	}
	return files, nil
}

func (r *Runner) walk(ctx context.Context, root string, add func(string)) error {
	ignore := r.ignoreRule(root)
	visitor := func(ctx context.Context, baseURL, parent string, entry os.FileInfo, reader io.Reader) (bool, error) {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			return false, nil
		}
		location := filepath.Join(root, parent, name)
		relative := filepath.ToSlash(filepath.Join(parent, name))
		if ignore != nil && ignore.matches(location, entry.IsDir()) {
			r.logger.Debugw("ignored", "path", location)
			return false, nil
		}
		if entry.IsDir() {
			return true, nil
		}
		if r.config.Includes(relative) {
			add(location)
		}
		return true, nil
	}
	if err := r.fs.Walk(ctx, root, visitor); err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return nil
}

// ignoreRule returns the .gitignore matcher of the repository holding dir, if any
func (r *Runner) ignoreRule(dir string) *ignoreRule {
	repo, err := r.detector.DetectRepository(dir)
	if err != nil {
		return nil
	}
	ignoreFile := repo.IgnoreFile()
	if ignoreFile == "" {
		return nil
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if rule, ok := r.ignores[ignoreFile]; ok {
		return rule
	}
	var rule *ignoreRule
	if _, err := os.Stat(ignoreFile); err == nil {
		matcher, err := gitignore.CompileIgnoreFile(ignoreFile)
		if err != nil {
			r.logger.Warnw("failed to compile ignore file", "path", ignoreFile, "error", err)
		} else {
			rule = &ignoreRule{root: repo.Root, matcher: matcher}
		}
	}
	r.ignores[ignoreFile] = rule
	return rule
}

func (i *ignoreRule) matches(location string, isDir bool) bool {
	relative, err := filepath.Rel(i.root, location)
	if err != nil || strings.HasPrefix(relative, "..") {
		return false
	}
	relative = filepath.ToSlash(relative)
	if isDir {
		relative += "/"
	}
	return i.matcher.MatchesPath(relative)
}

// Process rewrites one file; in check mode the file is left untouched
func (r *Runner) Process(ctx context.Context, location string) *Report {
	report := &Report{Path: location}
	object, err := r.fs.Object(ctx, location)
	if err != nil {
		return r.failed(report, fmt.Errorf("failed to locate %s: %w", location, err))
	}
	src, err := r.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return r.failed(report, fmt.Errorf("failed to read %s: %w", location, err))
	}
	if report.Before, err = Digest(src); err != nil {
		return r.failed(report, err)
	}
	result, err := r.rewriter.Rewrite(ctx, src)
	if err != nil {
		return r.failed(report, fmt.Errorf("%s: %w", location, err))
	}
	for _, signature := range result.Functions {
		report.Functions = append(report.Functions, signature.Name)
	}
	if !result.Changed {
		report.Status = Unchanged
		report.After = report.Before
		r.logger.Debugw("unchanged", "path", location)
		return report
	}
	if report.After, err = Digest(result.Output); err != nil {
		return r.failed(report, err)
	}
	report.Status = Changed
	if r.config.Check {
		r.logger.Debugw("would change", "path", location, "functions", report.Functions)
		return report
	}
	if err = r.fs.Upload(ctx, location, object.Mode().Perm(), bytes.NewReader(result.Output)); err != nil {
		return r.failed(report, fmt.Errorf("failed to write %s: %w", location, err))
	}
	r.logger.Debugw("changed", "path", location, "functions", report.Functions)
	return report
}

func (r *Runner) failed(report *Report, err error) *Report {
	r.logger.Warnw("failed", "path", report.Path, "error", err)
	return report.fail(err)
}
