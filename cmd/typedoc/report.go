package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/typedoc/runner"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// styles holds color formatters for the human report
type styles struct {
	changed   *color.Color
	unchanged *color.Color
	failed    *color.Color
	summary   *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		changed:   color.New(color.FgYellow),
		unchanged: color.New(color.FgHiBlack),
		failed:    color.New(color.Bold, color.FgRed),
		summary:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{s.changed, s.unchanged, s.failed, s.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// output is the machine readable report
type output struct {
	Files    []*runner.Report `json:"files" yaml:"files"`
	Summary  runner.Summary   `json:"summary" yaml:"summary"`
	Check    bool             `json:"check" yaml:"check"`
	ExitCode int              `json:"exitCode" yaml:"exitCode"`
}

func validateFormat(format string) error {
	switch format {
	case "human", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func render(cmd *cobra.Command, reports []*runner.Report, check bool) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(newOutput(reports, check))
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(newOutput(reports, check)); err != nil {
			return err
		}
		return encoder.Close()
	case "human":
		enabled, err := colorEnabled(colorMode, out)
		if err != nil {
			return err
		}
		renderHuman(out, newStyles(enabled), reports, check)
		return nil
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func newOutput(reports []*runner.Report, check bool) *output {
	if reports == nil {
		reports = []*runner.Report{}
	}
	return &output{
		Files:    reports,
		Summary:  runner.Summarize(reports),
		Check:    check,
		ExitCode: runner.ExitCode(reports),
	}
}

func renderHuman(out io.Writer, s *styles, reports []*runner.Report, check bool) {
	changedLabel := "changed"
	if check {
		changedLabel = "would change"
	}
	for _, report := range reports {
		path := displayPath(report.Path)
		switch report.Status {
		case runner.Changed:
			if quiet {
				continue
			}
			fmt.Fprintf(out, "%s %s (%s)\n", s.changed.Sprintf("%-12s", changedLabel), path, strings.Join(report.Functions, ", "))
		case runner.Failed:
			fmt.Fprintf(out, "%s %s: %s\n", s.failed.Sprintf("%-12s", "failed"), path, report.Error)
		case runner.Unchanged:
			if verbose {
				fmt.Fprintf(out, "%s %s\n", s.unchanged.Sprintf("%-12s", "unchanged"), path)
			}
		}
	}
	if quiet {
		return
	}
	summary := runner.Summarize(reports)
	fmt.Fprintln(out, s.summary.Sprintf("%d %s, %d unchanged, %d failed, %d functions documented",
		summary.Changed, changedLabel, summary.Unchanged, summary.Failed, summary.Functions))
}

// colorEnabled resolves the --color flag, honoring NO_COLOR in auto mode
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		file, ok := out.(*os.File)
		if !ok || os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return term.IsTerminal(int(file.Fd())), nil
	}
	return false, fmt.Errorf("unknown color mode: %s", mode)
}

// displayPath shortens path relative to the working directory when it is below it
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	relative, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(relative, "..") {
		return path
	}
	return relative
}
