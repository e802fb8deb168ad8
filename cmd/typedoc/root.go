package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/typedoc/docstring"
	"github.com/viant/typedoc/inspector/info"
	"github.com/viant/typedoc/inspector/python"
	"github.com/viant/typedoc/inspector/repository"
	"github.com/viant/typedoc/log"
	"github.com/viant/typedoc/rewriter"
	"github.com/viant/typedoc/runner"
)

var (
	verbose bool
	quiet   bool

	style      string
	quote      string
	check      bool
	workers    int
	exclude    []string
	configPath string
	format     string
	colorMode  string

	// exitCode holds the status bits of the last run
	exitCode int
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typedoc [flags] <path>...",
		Short: "Insert docstring templates into type annotated Python functions",
		Long: `typedoc adds a docstring template to every fully annotated Python function
that has none yet. Directories are searched for *.py files, honoring .gitignore.

Exit status is 0 when nothing changed, 1 when files changed (or would change
with --check), 2 when a file failed and 3 when both happened.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	cmd.Flags().StringVarP(&style, "style", "s", "", "Docstring style: rst, google, numpy (default rst)")
	cmd.Flags().StringVar(&quote, "quote", "", `Docstring quote: """ or '''`)
	cmd.Flags().BoolVar(&check, "check", false, "Report files that would change without writing them")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Number of files processed in parallel (default number of CPUs)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns of files to skip, added to configured ones")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default .typedoc.yaml in the project root)")
	cmd.Flags().StringVarP(&format, "format", "f", "human", "Output format: human, json, yaml")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")

	cmd.AddCommand(newStylesCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command and returns the process exit status bits.
func Execute() (int, error) {
	exitCode = 0
	if err := rootCmd.Execute(); err != nil {
		return exitCode, err
	}
	return exitCode, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	log.SetVerbosity(verbose, quiet)
	logger := log.Logger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	fs := afs.New()
	config, err := loadConfig(ctx, cmd, fs, args)
	if err != nil {
		return err
	}
	formatter, err := docstring.Default(config.Quote).Lookup(config.Style)
	if err != nil {
		return fmt.Errorf("%w: %v", info.ErrConfig, err)
	}
	logger.Debugw("configured", "style", formatter.Name(), "workers", config.Workers, "check", config.Check)

	rw := rewriter.New(formatter,
		rewriter.WithConfig(config),
		rewriter.WithInspector(python.NewInspector(fs)))
	r := runner.New(rw,
		runner.WithFS(fs),
		runner.WithConfig(config),
		runner.WithLogger(logger))
	reports, err := r.Run(ctx, args)
	if err != nil {
		return err
	}
	exitCode = runner.ExitCode(reports)
	return render(cmd, reports, config.Check)
}

// loadConfig layers defaults, the config file, environment and flags, in that order
func loadConfig(ctx context.Context, cmd *cobra.Command, fs afs.Service, targets []string) (*info.Config, error) {
	URL := configPath
	if URL != "" {
		exists, err := fs.Exists(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to check config %s: %w", URL, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: config file %s not found", info.ErrConfig, URL)
		}
	} else if repo := detectRepository(targets); repo != nil {
		project := repo.Info
		URL = project.ConfigURL(info.ConfigFile)
		log.Logger().Debugw("project detected",
			"root", project.RootPath,
			"type", project.Type,
			"name", project.Name,
			"target", project.RelativePath,
			"repository", repo.Root,
			"origin", repo.Origin)
	}
	config, err := info.LoadConfigFile(ctx, fs, URL)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("style") {
		config.Style = style
	}
	if flags.Changed("quote") {
		config.Quote = quote
	}
	if flags.Changed("check") {
		config.Check = check
	}
	if flags.Changed("workers") {
		config.Workers = workers
	}
	if flags.Changed("exclude") {
		config.Exclude = append(config.Exclude, exclude...)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// detectRepository returns the repository of the first target that exists
func detectRepository(targets []string) *repository.Repository {
	detector := repository.New()
	for _, target := range targets {
		if repo, err := detector.DetectRepository(target); err == nil {
			return repo
		}
	}
	return nil
}
