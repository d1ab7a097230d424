package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treegen/internal/config"
	"treegen/internal/generator"
	"treegen/internal/layout"
	"treegen/internal/logger"
	"treegen/internal/progress"
)

const (
	usageFormat      = "Usage: %s <root_dir> <levels> <files_per_dir>\n"
	checkUsageFormat = "Usage: %s check <root_dir> <levels> <files_per_dir>\n"
	createdFormat    = "Directory tree created at: %s\n"

	subdirsFlagName   = "subdirs"
	sizeFlagName      = "size"
	workersFlagName   = "workers"
	configFlagName    = "config"
	logLevelFlagName  = "log-level"
	progressFlagName  = "progress"
	rootShortDesc     = "Generate a synthetic directory tree of random files"
	rootLongDesc      = `Generate a synthetic directory tree of random files.

A root directory literally named "check" is taken as the check subcommand;
pass it as ./check instead.`
	checkShortDesc    = "Compare a directory against the tree treegen would generate"
	exitOK            = 0
	exitFailure       = 1
	exitCheckError    = 2
	positionalArgsLen = 3
)

var (
	// errUsage is returned after the usage line has been printed.
	errUsage = errors.New("usage")
	// errLayoutDiffers is returned by check when the layouts do not match.
	errLayoutDiffers = errors.New("layout differs")
)

type flags struct {
	configPath string
	subdirs    int
	size       int64
	workers    int
	logLevel   string
	progress   bool
}

// settings holds the resolved generation parameters for one invocation.
type settings struct {
	root    string
	opts    generator.Options
	exclude []string
	log     *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line in args (program name first) and returns the
// process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	program := "treegen"
	if len(args) > 0 {
		program = args[0]
		args = args[1:]
	}

	cmd := newRootCommand(program, stdout, stderr)
	cmd.SetArgs(args)

	executed, err := cmd.ExecuteContextC(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, errLayoutDiffers):
		return exitFailure
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if executed != nil && executed.Name() == "check" {
		return exitCheckError
	}
	return exitFailure
}

func newRootCommand(program string, stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           program + " <root_dir> <levels> <files_per_dir>",
		Short:         rootShortDesc,
		Long:          rootLongDesc,
		Args:          positionalArgs(usageFormat, program),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, f, args)
			if err != nil {
				return err
			}
			defer func() { _ = s.log.Sync() }()

			return generate(cmd.Context(), s, f.progress, stdout, stderr)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, configFlagName, "c", "", "config file path (defaults are used when unset)")
	pf.IntVar(&f.subdirs, subdirsFlagName, generator.DefaultSubdirsPerLevel, "subdirectories per directory")
	pf.Int64Var(&f.size, sizeFlagName, generator.DefaultFileSize, "size of each file in bytes")
	pf.StringVar(&f.logLevel, logLevelFlagName, "warn", "log level (debug, info, warn, error)")
	root.Flags().IntVarP(&f.workers, workersFlagName, "w", 1, "number of concurrent workers (1 builds sequentially)")
	root.Flags().BoolVar(&f.progress, progressFlagName, false, "show a progress bar on stderr")

	check := &cobra.Command{
		Use:   "check <root_dir> <levels> <files_per_dir>",
		Short: checkShortDesc,
		Args:  positionalArgs(checkUsageFormat, program),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, f, args)
			if err != nil {
				return err
			}
			defer func() { _ = s.log.Sync() }()

			return checkLayout(s, stdout)
		},
	}
	root.AddCommand(check)

	return root
}

// positionalArgs prints the usage line to stdout when fewer than three
// positional arguments are given. Extra arguments are ignored.
func positionalArgs(format, program string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < positionalArgsLen {
			fmt.Fprintf(cmd.OutOrStdout(), format, program)
			return errUsage
		}
		return nil
	}
}

// resolve merges defaults, the config file and explicitly set flags, then
// parses the positional arguments. A config file is only read when --config
// is given, so a plain invocation always uses the built-in defaults.
func resolve(cmd *cobra.Command, f *flags, args []string) (*settings, error) {
	cfg := config.DefaultConfig()
	if cmd.Flags().Changed(configFlagName) {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed(subdirsFlagName) {
		cfg.SubdirsPerLevel = f.subdirs
	}
	if cmd.Flags().Changed(sizeFlagName) {
		cfg.FileSize = f.size
	}
	if cmd.Flags().Changed(workersFlagName) {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed(logLevelFlagName) {
		cfg.LogLevel = f.logLevel
	}

	levels, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid levels %q: %w", args[1], err)
	}
	filesPerDir, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("invalid files_per_dir %q: %w", args[2], err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &settings{
		root: args[0],
		opts: generator.Options{
			Levels:          levels,
			FilesPerDir:     filesPerDir,
			SubdirsPerLevel: cfg.SubdirsPerLevel,
			FileSize:        cfg.FileSize,
			Workers:         cfg.Workers,
			Logger:          log,
		},
		exclude: cfg.Exclude,
		log:     log,
	}, nil
}

func generate(ctx context.Context, s *settings, showProgress bool, stdout, stderr io.Writer) error {
	if err := s.opts.Validate(); err != nil {
		return err
	}

	var bar *progress.Bar
	if showProgress {
		bar = progress.New(generator.ExpectedFiles(s.opts), stderr)
		s.opts.Progress = bar
	}

	var err error
	if s.opts.Workers > 1 {
		_, err = generator.BuildConcurrent(ctx, s.root, s.opts)
	} else {
		_, err = generator.Build(ctx, s.root, s.opts)
	}
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("failed to generate tree: %w", err)
	}

	fmt.Fprintf(stdout, createdFormat, s.root)
	return nil
}

func checkLayout(s *settings, stdout io.Writer) error {
	expected, err := layout.Expected(s.root, s.opts)
	if err != nil {
		return err
	}
	observed, err := layout.Observe(s.root, s.exclude)
	if err != nil {
		return fmt.Errorf("failed to read tree: %w", err)
	}

	expectedDigest, err := expected.Digest()
	if err != nil {
		return err
	}
	observedDigest, err := observed.Digest()
	if err != nil {
		return err
	}

	s.log.Debug("layouts digested",
		zap.String("expected", expectedDigest),
		zap.String("observed", observedDigest))

	fmt.Fprintf(stdout, "Expected: %s (%d directories, %d files)\n", expectedDigest, expected.Dirs(), expected.Files())
	fmt.Fprintf(stdout, "Observed: %s (%d directories, %d files)\n", observedDigest, observed.Dirs(), observed.Files())

	if expectedDigest == observedDigest {
		fmt.Fprintln(stdout, layout.FormatReport(&layout.CompareResult{}))
		return nil
	}

	result := layout.Compare(expected, observed)
	fmt.Fprintln(stdout, layout.FormatReport(result))
	return errLayoutDiffers
}
