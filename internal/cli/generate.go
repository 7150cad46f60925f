package cli

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libsgen/internal/config"
	"github.com/matzehuels/libsgen/internal/watch"
	"github.com/matzehuels/libsgen/pkg/manifest"
	"github.com/matzehuels/libsgen/pkg/observability"
)

// generateOpts holds the flags of the generate command that are not config keys.
type generateOpts struct {
	dryRun   bool
	watch    bool
	debounce time.Duration
}

// generateCommand creates the generate command for writing the libraries file.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate [pom.xml | groupId:artifactId[:version]]",
		Short: "Write the libraries file of a Maven project",
		Long: `Walk the dependency tree of a Maven project, apply the dependency pattern
and scope filters, and write the libraries file.

The root is a pom.xml path (default: the pom key, "pom.xml") or a
groupId:artifactId[:version] coordinate resolved from the configured
repositories. The file is written to <output-dir>/<finalName>.<packaging>.json
relative to the POM unless --output-name is given.`,
		Example: `  # Generate for ./pom.xml into ./target
  libsgen generate

  # Preview changes without writing
  libsgen generate --dry-run

  # Regenerate whenever pom.xml or libsgen.toml changes
  libsgen generate --watch

  # Generate for an artifact on Maven Central
  libsgen generate com.google.guava:guava:33.0.0-jre --output-dir .`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if opts.watch {
				return c.runWatch(cmd, args, cfg, opts)
			}
			_, err = runGenerate(cmd.Context(), opts, true)
			return err
		},
	}

	addResolveFlags(cmd)

	d := config.Default()
	f := cmd.Flags()
	f.String("output-dir", d.OutputDir, "directory of the libraries file, relative to the POM")
	f.String("output-name", "", "libraries file name (default: <finalName>.<packaging>.json)")
	f.Bool("pretty", d.Pretty, "indent the libraries file")
	f.String("base-url", d.BaseURL, "download base URL for groups without an override")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the diff against the current file instead of writing")
	f.BoolVarP(&opts.watch, "watch", "w", false, "regenerate when the POM or config file changes")
	f.DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating in watch mode")

	return cmd
}

// runGenerate performs one generation with the config and logger on ctx.
// With interactive set a spinner and the status summary are printed; watch
// mode prints its own status line.
func runGenerate(ctx context.Context, opts generateOpts, interactive bool) (*watch.RunResult, error) {
	cfg := config.FromContext(ctx)
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	stats := &observability.ResolveStats{}
	defer observability.SetResolveHooks(observability.Tee(observability.Resolve(), stats))()

	var spinner *Spinner
	stop := func() {}
	if interactive {
		spinner, stop = startResolveSpinner(ctx, "Loading "+cfg.POM+"...")
	}

	s, err := newSession(ctx)
	if err != nil {
		stop()
		return nil, err
	}

	gen := &manifest.Generator{
		Walker:    s.walker(),
		Filters:   s.filters,
		URLs:      manifest.NewURLResolver(cfg.BaseURL, cfg.GroupURLMap()),
		Separator: cfg.Separator,
		Logger:    logger,
	}
	if spinner != nil {
		spinner.SetMessage("Walking " + s.root.Coordinate() + "...")
	}
	res, err := gen.Generate(ctx, s.root)
	stop()
	if err != nil {
		return nil, err
	}
	if sum := stats.Summary(); sum.Resolved > 0 {
		logger.Debug("Resolved projects", "count", sum.Resolved, "declared", sum.Deps,
			"took", sum.Elapsed.Round(time.Millisecond), "slowest", sum.Slowest)
	}

	path, err := manifest.OutputPath(s.outputDir(), cfg.OutputName, s.root.FinalName, s.root.Packaging)
	if err != nil {
		return nil, err
	}
	data, err := manifest.Encode(res.Manifest, cfg.Pretty)
	if err != nil {
		return nil, err
	}

	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	changed := !bytes.Equal(current, data)

	if opts.dryRun {
		diff, err := manifest.Diff(current, data, path+" (current)", path+" (generated)")
		if err != nil {
			return nil, err
		}
		if interactive {
			if diff.HasDifferences {
				printDiff(diff.Unified)
				printInfo("Dry run: %d lines added, %d removed; nothing written", diff.Added, diff.Removed)
			} else {
				printInfo("Dry run: %s is up to date", path)
			}
		}
		return &watch.RunResult{Included: len(res.Included), OutputPath: path, Changed: changed}, nil
	}

	if changed {
		if err := manifest.Write(path, res.Manifest, cfg.Pretty); err != nil {
			return nil, err
		}
	}
	prog.done("Generated libraries file")

	if interactive {
		printSuccess("Libraries file for %s", StyleHighlight.Render(s.root.Coordinate()))
		printStats(res.Discovered, res.Skipped, len(res.Excluded), len(res.Included))
		printFile(path)
		if !changed {
			printDetail("unchanged")
		}
		if len(res.Included) == 0 {
			printWarning("No dependency passed the filters; the libraries file is empty")
		}
	}
	return &watch.RunResult{Included: len(res.Included), OutputPath: path, Changed: changed}, nil
}

// runWatch generates once and then on every change of the POM or config
// file. The configuration is reloaded for each run.
func (c *CLI) runWatch(cmd *cobra.Command, args []string, cfg *config.Config, opts generateOpts) error {
	if cfg.IsCoordinate() {
		return errUsage("--watch needs a pom.xml path, not a coordinate")
	}

	files := []string{cfg.POM}
	if cfg.ConfigFile != "" {
		files = append(files, cfg.ConfigFile)
	}

	return watch.Run(cmd.Context(), watch.Options{
		Files:    files,
		Debounce: opts.debounce,
		Logger:   loggerFromContext(cmd.Context()),
		Out:      stdout,
	}, func(ctx context.Context) (*watch.RunResult, error) {
		cfg, err := c.loadConfig(cmd, args)
		if err != nil {
			return nil, err
		}
		return runGenerate(config.NewContext(ctx, cfg), opts, false)
	})
}
