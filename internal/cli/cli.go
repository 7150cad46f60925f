package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libsgen/internal/config"
	"github.com/matzehuels/libsgen/pkg/buildinfo"
	"github.com/matzehuels/libsgen/pkg/deps"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/filter"
	"github.com/matzehuels/libsgen/pkg/integrations"
	mavenapi "github.com/matzehuels/libsgen/pkg/integrations/maven"
	"github.com/matzehuels/libsgen/pkg/maven"
	"github.com/matzehuels/libsgen/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "libsgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "libsgen writes the libraries file of a Maven project",
		Long: `libsgen walks the dependency tree of a Maven project, filters it through
dependency patterns and scopes, and writes a JSON libraries file that lists
the download URL of every remaining artifact.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			observability.SetHTTPHooks(logHTTPHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default: ./libsgen.toml, then ~/.config/libsgen/libsgen.toml)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.String("log-level", config.LogLevelInfo, "log level (debug, info, warn, error)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig loads the layered configuration for cmd and attaches it to the
// command context. A positional argument overrides the pom key. The logger
// level follows the result unless --verbose was given.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cmd, c.configFile)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.POM = args[0]
	}
	if c.verbose {
		cfg.LogLevel = config.LogLevelDebug
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		c.SetLogLevel(lvl)
	}
	cmd.SetContext(config.NewContext(cmd.Context(), cfg))
	return cfg, nil
}

// addResolveFlags registers the flags shared by every command that resolves
// a project. Flag names match config keys so that viper binds them.
func addResolveFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	f.String("separator", d.Separator, "separator between group, artifact and version")
	f.Bool("transitive", false, "also resolve the artifacts of nested projects")
	f.String("local-repository", d.LocalRepository, "local Maven repository")
	f.StringSlice("remote", nil, "remote repository URL (repeatable, replaces configured repositories)")
}

// =============================================================================
// Project Resolution
// =============================================================================

// session bundles everything needed to walk and filter one project.
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	builder *maven.ProjectBuilder
	root    *maven.Project
	filters *filter.Chain
}

// newSession loads the root project named by the pom key of the config on
// ctx, either a pom.xml path or a groupId:artifactId[:version] coordinate,
// and compiles the filters. It logs through the logger on ctx.
func newSession(ctx context.Context) (*session, error) {
	cfg := config.FromContext(ctx)
	logger := loggerFromContext(ctx)
	filters, err := filter.FromConfig(cfg.Filter, filter.WithLogger(logger), filter.WithSeparator(cfg.Separator))
	if err != nil {
		return nil, err
	}

	local, err := maven.NewLocalRepository(cfg.LocalRepository)
	if err != nil {
		return nil, err
	}
	client := mavenapi.NewClient(integrations.NewHTTPClient())
	builder := maven.NewProjectBuilder(local, cfg.RemoteRepositories,
		maven.WithLogger(logger), maven.WithClient(client))

	var root *maven.Project
	if cfg.IsCoordinate() {
		root, err = builder.LoadCoordinate(ctx, cfg.POM)
	} else {
		root, err = builder.Load(ctx, cfg.POM)
	}
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %s from %s", root.Coordinate(), cfg.POM)

	return &session{cfg: cfg, logger: logger, builder: builder, root: root, filters: filters}, nil
}

// walker returns a walker over the session's repositories.
func (s *session) walker(opts ...deps.Option) *deps.Walker {
	opts = append([]deps.Option{deps.WithLogger(s.logger), deps.WithTransitive(s.cfg.Transitive)}, opts...)
	return deps.NewWalker(s.builder, opts...)
}

// outputDir returns the libraries file directory. A relative output dir is
// taken relative to the POM, or to the working directory for coordinates.
func (s *session) outputDir() string {
	dir := s.cfg.OutputDir
	if filepath.IsAbs(dir) || s.root.Path == "" {
		return dir
	}
	return filepath.Join(filepath.Dir(s.root.Path), dir)
}

// stdout is where command output goes; tests replace it.
var stdout io.Writer = os.Stdout

// errUsage reports a flag or argument combination the command cannot run with.
func errUsage(format string, args ...any) error {
	return errs.New(errs.ErrCodeInvalidInput, format, args...)
}
