// Package config provides configuration management for libsgen.
//
// Configuration is loaded from four sources with the following precedence
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (LIBSGEN_ prefix, "-" and "." become "_")
//  3. Config file (libsgen.toml in the working directory or ~/.config/libsgen)
//  4. Defaults
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/libsgen/pkg/deps"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/filter"
	"github.com/matzehuels/libsgen/pkg/manifest"
	"github.com/matzehuels/libsgen/pkg/maven"
)

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// FileName is the config file name looked up during auto-discovery.
const FileName = "libsgen.toml"

// GroupURL overrides the download base URL for one groupId.
type GroupURL struct {
	Group string `mapstructure:"group" toml:"group"`
	URL   string `mapstructure:"url" toml:"url"`
}

// Config represents the configuration for libsgen.
type Config struct {
	// POM is the project to generate for: a pom.xml path or a
	// groupId:artifactId[:version] coordinate.
	POM string `mapstructure:"pom" toml:"pom"`

	// Separator joins group, artifact and version in library names and
	// in the strings dependency patterns match against.
	Separator string `mapstructure:"separator" toml:"separator"`

	// Pretty indents the libraries file.
	Pretty bool `mapstructure:"pretty" toml:"pretty"`

	// OutputDir is the directory of the libraries file, relative to the POM.
	OutputDir string `mapstructure:"output-dir" toml:"output-dir"`

	// OutputName is the libraries file name. Empty means
	// "<finalName>.<packaging>.json".
	OutputName string `mapstructure:"output-name" toml:"output-name"`

	// Transitive resolves the artifacts of nested projects too.
	Transitive bool `mapstructure:"transitive" toml:"transitive"`

	// LocalRepository is the local Maven repository; "~" is expanded.
	LocalRepository string `mapstructure:"local-repository" toml:"local-repository"`

	// RemoteRepositories are searched in order for POMs.
	RemoteRepositories []maven.Repository `mapstructure:"remote-repositories" toml:"remote-repositories"`

	// BaseURL is the download base URL for groups without an override.
	BaseURL string `mapstructure:"base-url" toml:"base-url"`

	// GroupURLs override BaseURL per groupId.
	GroupURLs []GroupURL `mapstructure:"group-urls" toml:"group-urls"`

	// Filter holds the dependency pattern and scope rules.
	Filter filter.Config `mapstructure:"filter" toml:"filter"`

	// LogLevel controls the verbosity of log output.
	// Valid values: debug, info, warn, error.
	LogLevel string `mapstructure:"log-level" toml:"log-level"`

	// ConfigFile is the resolved path to the config file used.
	// Set after Load, not read from config itself.
	ConfigFile string `mapstructure:"-" toml:"-"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		POM:                "pom.xml",
		Separator:          deps.DefaultSeparator,
		Pretty:             true,
		OutputDir:          "target",
		LocalRepository:    maven.DefaultLocalRepositoryPath,
		RemoteRepositories: []maven.Repository{maven.Central()},
		BaseURL:            manifest.DefaultBaseURL,
		LogLevel:           LogLevelInfo,
	}
}

// Validate checks that all config values are valid. Every failure carries
// a CONFIGURATION or INVALID_* code.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return errs.New(errs.ErrCodeConfiguration, "invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if strings.TrimSpace(c.POM) == "" {
		return errs.New(errs.ErrCodeConfiguration, "no root project: set pom to a pom.xml path or a coordinate")
	}
	if err := errs.ValidateSeparator(c.Separator); err != nil {
		return err
	}
	if c.OutputName != "" {
		if err := errs.ValidateOutputName(c.OutputName); err != nil {
			return err
		}
	}
	if c.BaseURL != "" {
		if err := errs.ValidateURL(c.BaseURL); err != nil {
			return errs.Wrap(errs.ErrCodeConfiguration, err, "base-url")
		}
	}

	for i, g := range c.GroupURLs {
		if err := errs.ValidateCoordinatePart("group", g.Group); err != nil {
			return errs.Wrap(errs.ErrCodeConfiguration, err, "group-urls[%d]", i)
		}
		if err := errs.ValidateURL(g.URL); err != nil {
			return errs.Wrap(errs.ErrCodeConfiguration, err, "group-urls[%d] (%s)", i, g.Group)
		}
	}
	for i, r := range c.RemoteRepositories {
		if err := errs.ValidateURL(r.URL); err != nil {
			return errs.Wrap(errs.ErrCodeConfiguration, err, "remote-repositories[%d]", i)
		}
	}

	if _, err := filter.FromConfig(c.Filter); err != nil {
		return err
	}
	return nil
}

// GroupURLMap returns GroupURLs as a groupId to URL map. Later entries win.
func (c *Config) GroupURLMap() map[string]string {
	m := make(map[string]string, len(c.GroupURLs))
	for _, g := range c.GroupURLs {
		m[g.Group] = g.URL
	}
	return m
}

// IsCoordinate reports whether POM names a coordinate rather than a file.
// A value is a coordinate if it contains ':' and no file of that name exists.
func (c *Config) IsCoordinate() bool {
	if !strings.Contains(c.POM, ":") {
		return false
	}
	_, err := os.Stat(c.POM)
	return err != nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	return enc.Encode(c)
}

// Load initialises configuration from flags, environment variables, and an
// optional config file. A fresh viper instance is used on every call so that
// Load is safe for concurrent tests.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	cfg := Default()
	// Decoding into the default slice would merge file entries into Central.
	cfg.RemoteRepositories = nil
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfiguration, err, "unmarshaling config")
	}

	if remotes := v.GetStringSlice("remote"); len(remotes) > 0 {
		cfg.RemoteRepositories = make([]maven.Repository, len(remotes))
		for i, u := range remotes {
			cfg.RemoteRepositories[i] = maven.Repository{ID: fmt.Sprintf("remote-%d", i+1), URL: u}
		}
	}
	if len(cfg.RemoteRepositories) == 0 {
		cfg.RemoteRepositories = []maven.Repository{maven.Central()}
	}
	for i := range cfg.RemoteRepositories {
		if cfg.RemoteRepositories[i].ID == "" {
			cfg.RemoteRepositories[i].ID = fmt.Sprintf("remote-%d", i+1)
		}
	}

	local, err := homedir.Expand(cfg.LocalRepository)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfiguration, err, "local-repository")
	}
	cfg.LocalRepository = local

	// Store the resolved config file path so downstream code can locate it.
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers default values in viper. Keys without a default are
// unknown to AutomaticEnv, so every nested filter key is registered.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("pom", d.POM)
	v.SetDefault("separator", d.Separator)
	v.SetDefault("pretty", d.Pretty)
	v.SetDefault("output-dir", d.OutputDir)
	v.SetDefault("output-name", "")
	v.SetDefault("transitive", false)
	v.SetDefault("local-repository", d.LocalRepository)
	v.SetDefault("base-url", d.BaseURL)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("remote", []string{})
	for _, key := range []string{
		"filter.dependency.includes",
		"filter.dependency.excludes",
		"filter.scope.includes",
		"filter.scope.excludes",
	} {
		v.SetDefault(key, []string{})
	}
}

// configureEnv sets up environment variable support.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("LIBSGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
}

// configureFile sets up the config file source.
func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return errs.Wrap(errs.ErrCodeConfiguration, err, "config file %q", configFile)
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")

		if err := v.ReadInConfig(); err != nil {
			return errs.Wrap(errs.ErrCodeConfiguration, err, "reading config file %q", configFile)
		}

		return nil
	}

	// Auto-discovery mode.
	v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if dir, err := UserConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		// No config file found → perfectly fine in auto-discovery.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}

		// Found a file but it was malformed.
		return errs.Wrap(errs.ErrCodeConfiguration, err, "parsing config file")
	}

	return nil
}

// UserConfigDir returns ~/.config/libsgen.
func UserConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "libsgen"), nil
}

// bindFlags walks from cmd up to the root and binds all PersistentFlags.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	// Bind the current command's own flags.
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errs.Wrap(errs.ErrCodeConfiguration, err, "binding flags")
	}

	// Walk up to root and bind all persistent flags at each level.
	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return errs.Wrap(errs.ErrCodeConfiguration, err, "binding persistent flags")
		}
	}

	return nil
}

// WriteFile writes cfg as TOML to path. An existing file is only replaced
// when force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errs.New(errs.ErrCodeConfiguration, "%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cfg.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext extracts a Config from ctx, falling back to Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}
