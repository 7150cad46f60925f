package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libsgen/internal/config"
)

// configCommand creates the config command with init and show subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the libsgen configuration file",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default values",
		Long: `Write a config file with the default values to path, to ./libsgen.toml,
or with --global to ~/.config/libsgen/libsgen.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			switch {
			case len(args) > 0:
				path = args[0]
			case global:
				dir, err := config.UserConfigDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, config.FileName)
			}

			if err := config.WriteFile(path, config.Default(), force); err != nil {
				return err
			}
			printSuccess("Wrote config file")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&global, "global", false, "write to the user config directory")

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
LIBSGEN_* environment variables and flags, as TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			source := "(none, defaults and environment only)"
			if cfg.ConfigFile != "" {
				source = cfg.ConfigFile
			}
			fmt.Fprintln(stdout, StyleDim.Render("# config file: "+source))
			return cfg.Encode(stdout)
		},
	}

	return cmd
}
