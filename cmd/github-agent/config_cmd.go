package main

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/output"
	"github.com/raphi011/agentkit/internal/storage"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage agentkit configuration.

Global config: ~/.config/agentkit/config.toml (override with AGENTKIT_CONFIG)
Local config:  .agentkit.toml (in the repository root)`,
		Example: `  github-agent config init          # Create default global config
  github-agent config init --local  # Create local repo config
  github-agent config show          # Show effective config
  github-agent config path          # Print the global config location`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config.
With --local, creates .agentkit.toml in the current repository root.`,
		Example: `  github-agent config init           # Create global config
  github-agent config init --local   # Create local repo config
  github-agent config init -f        # Overwrite existing config
  github-agent config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			content := config.DefaultConfig()
			if local {
				content = config.DefaultLocalConfig()
			}
			if stdout {
				out.Print(content)
				return nil
			}

			var path string
			if local {
				top, err := newGit(ctx).TopLevel(ctx)
				if err != nil {
					return err
				}
				path = filepath.Join(top, config.LocalConfigFileName)
			} else {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}

			write := storage.WriteNew
			if force {
				write = storage.WriteAtomic
			}
			if err := write(path, []byte(content), 0o644); err != nil {
				if !force {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				return err
			}

			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .agentkit.toml instead of global config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Inside a repository, local overrides from .agentkit.toml are applied.`,
		Example: `  github-agent config show         # TOML
  github-agent config show --json  # JSON`,
		Annotations: requires("git"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				return out.JSON(cfg)
			}
			return toml.NewEncoder(out.Writer()).Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the global config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}
