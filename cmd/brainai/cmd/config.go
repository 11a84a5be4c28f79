package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/brainai/configs"
	"github.com/Aman-CERP/brainai/internal/config"
	"github.com/Aman-CERP/brainai/internal/output"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage brainai configuration.

Configuration precedence (lowest to highest):
  1. Defaults
  2. User config (~/.config/brainai/config.yaml)
  3. Project config (.brainai.yaml)
  4. Environment variables (BRAINAI_*)
  5. --base-url and --api-key flags`,
		Example: `  # Create user config from template
  brainai config init

  # Show effective configuration
  brainai config show

  # Print user config file path
  brainai config path`,
	}

	cmd.AddCommand(newConfigInitCmd(g))
	cmd.AddCommand(newConfigShowCmd(g))
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigRestoreCmd())
	return cmd
}

func newConfigInitCmd(g *globals) *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		Long: `Create the user configuration file at ~/.config/brainai/config.yaml
(or $XDG_CONFIG_HOME/brainai/config.yaml). With --project, create .brainai.yaml
in the project directory instead.

An existing user config is backed up before --force overwrites it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				return runProjectConfigInit(cmd, g, force)
			}
			return runUserConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration")
	cmd.Flags().BoolVar(&project, "project", false, "Create .brainai.yaml in the project directory")
	return cmd
}

func runUserConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())
	path := config.GetUserConfigPath()

	if config.UserConfigExists() {
		if !force {
			out.Warning("User configuration already exists")
			out.Statusf("", "Location: %s", path)
			out.Status("", "Use --force to overwrite")
			return nil
		}
		backup, err := config.BackupUserConfig()
		if err != nil {
			return err
		}
		out.Statusf("", "Backed up existing config to %s", backup)
	}

	if err := writeTemplate(path, configs.UserConfigTemplate); err != nil {
		return err
	}
	out.Successf("Created user configuration at %s", path)
	return nil
}

func runProjectConfigInit(cmd *cobra.Command, g *globals, force bool) error {
	out := output.New(cmd.OutOrStdout())

	dir := g.projectDir
	if dir == "" {
		root, err := config.FindProjectRoot(".")
		if err != nil {
			return err
		}
		dir = root
	}
	path := filepath.Join(dir, config.ProjectConfigName)

	if _, err := os.Stat(path); err == nil && !force {
		out.Warning("Project configuration already exists")
		out.Statusf("", "Location: %s", path)
		return nil
	}

	if err := writeTemplate(path, configs.ProjectConfigTemplate); err != nil {
		return err
	}
	out.Successf("Created project configuration at %s", path)
	return nil
}

// writeTemplate validates tmpl before writing it, so a bad template never
// reaches disk.
func writeTemplate(path, tmpl string) error {
	var parsed config.Config
	if err := yaml.Unmarshal([]byte(tmpl), &parsed); err != nil {
		return fmt.Errorf("embedded template is invalid: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(tmpl), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newConfigShowCmd(g *globals) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show configuration with the API key masked.

--source selects what to show: merged (default), user, project, or defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configForSource(g, source)
			if err != nil {
				return err
			}
			if cfg == nil {
				output.New(cmd.OutOrStdout()).Warningf("No %s configuration file found", source)
				return nil
			}

			cfg = cfg.Redacted()
			if g.jsonOutput {
				return output.New(cmd.OutOrStdout()).JSON(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, project, defaults")
	return cmd
}

func configForSource(g *globals, source string) (*config.Config, error) {
	switch source {
	case "merged":
		return g.config()
	case "defaults":
		return config.NewConfig(), nil
	case "user":
		return config.LoadUserConfig()
	case "project":
		dir := g.projectDir
		if dir == "" {
			root, err := config.FindProjectRoot(".")
			if err != nil {
				return nil, err
			}
			dir = root
		}
		return config.LoadProjectConfig(dir)
	default:
		return nil, fmt.Errorf("unknown source %q (want merged, user, project, or defaults)", source)
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func newConfigRestoreCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "restore [backup]",
		Short: "Restore the user config from a backup",
		Long: `Restore the user configuration from a backup made by 'config init --force'.
Without an argument the newest backup is used. --list prints the backups.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())
			backups, err := config.ListUserConfigBackups()
			if err != nil {
				return err
			}

			if list {
				if len(backups) == 0 {
					out.Status("", "No backups found")
				}
				for _, b := range backups {
					out.Println(b)
				}
				return nil
			}

			var target string
			switch {
			case len(args) == 1:
				target = args[0]
			case len(backups) > 0:
				target = backups[0]
			default:
				return fmt.Errorf("no config backups found in %s", config.GetUserConfigDir())
			}

			if err := config.RestoreUserConfig(target); err != nil {
				return err
			}
			out.Successf("Restored user configuration from %s", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List available backups")
	return cmd
}
