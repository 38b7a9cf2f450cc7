// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dirtags/dirtags/internal/config"
	"github.com/dirtags/dirtags/internal/issue"
	"github.com/dirtags/dirtags/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `dirtags config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, global *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dirtags configuration",
		Long: `Manage dirtags configuration.

Configuration is stored in:
  - Linux: ~/.config/dirtags/config.cue
  - macOS: ~/Library/Application Support/dirtags/config.cue
  - Windows: %APPDATA%\dirtags\config.cue

A config.cue in the current directory is used when no per-user file exists.
DIRTAGS_* environment variables override file values (e.g. DIRTAGS_WIDTH).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return silence(cmd, showConfig(cmd.Context(), app, *global))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Long: `Create the default configuration file.

Writes the per-user config file, or the file named by --config. An existing
file is left untouched.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return silence(cmd, initConfig(app, *global))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return silence(cmd, showConfigPath(app, *global))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadStrict(cmd.Context(), app, *global)
			if err != nil {
				return silence(cmd, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

// silence stops cobra and fang from printing an error the command rendered itself.
func silence(cmd *cobra.Command, err error) error {
	if err != nil {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
	}
	return err
}

// loadStrict loads configuration and, unlike a listing, fails on errors.
func loadStrict(ctx context.Context, app *App, global globalFlags) (*config.Config, error) {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(global.configPath)})
	if err != nil {
		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			ae = issue.WrapWithContext(err, "load configuration", global.configPath)
		}
		return nil, app.fail(newServiceError(ae, issue.ConfigLoadFailedId), global.verbose, autoStyle)
	}
	return cfg, nil
}

func showConfig(ctx context.Context, app *App, global globalFlags) error {
	cfg, err := loadStrict(ctx, app, global)
	if err != nil {
		return err
	}

	out := app.stdout
	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, pathErr := config.ResolvePath(config.LoadOptions{ConfigFilePath: types.FilesystemPath(global.configPath)})
	if pathErr != nil || path == "" {
		fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("root"), SuccessStyle.Render(cfg.Root.String()))
	fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("width"), SuccessStyle.Render(fmt.Sprintf("%d", cfg.Width)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", KeyStyle.Render("tags"))
	fmt.Fprintf(out, "  xattr_name: %s\n", SuccessStyle.Render(cfg.Tags.XattrName.String()))
	fmt.Fprintf(out, "  separator: %s\n", SuccessStyle.Render(fmt.Sprintf("%q", cfg.Tags.Separator)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", SuccessStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App, global globalFlags) error {
	path, created, err := config.CreateDefaultConfig(global.configPath)
	if err != nil {
		ae := issue.NewErrorContext().
			WithOperation("create configuration").
			WithResource(path).
			WithSuggestion("Check that the config directory is writable").
			Wrap(err).
			Build()
		return app.fail(newServiceError(ae, 0), global.verbose, autoStyle)
	}

	if created {
		fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	} else {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), path)
	}
	return nil
}

func showConfigPath(app *App, global globalFlags) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(newServiceError(issue.WrapWithContext(err, "locate configuration directory", ""), 0), global.verbose, autoStyle)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)

	active, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: types.FilesystemPath(global.configPath)})
	switch {
	case err != nil:
		fmt.Fprintf(app.stdout, "Config file: %s\n", SubtitleStyle.Render("(missing) "+global.configPath))
	case active == "":
		fmt.Fprintf(app.stdout, "Config file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
	default:
		fmt.Fprintf(app.stdout, "Config file: %s\n", active)
	}

	return nil
}
