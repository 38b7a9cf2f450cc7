// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for dirtags.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dirtags/dirtags/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the command tree. The root command itself performs
// the listing.
func NewRootCommand(app *App) *cobra.Command {
	var (
		global globalFlags
		req    listRequest
	)

	rootCmd := &cobra.Command{
		Use:   "dirtags [path]",
		Short: "List a directory together with its file tags",
		Long: TitleStyle.Render("dirtags") + SubtitleStyle.Render(" - list a directory together with its file tags") + `

dirtags prints one line per file in a directory: the file name padded to a
fixed column, followed by the file's tags joined with ", ". Directories are
skipped. Tags are read from the "user.xdg.tags" extended attribute unless
--xattr names another one, or from a CUE manifest given with --manifest.

Files with an empty or missing tag attribute print "<no tags>". Files on
filesystems without extended attribute support, dangling symlinks and files
removed during the listing print "<no metadata available>".

A single path argument named like a subcommand ("config", "explain",
"completion", "help") runs that subcommand; list such a directory as
"./config".

` + SubtitleStyle.Render("Examples:") + `
  dirtags                      List the configured root (default ".")
  dirtags ~/Documents          List a specific directory
  dirtags -w 40 ~/Documents    Use a 40 column label
  dirtags --manifest ls.cue    Replay a listing described in CUE
  dirtags ./config             List a directory named "config"
  dirtags config show          Show current configuration
  dirtags explain              List the known problems and their fixes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Path = args[0]
			}
			if err := req.validate(cmd.Flags().Changed("width")); err != nil {
				return err
			}
			req.Verbose = global.verbose
			req.ConfigPath = global.configPath

			err := runList(cmd.Context(), app, req)
			if err != nil {
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return err
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "config file (default is $HOME/.config/dirtags/config.cue)")

	rootCmd.Flags().IntVarP(&req.Width, "width", "w", 0, "label column width (default from config, 25)")
	rootCmd.Flags().StringVar(&req.Manifest, "manifest", "", "read entries from a CUE manifest instead of the filesystem")
	rootCmd.Flags().StringVar(&req.XattrName, "xattr", "", "extended attribute holding tags (default from config, user.xdg.tags)")
	rootCmd.Flags().StringVar(&req.Separator, "separator", "", "separator inside the tag attribute (default from config, \",\")")

	rootCmd.AddCommand(newConfigCommand(app, &global))
	rootCmd.AddCommand(newExplainCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// exitCodeFor maps a command error to the process exit code. Errors that are
// not ExitError come from argument or flag parsing.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitUsage
}

// errorHandler prints errors fang would otherwise print, except ExitErrors
// whose message was already rendered by the command.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the CLI and exits the process on failure.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitFailure))
	}

	// fang.WithVersion is required since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		os.Exit(int(exitCodeFor(err)))
	}
}
