// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dirtags/dirtags/internal/config"
	"github.com/dirtags/dirtags/internal/host"
	"github.com/dirtags/dirtags/internal/issue"
	"github.com/dirtags/dirtags/internal/listing"
	"github.com/dirtags/dirtags/pkg/types"

	"github.com/charmbracelet/log"
)

// listRequest captures the inputs of one listing. Zero values defer to the
// loaded configuration.
type listRequest struct {
	// Path is the directory to list; empty uses the manifest root or config root.
	Path string
	// Width overrides the configured column width when non-zero.
	Width int
	// Manifest selects a CUE manifest instead of the local filesystem.
	Manifest string
	// XattrName overrides tags.xattr_name.
	XattrName string
	// Separator overrides tags.separator.
	Separator string
	// Verbose enables debug logging regardless of ui.verbose.
	Verbose bool
	// ConfigPath is the explicit --config value.
	ConfigPath string
}

// validate checks flag-supplied overrides before any I/O happens.
// widthSet reports whether --width was given explicitly.
func (r listRequest) validate(widthSet bool) error {
	if widthSet {
		if ok, errs := config.ColumnWidth(r.Width).IsValid(); !ok {
			return errs[0]
		}
	}
	if r.XattrName != "" {
		if ok, errs := config.XattrName(r.XattrName).IsValid(); !ok {
			return errs[0]
		}
	}
	return nil
}

// newLogger returns the stderr logger; debug records appear only when verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadConfig loads the configuration, warning and falling back to defaults
// when the file cannot be used.
func (a *App) loadConfig(ctx context.Context, configPath string, verbose bool) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(configPath)})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return config.DefaultConfig()
	}
	return cfg
}

// runList lists one directory to stdout.
func runList(ctx context.Context, app *App, req listRequest) error {
	cfg := app.loadConfig(ctx, req.ConfigPath, req.Verbose)

	verbose := req.Verbose || cfg.UI.Verbose
	style := glamourStyle(cfg.UI.ColorScheme)
	logger := newLogger(app.stderr, verbose)

	width := cfg.Width.Int()
	if req.Width != 0 {
		width = req.Width
	}
	spec := HostSpec{
		Manifest:  req.Manifest,
		XattrName: cfg.Tags.XattrName.String(),
		Separator: cfg.Tags.Separator.String(),
	}
	if req.XattrName != "" {
		spec.XattrName = req.XattrName
	}
	if req.Separator != "" {
		spec.Separator = req.Separator
	}

	opened, err := app.Hosts.Open(ctx, spec)
	if err != nil {
		return app.fail(classifyListError(err, req.Manifest), verbose, style)
	}

	root := req.Path
	if root == "" {
		root = opened.DefaultRoot
	}
	if root == "" {
		root = cfg.Root.String()
	}

	logger.Debug("listing", "root", root, "width", width, "manifest", spec.Manifest, "xattr", spec.XattrName)

	sink := host.NewWriterSink(app.stdout)
	driver := listing.NewDriver(opened.Host, sink, listing.Options{Width: width, Logger: logger})

	if _, err := driver.Run(ctx, root); err != nil {
		return app.fail(classifyListError(err, root), verbose, style)
	}
	if err := sink.Err(); err != nil {
		return app.fail(newServiceError(issue.WrapWithContext(err, "write listing", "stdout"), 0), verbose, style)
	}

	return nil
}
