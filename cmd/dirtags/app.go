// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/dirtags/dirtags/internal/config"
	"github.com/dirtags/dirtags/internal/host/manifest"
	"github.com/dirtags/dirtags/internal/host/osfs"
	"github.com/dirtags/dirtags/internal/listing"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: Cobra handlers receive an App and reach configuration, hosts
	// and output streams only through it.
	App struct {
		Config ConfigProvider
		Hosts  HostFactory
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Hosts  HostFactory
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// HostSpec selects and configures the entry source for one listing.
	HostSpec struct {
		// Manifest is a CUE manifest path; empty means the local filesystem.
		Manifest string
		// XattrName is the attribute holding tags on the local filesystem.
		XattrName string
		// Separator splits the attribute value into tags.
		Separator string
	}

	// OpenedHost is a host together with the root it describes, if any.
	OpenedHost struct {
		Host listing.Host
		// DefaultRoot is the root implied by the source (the manifest root);
		// empty for the local filesystem.
		DefaultRoot string
	}

	// HostFactory opens the entry source named by a HostSpec.
	HostFactory interface {
		Open(ctx context.Context, spec HostSpec) (OpenedHost, error)
	}

	defaultHostFactory struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Hosts == nil {
		deps.Hosts = defaultHostFactory{}
	}

	return &App{
		Config: deps.Config,
		Hosts:  deps.Hosts,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// Open returns a manifest host when spec.Manifest is set and the local
// filesystem host otherwise.
func (defaultHostFactory) Open(ctx context.Context, spec HostSpec) (OpenedHost, error) {
	if err := ctx.Err(); err != nil {
		return OpenedHost{}, err
	}

	if spec.Manifest != "" {
		m, err := manifest.Load(spec.Manifest)
		if err != nil {
			return OpenedHost{}, &manifestError{path: spec.Manifest, err: err}
		}
		h := manifest.NewHost(m)
		return OpenedHost{Host: h, DefaultRoot: h.Root()}, nil
	}

	return OpenedHost{Host: osfs.New(osfs.Options{
		XattrName: spec.XattrName,
		Separator: spec.Separator,
	})}, nil
}
