// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/dirtags/dirtags/internal/config"
	"github.com/dirtags/dirtags/internal/listing"
)

type (
	// staticConfig is a ConfigProvider returning a fixed result.
	staticConfig struct {
		cfg   *config.Config
		err   error
		calls []config.LoadOptions
	}

	// hostFactoryFunc adapts a function to HostFactory.
	hostFactoryFunc func(ctx context.Context, spec HostSpec) (OpenedHost, error)

	// erroringTags fails after yielding its tags.
	erroringTags struct {
		tags []string
		pos  int
		err  error
	}
)

func (s *staticConfig) Load(_ context.Context, opts config.LoadOptions) (*config.Config, error) {
	s.calls = append(s.calls, opts)
	if s.err != nil {
		return nil, s.err
	}
	if s.cfg == nil {
		return config.DefaultConfig(), nil
	}
	cfg := *s.cfg
	return &cfg, nil
}

func (f hostFactoryFunc) Open(ctx context.Context, spec HostSpec) (OpenedHost, error) {
	return f(ctx, spec)
}

func (e *erroringTags) Next() bool {
	if e.pos >= len(e.tags) {
		return false
	}
	e.pos++
	return true
}

func (e *erroringTags) Tag() string { return e.tags[e.pos-1] }

func (e *erroringTags) Err() error {
	if e.pos >= len(e.tags) {
		return e.err
	}
	return nil
}

// serveHost returns a factory that always opens h and records the spec.
func serveHost(h listing.Host, defaultRoot string, got *HostSpec) HostFactory {
	return hostFactoryFunc(func(_ context.Context, spec HostSpec) (OpenedHost, error) {
		if got != nil {
			*got = spec
		}
		return OpenedHost{Host: h, DefaultRoot: defaultRoot}, nil
	})
}

// runCLI executes the command tree in-process and captures both streams.
func runCLI(t *testing.T, deps Dependencies, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	deps.Stdout = &outBuf
	deps.Stderr = &errBuf

	app, err := NewApp(deps)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)

	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}
