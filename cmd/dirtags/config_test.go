// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dirtags/dirtags/internal/config"
	"github.com/dirtags/dirtags/pkg/types"
)

// withConfigDir points the config package at a fresh temp directory.
// Tests using it must not run in parallel.
func withConfigDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)
	return dir
}

func realConfigDeps() Dependencies {
	return Dependencies{Config: config.NewProvider(), Hosts: serveHost(exampleHost(), "", nil)}
}

func TestConfigInit(t *testing.T) {
	dir := withConfigDir(t)

	stdout, _, err := runCLI(t, realConfigDeps(), "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	wantPath := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
	if !strings.Contains(stdout, "Created default configuration at "+wantPath) {
		t.Errorf("stdout = %q, want creation message for %s", stdout, wantPath)
	}
	if _, statErr := os.Stat(wantPath); statErr != nil {
		t.Fatalf("config file not written: %v", statErr)
	}

	stdout, _, err = runCLI(t, realConfigDeps(), "config", "init")
	if err != nil {
		t.Fatalf("second config init: %v", err)
	}
	if !strings.Contains(stdout, "already exists") {
		t.Errorf("second init stdout = %q, want 'already exists'", stdout)
	}
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	dir := withConfigDir(t)

	target := filepath.Join(t.TempDir(), "alt.cue")
	stdout, _, err := runCLI(t, realConfigDeps(), "config", "init", "--config", target)
	if err != nil {
		t.Fatalf("config init --config: %v", err)
	}
	if !strings.Contains(stdout, "Created default configuration at "+target) {
		t.Errorf("stdout = %q, want creation message for %s", stdout, target)
	}
	if _, statErr := os.Stat(target); statErr != nil {
		t.Errorf("--config target not written: %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "config.cue")); !os.IsNotExist(statErr) {
		t.Errorf("per-user config should not be written, stat err = %v", statErr)
	}
}

func TestConfigShow(t *testing.T) {
	dir := withConfigDir(t)

	stdout, _, err := runCLI(t, realConfigDeps(), "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"Current Configuration", "(using defaults)", "width", "25", "user.xdg.tags"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	path := filepath.Join(dir, "config.cue")
	if writeErr := os.WriteFile(path, []byte("width: 40\n"), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}
	stdout, _, err = runCLI(t, realConfigDeps(), "config", "show")
	if err != nil {
		t.Fatalf("config show with file: %v", err)
	}
	if !strings.Contains(stdout, path) || !strings.Contains(stdout, "40") {
		t.Errorf("stdout should name %s and width 40:\n%s", path, stdout)
	}
}

func TestConfigDump(t *testing.T) {
	dir := withConfigDir(t)

	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte("tags: separator: \";\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, realConfigDeps(), "config", "dump")
	if err != nil {
		t.Fatalf("config dump: %v", err)
	}
	for _, want := range []string{`separator:  ";"`, "width: 25", `xattr_name: "user.xdg.tags"`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("dump missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigPath(t *testing.T) {
	dir := withConfigDir(t)

	stdout, _, err := runCLI(t, realConfigDeps(), "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(stdout, "Config directory: "+dir) {
		t.Errorf("stdout = %q, want config directory %s", stdout, dir)
	}
	if !strings.Contains(stdout, "(none, using defaults)") {
		t.Errorf("stdout = %q, want defaults marker", stdout)
	}

	stdout, _, err = runCLI(t, realConfigDeps(), "config", "path", "--config", filepath.Join(dir, "missing.cue"))
	if err != nil {
		t.Fatalf("config path --config: %v", err)
	}
	if !strings.Contains(stdout, "(missing)") {
		t.Errorf("stdout = %q, want missing marker", stdout)
	}
}

func TestConfigShow_InvalidFileFails(t *testing.T) {
	dir := withConfigDir(t)

	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte("width: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := runCLI(t, realConfigDeps(), "config", "show")
	if err == nil {
		t.Fatal("expected config show to fail on an invalid file")
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitFailure {
		t.Errorf("err = %v, want ExitError with code 1", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "load configuration") {
		t.Errorf("stderr missing operation:\n%s", stderr)
	}
}

func TestConfigShow_ProviderError(t *testing.T) {
	t.Parallel()

	deps := Dependencies{Config: &staticConfig{err: errors.New("disk on fire")}, Hosts: serveHost(exampleHost(), "", nil)}
	_, stderr, err := runCLI(t, deps, "config", "show")
	if err == nil {
		t.Fatal("expected error")
	}
	if exitCodeFor(err) != types.ExitFailure {
		t.Errorf("exit code = %d, want 1", exitCodeFor(err))
	}
	if !strings.Contains(stderr, "failed to load configuration") || !strings.Contains(stderr, "disk on fire") {
		t.Errorf("stderr = %q", stderr)
	}
}
