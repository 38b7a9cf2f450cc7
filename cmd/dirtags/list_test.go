// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dirtags/dirtags/internal/config"
	"github.com/dirtags/dirtags/internal/host/osfs"
	"github.com/dirtags/dirtags/internal/issue"
	"github.com/dirtags/dirtags/internal/listing"
	"github.com/dirtags/dirtags/internal/testutil"
	"github.com/dirtags/dirtags/pkg/types"
)

func exampleHost() *testutil.FakeHost {
	return testutil.NewFakeHost("/srv/share",
		testutil.File("report.txt", "draft", "q3"),
		testutil.Dir("Archive"),
		testutil.Untagged("notes.txt"),
	)
}

func TestList_EndToEndExample(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runCLI(t, Dependencies{
		Config: &staticConfig{},
		Hosts:  serveHost(exampleHost(), "", nil),
	}, "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v\nstderr: %s", err, stderr)
	}

	want := "report.txt:              draft, q3\n" +
		"notes.txt:               <no metadata available>\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestList_WidthFromFlagAndConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Width = 8

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"config width", []string{"/srv/share"}, "a:      <no tags>\n"},
		{"flag width", []string{"-w", "4", "/srv/share"}, "a:  <no tags>\n"},
		{"long flag", []string{"--width=6", "/srv/share"}, "a:    <no tags>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := testutil.NewFakeHost("/srv/share", testutil.File("a"))
			stdout, _, err := runCLI(t, Dependencies{Config: &staticConfig{cfg: cfg}, Hosts: serveHost(h, "", nil)}, tt.args...)
			if err != nil {
				t.Fatalf("run error = %v", err)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestList_InvalidWidthIsUsageError(t *testing.T) {
	t.Parallel()

	for _, width := range []string{"0", "-3", "5000"} {
		_, _, err := runCLI(t, Dependencies{
			Config: &staticConfig{},
			Hosts:  serveHost(exampleHost(), "", nil),
		}, "--width", width, "/srv/share")
		if !errors.Is(err, config.ErrInvalidColumnWidth) {
			t.Errorf("--width %s: error = %v, want ErrInvalidColumnWidth", width, err)
		}
		if code := exitCodeFor(err); code != types.ExitUsage {
			t.Errorf("--width %s: exit code = %d, want %d", width, code, types.ExitUsage)
		}
	}
}

func TestList_RootResolution(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Root = "/from/config"

	tests := []struct {
		name        string
		args        []string
		defaultRoot string
		want        string
	}{
		{"argument wins", []string{"/from/arg"}, "/from/manifest", "/from/arg"},
		{"manifest root next", nil, "/from/manifest", "/from/manifest"},
		{"config root last", nil, "", "/from/config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &testutil.FakeHost{Dirs: map[string][]listing.Entry{tt.want: nil}}
			_, stderr, err := runCLI(t, Dependencies{Config: &staticConfig{cfg: cfg}, Hosts: serveHost(h, tt.defaultRoot, nil)}, tt.args...)
			if err != nil {
				t.Fatalf("run error = %v\nstderr: %s", err, stderr)
			}
			if len(h.Calls) != 1 || h.Calls[0] != tt.want {
				t.Errorf("listed %v, want [%s]", h.Calls, tt.want)
			}
		})
	}
}

func TestList_HostSpecOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Tags.XattrName = "user.cfg"
	cfg.Tags.Separator = ";"

	var spec HostSpec
	_, _, err := runCLI(t, Dependencies{Config: &staticConfig{cfg: cfg}, Hosts: serveHost(exampleHost(), "", &spec)}, "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if spec.XattrName != "user.cfg" || spec.Separator != ";" || spec.Manifest != "" {
		t.Errorf("spec from config = %+v", spec)
	}

	_, _, err = runCLI(t, Dependencies{Config: &staticConfig{cfg: cfg}, Hosts: serveHost(exampleHost(), "", &spec)},
		"--xattr", "user.flag", "--separator", "|", "--manifest", "ls.cue", "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	want := HostSpec{Manifest: "ls.cue", XattrName: "user.flag", Separator: "|"}
	if spec != want {
		t.Errorf("spec from flags = %+v, want %+v", spec, want)
	}
}

func TestList_InvalidXattrFlag(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, Dependencies{Config: &staticConfig{}, Hosts: serveHost(exampleHost(), "", nil)}, "--xattr", "tags", "/srv/share")
	if !errors.Is(err, config.ErrInvalidXattrName) {
		t.Errorf("error = %v, want ErrInvalidXattrName", err)
	}
}

func TestList_Failures(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		host      listing.Host
		openErr   error
		wantIssue issue.Id
		wantIs    error
		wantOut   string
		stderrHas string
	}{
		{
			name:      "missing root",
			host:      exampleHost(),
			wantIssue: issue.RootNotFoundId,
			wantIs:    fs.ErrNotExist,
			stderrHas: "failed to list directory: /missing",
		},
		{
			name:      "root is a file",
			host:      &errHost{err: &fs.PathError{Op: "list", Path: "/missing", Err: osfs.ErrNotDirectory}},
			wantIssue: issue.RootNotDirectoryId,
			wantIs:    osfs.ErrNotDirectory,
			stderrHas: "not a directory",
		},
		{
			name:      "permission denied",
			host:      &errHost{err: &fs.PathError{Op: "open", Path: "/missing", Err: fs.ErrPermission}},
			wantIssue: issue.PermissionDeniedId,
			wantIs:    fs.ErrPermission,
			stderrHas: "permission denied",
		},
		{
			name: "metadata failure after first line",
			host: testutil.NewFakeHost("/missing",
				testutil.File("ok.txt", "a"),
				listing.Entry{Name: "bad.txt", Metadata: listing.WithTags(&erroringTags{tags: []string{"x"}, err: errBoom})},
				testutil.File("never.txt"),
			),
			wantIssue: issue.MetadataReadFailedId,
			wantIs:    errBoom,
			wantOut:   "ok.txt:                  a\n",
			stderrHas: "failed to read metadata: bad.txt: boom",
		},
		{
			name:      "manifest cannot be loaded",
			openErr:   &manifestError{path: "ls.cue", err: errBoom},
			wantIssue: issue.ManifestInvalidId,
			wantIs:    errBoom,
			stderrHas: "failed to load manifest: ls.cue: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hosts := serveHost(tt.host, "", nil)
			if tt.openErr != nil {
				hosts = hostFactoryFunc(func(_ context.Context, _ HostSpec) (OpenedHost, error) {
					return OpenedHost{}, tt.openErr
				})
			}

			stdout, stderr, err := runCLI(t, Dependencies{Config: &staticConfig{}, Hosts: hosts}, "/missing")

			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("error = %v (%T), want *ExitError", err, err)
			}
			if exitErr.Code != types.ExitFailure {
				t.Errorf("exit code = %d, want %d", exitErr.Code, types.ExitFailure)
			}
			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("error = %v, want *ServiceError in chain", err)
			}
			if svcErr.IssueID != tt.wantIssue {
				t.Errorf("IssueID = %d, want %d", svcErr.IssueID, tt.wantIssue)
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(err, %v) = false; err = %v", tt.wantIs, err)
			}
			if stdout != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantOut)
			}
			if !strings.Contains(stderr, tt.stderrHas) {
				t.Errorf("stderr missing %q:\n%s", tt.stderrHas, stderr)
			}
		})
	}
}

func TestList_ConfigErrorFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	cfgErr := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource("broken.cue").
		Wrap(errors.New("width: invalid value")).
		BuildError()

	stdout, stderr, err := runCLI(t, Dependencies{
		Config: &staticConfig{err: cfgErr},
		Hosts:  serveHost(exampleHost(), "", nil),
	}, "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(stderr, "Warning") || !strings.Contains(stderr, "failed to load configuration: broken.cue") {
		t.Errorf("stderr missing config warning:\n%s", stderr)
	}
	if !strings.HasPrefix(stdout, "report.txt:              draft, q3\n") {
		t.Errorf("default width not applied: %q", stdout)
	}
}

func TestList_PassesConfigFlag(t *testing.T) {
	t.Parallel()

	provider := &staticConfig{}
	_, _, err := runCLI(t, Dependencies{Config: provider, Hosts: serveHost(exampleHost(), "", nil)}, "--config", "alt.cue", "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if len(provider.calls) != 1 || provider.calls[0].ConfigFilePath != "alt.cue" {
		t.Errorf("config loads = %+v", provider.calls)
	}
}

func TestList_VerboseLogsSkippedDirectories(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t, Dependencies{Config: &staticConfig{}, Hosts: serveHost(exampleHost(), "", nil)}, "-v", "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	for _, want := range []string{"skipping directory", "Archive", "listing complete"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("verbose stderr missing %q:\n%s", want, stderr)
		}
	}

	_, stderr, err = runCLI(t, Dependencies{Config: &staticConfig{}, Hosts: serveHost(exampleHost(), "", nil)}, "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if strings.Contains(stderr, "skipping directory") {
		t.Errorf("debug output without -v:\n%s", stderr)
	}
}

func TestList_VerboseFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.Verbose = true

	_, stderr, err := runCLI(t, Dependencies{Config: &staticConfig{cfg: cfg}, Hosts: serveHost(exampleHost(), "", nil)}, "/srv/share")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(stderr, "skipping directory") {
		t.Errorf("ui.verbose did not enable debug logging:\n%s", stderr)
	}
}

func TestDefaultHostFactory_Manifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "listing.cue")
	testutil.MustWriteFile(t, path, `root: "/srv/share"
entries: [
	{name: "report.txt", tags: ["draft", "q3"]},
	{name: "Archive", is_dir: true},
	{name: "notes.txt"},
]
`)

	stdout, stderr, err := runCLI(t, Dependencies{Config: &staticConfig{}}, "--manifest", path)
	if err != nil {
		t.Fatalf("run error = %v\nstderr: %s", err, stderr)
	}
	want := "report.txt:              draft, q3\n" +
		"notes.txt:               <no metadata available>\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestDefaultHostFactory_InvalidManifest(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.cue")
	testutil.MustWriteFile(t, path, `entries: [{name: ""}]`)

	_, stderr, err := runCLI(t, Dependencies{Config: &staticConfig{}}, "--manifest", path)
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.ManifestInvalidId {
		t.Fatalf("error = %v, want ManifestInvalid service error", err)
	}
	if !strings.Contains(stderr, "failed to load manifest") {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestDefaultHostFactory_LocalDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "a.txt"), "")
	testutil.MustMkdirAll(t, filepath.Join(dir, "sub"), 0o755)

	stdout, stderr, err := runCLI(t, Dependencies{Config: &staticConfig{}}, dir)
	if err != nil {
		t.Fatalf("run error = %v\nstderr: %s", err, stderr)
	}
	// The tag text depends on xattr support of the temp filesystem.
	if !strings.HasPrefix(stdout, "a.txt:                   <") || strings.Count(stdout, "\n") != 1 {
		t.Errorf("stdout = %q", stdout)
	}
}

type errHost struct{ err error }

func (h *errHost) ListEntries(_ context.Context, _ string, _ bool) (listing.EntryEnumerator, error) {
	return nil, h.err
}
