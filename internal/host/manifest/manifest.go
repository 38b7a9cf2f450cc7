// SPDX-License-Identifier: MPL-2.0

// Package manifest serves directory listings described by a CUE document.
//
// A manifest stands in for a live host: it records the entries of one root
// and, per entry, whether a metadata object exists and which tags it holds.
//
//	root: "C:\\"
//	entries: [
//		{name: "report.txt", tags: ["draft", "q3"]},
//		{name: "Archive", is_dir: true},
//		{name: "notes.txt"},
//	]
package manifest

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dirtags/dirtags/internal/listing"
	"github.com/dirtags/dirtags/pkg/cueutil"
)

//go:embed manifest_schema.cue
var schema []byte

// MaxSize bounds a manifest file. Manifests of large directories outgrow
// the cueutil default.
const MaxSize int64 = 32 << 20

// ErrPathNotFound is returned when a path other than the manifest root is listed.
var ErrPathNotFound = errors.New("path not described by manifest")

type (
	// Entry is one manifest entry. A nil Tags slice means no metadata.
	Entry struct {
		Name  string    `json:"name"`
		IsDir bool      `json:"is_dir"`
		Tags  *[]string `json:"tags,omitempty"`
	}

	// Manifest is a decoded listing manifest.
	Manifest struct {
		Root    string  `json:"root"`
		Entries []Entry `json:"entries"`
	}

	// Host implements listing.Host from a Manifest.
	Host struct {
		manifest *Manifest
	}
)

// Parse decodes and validates manifest data. filename is used in errors.
func Parse(data []byte, filename string) (*Manifest, error) {
	res, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest",
		cueutil.WithFilename(filename),
		cueutil.WithMaxFileSize(MaxSize))
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, path)
}

// NewHost creates a Host answering for m.Root.
func NewHost(m *Manifest) *Host {
	return &Host{manifest: m}
}

// ListEntries returns the manifest entries when path names the manifest
// root. Paths are compared after filepath.Clean.
func (h *Host) ListEntries(ctx context.Context, path string, recursive bool) (listing.EntryEnumerator, error) {
	if recursive {
		return nil, listing.ErrRecursiveUnsupported
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filepath.Clean(path) != filepath.Clean(h.manifest.Root) {
		return nil, fmt.Errorf("%w: %s (manifest root is %s)", ErrPathNotFound, path, h.manifest.Root)
	}

	entries := make([]listing.Entry, 0, len(h.manifest.Entries))
	for _, e := range h.manifest.Entries {
		entries = append(entries, e.toListing())
	}
	return listing.NewSliceEntries(entries...), nil
}

// Root returns the directory the manifest describes.
func (h *Host) Root() string { return h.manifest.Root }

func (e Entry) toListing() listing.Entry {
	entry := listing.Entry{Name: e.Name, IsDir: e.IsDir}
	if e.Tags == nil {
		entry.Metadata = listing.NoMetadata()
	} else {
		entry.Metadata = listing.WithTags(listing.NewSliceTags(*e.Tags...))
	}
	return entry
}
