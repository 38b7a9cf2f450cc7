// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/dirtags/dirtags/internal/listing"
)

// FakeHost is an in-memory listing.Host keyed by cleaned directory path.
// Tag enumerators inside the stored entries are single-use, so each path
// should be listed once per test.
type FakeHost struct {
	Dirs map[string][]listing.Entry
	// Calls records every listed path in order.
	Calls []string
}

// NewFakeHost returns a host serving entries under a single root.
func NewFakeHost(root string, entries ...listing.Entry) *FakeHost {
	return &FakeHost{Dirs: map[string][]listing.Entry{filepath.Clean(root): entries}}
}

// ListEntries implements listing.Host.
func (h *FakeHost) ListEntries(ctx context.Context, path string, recursive bool) (listing.EntryEnumerator, error) {
	h.Calls = append(h.Calls, path)
	if recursive {
		return nil, listing.ErrRecursiveUnsupported
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, ok := h.Dirs[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "list", Path: path, Err: fs.ErrNotExist}
	}
	return listing.NewSliceEntries(entries...), nil
}

// File returns a non-directory entry carrying the given tags.
func File(name string, tags ...string) listing.Entry {
	return listing.Entry{Name: name, Metadata: listing.WithTags(listing.NewSliceTags(tags...))}
}

// Untagged returns a non-directory entry whose metadata is the "none" sentinel.
func Untagged(name string) listing.Entry {
	return listing.Entry{Name: name, Metadata: listing.NoMetadata()}
}

// Dir returns a directory entry.
func Dir(name string) listing.Entry {
	return listing.Entry{Name: name, IsDir: true, Metadata: listing.NoMetadata()}
}
