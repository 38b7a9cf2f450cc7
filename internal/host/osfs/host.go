// SPDX-License-Identifier: MPL-2.0

package osfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dirtags/dirtags/internal/listing"
)

const (
	// DefaultXattrName is the freedesktop.org tag attribute.
	DefaultXattrName = "user.xdg.tags"
	// DefaultSeparator splits the attribute value into tags.
	DefaultSeparator = ","
	// DefaultBatchSize is the number of directory entries read per syscall batch.
	DefaultBatchSize = 64
)

// ErrNotDirectory is returned when the listed path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

type (
	// Options configures a Host. Zero fields take the package defaults.
	Options struct {
		XattrName string
		Separator string
		BatchSize int
	}

	// Host implements listing.Host over the local filesystem.
	Host struct {
		xattrName string
		separator string
		batchSize int
	}

	// dirEntries streams a directory in batches. It owns the open handle.
	dirEntries struct {
		host    *Host
		dir     *os.File
		root    string
		pending []fs.DirEntry
		current listing.Entry
		err     error
		done    bool
	}

	// splitTags enumerates separator-delimited tags without building a slice.
	splitTags struct {
		rest string
		sep  string
		cur  string
		done bool
	}

	// errTags is a tag enumerator that fails immediately.
	errTags struct {
		err error
	}
)

// New creates a Host.
func New(opts Options) *Host {
	h := &Host{
		xattrName: opts.XattrName,
		separator: opts.Separator,
		batchSize: opts.BatchSize,
	}
	if h.xattrName == "" {
		h.xattrName = DefaultXattrName
	}
	if h.separator == "" {
		h.separator = DefaultSeparator
	}
	if h.batchSize <= 0 {
		h.batchSize = DefaultBatchSize
	}
	return h
}

// ListEntries opens path and returns a forward-only enumerator over its
// direct children. Recursive listings are rejected.
func (h *Host) ListEntries(ctx context.Context, path string, recursive bool) (listing.EntryEnumerator, error) {
	if recursive {
		return nil, listing.ErrRecursiveUnsupported
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := dir.Stat()
	if err != nil {
		_ = dir.Close()
		return nil, err
	}
	if !info.IsDir() {
		_ = dir.Close()
		return nil, &fs.PathError{Op: "list", Path: path, Err: ErrNotDirectory}
	}

	return &dirEntries{host: h, dir: dir, root: path}, nil
}

// Metadata reads the tag attribute of path and maps the result onto a
// listing.Metadata variant.
func (h *Host) Metadata(path string) listing.Metadata {
	raw, err := readXattr(path, h.xattrName)
	return h.metadataFor(path, raw, err)
}

// metadataFor maps the outcome of one attribute lookup onto a metadata
// variant. Only unexpected lookup failures reach the driver as errors.
func (h *Host) metadataFor(path string, raw []byte, err error) listing.Metadata {
	switch {
	case err == nil:
		return listing.WithTags(newSplitTags(string(raw), h.separator))
	case isNoAttr(err):
		return listing.WithTags(listing.NewSliceTags())
	case isUnsupported(err), errors.Is(err, fs.ErrNotExist):
		// A dangling symlink or an entry removed after ReadDir has no
		// metadata object to read.
		return listing.NoMetadata()
	default:
		return listing.WithTags(&errTags{err: &fs.PathError{Op: "getxattr " + h.xattrName, Path: path, Err: err}})
	}
}

func (e *dirEntries) Next() bool {
	for !e.done {
		if len(e.pending) == 0 {
			e.fill()
			continue
		}

		d := e.pending[0]
		e.pending = e.pending[1:]

		full := filepath.Join(e.root, d.Name())
		entry := listing.Entry{Name: d.Name(), IsDir: isDir(full, d)}
		if !entry.IsDir {
			entry.Metadata = e.host.Metadata(full)
		}
		e.current = entry
		return true
	}
	e.current = listing.Entry{}
	return false
}

func (e *dirEntries) fill() {
	if e.dir == nil {
		e.done = true
		return
	}
	batch, err := e.dir.ReadDir(e.host.batchSize)
	e.pending = batch
	if errors.Is(err, io.EOF) {
		if len(batch) == 0 {
			e.done = true
		}
		return
	}
	if err != nil {
		e.err = fmt.Errorf("read directory %s: %w", e.root, err)
		e.done = true
		e.pending = nil
	}
}

func (e *dirEntries) Entry() listing.Entry { return e.current }

func (e *dirEntries) Err() error { return e.err }

func (e *dirEntries) Close() error {
	e.done = true
	e.pending = nil
	if e.dir == nil {
		return nil
	}
	err := e.dir.Close()
	e.dir = nil
	return err
}

// isDir reports whether d is a directory, following symlinks.
func isDir(full string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir()
	}
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func newSplitTags(value, sep string) *splitTags {
	return &splitTags{rest: strings.TrimRight(value, "\x00"), sep: sep}
}

func (s *splitTags) Next() bool {
	for !s.done {
		part, rest, found := strings.Cut(s.rest, s.sep)
		s.rest = rest
		if !found {
			s.done = true
		}
		if tag := strings.TrimSpace(part); tag != "" {
			s.cur = tag
			return true
		}
	}
	s.cur = ""
	return false
}

func (s *splitTags) Tag() string { return s.cur }

func (s *splitTags) Err() error { return nil }

func (t *errTags) Next() bool  { return false }
func (t *errTags) Tag() string { return "" }
func (t *errTags) Err() error  { return t.err }
