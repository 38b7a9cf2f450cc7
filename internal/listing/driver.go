// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrMetadataRead is the sentinel wrapped by MetadataError.
var ErrMetadataRead = errors.New("metadata read failed")

type (
	// MetadataError reports a failure while enumerating the tags of one entry.
	MetadataError struct {
		Name string
		Err  error
	}

	// Options configures a Driver.
	Options struct {
		// Width is the minimum label column width. Zero means DefaultWidth.
		Width int
		// Logger receives debug records. Nil discards them.
		Logger *log.Logger
	}

	// Summary counts what a run produced.
	Summary struct {
		Files       int
		Directories int
	}

	// Driver lists one directory through a Host and emits a line per file.
	Driver struct {
		host   Host
		sink   Sink
		width  int
		logger *log.Logger
	}
)

// Error implements the error interface for MetadataError.
func (e *MetadataError) Error() string {
	return fmt.Sprintf("read metadata for %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error and ErrMetadataRead.
func (e *MetadataError) Unwrap() []error { return []error{ErrMetadataRead, e.Err} }

// NewDriver creates a Driver writing to sink.
func NewDriver(host Host, sink Sink, opts Options) *Driver {
	width := opts.Width
	if width == 0 {
		width = DefaultWidth
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{
		host:   host,
		sink:   sink,
		width:  width,
		logger: logger,
	}
}

// Width returns the label column width used by the driver.
func (d *Driver) Width() int { return d.width }

// Run lists the direct children of root and emits one line per
// non-directory entry. Host failures are returned without retry; lines
// emitted before a failure are not withdrawn.
func (d *Driver) Run(ctx context.Context, root string) (summary Summary, err error) {
	entries, err := d.host.ListEntries(ctx, root, false)
	if err != nil {
		return summary, err
	}
	defer func() {
		if closeErr := entries.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for entries.Next() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}

		entry := entries.Entry()
		if entry.IsDir {
			d.logger.Debug("skipping directory", "name", entry.Name)
			summary.Directories++
			continue
		}

		tags, tagErr := JoinTags(entry.Metadata)
		if tagErr != nil {
			return summary, &MetadataError{Name: entry.Name, Err: tagErr}
		}

		d.sink.Output(FormatLine(entry.Name, tags, d.width))
		summary.Files++
	}
	if err := entries.Err(); err != nil {
		return summary, err
	}

	d.logger.Debug("listing complete", "root", root, "files", summary.Files, "directories", summary.Directories)
	return summary, nil
}
