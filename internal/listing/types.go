// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"context"
	"errors"
	"fmt"
)

const (
	// MetadataNone means no metadata object exists for the entry.
	MetadataNone MetadataKind = iota
	// MetadataPresent means a metadata object exists; it may carry zero tags.
	MetadataPresent
)

const (
	// NoMetadataPlaceholder is rendered for entries whose metadata is MetadataNone.
	NoMetadataPlaceholder = "<no metadata available>"
	// NoTagsPlaceholder is rendered for entries with metadata but no tags.
	NoTagsPlaceholder = "<no tags>"
	// TagSeparator joins tags in enumeration order.
	TagSeparator = ", "
	// LabelSuffix is appended to the entry name before padding.
	LabelSuffix = ": "
	// DefaultWidth is the minimum width of the padded label column.
	DefaultWidth = 25
)

var (
	// ErrRecursiveUnsupported is returned by hosts asked for a recursive listing.
	ErrRecursiveUnsupported = errors.New("recursive listing is not supported")
	// ErrInvalidMetadataKind is the sentinel wrapped by InvalidMetadataKindError.
	ErrInvalidMetadataKind = errors.New("invalid metadata kind")
)

type (
	// MetadataKind distinguishes an absent metadata object from a present one.
	MetadataKind int

	// InvalidMetadataKindError is returned when a MetadataKind is not one of
	// the defined variants.
	InvalidMetadataKindError struct {
		Value MetadataKind
	}

	// TagEnumerator is a forward-only, single-use sequence of tags.
	// Next advances and reports whether a tag is available; once it returns
	// false, Err reports the error that stopped enumeration, if any.
	TagEnumerator interface {
		Next() bool
		Tag() string
		Err() error
	}

	// EntryEnumerator is a forward-only, single-use sequence of directory
	// entries. It must not be advanced from more than one place.
	EntryEnumerator interface {
		Next() bool
		Entry() Entry
		Err() error
		Close() error
	}

	// Metadata is the metadata object of an entry.
	Metadata struct {
		// Kind selects the variant. The zero value is MetadataNone.
		Kind MetadataKind
		// Tags enumerates the tags of a MetadataPresent object.
		// A nil enumerator is treated as zero tags.
		Tags TagEnumerator
	}

	// Entry is one child of a listed directory.
	Entry struct {
		Name     string
		IsDir    bool
		Metadata Metadata
	}

	// Host is the collaborator that owns directory enumeration.
	Host interface {
		ListEntries(ctx context.Context, path string, recursive bool) (EntryEnumerator, error)
	}

	// Sink receives finished output lines. Output is fire-and-forget.
	Sink interface {
		Output(line string)
	}
)

// NoMetadata returns the MetadataNone variant.
func NoMetadata() Metadata {
	return Metadata{Kind: MetadataNone}
}

// WithTags returns a MetadataPresent variant backed by tags.
func WithTags(tags TagEnumerator) Metadata {
	return Metadata{Kind: MetadataPresent, Tags: tags}
}

// String returns the variant name.
func (k MetadataKind) String() string {
	switch k {
	case MetadataNone:
		return "none"
	case MetadataPresent:
		return "present"
	default:
		return fmt.Sprintf("MetadataKind(%d)", int(k))
	}
}

// IsValid returns whether the MetadataKind is one of the defined variants,
// and a list of validation errors if it is not.
func (k MetadataKind) IsValid() (bool, []error) {
	switch k {
	case MetadataNone, MetadataPresent:
		return true, nil
	default:
		return false, []error{&InvalidMetadataKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidMetadataKindError.
func (e *InvalidMetadataKindError) Error() string {
	return fmt.Sprintf("invalid metadata kind %d (valid: none, present)", int(e.Value))
}

// Unwrap returns ErrInvalidMetadataKind for errors.Is() compatibility.
func (e *InvalidMetadataKindError) Unwrap() error { return ErrInvalidMetadataKind }
