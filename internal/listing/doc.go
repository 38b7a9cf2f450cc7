// SPDX-License-Identifier: MPL-2.0

// Package listing turns a host directory listing into padded tag lines.
//
// The flow is a single linear pass: a Host hands out a forward-only
// EntryEnumerator for one directory, every non-directory entry has its
// Metadata joined into a tag string, and the label is right-padded to a
// fixed column before the line is sent to a Sink.
//
// # Metadata variants
//
// Metadata is either MetadataNone (the host has no metadata object for the
// entry) or MetadataPresent (a metadata object exists, possibly with zero
// tags). The two render differently:
//
//	notes.txt:               <no metadata available>
//	empty.txt:               <no tags>
//
// Callers must construct the variant explicitly; the zero Metadata value is
// MetadataNone.
package listing
