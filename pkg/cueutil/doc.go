// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Both the dirtags configuration file and listing manifests are CUE. Each is
// checked the same way: compile the schema, unify the user document with a
// root definition, validate, then decode into a Go value. Errors carry the
// file name and a JSON-style field path:
//
//	listing.cue: entries[1].name: invalid value "" (out of bound !="")
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest",
//	    cueutil.WithFilename("listing.cue"))
package cueutil
