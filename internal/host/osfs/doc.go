// SPDX-License-Identifier: MPL-2.0

// Package osfs lists local directories and reads entry tags from extended
// attributes.
//
// Tags follow the freedesktop convention: a comma-separated list stored in
// the user.xdg.tags attribute. The attribute name and separator are
// configurable. How the attribute lookup maps onto listing metadata:
//
//	attribute present        -> MetadataPresent with the split tags
//	attribute missing        -> MetadataPresent with zero tags ("<no tags>")
//	xattrs unsupported       -> MetadataNone ("<no metadata available>")
//	entry gone or dangling   -> MetadataNone ("<no metadata available>")
//	any other lookup failure -> MetadataPresent whose enumerator reports the error
//
// Platforms without xattr syscalls report MetadataNone for every entry.
package osfs
