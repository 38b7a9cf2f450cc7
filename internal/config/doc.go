// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/dirtags/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/dirtags/config.cue on macOS, %APPDATA%\dirtags\config.cue
// on Windows), falling back to ./config.cue. DIRTAGS_* environment variables override
// file values, e.g. DIRTAGS_WIDTH or DIRTAGS_TAGS_XATTR_NAME.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before
// being merged over the built-in defaults.
package config
