// SPDX-License-Identifier: MPL-2.0

// Package host holds the output side of the listing boundary. Entry sources
// live in the osfs and manifest subpackages.
package host
