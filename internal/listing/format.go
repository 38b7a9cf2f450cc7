// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PadRight coerces v to text and appends spaces until it is at least width
// runes wide. Values already at or above width are returned unchanged.
func PadRight(v any, width int) string {
	s := fmt.Sprint(v)
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// JoinTags renders md as a single tag string.
//
// MetadataNone yields NoMetadataPlaceholder. MetadataPresent yields the tags
// joined by TagSeparator in enumeration order, or NoTagsPlaceholder when the
// enumerator produces nothing. An enumeration error is returned as-is.
func JoinTags(md Metadata) (string, error) {
	if valid, errs := md.Kind.IsValid(); !valid {
		return "", errs[0]
	}
	if md.Kind == MetadataNone {
		return NoMetadataPlaceholder, nil
	}

	if md.Tags == nil {
		return NoTagsPlaceholder, nil
	}

	var sb strings.Builder
	for md.Tags.Next() {
		if sb.Len() > 0 {
			sb.WriteString(TagSeparator)
		}
		sb.WriteString(md.Tags.Tag())
	}
	if err := md.Tags.Err(); err != nil {
		return "", err
	}

	if sb.Len() == 0 {
		return NoTagsPlaceholder, nil
	}
	return sb.String(), nil
}

// FormatLine pads the entry label (name plus LabelSuffix) to width and
// appends the tag string.
func FormatLine(name, tags string, width int) string {
	return PadRight(name+LabelSuffix, width) + tags
}
