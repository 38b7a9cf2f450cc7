// SPDX-License-Identifier: MPL-2.0

package listing

// sliceTags enumerates a fixed list of tags once.
type sliceTags struct {
	tags []string
	pos  int
}

// NewSliceTags returns a TagEnumerator over tags. The enumerator is
// single-use; the slice is not copied and must not be modified while it
// is being enumerated.
func NewSliceTags(tags ...string) TagEnumerator {
	return &sliceTags{tags: tags, pos: -1}
}

func (s *sliceTags) Next() bool {
	if s.pos+1 >= len(s.tags) {
		s.pos = len(s.tags)
		return false
	}
	s.pos++
	return true
}

func (s *sliceTags) Tag() string {
	if s.pos < 0 || s.pos >= len(s.tags) {
		return ""
	}
	return s.tags[s.pos]
}

func (s *sliceTags) Err() error { return nil }
