// SPDX-License-Identifier: MPL-2.0

package listing

// sliceEntries enumerates a fixed list of entries once.
type sliceEntries struct {
	entries []Entry
	pos     int
	closed  bool
}

// NewSliceEntries returns an EntryEnumerator over entries. Close ends the
// enumeration early; the enumerator cannot be restarted.
func NewSliceEntries(entries ...Entry) EntryEnumerator {
	return &sliceEntries{entries: entries, pos: -1}
}

func (s *sliceEntries) Next() bool {
	if s.closed || s.pos+1 >= len(s.entries) {
		s.pos = len(s.entries)
		return false
	}
	s.pos++
	return true
}

func (s *sliceEntries) Entry() Entry {
	if s.pos < 0 || s.pos >= len(s.entries) {
		return Entry{}
	}
	return s.entries[s.pos]
}

func (s *sliceEntries) Err() error { return nil }

func (s *sliceEntries) Close() error {
	s.closed = true
	return nil
}
