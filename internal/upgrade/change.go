package upgrade

import (
	"fmt"

	"micaup/internal/source"
)

// Level classifies how confident a rule is that a change preserves the
// program's meaning.
type Level uint8

const (
	// Safe changes are purely syntactic adjustments.
	Safe Level = iota
	// Unsafe changes may alter semantics and need review.
	Unsafe
)

func (l Level) String() string {
	if l == Unsafe {
		return "unsafe"
	}
	return "safe"
}

// Change is one proposed source edit: replace the bytes covered by Span in
// the unit's current snapshot with Replacement. Span offsets are half-open
// and valid only against the exact snapshot the change was computed from;
// an empty span is a pure insertion, an empty replacement a deletion.
type Change struct {
	Level       Level
	Rule        string
	Unit        string // путь юнита, к которому относится правка
	Span        source.Span
	Replacement string
	Desc        string
}

// Apply splices the change into text and returns the patched bytes. It
// fails when the span does not fit the snapshot, which means the change
// was computed from different text.
func (c Change) Apply(text []byte) ([]byte, error) {
	if c.Span.Start > c.Span.End || int(c.Span.End) > len(text) {
		return nil, fmt.Errorf("change %s: span %s out of range for %d-byte snapshot",
			c.Rule, c.Span.String(), len(text))
	}
	out := make([]byte, 0, len(text)-int(c.Span.Len())+len(c.Replacement))
	out = append(out, text[:c.Span.Start]...)
	out = append(out, c.Replacement...)
	out = append(out, text[c.Span.End:]...)
	return out, nil
}

// Accepted reports whether the change passes the given acceptance gates.
func (c Change) Accepted(acceptSafe, acceptUnsafe bool) bool {
	if c.Level == Safe {
		return acceptSafe
	}
	return acceptUnsafe
}
