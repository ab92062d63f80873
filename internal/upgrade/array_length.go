package upgrade

import (
	"fmt"

	"micaup/internal/frontend"
)

// ArrayLength removes assignments to the length member of resizable
// arrays. Dropping a statement changes behavior, so the rule is unsafe;
// callers are expected to resize through push and pop instead.
type ArrayLength struct{}

func (ArrayLength) Name() string { return "array-length" }

func (r ArrayLength) Analyze(sess *frontend.Session) []Change {
	if sess.Info == nil {
		return nil
	}
	var changes []Change
	for _, la := range sess.Info.LengthAssigns() {
		span := la.Stmt.Span
		// если statement занимает строку целиком, удалить строку без остатка
		if file := sess.FileSet.Get(span.File); file != nil {
			if start, ok := lineStartBefore(file.Content, span.Start); ok {
				if end, ok := lineEndAfter(file.Content, span.End); ok {
					span.Start = start
					span.End = end
				}
			}
		}
		changes = append(changes, Change{
			Level:       Unsafe,
			Rule:        r.Name(),
			Unit:        la.Contract.File.Path,
			Span:        span,
			Replacement: "",
			Desc: fmt.Sprintf("remove length assignment in function %q of contract %q",
				la.Fn.Name, la.Contract.Decl.Name),
		})
	}
	return changes
}

// lineStartBefore returns the start of the line containing off when only
// blanks precede off on that line.
func lineStartBefore(content []byte, off uint32) (uint32, bool) {
	i := int(off)
	for i > 0 {
		switch content[i-1] {
		case ' ', '\t':
			i--
		case '\n':
			return uint32(i), true
		default:
			return off, false
		}
	}
	return 0, true
}

// lineEndAfter returns the offset just past the newline following off when
// only blanks trail off on that line.
func lineEndAfter(content []byte, off uint32) (uint32, bool) {
	i := int(off)
	for i < len(content) {
		switch content[i] {
		case ' ', '\t', '\r':
			i++
		case '\n':
			return uint32(i + 1), true
		default:
			return off, false
		}
	}
	return uint32(i), true
}
