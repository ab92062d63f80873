package upgrade

import (
	"micaup/internal/ast"
	"micaup/internal/source"
)

// markerAnchor returns the offset after which an 'override' or 'virtual'
// marker belongs in the function header: after the visibility keyword when
// one is present, otherwise after the closing parenthesis of the parameter
// list.
func markerAnchor(content []byte, fn *ast.FunctionDecl) uint32 {
	if fn.Visibility != ast.VisibilityNone {
		return fn.VisibilitySpan.End
	}
	// скобка, закрывающая список параметров
	depth := 0
	for off := fn.NameSpan.End; off < fn.HeaderSpan.End && int(off) < len(content); off++ {
		switch content[off] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return off + 1
			}
		}
	}
	return fn.HeaderSpan.End
}

// placeAfterHeaderKeyword builds the insertion for a header marker. When
// the anchor is the last thing on its line, the marker goes on a new line
// with the same indentation; otherwise it is appended inline.
func placeAfterHeaderKeyword(file *source.File, fn *ast.FunctionDecl, marker string) (source.Span, string) {
	anchor := markerAnchor(file.Content, fn)
	at := source.Span{File: file.ID, Start: anchor, End: anchor}

	if restOfLineBlank(file.Content, anchor) {
		return at, "\n" + lineIndent(file.Content, anchor) + marker
	}
	return at, " " + marker
}

func restOfLineBlank(content []byte, off uint32) bool {
	for i := int(off); i < len(content); i++ {
		switch content[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			// пусто до конца строки
		default:
			return false
		}
	}
	return true
}

// lineIndent returns the leading whitespace of the line containing off.
func lineIndent(content []byte, off uint32) string {
	start := int(off)
	if start > len(content) {
		start = len(content)
	}
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[start:end])
}
