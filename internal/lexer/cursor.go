package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"micaup/internal/source"
)

// Cursor — позиция в байтах внутри одного файла.
type Cursor struct {
	file *source.File
	Off  uint32
}

func NewCursor(file *source.File) Cursor {
	return Cursor{file: file, Off: 0}
}

func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.file.Content)
}

// Peek returns the current byte without consuming it. EOF yields 0.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.Off]
}

// PeekAt returns the byte at offset+n, if present.
func (c *Cursor) PeekAt(n uint32) (byte, bool) {
	idx := c.Off + n
	if int(idx) >= len(c.file.Content) {
		return 0, false
	}
	return c.file.Content[idx], true
}

// Bump consumes one byte.
func (c *Cursor) Bump() {
	if !c.EOF() {
		c.Off++
	}
}

// SpanFrom builds a span from start to the current offset.
func (c *Cursor) SpanFrom(start uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: c.Off}
}

// TextFrom returns the source slice from start to the current offset.
func (c *Cursor) TextFrom(start uint32) string {
	return string(c.file.Content[start:c.Off])
}

// Len returns the file length in bytes.
func (c *Cursor) Len() uint32 {
	n, err := safecast.Conv[uint32](len(c.file.Content))
	if err != nil {
		panic(fmt.Errorf("file length overflow: %w", err))
	}
	return n
}
