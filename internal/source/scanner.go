package source

import (
	"fmt"

	"fortio.org/safecast"
)

// LineColAt translates a byte offset into its zero-based line/column
// position. Offsets past the end of the content resolve as if the content
// ended with one more character on the last line.
func (f *File) LineColAt(off uint32) Pos {
	return toPos(f.LineIdx, off)
}

// LineAt returns the full text of the line containing the given byte
// offset, without the trailing newline.
func (f *File) LineAt(off uint32) string {
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	pos := toPos(f.LineIdx, off)

	var start uint32
	if pos.Line > 0 {
		start = f.LineIdx[pos.Line-1] + 1
	}

	end := lenContent
	if int(pos.Line) < len(f.LineIdx) {
		end = f.LineIdx[pos.Line]
	}

	if start > lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}
