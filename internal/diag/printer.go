package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/kpumuk/iotac-frontend/internal/source"
)

// Print renders d as "<file>:<line>:<col>: <message>" preceded by a
// two-line source snippet with a caret under the offending column.
func Print(w io.Writer, file string, src []byte, li *source.LineIndex, d Diagnostic) {
	loc := "?:?"
	if li != nil && d.Span.Start.IsValid() {
		if p, err := li.OffsetToPoint(d.Span.Start); err == nil {
			loc = fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
		}
	}
	if lineStart, lineText, ok := sourceLineAt(src, d.Span.Start); ok {
		startCol := clamp(int(d.Span.Start-lineStart), 0, len(lineText))
		width := caretWidth(d.Span, lineStart, len(lineText))

		fmt.Fprintln(w, string(lineText))
		fmt.Fprintln(w, caretPrefix(lineText, startCol)+strings.Repeat("^", width))
	}
	fmt.Fprintf(w, "%s:%s: %s\n", file, loc, d.Message)
}

func sourceLineAt(src []byte, off source.Offset) (source.Offset, []byte, bool) {
	if !off.IsValid() {
		return 0, nil, false
	}
	i := int(off)
	if i < 0 || i > len(src) {
		return 0, nil, false
	}
	start := i
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := i
	for end < len(src) && src[end] != '\n' {
		end++
	}
	if end > start && src[end-1] == '\r' {
		end--
	}
	return source.Offset(start), src[start:end], true
}

func caretWidth(sp source.Span, lineStart source.Offset, lineLen int) int {
	if !sp.End.IsValid() || sp.End <= sp.Start {
		return 1
	}
	startCol := clamp(int(sp.Start-lineStart), 0, lineLen)
	endCol := clamp(int(sp.End-lineStart), 0, lineLen)
	if endCol <= startCol {
		return 1
	}
	return endCol - startCol
}

func caretPrefix(line []byte, col int) string {
	col = clamp(col, 0, len(line))
	var b strings.Builder
	b.Grow(col)
	for _, ch := range line[:col] {
		if ch == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
