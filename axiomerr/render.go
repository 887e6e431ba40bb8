package axiomerr

import (
	"strings"

	"github.com/axiomlang/axiom/source"
)

// FullMessage renders e's one-line Error() message together with the
// offending source line and a cursor pointing at the column. src is the
// full original source text e was raised against.
func FullMessage(src string, e Error) string {
	line := sourceLine(src, e.Pos())
	if line == "" {
		return e.Error()
	}
	cursor := strings.Repeat(" ", int(e.Pos().Column)) + "^"
	return line + "\n" + cursor + "\n" + e.Error()
}

// sourceLine returns the full text of the line pos sits on, or "" if pos is
// out of range (as can happen for a synthetic Range with no real source
// backing it, e.g. in unit tests).
func sourceLine(src string, pos source.Position) string {
	lines := strings.Split(src, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	return lines[pos.Line]
}
