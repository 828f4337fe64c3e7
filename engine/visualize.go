package engine

import (
	"fmt"
	"strings"
)

// VisualizeTopCards renders the visible side of the board as a small
// framed grid, one playing card glyph per occupied cell. Face-down
// piles show a card back. The fields must be sorted by (i, j).
func VisualizeTopCards(fields []Field) string {
	iMin, iMax, jMin, jMax := fields[0].I, fields[0].I, fields[0].J, fields[0].J
	for _, field := range fields {
		iMin, iMax = min(iMin, field.I), max(iMax, field.I)
		jMin, jMax = min(jMin, field.J), max(jMax, field.J)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "    %2d\n    ╭", jMin)
	sb.WriteString(strings.Repeat("──", int(jMax)-int(jMin)+1))
	fmt.Fprintf(&sb, "╮\n%3d │", iMin)

	cursorI, cursorJ := iMin, jMin
	for _, field := range fields {
		for cursorI < field.I {
			for cursorJ <= jMax {
				sb.WriteString("  ")
				cursorJ++
			}
			cursorI++
			fmt.Fprintf(&sb, "│\n%3d │", cursorI)
			cursorJ = jMin
		}
		for cursorJ < field.J {
			sb.WriteString("  ")
			cursorJ++
		}
		switch {
		case field.TopCard != nil:
			fmt.Fprintf(&sb, "%c ", field.TopCard.UnicodeChar())
		case len(field.HiddenCards) > 0:
			sb.WriteString("🂠 ")
		default:
			sb.WriteString("  ")
		}
		cursorJ++
	}
	for cursorJ <= jMax {
		sb.WriteString("  ")
		cursorJ++
	}
	sb.WriteString("│\n    ╰")
	sb.WriteString(strings.Repeat("──", int(jMax)-int(jMin)+1))
	sb.WriteString("╯")
	return sb.String()
}

// String renders the board for debugging.
func (b *Board) String() string {
	fields := b.ToFields()
	if len(fields) == 0 {
		return ""
	}
	return VisualizeTopCards(fields)
}
