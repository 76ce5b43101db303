package ui

import "strings"

// glyphRows is the height of a digit.
const glyphRows = 5

// glyphs is a 3x5 block font; every cell is doubled horizontally when drawn.
//
//nolint:gochecknoglobals // Fixed lookup table.
var glyphs = map[rune][glyphRows]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {"  #", "  #", "  #", "  #", "  #"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
}

// bigText renders text in the block font, one string per row.
// Characters without a glyph render as blanks.
func bigText(text string) [glyphRows]string {
	var rows [glyphRows]string

	for i, r := range text {
		glyph, ok := glyphs[r]
		if !ok {
			glyph = [glyphRows]string{"   ", "   ", "   ", "   ", "   "}
		}

		for row := range glyphRows {
			if i > 0 {
				rows[row] += " "
			}

			rows[row] += widen(glyph[row])
		}
	}

	return rows
}

// widen doubles each cell and swaps the placeholder for a full block.
func widen(cells string) string {
	var b strings.Builder

	for _, c := range cells {
		if c == '#' {
			b.WriteString("██")
		} else {
			b.WriteString("  ")
		}
	}

	return b.String()
}
