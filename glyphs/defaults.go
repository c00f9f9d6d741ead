package glyphs

// DefaultFont is the in-game subtitle font.
const DefaultFont = "SUBTLS_E"

// DefaultPairs are used when a configuration names no font at all. They move
// accented letters missing from the subtitle font onto unused slots of its glyph table.
var DefaultPairs = []Pair{
	{From: "í", To: "Ά"},
	{From: "ñ", To: "¥"},
	{From: "â", To: "¦"},
	{From: "é", To: "§"},
}
