package mapdata

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairDisplayName undoes UTF-8 text that was decoded one byte per rune.
//
// The collector reads floor names from the game as Latin-1, so a Japanese
// name arrives as a run of U+0080..U+00FF runes. When every rune fits in one
// byte and the bytes form valid UTF-8, the decoded text is returned; any other
// name is returned unchanged.
func RepairDisplayName(name string) string {
	highBytes := false
	for _, r := range name {
		if r > 0xFF {
			return name
		}
		if r >= 0x80 {
			highBytes = true
		}
	}
	if !highBytes {
		return name
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(name)
	if err != nil || !utf8.ValidString(raw) {
		return name
	}
	return raw
}
