package markdown

import (
	"strconv"
	"unicode/utf16"
)

// Fingerprint is a cheap order-sensitive hash of markdown text used as the
// render cache key. It folds UTF-16 code units with the 31x rolling hash
// (h = h<<5 - h + c, wrapping at 32 bits) and renders |h| in base 36, so
// keys match those produced by browser builds of the blog. It is not
// collision resistant.
func Fingerprint(content string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(content)) {
		h = (h << 5) - h + int32(unit)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 36)
}
