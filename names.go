package nebotool

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename creates the output filename "<collection>_<title><ext>".
//
// Both parts are reduced to characters that are safe in filenames.
func Filename(collection, title, ext string) string {
	return SafeName(collection) + "_" + SafeName(title) + ext
}

// SafeName turns a display name into a name that can be used as a filename.
// Accents are removed, path separators, control characters and characters
// that are reserved on common filesystems are replaced with "_".
func SafeName(s string) string {
	// transformers are stateful, so we need a new chain for each call
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(replaceUnsafe),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.Map(replaceUnsafe, s)
	}

	out = strings.Trim(out, " .")
	if out == "" {
		return "_"
	}
	return out
}

func replaceUnsafe(r rune) rune {
	if unicode.IsControl(r) {
		return '_'
	}
	switch r {
	case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
		return '_'
	default:
		return r
	}
}
