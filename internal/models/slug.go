package models

import (
	"strings"
	"unicode"
)

// turkishASCII maps Turkish letters to their ASCII slug equivalents.
var turkishASCII = map[rune]rune{
	'ç': 'c', 'Ç': 'c',
	'ğ': 'g', 'Ğ': 'g',
	'ı': 'i', 'I': 'i',
	'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ş': 's', 'Ş': 's',
	'ü': 'u', 'Ü': 'u',
}

// Slugify derives a URL slug from a title. Turkish letters transliterate to
// ASCII (Öykü becomes oyku), runs of everything else collapse to a single
// hyphen.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range title {
		if mapped, ok := turkishASCII[r]; ok {
			r = mapped
		} else {
			r = unicode.ToLower(r)
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
