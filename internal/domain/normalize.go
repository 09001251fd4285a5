package domain

import (
	"regexp"
	"unicode"
)

// placeIDRe matches a parcel id: ASCII digits and at most one Latin or Cyrillic
// letter. ё/Ё are outside the а-я range and deliberately do not match.
var placeIDRe = regexp.MustCompile(`^([0-9]+)([a-zA-Zа-яА-Я]?)$`)

// letterFold maps letters people type for a parcel suffix onto the lowercase
// Cyrillic letter used as the canonical form.
var letterFold = map[rune]rune{
	'a': 'а', 'b': 'б', 'c': 'с', 'd': 'д', 'e': 'е',
	'б': 'б', 'с': 'с',
	'А': 'а', 'Б': 'б', 'С': 'с', 'Е': 'е', 'Д': 'д',
}

// NormalizePlaceID returns the canonical join key for a parcel id.
// Input that does not look like a parcel id is returned unchanged.
func NormalizePlaceID(raw string) string {
	if raw == "" {
		return raw
	}

	m := placeIDRe.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}

	digits, letter := m[1], m[2]
	if letter == "" {
		return digits
	}

	return digits + string(foldLetter([]rune(letter)[0]))
}

func foldLetter(r rune) rune {
	if folded, ok := letterFold[r]; ok {
		return folded
	}
	lower := unicode.ToLower(r)
	if folded, ok := letterFold[lower]; ok {
		return folded
	}
	return lower
}

// SameParcel reports whether two raw ids refer to the same parcel.
func SameParcel(a, b string) bool {
	return NormalizePlaceID(a) == NormalizePlaceID(b)
}
