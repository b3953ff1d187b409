package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText composes text to NFC, collapses runs of whitespace and
// drops control characters, so rune offsets stay stable once recorded.
func NormalizeText(text string) string {
	normed := norm.NFC.String(text)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, normed)
	return strings.Join(strings.Fields(normed), " ")
}

// UpperName uppercases a provider value with the casing rules of tag.
func UpperName(tag language.Tag, s string) string {
	return norm.NFC.String(cases.Upper(tag).String(NormalizeText(s)))
}

var cityNoise = []string{"VILLE", "CITY", "SAN "}

// CleanCity uppercases a city, removes common prefixes and suffixes and
// limits it to maxCityRunes runes.
func CleanCity(tag language.Tag, city string) string {
	city = UpperName(tag, city)
	for _, n := range cityNoise {
		city = strings.ReplaceAll(city, n, "")
	}
	city = strings.TrimSpace(city)
	return truncateRunes(city, maxCityRunes)
}

const maxCityRunes = 20

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// RuneLen counts the runes of s, the unit of every entity offset.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
