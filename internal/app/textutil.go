package app

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// uniqueNormalized trims and deduplicates values, keeping first occurrences.
func uniqueNormalized(values []string) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0, len(values))
	for _, v := range values {
		clean := normalize(v)
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		res = append(res, clean)
	}
	return res
}

// parseListText splits user input on newlines, commas, semicolons and tabs.
func parseListText(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', ',', ';', '\t':
			return true
		default:
			return false
		}
	})
	return uniqueNormalized(fields)
}

func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}

// singleLine folds card line breaks for table cells.
func singleLine(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", " ⏎ ")
}
