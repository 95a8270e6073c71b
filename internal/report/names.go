package report

import "strings"

// nameSeparators covers the ASCII comma and the Persian comma, both of
// which show up in real operator input.
var nameSeparators = []string{"،", ","}

// SplitNames breaks a free-text list of person names into trimmed entries.
// Empty entries are dropped.
func SplitNames(text string) []string {
	for _, sep := range nameSeparators[1:] {
		text = strings.ReplaceAll(text, sep, nameSeparators[0])
	}
	parts := strings.Split(text, nameSeparators[0])
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
