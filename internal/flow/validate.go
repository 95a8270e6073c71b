package flow

import (
	"errors"
	"strconv"
	"strings"
)

var errNotNumber = errors.New("not a number")

// normalizeNumber maps Persian and Arabic-Indic digits to ASCII and the
// decimal comma (either variant) to a point, so operators can type numbers
// the way their keyboard produces them.
func normalizeNumber(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '۰' && r <= '۹': // Extended Arabic-Indic (Persian keyboards)
			b.WriteRune('0' + r - '۰')
		case r >= '٠' && r <= '٩': // Arabic-Indic
			b.WriteRune('0' + r - '٠')
		case r == ',' || r == '٫':
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseFloat parses a user-entered decimal number.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(normalizeNumber(s), 64)
	if err != nil {
		return 0, errNotNumber
	}
	return v, nil
}

// parseDigits parses a user-entered non-negative integer. Anything other
// than digits is rejected; range checks belong to the caller.
func parseDigits(s string) (int, error) {
	norm := normalizeNumber(s)
	if norm == "" {
		return 0, errNotNumber
	}
	for _, r := range norm {
		if r < '0' || r > '9' {
			return 0, errNotNumber
		}
	}
	v, err := strconv.Atoi(norm)
	if err != nil {
		return 0, errNotNumber
	}
	return v, nil
}
