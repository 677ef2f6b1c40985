package validators

import "strings"

// DigitsOnly strips everything but ASCII digits, so "+7 (701) 000-00-00"
// becomes "77010000000".
func DigitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SamePhone compares two phone numbers by their digits. Numbers without
// any digit never match.
func SamePhone(a, b string) bool {
	da := DigitsOnly(a)
	return da != "" && da == DigitsOnly(b)
}
