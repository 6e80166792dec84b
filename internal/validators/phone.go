package validators

import "strings"

// PhoneKey reduces a phone number to its digits so different spacings
// and formats of the same number map to one customer record.
func PhoneKey(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhonePlausible accepts digits, spaces and a leading plus, with at
// least 7 digits overall.
func IsPhonePlausible(raw string) bool {
	digits := 0
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return digits >= 7
}
