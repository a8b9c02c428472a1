package validators

import "strings"

// NormalizePhone strips common separators and returns the number in
// +<digits> form. Between 9 and 15 digits are accepted.
func NormalizePhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	digits := b.String()
	if len(digits) < 9 || len(digits) > 15 {
		return "", false
	}
	return "+" + digits, true
}
