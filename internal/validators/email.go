package validators

import "strings"

// NormalizeEmail gives the stored form of an address that already passed the
// `email` binding rule.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
