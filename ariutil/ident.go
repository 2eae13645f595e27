package ariutil

import "strings"

// NormalizeIdent folds ident for case-insensitive, separator-insensitive
// comparison: case-fold then replace "/" with "_". ADM names, namespaces,
// and parameter names are all compared in this normalized form.
func NormalizeIdent(ident string) string {
	return strings.ReplaceAll(strings.ToLower(ident), "/", "_")
}

// IsPrintable reports whether every byte of s is a printable, non-control
// ASCII character.
func IsPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e {
			return false
		}
	}

	return true
}
