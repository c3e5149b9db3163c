// Package slug turns product names into URL-safe identifiers.
package slug

import "strings"

// Generate lowercases name and collapses every run of non-alphanumeric
// characters into a single hyphen, so "Harris Tweed Scarf (Green)" becomes
// "harris-tweed-scarf-green".
func Generate(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
