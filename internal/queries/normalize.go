package queries

import "strings"

// NormalizeEmail is applied before storing and looking up accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeHashtag strips the leading '#', surrounding space and case.
func NormalizeHashtag(tag string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(tag), "#")))
}

// NormalizeHashtags normalizes every tag, drops empty ones and
// duplicates, and keeps the first-seen order.
func NormalizeHashtags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := NormalizeHashtag(tag)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
