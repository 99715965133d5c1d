package queries

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxSlugLength = 80
	DefaultSlug   = "post"
)

// Slugify turns a title into a URL path segment made of [a-z0-9-].
// Accents are folded ("Bogotá" -> "bogota"); anything else that is not a
// letter or digit becomes a single dash.
func Slugify(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
		if idx := strings.LastIndexByte(slug, '-'); idx > MaxSlugLength/2 {
			slug = slug[:idx]
		}
		slug = strings.TrimRight(slug, "-")
	}
	if slug == "" {
		return DefaultSlug
	}
	return slug
}

// SlugCandidate returns the slug to try on the given attempt: the base slug
// first, then base-2, base-3, ... The base is shortened so the result never
// exceeds MaxSlugLength.
func SlugCandidate(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	suffix := "-" + strconv.Itoa(attempt)
	if len(base)+len(suffix) > MaxSlugLength {
		base = strings.TrimRight(base[:MaxSlugLength-len(suffix)], "-")
	}
	return base + suffix
}
