package events

import (
	"regexp"
	"strconv"
	"strings"
)

/*
	Heading slugs
	-------------
	Same rules as GitHub's anchor ids so links copied from a rendered README
	keep working:
	  • lowercase
	  • drop punctuation (letters, digits, spaces, '-' and '_' survive)
	  • every space becomes '-'
	  • repeated slugs get "-1", "-2", ... in order of appearance
*/

var nonSlug = regexp.MustCompile(`[^\p{L}\p{N}\p{M} _-]+`)

// Slugger hands out unique slugs. The zero value is ready to use.
type Slugger struct {
	seen map[string]int
}

// MakeSlug generates the base slug for a heading text.
// Example: "Doors open!" -> "doors-open"
func MakeSlug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonSlug.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, " ", "-")
}

// Slug returns a slug for text that has not been returned before by s.
func (s *Slugger) Slug(text string) string {
	if s.seen == nil {
		s.seen = map[string]int{}
	}

	base := MakeSlug(text)
	slug := base
	for {
		if _, taken := s.seen[slug]; !taken {
			break
		}
		s.seen[base]++
		slug = base + "-" + strconv.Itoa(s.seen[base])
	}
	s.seen[slug] = 0
	return slug
}
