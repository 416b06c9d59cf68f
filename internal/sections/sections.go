// Package sections recovers named, tag-delimited regions from a single
// generated text response.
package sections

import (
	"regexp"
	"strings"
)

// Extracted maps a section id to its recovered text. Every requested id is
// present; ids that were not found map to "".
type Extracted map[string]string

// fenceTokens are the code-fence markers stripped from the edges of a section.
var fenceTokens = []string{"```", "~~~"}

// Extract locates each id independently as the first <id>...</id> region in
// raw. Matching crosses line boundaries and stops at the first closing tag.
func Extract(raw string, ids []string) Extracted {
	out := make(Extracted, len(ids))
	for _, id := range ids {
		out[id] = ""
		if id == "" {
			continue
		}

		re := regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(id) + `>(.*?)</` + regexp.QuoteMeta(id) + `>`)
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		out[id] = StripFences(m[1])
	}
	return out
}

// StripFences trims whitespace and removes a leading fence line (with an
// optional language word) and a trailing fence token.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	for _, fence := range fenceTokens {
		if strings.HasPrefix(s, fence) {
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = s[i+1:]
			} else {
				s = strings.TrimPrefix(s, fence)
			}
			s = strings.TrimSpace(s)
		}
		if strings.HasSuffix(s, fence) {
			s = strings.TrimSpace(strings.TrimSuffix(s, fence))
		}
	}
	return s
}

// Get returns the text for id, or "" when it was not requested.
func (e Extracted) Get(id string) string {
	return e[id]
}

// Present returns the ids with non-empty content, in the order given.
func (e Extracted) Present(ids []string) []string {
	var present []string
	for _, id := range ids {
		if e[id] != "" {
			present = append(present, id)
		}
	}
	return present
}

// AllEmpty reports whether no section produced any content.
func (e Extracted) AllEmpty() bool {
	for _, v := range e {
		if v != "" {
			return false
		}
	}
	return true
}
