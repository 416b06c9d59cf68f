// Package markup turns a small block-level Markdown subset into typed blocks.
// Inline markup is not interpreted.
package markup

import "strings"

// Kind identifies the type of a Block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBullet:
		return "bullet"
	default:
		return "paragraph"
	}
}

// Block is one unit of document structure. Level is only meaningful for
// headings: 0 is the title, 1 and 2 are section levels.
type Block struct {
	Kind  Kind
	Level int
	Text  string
}

func Heading(level int, text string) Block { return Block{Kind: KindHeading, Level: level, Text: text} }
func Bullet(text string) Block             { return Block{Kind: KindBullet, Text: text} }
func Paragraph(text string) Block          { return Block{Kind: KindParagraph, Text: text} }

// Rule maps a line prefix to the block it produces.
type Rule struct {
	Prefix string
	Kind   Kind
	Level  int
}

// rules is checked in order; the first matching prefix wins.
var rules = []Rule{
	{Prefix: "# ", Kind: KindHeading, Level: 0},
	{Prefix: "## ", Kind: KindHeading, Level: 1},
	{Prefix: "### ", Kind: KindHeading, Level: 2},
	{Prefix: "- ", Kind: KindBullet},
	{Prefix: "* ", Kind: KindBullet},
}

// Rules returns a copy of the prefix table used by Render.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Render converts text into blocks, one per non-blank line, in source order.
func Render(text string) []Block {
	return RenderWith(text, rules)
}

// RenderWith is Render with a caller-supplied rule table.
func RenderWith(text string, table []Rule) []Block {
	blocks := []Block{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		blocks = append(blocks, classify(trimmed, table))
	}
	return blocks
}

func classify(line string, table []Rule) Block {
	for _, r := range table {
		if strings.HasPrefix(line, r.Prefix) {
			return Block{
				Kind:  r.Kind,
				Level: r.Level,
				Text:  strings.TrimSpace(strings.TrimPrefix(line, r.Prefix)),
			}
		}
	}
	return Paragraph(line)
}
