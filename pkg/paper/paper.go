// Package paper defines the research-paper document model consumed by the
// layout engine, plus the text normalization and reference-list helpers
// that prepare caller-supplied rich text for layout.
package paper

import (
	"regexp"
	"strings"
)

// Paper is the input document for PDF generation. All fields except Title
// are optional; rich-text fields may contain HTML-style markup which is
// stripped during layout.
type Paper struct {
	Title       string `json:"title" yaml:"title"`
	Authors     string `json:"authors,omitempty" yaml:"authors"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation"`
	Email       string `json:"email,omitempty" yaml:"email"`

	Abstract string `json:"abstract,omitempty" yaml:"abstract"`
	Keywords string `json:"keywords,omitempty" yaml:"keywords"`

	Introduction string `json:"introduction,omitempty" yaml:"introduction"`
	RelatedWork  string `json:"relatedWork,omitempty" yaml:"related_work"`
	Methodology  string `json:"methodology,omitempty" yaml:"methodology"`
	Results      string `json:"results,omitempty" yaml:"results"`
	Discussion   string `json:"discussion,omitempty" yaml:"discussion"`
	Conclusion   string `json:"conclusion,omitempty" yaml:"conclusion"`

	References      string `json:"references,omitempty" yaml:"references"`
	Acknowledgments string `json:"acknowledgments,omitempty" yaml:"acknowledgments"`
}

// Section is one titled body section in canonical order.
type Section struct {
	Title string
	Body  string
}

// Sections returns the paper's sections in the fixed canonical order.
// Bodies are returned as-is (not yet normalized); sections whose body
// normalizes to empty are skipped by the renderer, not here.
func (p *Paper) Sections() []Section {
	return []Section{
		{Title: "Introduction", Body: p.Introduction},
		{Title: "Related Work", Body: p.RelatedWork},
		{Title: "Methodology", Body: p.Methodology},
		{Title: "Results and Analysis", Body: p.Results},
		{Title: "Discussion", Body: p.Discussion},
		{Title: "Conclusion", Body: p.Conclusion},
	}
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// entityReplacer decodes the handful of entities that survive tag
// stripping in practice.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Normalize strips markup tags, decodes common entities, collapses all
// whitespace runs (including newlines) to single spaces, and trims.
// Empty input yields "". Normalize is idempotent and cannot fail.
//
// Stripping and decoding repeat until the text is stable: decoding
// &lt;/&gt; can produce tag-shaped text, and a single pass would leave
// output that a second Normalize call changes.
func Normalize(richText string) string {
	if richText == "" {
		return ""
	}
	s := richText
	for {
		next := tagPattern.ReplaceAllString(s, " ")
		next = entityReplacer.Replace(next)
		if next == s {
			break
		}
		s = next
	}
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var (
	bracketMarker = regexp.MustCompile(`\[\d+\]`)
	leadingNumber = regexp.MustCompile(`\b\d{1,3}\.\s+`)
)

// SplitReferences segments a references blob into individual entries.
//
// This is a best-effort heuristic, not a parser: entries are split on
// bracketed numerals ("[1] ...") or, failing that, on leading "1. "
// style numbering when the blob starts that way. Embedded numbers are
// discarded; the renderer assigns fresh sequential numbers. A blob with
// no recognizable markers is returned as a single entry.
func SplitReferences(blob string) []string {
	text := Normalize(blob)
	if text == "" {
		return nil
	}

	var parts []string
	if bracketMarker.MatchString(text) {
		parts = bracketMarker.Split(text, -1)
	} else if leadingNumber.MatchString(text) && regexp.MustCompile(`^\d{1,3}\.\s`).MatchString(text) {
		parts = leadingNumber.Split(text, -1)
	} else {
		parts = []string{text}
	}

	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}

var fileNamePattern = regexp.MustCompile(`[^a-z0-9]+`)

// FileName derives a download file name from a paper title: lowercased,
// non-alphanumeric runs replaced with hyphens, ".pdf" suffix.
func FileName(title string) string {
	name := strings.ToLower(Normalize(title))
	name = fileNamePattern.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "paper"
	}
	return name + ".pdf"
}
