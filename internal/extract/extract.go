// Package extract slices raw paper text into named, ordered sections.
package extract

import (
	"fmt"
	"strings"
	"unicode"
)

// Error reports a document that could not be sectioned at all.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract: %s", e.Reason)
}

// MainKey is the fallback section used when no heading matches.
const MainKey = "main"

type sectionEntry struct {
	key     string
	aliases []string
}

// Canonical section names with accepted heading aliases. Order matters:
// the first entry whose alias matches a cleaned line claims it.
var sectionTitles = []sectionEntry{
	{"abstract", []string{"abstract"}},
	{"introduction", []string{"introduction", "background", "preliminaries", "preliminary"}},
	{"related_work", []string{"related work", "prior work", "literature review", "related studies"}},
	{"methodology", []string{"methodology", "methods", "method", "approach", "proposed method",
		"model", "architecture", "framework", "algorithm", "system design"}},
	{"experiment", []string{"experiment", "experiments", "experimental setup", "experiment setup",
		"setup", "implementation details", "evaluation", "evaluation setup"}},
	{"ablation", []string{"ablation", "ablation study"}},
	{"results", []string{"results", "performance", "findings", "observations", "empirical results"}},
	{"discussion", []string{"discussion", "analysis", "interpretation"}},
	{"summary", []string{"summary"}},
	{"conclusion", []string{"conclusion", "final remarks", "closing remarks"}},
	{"limitations", []string{"limitations"}},
	{"acknowledgments", []string{"acknowledgments", "acknowledgements", "funding", "author contributions"}},
	{"references", []string{"references", "bibliography", "cited works"}},
	{"appendix", []string{"appendix", "supplementary material", "supplementary", "additional materials"}},
}

type mark struct {
	key  string
	line int
}

// Document holds the sectioned content of one paper. Keys preserve the
// order headings appeared in the source.
type Document struct {
	keys     []string
	sections map[string][]string
}

// Split detects section headings and slices lines into contiguous
// chunks, each running from its heading to the next heading. Repeated
// headings of the same canonical name are kept under name_<n> keys.
// A document with no matching heading becomes a single "main" chunk.
func Split(lines []string) (*Document, error) {
	nonEmpty := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, &Error{Reason: "document has no content"}
	}

	marks := detectHeadings(lines)
	doc := &Document{sections: make(map[string][]string, len(marks))}

	if len(marks) == 0 {
		doc.keys = []string{MainKey}
		doc.sections[MainKey] = lines
		return doc, nil
	}

	for i, m := range marks {
		end := len(lines)
		if i+1 < len(marks) {
			end = marks[i+1].line
		}
		doc.keys = append(doc.keys, m.key)
		doc.sections[m.key] = lines[m.line:end]
	}

	return doc, nil
}

// detectHeadings scans every line against the alias table. The first
// occurrence of a canonical name claims the plain key; every later
// occurrence of the same name gets a numeric suffix so nothing is
// silently dropped.
func detectHeadings(lines []string) []mark {
	var (
		marks      []mark
		claimed    = map[string]bool{}
		duplicates int
	)

	for i, line := range lines {
		clean := cleanHeading(line)
		if clean == "" {
			continue
		}

		for _, entry := range sectionTitles {
			if !matchesAlias(clean, entry.aliases) {
				continue
			}

			key := entry.key
			if claimed[key] {
				key = fmt.Sprintf("%s_%d", entry.key, duplicates)
				duplicates++
			}
			claimed[entry.key] = true
			marks = append(marks, mark{key: key, line: i})
			break
		}
	}

	return marks
}

func matchesAlias(clean string, aliases []string) bool {
	for _, alias := range aliases {
		if clean == alias {
			return true
		}
	}
	return false
}

// cleanHeading strips everything but letters and spaces, lower-cases
// the rest, and collapses runs of whitespace. Numeric outline prefixes
// like "3.2 Methodology" fall away with the stripping.
func cleanHeading(line string) string {
	var b strings.Builder
	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Keys returns section keys in document order.
func (d *Document) Keys() []string {
	return d.keys
}

// Section returns the lines of one section, nil when absent.
func (d *Document) Section(key string) []string {
	return d.sections[key]
}

// Text joins one section's lines, "" when absent.
func (d *Document) Text(key string) string {
	return strings.Join(d.sections[key], "\n")
}

// HasReferences reports whether a references heading was found.
func (d *Document) HasReferences() bool {
	for _, key := range d.keys {
		if canonical(key) == "references" {
			return true
		}
	}
	return false
}

// MainContext returns the body text used downstream: every section in
// order, stopping before the references. When no references heading
// exists the entire document is the main context.
func (d *Document) MainContext() string {
	var parts []string
	for _, key := range d.keys {
		if canonical(key) == "references" {
			break
		}
		parts = append(parts, d.Text(key))
	}
	return strings.Join(parts, "\n")
}

// canonical strips the _<n> duplicate suffix from a section key.
func canonical(key string) string {
	if i := strings.LastIndex(key, "_"); i > 0 {
		suffix := key[i+1:]
		isNum := suffix != ""
		for _, r := range suffix {
			if r < '0' || r > '9' {
				isNum = false
				break
			}
		}
		if isNum {
			return key[:i]
		}
	}
	return key
}
