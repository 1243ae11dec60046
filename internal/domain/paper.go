package domain

import "time"

// Paper is the feed-level record a crawler produced for one arXiv entry.
// The review pipeline only reads it; enrichment lands on Publication.
type Paper struct {
	ArxivID   string
	Title     string
	Summary   string
	PDFURL    string
	Published time.Time
	Authors   []string
}

// Publication is the normalized, extracted representation of one paper,
// independent of its score. One row per paper id; the review
// orchestrator is its sole writer.
type Publication struct {
	PaperID          string
	Title            string
	Year             int
	PublishDate      time.Time
	Abstract         string
	Conclusion       string
	Keywords         []string
	ResearchTopics   []string
	TriageQA         string // JSON object produced by the triage stage
	ContentRawText   string // body up to the references section
	ReferenceRawText string
	PDFPath          string
	PDFURL           string
}

// Enriched reports whether the topic-summary stage already ran for this
// publication. When true the stage is skipped on re-entry.
func (p *Publication) Enriched() bool {
	return len(p.Keywords) > 0 && len(p.ResearchTopics) > 0
}
