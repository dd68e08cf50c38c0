package model

import "time"

// Review is one ingested review or comment about the headset. Reviews are
// produced by the ingestion side, stored append-only, and are read-only
// input to the analysis pipeline.
type Review struct {
	ID        string    `json:"id" db:"id"`
	Source    string    `json:"source" db:"source"`       // e.g. "reddit", "amazon", "youtube", "forum"
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	URL       string    `json:"url,omitempty" db:"url"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// FullText returns the text the pipeline analyzes: title and body joined.
// The title often carries the strongest sentiment ("Best strap ever!").
func (r Review) FullText() string {
	switch {
	case r.Title == "":
		return r.Body
	case r.Body == "":
		return r.Title
	default:
		return r.Title + " " + r.Body
	}
}

// Analyzable reports whether the review carries any text worth analyzing.
// Reviews failing this check are skipped, not fatal to the run.
func (r Review) Analyzable() bool {
	for _, c := range r.FullText() {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return true
		}
	}
	return false
}
