package model

// Severity classifies how badly a comfort issue affected the reviewer.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// IssueOccurrence is one detected instance of a comfort-problem category
// inside a review. Zero or more per review; categories fire independently.
type IssueOccurrence struct {
	ReviewID       string   `json:"review_id"`
	IssueType      string   `json:"issue_type"` // taxonomy category key, e.g. "forehead_discomfort"
	Severity       Severity `json:"severity"`
	MatchedSnippet string   `json:"matched_snippet"` // bounded context around the trigger
	Trigger        string   `json:"trigger"`         // the keyword or pattern text that fired
}

// IssueCategory defines one comfort-issue taxonomy entry. The taxonomy is
// configuration, not hardwired logic: new categories join without touching
// the classifier algorithm.
type IssueCategory struct {
	Key      string   `yaml:"key" json:"key"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Patterns []string `yaml:"patterns" json:"patterns"` // regular expressions, matched on lowercased text
}
