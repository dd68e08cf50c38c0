package model

import (
	"strings"
	"time"
)

// AccessoryRanking is the derived per-accessory aggregate. It is fully
// recomputed from the Mention set on every run, never patched in place.
type AccessoryRanking struct {
	AccessoryName       string  `json:"accessory_name"`
	AccessoryType       string  `json:"accessory_type"`
	MentionCount        int     `json:"mention_count"`
	AvgSentiment        float64 `json:"avg_sentiment"`
	PositiveMentions    int     `json:"positive_mentions"`
	NegativeMentions    int     `json:"negative_mentions"`
	RecommendationScore float64 `json:"recommendation_score"`
}

// SeverityCounts breaks an issue category down by severity.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// IssueSummary is the derived per-category aggregate.
type IssueSummary struct {
	IssueType      string         `json:"issue_type"`
	SeverityCounts SeverityCounts `json:"severity_counts"`
	Total          int            `json:"total"`
	Examples       []IssueExample `json:"examples"` // bounded list
}

// IssueExample is one retained complaint snippet for display.
type IssueExample struct {
	Snippet  string   `json:"snippet"`
	Severity Severity `json:"severity"`
	ReviewID string   `json:"review_id"`
	Source   string   `json:"source,omitempty"`
}

// MentionSnippet is a supporting quote with source attribution, kept in
// per-accessory detail.
type MentionSnippet struct {
	Snippet   string  `json:"snippet"`
	Sentiment float64 `json:"sentiment"`
	ReviewID  string  `json:"review_id"`
	Source    string  `json:"source,omitempty"`
	URL       string  `json:"url,omitempty"`
}

// AccessoryDetail extends a ranking with supporting evidence: bounded
// mention snippets plus example pros/cons phrases drawn from high/low
// sentiment mentions.
type AccessoryDetail struct {
	AccessoryRanking
	Mentions []MentionSnippet `json:"mentions"` // bounded list
	Pros     []string         `json:"pros"`
	Cons     []string         `json:"cons"`
}

// DashboardStats are the headline totals for the reporting surface.
type DashboardStats struct {
	TotalReviews        int     `json:"total_reviews"`
	SkippedReviews      int     `json:"skipped_reviews"`
	TotalMentions       int     `json:"total_mentions"`
	TotalIssues         int     `json:"total_issues"`
	DistinctAccessories int     `json:"distinct_accessories"`
	TopAccessory        string  `json:"top_accessory,omitempty"`
	MostFrequentIssue   string  `json:"most_frequent_issue,omitempty"`
	AvgReviewSentiment  float64 `json:"avg_review_sentiment"`
}

// SourceCount is the review distribution for one ingestion source.
type SourceCount struct {
	Source  string `json:"source"`
	Reviews int    `json:"reviews"`
}

// Snapshot is a complete, consistent analysis result for one pipeline
// run. A run either publishes a whole snapshot or nothing; consumers
// never observe partial aggregates.
type Snapshot struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	Stats       DashboardStats             `json:"stats"`
	Rankings    []AccessoryRanking         `json:"rankings"` // ordered by recommendation score for display
	Issues      []IssueSummary             `json:"issues"`
	Sources     []SourceCount              `json:"sources"`
	Details     map[string]AccessoryDetail `json:"details"` // keyed by canonical accessory name
}

// Detail returns the detail record for a canonical accessory name,
// case-insensitively.
func (s *Snapshot) Detail(name string) (AccessoryDetail, bool) {
	if d, ok := s.Details[name]; ok {
		return d, true
	}
	for key, d := range s.Details {
		if strings.EqualFold(key, name) {
			return d, true
		}
	}
	return AccessoryDetail{}, false
}

// Search performs a case-insensitive substring lookup over canonical
// accessory names and returns at most limit ranking summaries.
func (s *Snapshot) Search(query string, limit int) []AccessoryRanking {
	if limit <= 0 {
		limit = 10
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []AccessoryRanking
	for _, r := range s.Rankings {
		if strings.Contains(strings.ToLower(r.AccessoryName), q) {
			out = append(out, r)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// IssuesBySeverity filters issue summaries down to counts of the given
// severity, preserving the bounded examples that match it.
func (s *Snapshot) IssuesBySeverity(sev Severity) []IssueSummary {
	var out []IssueSummary
	for _, issue := range s.Issues {
		var count int
		switch sev {
		case SeverityHigh:
			count = issue.SeverityCounts.High
		case SeverityMedium:
			count = issue.SeverityCounts.Medium
		case SeverityLow:
			count = issue.SeverityCounts.Low
		}
		if count == 0 {
			continue
		}

		filtered := issue
		filtered.Total = count
		filtered.SeverityCounts = SeverityCounts{}
		switch sev {
		case SeverityHigh:
			filtered.SeverityCounts.High = count
		case SeverityMedium:
			filtered.SeverityCounts.Medium = count
		case SeverityLow:
			filtered.SeverityCounts.Low = count
		}
		filtered.Examples = nil
		for _, ex := range issue.Examples {
			if ex.Severity == sev {
				filtered.Examples = append(filtered.Examples, ex)
			}
		}
		out = append(out, filtered)
	}
	return out
}
