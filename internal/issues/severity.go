package issues

import (
	"strings"

	"github.com/headsetlab/comfortscan/internal/model"
)

// SeverityRater assigns a severity to an issue occurrence from its
// context. The lexical rater below is a heuristic, not a calibrated
// model; a statistical classifier can replace it behind this interface
// without touching the aggregator.
type SeverityRater interface {
	Rate(context string) model.Severity
}

// LexicalSeverityRater derives severity from intensity-signaling
// vocabulary co-occurring with the trigger: strong-intensity words win,
// then mitigating phrasing, otherwise medium.
type LexicalSeverityRater struct {
	high []string
	low  []string
}

// NewLexicalSeverityRater returns the rater with the built-in indicator
// vocabulary.
func NewLexicalSeverityRater() *LexicalSeverityRater {
	return &LexicalSeverityRater{
		high: []string{
			"extremely", "unbearable", "terrible", "awful", "horrible",
			"can't use", "cant use", "unusable", "returned", "returning",
			"refund", "worst", "very painful", "major issue", "deal breaker",
		},
		low: []string{
			"slightly", "a bit", "somewhat", "minor", "small",
			"barely", "not too bad", "acceptable", "tolerable",
		},
	}
}

// Rate implements SeverityRater.
func (r *LexicalSeverityRater) Rate(context string) model.Severity {
	lower := strings.ToLower(context)
	for _, indicator := range r.high {
		if strings.Contains(lower, indicator) {
			return model.SeverityHigh
		}
	}
	for _, indicator := range r.low {
		if strings.Contains(lower, indicator) {
			return model.SeverityLow
		}
	}
	return model.SeverityMedium
}
