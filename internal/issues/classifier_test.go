package issues

import (
	"strings"
	"testing"

	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/normalize"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultTaxonomy(), NewLexicalSeverityRater())
	if err != nil {
		t.Fatalf("build classifier: %v", err)
	}
	return c
}

func classify(t *testing.T, text string) []model.IssueOccurrence {
	t.Helper()
	return newTestClassifier(t).Classify("r1", normalize.Normalize(text))
}

func hasCategory(occ []model.IssueOccurrence, key string) bool {
	for _, o := range occ {
		if o.IssueType == key {
			return true
		}
	}
	return false
}

func TestClassify_Categories(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"forehead keyword", "Constant forehead pain after twenty minutes", "forehead_discomfort"},
		{"forehead pattern", "There is real pressure on forehead with the stock strap", "forehead_discomfort"},
		{"weight", "The headset is way too heavy for long play", "weight"},
		{"strap quality pattern", "My strap broke after 2 weeks", "strap_quality"},
		{"heat", "My face gets sweaty during Beat Saber", "heat_sweating"},
		{"glasses", "I can't fit my glasses under it", "glasses_compatibility"},
		{"long session pattern", "Neck gets tired after 2 hours of play", "long_session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := classify(t, tt.text)
			if !hasCategory(occ, tt.want) {
				t.Errorf("Classify(%q) missing category %q, got %+v", tt.text, tt.want, occ)
			}
		})
	}
}

func TestClassify_MultipleCategoriesFireIndependently(t *testing.T) {
	occ := classify(t, "Too heavy, and the forehead pressure is terrible after long sessions")

	for _, want := range []string{"weight", "forehead_discomfort", "long_session"} {
		if !hasCategory(occ, want) {
			t.Errorf("expected category %q to fire, got %+v", want, occ)
		}
	}
}

func TestClassify_Severity(t *testing.T) {
	tests := []struct {
		name string
		text string
		cat  string
		want model.Severity
	}{
		{"high from intensity word", "The forehead pain is unbearable, I returned it", "forehead_discomfort", model.SeverityHigh},
		{"low from mitigation", "Slightly too heavy but fine overall", "weight", model.SeverityLow},
		{"default medium", "The weight is noticeable during sessions", "weight", model.SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := classify(t, tt.text)
			for _, o := range occ {
				if o.IssueType != tt.cat {
					continue
				}
				if o.Severity != tt.want {
					t.Errorf("severity = %q, want %q (snippet %q)", o.Severity, tt.want, o.MatchedSnippet)
				}
				return
			}
			t.Fatalf("category %q did not fire for %q", tt.cat, tt.text)
		})
	}
}

func TestClassify_DedupesSameStretch(t *testing.T) {
	// "forehead pain" fires both the keyword and the pattern on the same
	// stretch of text; only one occurrence must come out.
	occ := classify(t, "bad forehead pain here")

	count := 0
	for _, o := range occ {
		if o.IssueType == "forehead_discomfort" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 1 forehead_discomfort occurrence, got %d: %+v", count, occ)
	}
}

func TestClassify_CleanReviewHasNoIssues(t *testing.T) {
	occ := classify(t, "Absolutely perfect, best purchase of the year!")
	if len(occ) != 0 {
		t.Errorf("expected no occurrences, got %+v", occ)
	}
}

func TestClassify_SnippetReferencesTrigger(t *testing.T) {
	occ := classify(t, "Stock strap gives terrible forehead pain after 20 minutes")

	found := false
	for _, o := range occ {
		if o.IssueType == "forehead_discomfort" {
			found = true
			if o.MatchedSnippet == "" {
				t.Error("expected a non-empty matched snippet")
			}
		}
	}
	if !found {
		t.Fatal("forehead_discomfort did not fire")
	}
}

func TestClassify_SnippetWindowStableWithOffsetShiftingRunes(t *testing.T) {
	// Ⱥ lowercases to a longer encoding; a plain ToLower of the text
	// would shift every trigger offset after the prefix.
	prefix := strings.Repeat("Ⱥ ", 80)
	occ := classify(t, prefix+". The stock strap gives terrible forehead pain every session.")

	var snippet string
	for _, o := range occ {
		if o.IssueType == "forehead_discomfort" {
			snippet = o.MatchedSnippet
		}
	}
	if snippet == "" {
		t.Fatal("forehead_discomfort did not fire")
	}
	if !strings.Contains(snippet, "forehead pain") {
		t.Errorf("snippet lost the trigger: %q", snippet)
	}
	if n := strings.Count(snippet, "Ⱥ"); n >= 80 {
		t.Errorf("snippet covers the whole text (%d Ⱥ runes), want a bounded window", n)
	}
}

func TestNewClassifier_EmptyTaxonomyFatal(t *testing.T) {
	if _, err := NewClassifier(nil, nil); err == nil {
		t.Error("empty taxonomy must be rejected")
	}
}

func TestNewClassifier_InvalidPatternFatal(t *testing.T) {
	_, err := NewClassifier([]model.IssueCategory{
		{Key: "bad", Patterns: []string{"(unclosed"}},
	}, nil)
	if err == nil {
		t.Error("invalid regex must be rejected at load time")
	}
}
