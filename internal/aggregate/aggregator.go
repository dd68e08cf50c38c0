// Package aggregate folds mentions and issue occurrences into ranked,
// queryable statistics. The fold is commutative and associative: partial
// aggregates built by independent workers merge pairwise into the same
// numbers as a single sequential pass, which is what makes the pipeline
// safe to parallelize.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/headsetlab/comfortscan/internal/model"
)

// Neutral band: mentions with |sentiment| <= neutralBand count as
// neither positive nor negative.
const neutralBand = 0.2

// Recommendation score policy constants. The formula is a tunable
// monotone combination of sentiment quality and mention volume:
//
//	score = wSentiment*avg + wPositiveRatio*posRatio + wVolume*log10(n+1)
const (
	wSentiment     = 0.4
	wPositiveRatio = 0.4
	wVolume        = 0.2
)

// Example retention bounds.
const (
	maxIssueExamples   = 5
	maxMentionSnippets = 50
	maxProsCons        = 5
)

// Aggregate is a partial (or complete) reduction over per-review
// analysis results. Zero value is not usable; call New.
type Aggregate struct {
	reviews int
	skipped int

	reviewSentSum   float64
	reviewSentCount int

	accessories map[string]*accessoryAgg
	issues      map[string]*issueAgg
	sources     map[string]int
}

type accessoryAgg struct {
	accessoryType string
	count         int
	sentimentSum  float64
	positive      int
	negative      int
	snippets      []model.MentionSnippet
}

type issueAgg struct {
	counts   model.SeverityCounts
	examples []model.IssueExample
}

// New creates an empty aggregate.
func New() *Aggregate {
	return &Aggregate{
		accessories: make(map[string]*accessoryAgg),
		issues:      make(map[string]*issueAgg),
		sources:     make(map[string]int),
	}
}

// AddReview folds one analyzed review into the aggregate.
func (a *Aggregate) AddReview(review model.Review, mentions []model.Mention, occurrences []model.IssueOccurrence, reviewSentiment float64) {
	a.reviews++
	a.sources[review.Source]++
	a.reviewSentSum += reviewSentiment
	a.reviewSentCount++

	for _, m := range mentions {
		acc := a.accessories[m.AccessoryName]
		if acc == nil {
			acc = &accessoryAgg{accessoryType: m.AccessoryType}
			a.accessories[m.AccessoryName] = acc
		}
		acc.count++
		acc.sentimentSum += m.LocalSentiment
		switch {
		case m.LocalSentiment > neutralBand:
			acc.positive++
		case m.LocalSentiment < -neutralBand:
			acc.negative++
		}
		if len(acc.snippets) < maxMentionSnippets {
			acc.snippets = append(acc.snippets, model.MentionSnippet{
				Snippet:   m.ContextSnippet,
				Sentiment: m.LocalSentiment,
				ReviewID:  m.ReviewID,
				Source:    review.Source,
				URL:       review.URL,
			})
		}
	}

	for _, occ := range occurrences {
		iss := a.issues[occ.IssueType]
		if iss == nil {
			iss = &issueAgg{}
			a.issues[occ.IssueType] = iss
		}
		switch occ.Severity {
		case model.SeverityHigh:
			iss.counts.High++
		case model.SeverityLow:
			iss.counts.Low++
		default:
			iss.counts.Medium++
		}
		if len(iss.examples) < maxIssueExamples {
			iss.examples = append(iss.examples, model.IssueExample{
				Snippet:  occ.MatchedSnippet,
				Severity: occ.Severity,
				ReviewID: occ.ReviewID,
				Source:   review.Source,
			})
		}
	}
}

// AddSkipped records a review excluded from the run (missing text,
// unrecoverable encoding). Skips are diagnostics, never fatal.
func (a *Aggregate) AddSkipped() {
	a.skipped++
}

// Merge folds other into a. Counts sum and means recompute from sums,
// so merging partial aggregates equals aggregating the union of their
// inputs; merge order only affects which bounded examples survive.
func (a *Aggregate) Merge(other *Aggregate) {
	a.reviews += other.reviews
	a.skipped += other.skipped
	a.reviewSentSum += other.reviewSentSum
	a.reviewSentCount += other.reviewSentCount

	for source, n := range other.sources {
		a.sources[source] += n
	}

	for name, o := range other.accessories {
		acc := a.accessories[name]
		if acc == nil {
			acc = &accessoryAgg{accessoryType: o.accessoryType}
			a.accessories[name] = acc
		}
		acc.count += o.count
		acc.sentimentSum += o.sentimentSum
		acc.positive += o.positive
		acc.negative += o.negative
		room := maxMentionSnippets - len(acc.snippets)
		if room > len(o.snippets) {
			room = len(o.snippets)
		}
		if room > 0 {
			acc.snippets = append(acc.snippets, o.snippets[:room]...)
		}
	}

	for key, o := range other.issues {
		iss := a.issues[key]
		if iss == nil {
			iss = &issueAgg{}
			a.issues[key] = iss
		}
		iss.counts.High += o.counts.High
		iss.counts.Medium += o.counts.Medium
		iss.counts.Low += o.counts.Low
		room := maxIssueExamples - len(iss.examples)
		if room > len(o.examples) {
			room = len(o.examples)
		}
		if room > 0 {
			iss.examples = append(iss.examples, o.examples[:room]...)
		}
	}
}

// Finalize computes the complete snapshot from the aggregate. The
// snapshot is a pure function of the folded inputs; an accessory with no
// mentions is simply absent from the rankings.
func (a *Aggregate) Finalize() *model.Snapshot {
	snap := &model.Snapshot{
		GeneratedAt: time.Now().UTC(),
		Details:     make(map[string]model.AccessoryDetail, len(a.accessories)),
	}

	var totalMentions int
	for name, acc := range a.accessories {
		ranking := model.AccessoryRanking{
			AccessoryName:       name,
			AccessoryType:       acc.accessoryType,
			MentionCount:        acc.count,
			AvgSentiment:        round3(acc.sentimentSum / float64(acc.count)),
			PositiveMentions:    acc.positive,
			NegativeMentions:    acc.negative,
			RecommendationScore: round3(recommendationScore(acc)),
		}
		totalMentions += acc.count
		snap.Rankings = append(snap.Rankings, ranking)
		snap.Details[name] = buildDetail(ranking, acc)
	}

	sort.Slice(snap.Rankings, func(i, j int) bool {
		if snap.Rankings[i].RecommendationScore != snap.Rankings[j].RecommendationScore {
			return snap.Rankings[i].RecommendationScore > snap.Rankings[j].RecommendationScore
		}
		return snap.Rankings[i].AccessoryName < snap.Rankings[j].AccessoryName
	})

	var totalIssues int
	var topIssue string
	var topIssueCount int
	for key, iss := range a.issues {
		total := iss.counts.High + iss.counts.Medium + iss.counts.Low
		totalIssues += total
		snap.Issues = append(snap.Issues, model.IssueSummary{
			IssueType:      key,
			SeverityCounts: iss.counts,
			Total:          total,
			Examples:       iss.examples,
		})
		if total > topIssueCount || (total == topIssueCount && key < topIssue) {
			topIssue = key
			topIssueCount = total
		}
	}
	sort.Slice(snap.Issues, func(i, j int) bool {
		if snap.Issues[i].Total != snap.Issues[j].Total {
			return snap.Issues[i].Total > snap.Issues[j].Total
		}
		return snap.Issues[i].IssueType < snap.Issues[j].IssueType
	})

	for source, n := range a.sources {
		snap.Sources = append(snap.Sources, model.SourceCount{Source: source, Reviews: n})
	}
	sort.Slice(snap.Sources, func(i, j int) bool {
		if snap.Sources[i].Reviews != snap.Sources[j].Reviews {
			return snap.Sources[i].Reviews > snap.Sources[j].Reviews
		}
		return snap.Sources[i].Source < snap.Sources[j].Source
	})

	snap.Stats = model.DashboardStats{
		TotalReviews:        a.reviews,
		SkippedReviews:      a.skipped,
		TotalMentions:       totalMentions,
		TotalIssues:         totalIssues,
		DistinctAccessories: len(a.accessories),
		MostFrequentIssue:   topIssue,
	}
	if len(snap.Rankings) > 0 {
		snap.Stats.TopAccessory = snap.Rankings[0].AccessoryName
	}
	if a.reviewSentCount > 0 {
		snap.Stats.AvgReviewSentiment = round3(a.reviewSentSum / float64(a.reviewSentCount))
	}

	return snap
}

// recommendationScore rewards both higher sentiment and more
// corroborating evidence. Monotone in avg sentiment, positive ratio,
// and mention volume.
func recommendationScore(acc *accessoryAgg) float64 {
	avg := acc.sentimentSum / float64(acc.count)
	posRatio := float64(acc.positive) / float64(acc.count)
	return wSentiment*avg + wPositiveRatio*posRatio + wVolume*math.Log10(float64(acc.count)+1)
}

func buildDetail(ranking model.AccessoryRanking, acc *accessoryAgg) model.AccessoryDetail {
	detail := model.AccessoryDetail{
		AccessoryRanking: ranking,
		Mentions:         acc.snippets,
	}
	for _, s := range acc.snippets {
		switch {
		case s.Sentiment > neutralBand && len(detail.Pros) < maxProsCons:
			detail.Pros = append(detail.Pros, s.Snippet)
		case s.Sentiment < -neutralBand && len(detail.Cons) < maxProsCons:
			detail.Cons = append(detail.Cons, s.Snippet)
		}
	}
	return detail
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
