package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/headsetlab/comfortscan/internal/model"
)

// Renderer writes a finalized snapshot to disk as JSON and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes the snapshot as indented JSON. The file appears
// atomically: readers never observe a half-written snapshot.
func (r *Renderer) WriteJSON(snap *model.Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return atomicWrite(path, append(data, '\n'))
}

// WriteMarkdown writes the human-readable report.
func (r *Renderer) WriteMarkdown(snap *model.Snapshot, path string) error {
	return atomicWrite(path, []byte(r.RenderMarkdown(snap)))
}

// RenderMarkdown formats the snapshot as a Markdown report.
func (r *Renderer) RenderMarkdown(snap *model.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Comfort Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", snap.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Overview\n\n")
	fmt.Fprintf(&b, "- Reviews analyzed: %d", snap.Stats.TotalReviews)
	if snap.Stats.SkippedReviews > 0 {
		fmt.Fprintf(&b, " (%d skipped)", snap.Stats.SkippedReviews)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Accessory mentions: %d across %d accessories\n", snap.Stats.TotalMentions, snap.Stats.DistinctAccessories)
	fmt.Fprintf(&b, "- Comfort issues found: %d\n", snap.Stats.TotalIssues)
	fmt.Fprintf(&b, "- Average review sentiment: %.3f\n", snap.Stats.AvgReviewSentiment)
	if snap.Stats.TopAccessory != "" {
		fmt.Fprintf(&b, "- Top accessory: %s\n", snap.Stats.TopAccessory)
	}
	if snap.Stats.MostFrequentIssue != "" {
		fmt.Fprintf(&b, "- Most frequent issue: %s\n", snap.Stats.MostFrequentIssue)
	}
	b.WriteString("\n")

	if len(snap.Rankings) > 0 {
		fmt.Fprintf(&b, "## Accessory Rankings\n\n")
		fmt.Fprintf(&b, "| # | Accessory | Type | Mentions | Sentiment | +/- | Score |\n")
		fmt.Fprintf(&b, "|---|-----------|------|----------|-----------|-----|-------|\n")
		for i, rk := range snap.Rankings {
			fmt.Fprintf(&b, "| %d | %s | %s | %d | %.3f | %d/%d | %.3f |\n",
				i+1, rk.AccessoryName, rk.AccessoryType, rk.MentionCount,
				rk.AvgSentiment, rk.PositiveMentions, rk.NegativeMentions,
				rk.RecommendationScore)
		}
		b.WriteString("\n")
	}

	if len(snap.Issues) > 0 {
		fmt.Fprintf(&b, "## Comfort Issues\n\n")
		for _, issue := range snap.Issues {
			fmt.Fprintf(&b, "### %s (%d)\n\n", issue.IssueType, issue.Total)
			fmt.Fprintf(&b, "Severity: %d high, %d medium, %d low\n\n",
				issue.SeverityCounts.High, issue.SeverityCounts.Medium, issue.SeverityCounts.Low)
			for _, ex := range issue.Examples {
				fmt.Fprintf(&b, "> %s\n\n", ex.Snippet)
			}
		}
	}

	if len(snap.Sources) > 0 {
		fmt.Fprintf(&b, "## Sources\n\n")
		for _, src := range snap.Sources {
			fmt.Fprintf(&b, "- %s: %d reviews\n", src.Source, src.Reviews)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by comfortscan.\n")
	}

	return b.String()
}

// atomicWrite writes to a temp file in the target directory and renames
// it over the destination.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
