// Package normalize prepares raw review text for analysis: it strips
// control characters, collapses whitespace runs, records a mapping from
// normalized offsets back to original offsets, and segments the text
// into sentences for local-sentiment windowing. Normalization is total:
// any input string, including the empty string, yields a valid result.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open [Start, End) byte range in normalized text.
type Span struct {
	Start int
	End   int
}

// Result is the output of normalizing one piece of text.
type Result struct {
	// Text is the normalized text. Case is preserved; matching layers
	// lowercase on their own so snippets can quote the original.
	Text string

	// Original is the untouched input, used to quote context snippets.
	Original string

	// Sentences are sentence spans over Text, split on terminal
	// punctuation. Text with no terminal punctuation is one sentence.
	Sentences []Span

	// offsets[i] is the byte offset in Original of the rune that
	// produced normalized byte i.
	offsets []int
}

// Fold lowercases text for matching while keeping every byte offset
// valid in the input: a rune whose lowercase form encodes to a different
// length (Ⱥ grows, İ shrinks) is left as-is. Matching layers fold the
// normalized text instead of strings.ToLower so match offsets can index
// the offset map directly.
func Fold(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteByte(text[i])
			i++
			continue
		}
		if l := unicode.ToLower(r); utf8.RuneLen(l) == size {
			buf.WriteRune(l)
		} else {
			buf.WriteString(text[i : i+size])
		}
		i += size
	}
	return buf.String()
}

// Normalize cleans raw text and builds the offset map.
func Normalize(original string) *Result {
	var buf strings.Builder
	buf.Grow(len(original))
	offsets := make([]int, 0, len(original))

	pendingSpace := false
	spaceOrigin := 0

	for i, r := range original {
		if unicode.IsSpace(r) {
			if buf.Len() > 0 { // leading whitespace is dropped entirely
				pendingSpace = true
				spaceOrigin = i
			}
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if pendingSpace {
			buf.WriteByte(' ')
			offsets = append(offsets, spaceOrigin)
			pendingSpace = false
		}
		n := buf.Len()
		buf.WriteRune(r)
		for ; n < buf.Len(); n++ {
			offsets = append(offsets, i)
		}
	}

	res := &Result{
		Text:     buf.String(),
		Original: original,
		offsets:  offsets,
	}
	res.Sentences = splitSentences(res.Text)
	return res
}

// OriginalRange maps a normalized byte range back to the corresponding
// half-open range in the original text.
func (r *Result) OriginalRange(start, end int) (int, int) {
	if len(r.offsets) == 0 || start >= end {
		return 0, 0
	}
	if start < 0 {
		start = 0
	}
	if end > len(r.offsets) {
		end = len(r.offsets)
	}
	origStart := r.offsets[start]
	last := r.offsets[end-1]
	_, size := utf8.DecodeRuneInString(r.Original[last:])
	return origStart, last + size
}

// OriginalSlice quotes the original text for a normalized byte range,
// trimmed of surrounding whitespace.
func (r *Result) OriginalSlice(start, end int) string {
	os, oe := r.OriginalRange(start, end)
	return strings.TrimSpace(r.Original[os:oe])
}

// SentenceAt returns the sentence span containing normalized offset pos.
// Falls back to the whole text when segmentation produced nothing.
func (r *Result) SentenceAt(pos int) Span {
	for _, s := range r.Sentences {
		if pos >= s.Start && pos < s.End {
			return s
		}
	}
	return Span{Start: 0, End: len(r.Text)}
}

// splitSentences finds sentence boundaries on terminal punctuation
// followed by a space or end of text.
func splitSentences(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		// Swallow runs of terminal punctuation ("?!", "...").
		end := i + 1
		for end < len(text) && (text[end] == '.' || text[end] == '!' || text[end] == '?') {
			end++
		}
		if end < len(text) && text[end] != ' ' {
			i = end - 1
			continue // mid-token period, e.g. "3.5" or "v1.2"
		}
		spans = append(spans, Span{Start: start, End: end})
		i = end // skip the separating space
		start = end + 1
		if start > len(text) {
			start = len(text)
		}
	}
	if start < len(text) {
		spans = append(spans, Span{Start: start, End: len(text)})
	}
	return spans
}
