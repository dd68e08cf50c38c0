package extract

import (
	"strings"
	"testing"

	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/normalize"
)

func testCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	catalog, err := model.NewCatalog([]model.CatalogEntry{
		{CanonicalName: "Meta Elite Strap", Type: "head_strap", Aliases: []string{"meta elite"}},
		{CanonicalName: "Elite Strap", Type: "head_strap"},
		{CanonicalName: "BoboVR M3 Pro", Type: "head_strap", Aliases: []string{"bobovr", "bobo vr", "m3 pro"}},
		{CanonicalName: "Cooling Fan", Type: "other", Aliases: []string{"fan"}},
		{CanonicalName: "VR Cover", Type: "face_cover", Aliases: []string{"vrcover"}},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return catalog
}

func extractFrom(t *testing.T, text string) []model.Mention {
	t.Helper()
	e := NewAccessoryExtractor(testCatalog(t))
	return e.Extract("r1", normalize.Normalize(text))
}

func TestExtract_LongestMatchWins(t *testing.T) {
	mentions := extractFrom(t, "Upgraded to the Meta Elite Strap last week.")

	if len(mentions) != 1 {
		t.Fatalf("expected exactly 1 mention, got %d: %+v", len(mentions), mentions)
	}
	if mentions[0].AccessoryName != "Meta Elite Strap" {
		t.Errorf("expected longest alias to win, got %q", mentions[0].AccessoryName)
	}
}

func TestExtract_ShorterAliasStillMatchesAlone(t *testing.T) {
	mentions := extractFrom(t, "The elite strap cracked after a month.")

	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d", len(mentions))
	}
	if mentions[0].AccessoryName != "Elite Strap" {
		t.Errorf("got %q, want Elite Strap", mentions[0].AccessoryName)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	mentions := extractFrom(t, "BOBOVR changed everything for me")
	if len(mentions) != 1 || mentions[0].AccessoryName != "BoboVR M3 Pro" {
		t.Fatalf("expected BoboVR M3 Pro mention, got %+v", mentions)
	}
}

func TestExtract_WordBoundaries(t *testing.T) {
	mentions := extractFrom(t, "This game is fantastic")
	if len(mentions) != 0 {
		t.Fatalf("alias 'fan' must not match inside 'fantastic', got %+v", mentions)
	}

	mentions = extractFrom(t, "Bought a fan for summer sessions")
	if len(mentions) != 1 || mentions[0].AccessoryName != "Cooling Fan" {
		t.Fatalf("expected Cooling Fan mention, got %+v", mentions)
	}
}

func TestExtract_MultipleOccurrencesYieldMultipleMentions(t *testing.T) {
	mentions := extractFrom(t, "The bobovr is great. I recommend the bobovr to everyone.")
	if len(mentions) != 2 {
		t.Fatalf("expected 2 mentions, got %d", len(mentions))
	}
	for _, m := range mentions {
		if m.AccessoryName != "BoboVR M3 Pro" {
			t.Errorf("unexpected accessory %q", m.AccessoryName)
		}
	}
}

func TestExtract_NoCatalogMatchIsEmpty(t *testing.T) {
	mentions := extractFrom(t, "I only play rhythm games on weekends.")
	if len(mentions) != 0 {
		t.Fatalf("expected no mentions, got %+v", mentions)
	}
}

func TestExtract_SnippetQuotesOriginalText(t *testing.T) {
	original := "Honestly   the VRCover\n\nfeels premium"
	e := NewAccessoryExtractor(testCatalog(t))
	mentions := e.Extract("r1", normalize.Normalize(original))

	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d", len(mentions))
	}
	snippet := mentions[0].ContextSnippet
	if !strings.Contains(snippet, "VRCover\n\nfeels") {
		t.Errorf("snippet should quote the original text verbatim, got %q", snippet)
	}
}

func TestExtract_SnippetUsesSurroundingSentence(t *testing.T) {
	long := strings.Repeat("padding words ", 30) + "and then the bobovr arrived " + strings.Repeat("more words ", 30)
	e := NewAccessoryExtractor(testCatalog(t))
	mentions := e.Extract("r1", normalize.Normalize(long+". Short tail."))

	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d", len(mentions))
	}
	if len(mentions[0].ContextSnippet) < 2*snippetRadius {
		t.Errorf("sentence larger than the window should be kept whole, snippet len = %d", len(mentions[0].ContextSnippet))
	}
}

func TestExtract_SnippetWindowStableWithOffsetShiftingRunes(t *testing.T) {
	// Ⱥ lowercases to a longer encoding; a plain ToLower of the text
	// would shift every match offset after the prefix.
	prefix := strings.Repeat("Ⱥ ", 80)
	text := prefix + ". I love the elite strap, worth every penny."
	e := NewAccessoryExtractor(testCatalog(t))
	mentions := e.Extract("r1", normalize.Normalize(text))

	if len(mentions) != 1 || mentions[0].AccessoryName != "Elite Strap" {
		t.Fatalf("expected Elite Strap mention, got %+v", mentions)
	}
	snippet := mentions[0].ContextSnippet
	if !strings.Contains(snippet, "elite strap") {
		t.Errorf("snippet lost the matched span: %q", snippet)
	}
	if n := strings.Count(snippet, "Ⱥ"); n >= 80 {
		t.Errorf("snippet covers the whole text (%d Ⱥ runes), want a bounded window", n)
	}
}

func TestExtract_EmptyText(t *testing.T) {
	e := NewAccessoryExtractor(testCatalog(t))
	if got := e.Extract("r1", normalize.Normalize("")); len(got) != 0 {
		t.Fatalf("expected no mentions for empty text, got %+v", got)
	}
}
