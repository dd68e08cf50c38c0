package model

// Mention is one detected occurrence of a cataloged accessory inside a
// review's text. Mentions are ephemeral: they are regenerated on every
// pipeline run and never stored incrementally.
type Mention struct {
	ReviewID       string  `json:"review_id"`
	AccessoryName  string  `json:"accessory_name"` // canonical name, never the raw alias
	AccessoryType  string  `json:"accessory_type"`
	ContextSnippet string  `json:"context_snippet"` // quoted from the original text
	LocalSentiment float64 `json:"local_sentiment"` // in [-1, 1], scored over the snippet
}
