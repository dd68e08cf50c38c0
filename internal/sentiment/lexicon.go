// Package sentiment scores text polarity on a [-1, 1] scale.
package sentiment

// Lexicon is the word-polarity configuration for the rule scorer. It is
// built once per run and shared read-only across workers.
type Lexicon struct {
	// Weights maps a lowercased token to its polarity in [-1, 1].
	Weights map[string]float64 `yaml:"weights"`

	// Negations flip the sign of the next sentiment token within the
	// lookback window ("not", but also resolution verbs like
	// "eliminated", so "eliminated my neck pain" reads positive).
	Negations map[string]bool `yaml:"negations"`

	// Intensifiers scale the magnitude of the following sentiment
	// token: >1 amplifies ("extremely"), <1 diminishes ("slightly").
	Intensifiers map[string]float64 `yaml:"intensifiers"`
}

// DefaultLexicon returns the built-in lexicon tuned for comfort reviews.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Weights: map[string]float64{
			// positive
			"love": 0.8, "loved": 0.8, "loves": 0.8, "amazing": 0.9,
			"excellent": 0.9, "perfect": 0.9, "great": 0.7, "awesome": 0.8,
			"fantastic": 0.9, "best": 0.8, "good": 0.5, "nice": 0.4,
			"comfortable": 0.7, "comfy": 0.7, "comfort": 0.4, "solid": 0.5,
			"sturdy": 0.5, "premium": 0.5, "recommend": 0.6, "recommended": 0.6,
			"worth": 0.5, "happy": 0.6, "better": 0.4, "improved": 0.5,
			"improvement": 0.5, "secure": 0.4, "balanced": 0.5, "breathable": 0.5,
			"durable": 0.5, "easy": 0.4, "light": 0.4, "lightweight": 0.5,
			"soft": 0.4, "snug": 0.4, "upgrade": 0.5, "gamechanger": 0.9,

			// negative
			"hate": -0.8, "terrible": -0.9, "awful": -0.9, "horrible": -0.9,
			"worst": -0.9, "bad": -0.5, "poor": -0.6, "cheap": -0.4,
			"flimsy": -0.6, "uncomfortable": -0.7, "pain": -0.6, "painful": -0.7,
			"hurts": -0.7, "hurt": -0.6, "ache": -0.6, "aching": -0.6,
			"sore": -0.5, "heavy": -0.4, "tight": -0.3, "loose": -0.3,
			"broke": -0.7, "broken": -0.7, "cracked": -0.6, "snapped": -0.7,
			"sweaty": -0.4, "sweat": -0.3, "hot": -0.3, "unusable": -0.9,
			"unbearable": -0.9, "returned": -0.6, "refund": -0.6, "disappointed": -0.7,
			"disappointing": -0.7, "annoying": -0.5, "frustrating": -0.6,
			"uncomfy": -0.7, "pressure": -0.3, "useless": -0.8, "regret": -0.7,
		},
		Negations: map[string]bool{
			"not": true, "no": true, "never": true, "without": true,
			"dont": true, "doesnt": true, "didnt": true, "isnt": true,
			"wasnt": true, "wont": true, "cant": true, "couldnt": true,
			"hardly": true, "barely": true,
			// resolution verbs: "eliminated my neck pain" is praise
			"eliminated": true, "eliminates": true, "fixed": true,
			"fixes": true, "solved": true, "solves": true, "removed": true,
			"gone": true, "cured": true, "stopped": true,
		},
		Intensifiers: map[string]float64{
			"very": 1.5, "really": 1.5, "extremely": 2.0, "absolutely": 2.0,
			"incredibly": 2.0, "completely": 1.8, "totally": 1.8, "super": 1.6,
			"so": 1.3, "quite": 1.2,
			"slightly": 0.5, "somewhat": 0.6, "mildly": 0.5, "bit": 0.5,
			"fairly": 0.8, "little": 0.6,
		},
	}
}

// Validate rejects weights outside [-1, 1] and non-positive intensifier
// factors before any review is processed.
func (l *Lexicon) Validate() error {
	for token, w := range l.Weights {
		if w < -1 || w > 1 {
			return &ConfigError{Field: "weights", Token: token}
		}
	}
	for token, f := range l.Intensifiers {
		if f <= 0 {
			return &ConfigError{Field: "intensifiers", Token: token}
		}
	}
	return nil
}

// ConfigError reports an invalid lexicon entry.
type ConfigError struct {
	Field string
	Token string
}

func (e *ConfigError) Error() string {
	return "sentiment lexicon: invalid " + e.Field + " entry " + e.Token
}
