package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/headsetlab/comfortscan/internal/sentiment"
)

// LoadLexicon reads a sentiment lexicon from a YAML file, or returns
// the built-in lexicon when path is empty.
func LoadLexicon(path string) (*sentiment.Lexicon, error) {
	if path == "" {
		return sentiment.DefaultLexicon(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var lex sentiment.Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return &lex, nil
}
