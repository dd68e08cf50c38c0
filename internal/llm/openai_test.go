package llm

import (
	"testing"

	"github.com/headsetlab/comfortscan/internal/model"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    float64
		wantErr bool
	}{
		{"plain", "0.7", 0.7, false},
		{"negative", "-0.25", -0.25, false},
		{"whitespace", "  0.5\n", 0.5, false},
		{"labelled", "Score: 0.8", 0.8, false},
		{"clamped high", "3.2", 1.0, false},
		{"clamped low", "-7", -1.0, false},
		{"zero", "0", 0, false},
		{"garbage", "I cannot rate this", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScore(tt.reply)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseScore(%q) expected error, got %v", tt.reply, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScore(%q): %v", tt.reply, err)
			}
			if got != tt.want {
				t.Errorf("ParseScore(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestNewScorer_RequiresAPIKey(t *testing.T) {
	_, err := NewScorer(Config{Provider: "openai"})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewScorer_UnknownProvider(t *testing.T) {
	_, err := NewScorer(Config{Provider: "markov-chains"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.SentimentConfig{
		Provider:          "openai",
		Model:             "gpt-4o-mini",
		APIKey:            "sk-test",
		RequestsPerSecond: 5,
		TimeoutSeconds:    10,
	})

	if cfg.Provider != "openai" || cfg.Model != "gpt-4o-mini" || cfg.APIKey != "sk-test" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.RequestsPerSecond != 5 || cfg.Timeout != 10 {
		t.Errorf("unexpected limits: %+v", cfg)
	}
}
