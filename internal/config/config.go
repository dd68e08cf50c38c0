package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/headsetlab/comfortscan/internal/model"
)

// Load reads the application config file on top of the defaults. An
// empty path returns the defaults unchanged. The OpenAI API key is only
// ever taken from the environment, never from the file.
func Load(path string) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if key := os.Getenv("COMFORTSCAN_OPENAI_API_KEY"); key != "" {
		cfg.Sentiment.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Sentiment.APIKey = key
	}
	return cfg, nil
}
