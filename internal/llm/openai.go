package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const scorePrompt = `Rate the overall sentiment of the following VR headset review on a scale from -1.0 (very negative) to 1.0 (very positive). Respond with ONLY the number, nothing else.

Review:
%s`

// OpenAIScorer scores whole-review sentiment via the Chat Completions
// API. Calls are rate limited so batch runs stay within provider quotas.
type OpenAIScorer struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	timeout time.Duration
}

// NewOpenAIScorer creates a new OpenAI-backed scorer.
func NewOpenAIScorer(cfg Config) (*OpenAIScorer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	m := cfg.Model
	if m == "" {
		m = openai.GPT4oMini
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIScorer{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   m,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		timeout: timeout,
	}, nil
}

// Score implements sentiment.Scorer.
func (s *OpenAIScorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a sentiment rating engine. You respond with a single decimal number and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(scorePrompt, truncate(text, 4000)),
			},
		},
		MaxTokens:   8,
		Temperature: 0, // as close to deterministic as the API allows
	})
	if err != nil {
		return 0, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no response from OpenAI")
	}

	return ParseScore(resp.Choices[0].Message.Content)
}

// ParseScore extracts a polarity from a model reply and clamps it to
// [-1, 1]. Replies like "0.7", "-0.25", or "Score: 0.7" are accepted.
func ParseScore(reply string) (float64, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(reply), func(r rune) bool {
		return r != '-' && r != '.' && (r < '0' || r > '9')
	})
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		return v, nil
	}
	return 0, fmt.Errorf("unparseable sentiment reply: %q", reply)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
