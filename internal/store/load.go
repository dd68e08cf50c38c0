package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/headsetlab/comfortscan/internal/model"
)

// ReadReviewFile parses scraped reviews from a JSON or JSONL file.
// JSON files hold either a top-level array or a {"reviews": [...]}
// wrapper; JSONL holds one review object per line, blank lines skipped.
func ReadReviewFile(path string) ([]model.Review, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reviews: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return parseJSONL(path, data)
	}
	return parseJSON(path, data)
}

func parseJSON(path string, data []byte) ([]model.Review, error) {
	var reviews []model.Review
	if err := json.Unmarshal(data, &reviews); err == nil {
		return reviews, nil
	}

	var wrapper struct {
		Reviews []model.Review `json:"reviews"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return wrapper.Reviews, nil
}

func parseJSONL(path string, data []byte) ([]model.Review, error) {
	var reviews []model.Review

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var review model.Review
		if err := json.Unmarshal([]byte(text), &review); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line, err)
		}
		reviews = append(reviews, review)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return reviews, nil
}
