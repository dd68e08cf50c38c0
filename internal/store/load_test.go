package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeReviewFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadReviewFileArray(t *testing.T) {
	path := writeReviewFile(t, "reviews.json", `[
		{"id": "r1", "source": "reddit", "body": "too heavy"},
		{"id": "r2", "source": "amazon", "title": "Great strap", "body": "love it"}
	]`)

	reviews, err := ReadReviewFile(path)
	if err != nil {
		t.Fatalf("ReadReviewFile: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(reviews))
	}
	if reviews[1].Title != "Great strap" {
		t.Errorf("title = %q", reviews[1].Title)
	}
}

func TestReadReviewFileWrapper(t *testing.T) {
	path := writeReviewFile(t, "reviews.json", `{"reviews": [{"id": "r1", "source": "reddit", "body": "x"}]}`)

	reviews, err := ReadReviewFile(path)
	if err != nil {
		t.Fatalf("ReadReviewFile: %v", err)
	}
	if len(reviews) != 1 || reviews[0].ID != "r1" {
		t.Errorf("reviews = %+v", reviews)
	}
}

func TestReadReviewFileJSONL(t *testing.T) {
	path := writeReviewFile(t, "reviews.jsonl", `{"id": "r1", "source": "reddit", "body": "x"}

{"id": "r2", "source": "amazon", "body": "y"}
`)

	reviews, err := ReadReviewFile(path)
	if err != nil {
		t.Fatalf("ReadReviewFile: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(reviews))
	}
}

func TestReadReviewFileBadLine(t *testing.T) {
	path := writeReviewFile(t, "reviews.jsonl", `{"id": "r1", "body": "x"}
not json
`)
	if _, err := ReadReviewFile(path); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestReadReviewFileMissing(t *testing.T) {
	if _, err := ReadReviewFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
