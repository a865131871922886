package suggestions

import (
	"errors"
	"testing"
)

func TestExtractJSONArrayFound(t *testing.T) {
	raw := "Here are your suggestions:\n[{\"title\":\"Grow signups\"},{\"title\":\"Boost reach\"}]\nGood luck!"
	items, err := ExtractJSONArray(raw)
	if err != nil {
		t.Fatalf("expected extraction to succeed, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestExtractJSONArrayNoArray(t *testing.T) {
	_, err := ExtractJSONArray("I'm sorry, I can't produce suggestions right now.")
	if !errors.Is(err, ErrNoJSONArray) {
		t.Fatalf("expected ErrNoJSONArray, got %v", err)
	}
	if !IsUnusableOutput(err) {
		t.Fatalf("expected unusable-output classification")
	}
}

func TestExtractJSONArrayInvalidJSON(t *testing.T) {
	_, err := ExtractJSONArray("result: [{\"title\": \"Grow\",}]")
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
	if errors.Is(err, ErrNoJSONArray) {
		t.Fatalf("failure modes must stay distinct")
	}
	if !IsUnusableOutput(err) {
		t.Fatalf("expected unusable-output classification")
	}
}

func TestExtractJSONArrayGreedyToLastBracket(t *testing.T) {
	raw := `[{"title":"A","platformNames":["instagram"]}] trailing ]`
	_, err := ExtractJSONArray(raw)
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected greedy scan to pick the last ']' and fail parse, got %v", err)
	}
}

func TestExtractJSONArrayEmpty(t *testing.T) {
	items, err := ExtractJSONArray("[]")
	if err != nil {
		t.Fatalf("expected empty array to parse, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}
