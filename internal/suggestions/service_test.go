package suggestions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"okr-backend/internal/llm"
	"okr-backend/internal/runs"
)

type stubLLM struct {
	reply     string
	err       error
	gotPrompt string
	calls     int
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.calls++
	s.gotPrompt = prompt
	return s.reply, s.err
}

type failingRunStore struct{}

func (failingRunStore) Save(ctx context.Context, run runs.Run) error {
	return errors.New("disk full")
}

func (failingRunStore) ListByTenant(ctx context.Context, tenantID string, limit int) ([]runs.Run, error) {
	return nil, errors.New("disk full")
}

const testTenantID = "7a0b2f2e-7d40-4a52-a8f0-54e530d31a4d"

// e2eRepo returns a repo whose metric descriptions share no token with the
// generated titles, so resolution exercises the first-entry fallback.
func e2eRepo() *MemoryRepo {
	repo := NewMemoryRepo()
	repo.SetMetricTypes([]MetricType{
		{ID: "m1", Code: "CONVERSION_RATE", Description: "Share of visitors completing a target action", Unit: "percent", Category: "conversion"},
		{ID: "m2", Code: "REACH", Description: "Unique accounts reached", Unit: "count", Category: "awareness"},
	})
	repo.SetPlatforms([]Platform{
		{ID: "p1", Name: "instagram", DisplayName: "Instagram", Category: "social"},
	})
	return repo
}

func TestGenerateEndToEnd(t *testing.T) {
	client := &stubLLM{
		reply: `[{"title":"Grow signups","category":"Growth","priority":1,"suggestedTargetValue":1000,"suggestedTimeframe":"monthly","confidenceScore":0.9,"reasoning":"x"}]`,
	}
	store := runs.NewMemoryStore()
	svc := &Service{Repo: e2eRepo(), LLM: client, Runs: store}

	req := SuggestionRequest{Industry: "fitness", BrandName: "Acme", TenantID: testTenantID}
	result, err := svc.Generate(context.Background(), req, "req-e2e")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(result.Suggestions) != 1 {
		t.Fatalf("expected exactly 1 suggestion, got %d", len(result.Suggestions))
	}
	got := result.Suggestions[0]
	if got.Priority != 1 {
		t.Fatalf("expected priority 1, got %d", got.Priority)
	}
	if got.ConfidenceScore != 0.9 {
		t.Fatalf("expected confidence 0.9, got %v", got.ConfidenceScore)
	}
	if got.ID == "" {
		t.Fatalf("expected a freshly generated id")
	}
	if got.MetricType == nil || got.MetricType.Code != "CONVERSION_RATE" {
		t.Fatalf("expected first-entry metric fallback, got %+v", got.MetricType)
	}
	if result.Confidence != 0.9 {
		t.Fatalf("expected batch confidence 0.9, got %v", result.Confidence)
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly one generation attempt, got %d", client.calls)
	}
	if !strings.Contains(client.gotPrompt, "Brand name: Acme") {
		t.Fatalf("expected request facts in the composed prompt")
	}

	stored, err := store.ListByTenant(context.Background(), testTenantID, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 persisted run, got %d", len(stored))
	}
	if stored[0].Count != 1 || stored[0].Confidence != 0.9 {
		t.Fatalf("unexpected run record %+v", stored[0])
	}
}

func TestGenerateGenerationFailure(t *testing.T) {
	client := &stubLLM{err: llm.ErrGenerationFailed}
	svc := &Service{Repo: e2eRepo(), LLM: client}

	_, err := svc.Generate(context.Background(), SuggestionRequest{Industry: "fitness", BrandName: "Acme", TenantID: testTenantID}, "req-1")
	if !errors.Is(err, llm.ErrGenerationFailed) {
		t.Fatalf("expected generation failure to propagate, got %v", err)
	}
	if IsUnusableOutput(err) {
		t.Fatalf("generation failure must stay distinct from unusable output")
	}
}

func TestGenerateUnusableOutput(t *testing.T) {
	client := &stubLLM{reply: "I cannot help with that."}
	svc := &Service{Repo: e2eRepo(), LLM: client}

	_, err := svc.Generate(context.Background(), SuggestionRequest{Industry: "fitness", BrandName: "Acme", TenantID: testTenantID}, "req-1")
	if !IsUnusableOutput(err) {
		t.Fatalf("expected unusable-output condition, got %v", err)
	}
	if errors.Is(err, llm.ErrGenerationFailed) {
		t.Fatalf("unusable output must stay distinct from generation failure")
	}
}

func TestGenerateRunPersistFailureDoesNotFailRequest(t *testing.T) {
	client := &stubLLM{reply: `[{"title":"Grow signups","priority":1,"confidenceScore":0.9}]`}
	svc := &Service{Repo: e2eRepo(), LLM: client, Runs: failingRunStore{}}

	result, err := svc.Generate(context.Background(), SuggestionRequest{Industry: "fitness", BrandName: "Acme", TenantID: testTenantID}, "req-1")
	if err != nil {
		t.Fatalf("persist failure must not fail the request: %v", err)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(result.Suggestions))
	}
}

func TestGenerateToleratesEmptyReferenceData(t *testing.T) {
	client := &stubLLM{reply: `[{"title":"Grow signups","priority":2,"confidenceScore":0.5}]`}
	svc := &Service{Repo: NewMemoryRepo(), LLM: client}

	result, err := svc.Generate(context.Background(), SuggestionRequest{Industry: "fitness", BrandName: "Acme", TenantID: testTenantID}, "req-1")
	if err != nil {
		t.Fatalf("generate with empty reference data: %v", err)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(result.Suggestions))
	}
	if result.Suggestions[0].MetricType != nil {
		t.Fatalf("expected unresolved metric with empty taxonomy")
	}
	if len(result.Suggestions[0].Platforms) != 0 {
		t.Fatalf("expected no platforms with empty taxonomy")
	}
}
