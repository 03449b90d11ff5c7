package analysis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lohith2005/AICodeAnalyzer/internal/llm"
)

// mockClient is a scripted llm.Client with a call counter
type mockClient struct {
	content   string
	err       error
	available bool
	calls     atomic.Int32
}

var _ llm.Client = (*mockClient)(nil)

func newMockClient(content string) *mockClient {
	return &mockClient{content: content, available: true}
}

func (m *mockClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.Response{Content: m.content, Provider: llm.ProviderGemini}, nil
}

func (m *mockClient) Name() llm.Provider { return llm.ProviderGemini }

func (m *mockClient) Available() bool { return m.available }

const validReply = `{"timeComplexity":"O(n)","spaceComplexity":"O(1)","explanation":"linear scan"}`

func TestService_Analyze(t *testing.T) {
	client := newMockClient(validReply)
	svc := NewService(NewMemoryStore(), client, 0)

	result, err := svc.Analyze(context.Background(), "for i := range xs {}\n// done", "go")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if result.LinesOfCode != 1 {
		t.Errorf("LinesOfCode = %d, want 1", result.LinesOfCode)
	}
	if result.TimeComplexity != "O(n)" {
		t.Errorf("TimeComplexity = %s, want O(n)", result.TimeComplexity)
	}
	if result.SpaceComplexity != "O(1)" {
		t.Errorf("SpaceComplexity = %s, want O(1)", result.SpaceComplexity)
	}
	if result.Explanation != "linear scan" {
		t.Errorf("Explanation = %s, want linear scan", result.Explanation)
	}
	if got := client.calls.Load(); got != 1 {
		t.Errorf("model calls = %d, want 1", got)
	}
}

func TestService_AnalyzeIdempotent(t *testing.T) {
	client := newMockClient(validReply)
	svc := NewService(NewMemoryStore(), client, 0)
	ctx := context.Background()
	code := "while (n > 1) n /= 2;"

	first, err := svc.Analyze(ctx, code, "javascript")
	if err != nil {
		t.Fatalf("first Analyze() error: %v", err)
	}

	second, err := svc.Analyze(ctx, code, "javascript")
	if err != nil {
		t.Fatalf("second Analyze() error: %v", err)
	}

	if *first != *second {
		t.Errorf("repeat submission differs: %+v vs %+v", first, second)
	}
	if got := client.calls.Load(); got != 1 {
		t.Errorf("model calls = %d, want 1 (second served from store)", got)
	}
}

func TestService_AnalyzeValidation(t *testing.T) {
	client := newMockClient(validReply)
	svc := NewService(NewMemoryStore(), client, 0)
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "", "go"); !errors.Is(err, ErrValidation) {
		t.Errorf("empty code: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Analyze(ctx, "x := 1", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty language: err = %v, want ErrValidation", err)
	}
	if got := client.calls.Load(); got != 0 {
		t.Errorf("model calls = %d, want 0", got)
	}
}

func TestService_AnalyzeNoCredential(t *testing.T) {
	client := newMockClient(validReply)
	client.available = false
	svc := NewService(NewMemoryStore(), client, 0)

	_, err := svc.Analyze(context.Background(), "x := 1", "go")
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("err = %v, want ErrNoCredential", err)
	}
	if got := client.calls.Load(); got != 0 {
		t.Errorf("model calls = %d, want 0 (no outbound call without credential)", got)
	}
}

func TestService_Cooldown(t *testing.T) {
	client := newMockClient(validReply)
	svc := NewService(NewMemoryStore(), client, 50*time.Millisecond)
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "a()", "go"); err != nil {
		t.Fatalf("first Analyze() error: %v", err)
	}

	if _, err := svc.Analyze(ctx, "b()", "go"); !errors.Is(err, ErrCooldown) {
		t.Errorf("second immediate call: err = %v, want ErrCooldown", err)
	}

	time.Sleep(60 * time.Millisecond)

	if _, err := svc.Analyze(ctx, "c()", "go"); err != nil {
		t.Errorf("call after window: err = %v, want nil", err)
	}
}

func TestService_CooldownConsumedByFailure(t *testing.T) {
	client := newMockClient(validReply)
	client.err = llm.ErrQuotaExceeded
	svc := NewService(NewMemoryStore(), client, time.Minute)
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "a()", "go"); !errors.Is(err, llm.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want quota error", err)
	}

	// The failed attempt keeps the cooldown mark; the next call is
	// rate-gated, not retried.
	if _, err := svc.Analyze(ctx, "a()", "go"); !errors.Is(err, ErrCooldown) {
		t.Errorf("err = %v, want ErrCooldown", err)
	}
}

func TestService_AnalyzeModelError(t *testing.T) {
	client := newMockClient("")
	client.err = errors.New("connection refused")
	store := NewMemoryStore()
	svc := NewService(store, client, 0)

	_, err := svc.Analyze(context.Background(), "x := 1", "go")
	if err == nil {
		t.Fatal("expected error from failed model call")
	}
	if store.Len() != 0 {
		t.Errorf("failed analysis should not be persisted, store has %d records", store.Len())
	}
}

func TestService_AnalyzeUnparsableReply(t *testing.T) {
	client := newMockClient("no idea what this code does")
	svc := NewService(NewMemoryStore(), client, 0)

	result, err := svc.Analyze(context.Background(), "x := 1", "go")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	// Unparsable provider text degrades to fallbacks, never to an error.
	if result.TimeComplexity != FallbackComplexity {
		t.Errorf("TimeComplexity = %s, want %s", result.TimeComplexity, FallbackComplexity)
	}
	if result.SpaceComplexity != FallbackComplexity {
		t.Errorf("SpaceComplexity = %s, want %s", result.SpaceComplexity, FallbackComplexity)
	}
	if result.Explanation != FallbackExplanation {
		t.Errorf("Explanation = %s, want %s", result.Explanation, FallbackExplanation)
	}
}

func TestService_Ping(t *testing.T) {
	client := newMockClient("ok")
	svc := NewService(NewMemoryStore(), client, 0)

	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}

	client.available = false
	if err := svc.Ping(context.Background()); !errors.Is(err, ErrNoCredential) {
		t.Errorf("Ping() without credential: err = %v, want ErrNoCredential", err)
	}
}
