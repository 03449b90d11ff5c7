package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lohith2005/AICodeAnalyzer/internal/llm"
	"github.com/Lohith2005/AICodeAnalyzer/internal/loc"
)

var (
	// ErrValidation marks a malformed request (empty code or language).
	ErrValidation = errors.New("validation failed")

	// ErrCooldown marks an analyze request arriving before the
	// process-wide cooldown window has elapsed.
	ErrCooldown = errors.New("cooldown window not elapsed")

	// ErrNoCredential marks a missing provider API key.
	ErrNoCredential = errors.New("no provider credential configured")
)

// Service runs the analysis pipeline. The cooldown clock is a single
// process-wide mark shared by all callers, advanced with compare-and-swap
// so near-simultaneous requests cannot both claim the same window.
type Service struct {
	store    Store
	client   llm.Client
	cooldown time.Duration

	// Unix nanos of the last accepted request. Zero means none yet.
	lastAccepted atomic.Int64
}

// NewService creates an analysis service. A cooldown of zero disables
// the rate gate.
func NewService(store Store, client llm.Client, cooldown time.Duration) *Service {
	return &Service{
		store:    store,
		client:   client,
		cooldown: cooldown,
	}
}

// Analyze runs the full pipeline for one submission. The cooldown mark
// is consumed up front and is not rolled back when a later step fails.
func (s *Service) Analyze(ctx context.Context, code, language string) (*Result, error) {
	if !s.allow(time.Now()) {
		return nil, ErrCooldown
	}

	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}
	if strings.TrimSpace(language) == "" {
		return nil, fmt.Errorf("%w: language is required", ErrValidation)
	}

	if !s.client.Available() {
		return nil, ErrNoCredential
	}

	// Exact-match dedup: a repeat submission returns the stored record
	// without touching the provider.
	if existing, err := s.store.Find(ctx, code); err != nil {
		return nil, fmt.Errorf("store lookup failed: %w", err)
	} else if existing != nil {
		log.Debug().Int64("id", existing.ID).Msg("serving analysis from store")
		return existing.ToResult(), nil
	}

	lines := loc.Count(code)

	resp, err := s.client.Complete(ctx, &llm.Request{
		System:   llm.SystemPromptComplexity,
		Messages: []llm.Message{{Role: "user", Content: llm.ComplexityPrompt(language, code)}},
		JSONMode: true,
	})
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	norm := Normalize(resp.Content)

	rec := &Record{
		Code:            code,
		Language:        language,
		LinesOfCode:     lines,
		TimeComplexity:  norm.TimeComplexity,
		SpaceComplexity: norm.SpaceComplexity,
		Explanation:     norm.Explanation,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	log.Info().
		Int64("id", rec.ID).
		Str("language", language).
		Int("lines", lines).
		Str("time", rec.TimeComplexity).
		Str("space", rec.SpaceComplexity).
		Msg("analysis stored")

	return rec.ToResult(), nil
}

// ListRecent returns up to limit stored analyses, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	return s.store.ListRecent(ctx, limit)
}

// Ping sends a minimal prompt to verify provider connectivity.
func (s *Service) Ping(ctx context.Context) error {
	if !s.client.Available() {
		return ErrNoCredential
	}
	_, err := s.client.Complete(ctx, &llm.Request{
		Messages:  []llm.Message{{Role: "user", Content: llm.PingPrompt()}},
		MaxTokens: 8,
	})
	if err != nil {
		return fmt.Errorf("provider ping failed: %w", err)
	}
	return nil
}

// allow claims the cooldown window, CAS-retrying on contention.
func (s *Service) allow(now time.Time) bool {
	if s.cooldown <= 0 {
		return true
	}
	for {
		last := s.lastAccepted.Load()
		if now.UnixNano()-last < s.cooldown.Nanoseconds() {
			return false
		}
		if s.lastAccepted.CompareAndSwap(last, now.UnixNano()) {
			return true
		}
	}
}
