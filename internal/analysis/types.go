// Package analysis implements the code complexity analysis pipeline:
// dedup lookup, line counting, prompt/model call, response normalization
// and persistence.
package analysis

import (
	"context"
	"time"
)

// Record is one stored analysis. Records are created once per unique
// code string and never mutated afterwards.
type Record struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Language        string    `json:"language"`
	LinesOfCode     int       `json:"linesOfCode"`
	TimeComplexity  string    `json:"timeComplexity"`
	SpaceComplexity string    `json:"spaceComplexity"`
	Explanation     string    `json:"explanation,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Result is the response-shape projection of a record.
type Result struct {
	LinesOfCode     int    `json:"linesOfCode"`
	TimeComplexity  string `json:"timeComplexity"`
	SpaceComplexity string `json:"spaceComplexity"`
	Explanation     string `json:"explanation,omitempty"`
}

// ToResult projects a record onto the response shape.
func (r *Record) ToResult() *Result {
	return &Result{
		LinesOfCode:     r.LinesOfCode,
		TimeComplexity:  r.TimeComplexity,
		SpaceComplexity: r.SpaceComplexity,
		Explanation:     r.Explanation,
	}
}

// Store persists analysis records. Find is an exact-match lookup on the
// submitted code text; no normalization is applied to the key.
type Store interface {
	// Find returns the record for this exact code string, or nil.
	Find(ctx context.Context, code string) (*Record, error)
	// Create assigns a strictly increasing unique ID and the current
	// time, then persists the record.
	Create(ctx context.Context, rec *Record) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
}
