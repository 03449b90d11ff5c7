package api

import (
	"context"

	"github.com/Lohith2005/AICodeAnalyzer/internal/analysis"
)

// mockService is a scripted implementation for handler tests.
// It implements the AnalysisService interface defined in server.go.
type mockService struct {
	analyzeResult *analysis.Result
	analyzeErr    error
	listResult    []*analysis.Record
	listErr       error
	pingErr       error

	analyzeCalls int
	lastCode     string
	lastLanguage string
	lastLimit    int
}

// Compile-time check that mockService implements AnalysisService
var _ AnalysisService = (*mockService)(nil)

func (m *mockService) Analyze(ctx context.Context, code, language string) (*analysis.Result, error) {
	m.analyzeCalls++
	m.lastCode = code
	m.lastLanguage = language
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return m.analyzeResult, nil
}

func (m *mockService) ListRecent(ctx context.Context, limit int) ([]*analysis.Record, error) {
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockService) Ping(ctx context.Context) error {
	return m.pingErr
}
