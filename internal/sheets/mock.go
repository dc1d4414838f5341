package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/service"
)

// MockWriter is a mock implementation of service.ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, records []model.PredictionRecord, summary *service.ReportSummary) error
	LastSummary    *service.ReportSummary
	LastRecords    []model.PredictionRecord
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error   error
	Summary *service.ReportSummary
	Records []model.PredictionRecord
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{WriteCalls: make([]WriteCall, 0)}
}

// Write records the call and delegates to WriteFunc when set.
func (m *MockWriter) Write(ctx context.Context, records []model.PredictionRecord, summary *service.ReportSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastRecords = records
	m.LastSummary = summary

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, records, summary)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Records: records, Summary: summary, Error: err})
	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to fail every Write with err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, []model.PredictionRecord, *service.ReportSummary) error {
		return err
	}
}
