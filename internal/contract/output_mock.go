package contract

import (
	"time"

	"github.com/huangsam/edgecov/schema"
	"github.com/stretchr/testify/mock"
)

// MockOutputWriter is a mock implementation of OutputWriter for testing.
type MockOutputWriter struct {
	mock.Mock
}

var _ OutputWriter = &MockOutputWriter{} // Compile-time check

// WriteDiff implements the OutputWriter interface.
func (m *MockOutputWriter) WriteDiff(result schema.DiffResult, cfg *Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteGate implements the OutputWriter interface.
func (m *MockOutputWriter) WriteGate(result schema.GateResult, cfg *Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteTrend implements the OutputWriter interface.
func (m *MockOutputWriter) WriteTrend(result schema.TrendResult, cfg *Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteGraph implements the OutputWriter interface.
func (m *MockOutputWriter) WriteGraph(graph schema.ServiceGraph, cfg *Config, duration time.Duration) error {
	args := m.Called(graph, cfg, duration)
	return args.Error(0)
}

// WriteDict implements the OutputWriter interface.
func (m *MockOutputWriter) WriteDict(entries []schema.DictEntry, cfg *Config, duration time.Duration) error {
	args := m.Called(entries, cfg, duration)
	return args.Error(0)
}
