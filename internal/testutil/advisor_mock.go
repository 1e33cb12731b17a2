package testutil

import (
	"context"
	"sync"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/advisor"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// MockAdvisorClient is a mock implementation of advisor.ClientInterface for
// testing. By default it delegates to the deterministic fallback client;
// configure MockError to exercise degraded paths. The generation methods are
// called concurrently during proposal generation, so the counter is guarded.
type MockAdvisorClient struct {
	// MockError is returned from every generation method when set
	MockError error

	mu        sync.Mutex
	callCount int
	fallback  *advisor.Client
}

// NewMockAdvisorClient creates a mock advisor backed by the deterministic
// fallback universe.
func NewMockAdvisorClient() *MockAdvisorClient {
	return &MockAdvisorClient{
		fallback: advisor.NewClient("", "", ""),
	}
}

// Universe exposes the underlying fund universe for wiring the overlap
// resolver in tests.
func (m *MockAdvisorClient) Universe() *advisor.Universe {
	return m.fallback.Universe()
}

// WithError configures the mock to return the specified error.
func (m *MockAdvisorClient) WithError(err error) *MockAdvisorClient {
	m.MockError = err
	return m
}

// CallCount reports how many generation calls were made.
func (m *MockAdvisorClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

func (m *MockAdvisorClient) record() {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()
}

func (m *MockAdvisorClient) GenerateRiskDescription(ctx context.Context, profile model.RiskProfile) (model.RiskDescription, error) {
	m.record()
	if m.MockError != nil {
		return model.RiskDescription{}, m.MockError
	}
	return m.fallback.GenerateRiskDescription(ctx, profile)
}

func (m *MockAdvisorClient) GenerateCapacityNarrative(ctx context.Context, snapshot model.FinancialSnapshot, capacity model.PortfolioCapacity) (string, error) {
	m.record()
	if m.MockError != nil {
		return "", m.MockError
	}
	return m.fallback.GenerateCapacityNarrative(ctx, snapshot, capacity)
}

func (m *MockAdvisorClient) GenerateFundPicks(ctx context.Context, req advisor.FundPickRequest) ([]model.AllocationSlot, error) {
	m.record()
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.fallback.GenerateFundPicks(ctx, req)
}

func (m *MockAdvisorClient) GenerateAmountInWords(ctx context.Context, amount float64) (string, error) {
	m.record()
	if m.MockError != nil {
		return "", m.MockError
	}
	return m.fallback.GenerateAmountInWords(ctx, amount)
}
