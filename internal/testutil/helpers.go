package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/advisor"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/repository"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/service"
)

// NewTestDraftRepository creates a DraftRepository without encryption.
func NewTestDraftRepository(t *testing.T, db *sql.DB) *repository.DraftRepository {
	t.Helper()

	repo, err := repository.NewDraftRepository(db, "")
	if err != nil {
		t.Fatalf("Failed to create draft repository: %v", err)
	}
	return repo
}

func NewTestDraftService(t *testing.T, db *sql.DB) *service.DraftService {
	t.Helper()

	return service.NewDraftService(NewTestDraftRepository(t, db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestProposalService wires the full engine against the given database
// using the deterministic fallback advisor client (no API key).
func NewTestProposalService(t *testing.T, db *sql.DB) *service.ProposalService {
	t.Helper()

	client := advisor.NewClient("", "", "")
	return NewTestProposalServiceWithAdvisor(t, db, client, client.Universe())
}

// NewTestProposalServiceWithAdvisor wires the engine with a custom advisor
// client, typically a mock.
func NewTestProposalServiceWithAdvisor(t *testing.T, db *sql.DB, content advisor.ClientInterface, universe *advisor.Universe) *service.ProposalService {
	t.Helper()

	draftRepo := NewTestDraftRepository(t, db)
	return service.NewProposalService(
		draftRepo,
		service.NewCashFlowService(),
		service.NewRiskService(),
		service.NewCapacityService(),
		service.NewAllocationService(),
		service.NewOverlapService(universe),
		content,
		universe,
	)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
