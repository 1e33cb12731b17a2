package advisor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/advisor"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/cache"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/testutil"
)

func newCachedClient() (*advisor.CachedClient, *testutil.MockAdvisorClient) {
	mock := testutil.NewMockAdvisorClient()
	return advisor.NewCachedClient(mock, cache.NewMemoryCache(time.Minute)), mock
}

// TestCachedClient tests the narrative cache in front of the collaborator.
//
// WHY: Wording an identical input twice wastes a collaborator round-trip.
// Fund picks are the one exception: the universe may change between
// sessions, so selections must never be served stale.
func TestCachedClient(t *testing.T) {
	ctx := context.Background()

	moderateProfile := model.RiskProfile{
		Category: model.RiskModerate,
		Score:    9,
		Description: model.RiskDescription{
			PrincipalRisk: "Market swings can dent the portfolio over short stretches.",
			SuitableFor:   "Investors comfortable with moderate ups and downs.",
			Horizon:       "Five years or longer.",
		},
	}

	t.Run("risk description is served from cache on repeat", func(t *testing.T) {
		client, mock := newCachedClient()

		first, err := client.GenerateRiskDescription(ctx, moderateProfile)
		if err != nil {
			t.Fatalf("GenerateRiskDescription() returned unexpected error: %v", err)
		}
		second, err := client.GenerateRiskDescription(ctx, moderateProfile)
		if err != nil {
			t.Fatalf("GenerateRiskDescription() returned unexpected error: %v", err)
		}

		if first != second {
			t.Errorf("Expected identical descriptions, got %+v and %+v", first, second)
		}
		if count := mock.CallCount(); count != 1 {
			t.Errorf("Expected 1 collaborator call, got %d", count)
		}
	})

	t.Run("a different score misses the cache", func(t *testing.T) {
		client, mock := newCachedClient()

		if _, err := client.GenerateRiskDescription(ctx, moderateProfile); err != nil {
			t.Fatalf("GenerateRiskDescription() returned unexpected error: %v", err)
		}
		other := moderateProfile
		other.Score = 10
		if _, err := client.GenerateRiskDescription(ctx, other); err != nil {
			t.Fatalf("GenerateRiskDescription() returned unexpected error: %v", err)
		}

		if count := mock.CallCount(); count != 2 {
			t.Errorf("Expected 2 collaborator calls, got %d", count)
		}
	})

	t.Run("capacity narrative is served from cache on repeat", func(t *testing.T) {
		client, mock := newCachedClient()
		snapshot := testutil.NewSnapshot().Build()
		capacity := model.PortfolioCapacity{TotalMonthlyInflow: 100000, InvestableFromSalary: 48000}

		first, err := client.GenerateCapacityNarrative(ctx, snapshot, capacity)
		if err != nil {
			t.Fatalf("GenerateCapacityNarrative() returned unexpected error: %v", err)
		}
		second, err := client.GenerateCapacityNarrative(ctx, snapshot, capacity)
		if err != nil {
			t.Fatalf("GenerateCapacityNarrative() returned unexpected error: %v", err)
		}

		if first != second || first == "" {
			t.Errorf("Expected one non-empty narrative twice, got %q and %q", first, second)
		}
		if count := mock.CallCount(); count != 1 {
			t.Errorf("Expected 1 collaborator call, got %d", count)
		}
	})

	t.Run("amount in words is cached per amount", func(t *testing.T) {
		client, mock := newCachedClient()

		first, err := client.GenerateAmountInWords(ctx, 48000)
		if err != nil {
			t.Fatalf("GenerateAmountInWords() returned unexpected error: %v", err)
		}
		if _, err := client.GenerateAmountInWords(ctx, 48000); err != nil {
			t.Fatalf("GenerateAmountInWords() returned unexpected error: %v", err)
		}
		if first != "Forty-Eight Thousand" {
			t.Errorf("Expected %q, got %q", "Forty-Eight Thousand", first)
		}
		if count := mock.CallCount(); count != 1 {
			t.Errorf("Expected 1 collaborator call, got %d", count)
		}
	})

	t.Run("an empty rendering is not cached", func(t *testing.T) {
		client, mock := newCachedClient()

		if _, err := client.GenerateAmountInWords(ctx, 0); err != nil {
			t.Fatalf("GenerateAmountInWords() returned unexpected error: %v", err)
		}
		if _, err := client.GenerateAmountInWords(ctx, 0); err != nil {
			t.Fatalf("GenerateAmountInWords() returned unexpected error: %v", err)
		}

		if count := mock.CallCount(); count != 2 {
			t.Errorf("Expected 2 collaborator calls, got %d", count)
		}
	})

	t.Run("fund picks always delegate", func(t *testing.T) {
		client, mock := newCachedClient()
		req := advisor.FundPickRequest{
			Targets: model.AllocationTargets{SIP: model.ClassWeights{
				model.CategoryLargeCap:      30,
				model.CategoryFlexiCap:      25,
				model.CategoryMidCap:        15,
				model.CategoryShortDuration: 20,
				model.CategoryLiquid:        10,
			}},
			Profile: moderateProfile,
			Age:     30,
		}

		if _, err := client.GenerateFundPicks(ctx, req); err != nil {
			t.Fatalf("GenerateFundPicks() returned unexpected error: %v", err)
		}
		if _, err := client.GenerateFundPicks(ctx, req); err != nil {
			t.Fatalf("GenerateFundPicks() returned unexpected error: %v", err)
		}

		if count := mock.CallCount(); count != 2 {
			t.Errorf("Expected 2 collaborator calls, got %d", count)
		}
	})

	t.Run("failures are not cached", func(t *testing.T) {
		client, mock := newCachedClient()
		mock.WithError(&advisor.ContentError{Op: "capacity narrative", Err: errors.New("upstream timeout")})
		snapshot := testutil.NewSnapshot().Build()
		capacity := model.PortfolioCapacity{TotalMonthlyInflow: 100000}

		if _, err := client.GenerateCapacityNarrative(ctx, snapshot, capacity); err == nil {
			t.Fatal("Expected the failure to propagate")
		}

		mock.MockError = nil
		narrative, err := client.GenerateCapacityNarrative(ctx, snapshot, capacity)
		if err != nil {
			t.Fatalf("GenerateCapacityNarrative() returned unexpected error: %v", err)
		}
		if narrative == "" {
			t.Error("Expected a narrative once the collaborator recovered")
		}
		if count := mock.CallCount(); count != 2 {
			t.Errorf("Expected 2 collaborator calls, got %d", count)
		}
	})
}
