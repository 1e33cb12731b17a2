package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/cache"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// CachedClient wraps a ClientInterface with a narrative cache: identical
// inputs answer from the cache instead of a second collaborator call. Fund
// picks are never cached since the universe may change between sessions.
type CachedClient struct {
	inner ClientInterface
	store cache.Cache
}

// NewCachedClient wraps the given client with the given cache.
func NewCachedClient(inner ClientInterface, store cache.Cache) *CachedClient {
	return &CachedClient{
		inner: inner,
		store: store,
	}
}

// GenerateRiskDescription answers from the cache when the same category and
// score were described before.
func (c *CachedClient) GenerateRiskDescription(ctx context.Context, profile model.RiskProfile) (model.RiskDescription, error) {
	key := cache.Key("risk_description", profile.Category.String(), strconv.Itoa(profile.Score))
	if cached, ok := c.store.Get(ctx, key); ok {
		var description model.RiskDescription
		if err := json.Unmarshal([]byte(cached), &description); err == nil {
			return description, nil
		}
	}

	description, err := c.inner.GenerateRiskDescription(ctx, profile)
	if err != nil {
		return model.RiskDescription{}, err
	}
	if payload, err := json.Marshal(description); err == nil {
		_ = c.store.Set(ctx, key, string(payload))
	}
	return description, nil
}

// GenerateCapacityNarrative answers from the cache when an identical
// capacity breakdown was worded before.
func (c *CachedClient) GenerateCapacityNarrative(ctx context.Context, snapshot model.FinancialSnapshot, capacity model.PortfolioCapacity) (string, error) {
	payload, err := json.Marshal(capacity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal capacity: %w", err)
	}

	key := cache.Key("capacity_narrative", string(snapshot.IncomeStatus), string(payload))
	if cached, ok := c.store.Get(ctx, key); ok {
		return cached, nil
	}

	narrative, err := c.inner.GenerateCapacityNarrative(ctx, snapshot, capacity)
	if err != nil {
		return "", err
	}
	_ = c.store.Set(ctx, key, narrative)
	return narrative, nil
}

// GenerateFundPicks always delegates; selections are intentionally not
// cached.
func (c *CachedClient) GenerateFundPicks(ctx context.Context, req FundPickRequest) ([]model.AllocationSlot, error) {
	return c.inner.GenerateFundPicks(ctx, req)
}

// GenerateAmountInWords answers from the cache per distinct amount.
func (c *CachedClient) GenerateAmountInWords(ctx context.Context, amount float64) (string, error) {
	key := cache.Key("amount_words", strconv.FormatFloat(amount, 'f', 0, 64))
	if cached, ok := c.store.Get(ctx, key); ok {
		return cached, nil
	}

	words, err := c.inner.GenerateAmountInWords(ctx, amount)
	if err != nil {
		return "", err
	}
	if words != "" {
		_ = c.store.Set(ctx, key, words)
	}
	return words, nil
}
