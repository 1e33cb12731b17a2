package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// ClientInterface is the narrow contract with the content-generation
// collaborator: one method per content need, each cancellable through its
// context. Implementations must return a *ContentError for unreachable
// endpoints or payloads that violate the structural contract.
type ClientInterface interface {
	GenerateRiskDescription(ctx context.Context, profile model.RiskProfile) (model.RiskDescription, error)
	GenerateCapacityNarrative(ctx context.Context, snapshot model.FinancialSnapshot, capacity model.PortfolioCapacity) (string, error)
	GenerateFundPicks(ctx context.Context, req FundPickRequest) ([]model.AllocationSlot, error)
	GenerateAmountInWords(ctx context.Context, amount float64) (string, error)
}

// Client calls an OpenAI-compatible chat completion endpoint for the
// non-deterministic content needs. When no API key is configured the client
// is disabled and every method answers from the deterministic built-in
// universe and templates, so the engine works offline.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	universe   *Universe
}

// NewClient creates a new advisor client. An empty apiKey disables the
// remote collaborator entirely.
func NewClient(apiKey, apiURL, modelName string) *Client {
	return &Client{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   modelName,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		universe: NewUniverse(),
	}
}

// Universe exposes the built-in scheme catalogue, used as the candidate
// source for overlap resolution.
func (c *Client) Universe() *Universe {
	return c.universe
}

// GenerateRiskDescription returns the three-part narrative for a risk
// category. The category itself is never altered; only the prose is
// collaborator-generated.
func (c *Client) GenerateRiskDescription(ctx context.Context, profile model.RiskProfile) (model.RiskDescription, error) {
	if !c.enabled {
		return profile.Description, nil
	}

	prompt := fmt.Sprintf(
		`An investor has been categorised as %q risk (questionnaire score %d of 16). `+
			`Reply with strict JSON only, shaped as `+
			`{"principalRisk": string, "suitableFor": string, "horizon": string}. `+
			`One sentence per field, plain language, no markdown.`,
		profile.Category, profile.Score,
	)

	content, err := c.callChat(ctx, prompt)
	if err != nil {
		return model.RiskDescription{}, &ContentError{Op: "risk description", Err: err}
	}

	var description model.RiskDescription
	if err := json.Unmarshal([]byte(content), &description); err != nil {
		return model.RiskDescription{}, &ContentError{Op: "risk description", Err: fmt.Errorf("malformed payload: %w", err)}
	}
	if description.PrincipalRisk == "" || description.SuitableFor == "" || description.Horizon == "" {
		return model.RiskDescription{}, &ContentError{Op: "risk description", Err: fmt.Errorf("missing fields in payload")}
	}
	return description, nil
}

// GenerateCapacityNarrative returns prose describing the capacity
// breakdown. The figures in the prompt are the engine's own computed
// values, so the collaborator only words them.
func (c *Client) GenerateCapacityNarrative(ctx context.Context, snapshot model.FinancialSnapshot, capacity model.PortfolioCapacity) (string, error) {
	if !c.enabled {
		return CapacityNarrative(capacity), nil
	}

	prompt := fmt.Sprintf(
		`Summarise this investable-capacity breakdown for an Indian retail investor in two or three plain sentences. `+
			`Use exactly these figures, do not recompute anything: monthly inflow ₹%.0f, monthly outflow ₹%.0f, `+
			`emergency buffer ₹%.0f, monthly SIP capacity ₹%.0f, lumpsum capacity ₹%.0f, total investable ₹%.0f. `+
			`Income status: %s. Reply with plain text only.`,
		capacity.TotalMonthlyInflow, capacity.TotalMonthlyOutflow, capacity.EmergencyBuffer,
		capacity.InvestableFromSalary, capacity.InvestableFromCorpus, capacity.TotalInvestable,
		snapshot.IncomeStatus,
	)

	content, err := c.callChat(ctx, prompt)
	if err != nil {
		return "", &ContentError{Op: "capacity narrative", Err: err}
	}
	return strings.TrimSpace(content), nil
}

// GenerateFundPicks asks the collaborator for five concrete schemes
// honoring the class-weight vectors. The payload is validated against the
// structural contract before it is returned; a violation is a
// *ContentError, never a silently accepted plan.
func (c *Client) GenerateFundPicks(ctx context.Context, req FundPickRequest) ([]model.AllocationSlot, error) {
	if !c.enabled {
		plan := c.universe.BuildPlan(req.Targets)
		if err := ValidateFundPicks(plan.Slots, req.Targets); err != nil {
			return nil, &ContentError{Op: "fund picks", Err: err}
		}
		return plan.Slots, nil
	}

	targetsJSON, err := json.Marshal(req.Targets)
	if err != nil {
		return nil, &ContentError{Op: "fund picks", Err: err}
	}

	prompt := fmt.Sprintf(
		`Select mutual-fund schemes for a %d-year-old investor with %q risk tolerance. `+
			`Target class weights per track (percent): %s. `+
			`Reply with strict JSON only: an array of exactly %d objects shaped as `+
			`{"fundName": string, "category": string, "sipAllocationPct": number, "lumpsumAllocationPct": number, `+
			`"alternatives": [4 strings]}. Categories must match the target vector keys; per-track percentages must `+
			`sum to exactly 100 for every non-empty track. Never use credit risk, sectoral, thematic or contra funds.`,
		req.Age, req.Profile.Category, targetsJSON, model.PlanSlotCount,
	)

	content, err := c.callChat(ctx, prompt)
	if err != nil {
		return nil, &ContentError{Op: "fund picks", Err: err}
	}

	var slots []model.AllocationSlot
	if err := json.Unmarshal([]byte(content), &slots); err != nil {
		return nil, &ContentError{Op: "fund picks", Err: fmt.Errorf("malformed payload: %w", err)}
	}
	if err := ValidateFundPicks(slots, req.Targets); err != nil {
		return nil, &ContentError{Op: "fund picks", Err: err}
	}
	return slots, nil
}

// GenerateAmountInWords renders an amount in words. Returns an empty string
// for zero or negative input on both the remote and the fallback path.
func (c *Client) GenerateAmountInWords(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", nil
	}
	if !c.enabled {
		return AmountInWords(amount), nil
	}

	prompt := fmt.Sprintf(
		`Write ₹%.0f in words using the Indian numbering system (lakh, crore). Reply with the words only.`,
		amount,
	)
	content, err := c.callChat(ctx, prompt)
	if err != nil {
		return "", &ContentError{Op: "amount in words", Err: err}
	}
	return strings.TrimSpace(content), nil
}

// callChat posts one prompt to the chat completion endpoint and returns
// the first choice's content.
func (c *Client) callChat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 1024,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}
	return chat.Choices[0].Message.Content, nil
}
