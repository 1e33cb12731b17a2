package request

// SubstituteRequest represents the request body for swapping a plan slot's
// fund with one of its alternatives.
type SubstituteRequest struct {
	SlotIndex int    `json:"slotIndex"`
	FundName  string `json:"fundName"`
}

// OverrideWeightRequest represents the request body for a manual advisor
// override of one slot's percentage on one track.
type OverrideWeightRequest struct {
	SlotIndex int     `json:"slotIndex"`
	Track     string  `json:"track"`
	Value     float64 `json:"value"`
}
