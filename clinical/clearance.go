package clinical

import "math"

// ClearanceInput is the clearance index form. Ultrafiltration is optional
// and counts as 0 when unset.
type ClearanceInput struct {
	PreBUN          Value `json:"preBUN"`
	PostBUN         Value `json:"postBUN"`
	Weight          Value `json:"weight"`          // kg
	Hours           Value `json:"hours"`           // session length
	Ultrafiltration Value `json:"ultrafiltration"` // liters
}

// ClearanceResult holds the index when Status is ok
type ClearanceResult struct {
	Status Status   `json:"status"`
	Reason string   `json:"reason,omitempty"`
	Ratio  *float64 `json:"ratio,omitempty"`
	Index  *float64 `json:"index,omitempty"`
}

// ClearanceIndex computes -ln(R - 0.008t) + (4 - 3.5R) * UF/W with R = post/pre.
// ok is false when the logarithm's argument is not positive.
func ClearanceIndex(pre, post, weight, hours, uf float64) (index float64, ok bool) {
	r := post / pre
	arg := r - 0.008*hours
	if arg <= 0 {
		return 0, false
	}
	return -math.Log(arg) + (4-3.5*r)*uf/weight, true
}

// CalculateClearance runs the clearance index calculator
func CalculateClearance(in ClearanceInput) ClearanceResult {
	pre, ok := in.PreBUN.Positive()
	if !ok {
		return ClearanceResult{Status: StatusIncomplete, Reason: "pre-dialysis BUN must be a positive number"}
	}
	post, ok := in.PostBUN.Positive()
	if !ok {
		return ClearanceResult{Status: StatusIncomplete, Reason: "post-dialysis BUN must be a positive number"}
	}
	weight, ok := in.Weight.Positive()
	if !ok {
		return ClearanceResult{Status: StatusIncomplete, Reason: "weight must be a positive number"}
	}
	hours, ok := in.Hours.Positive()
	if !ok {
		return ClearanceResult{Status: StatusIncomplete, Reason: "session hours must be a positive number"}
	}

	uf, set := in.Ultrafiltration.Get()
	if !set {
		uf = 0
	} else if uf < 0 {
		return ClearanceResult{Status: StatusIncomplete, Reason: "ultrafiltration cannot be negative"}
	}

	r := post / pre
	index, ok := ClearanceIndex(pre, post, weight, hours, uf)
	if !ok {
		return ClearanceResult{Status: StatusUndefined, Reason: "post/pre ratio too low for the session length", Ratio: &r}
	}
	return ClearanceResult{Status: StatusOK, Ratio: &r, Index: &index}
}
