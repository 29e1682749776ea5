package clinical

import (
	"math"
	"slices"
)

// ExchangeMode is standard or selective plasma exchange
type ExchangeMode string

const (
	ModePE   ExchangeMode = "PE"
	ModeSePE ExchangeMode = "SePE"
)

// Fluid is the replacement fluid
type Fluid string

const (
	FluidAlbumin Fluid = "albumin"
	FluidFFP     Fluid = "ffp"
)

// Multipliers is the menu of plasma volumes to exchange
var Multipliers = []float64{1.0, 1.2, 1.3, 1.5}

const (
	albuminBottleGrams = 12.5
	albuminBottleML    = 50.0
	ffpBagML           = 480.0
	ffpUnitML          = 120.0
)

// ModeInfo describes the defaults a mode applies
type ModeInfo struct {
	Mode              ExchangeMode `json:"mode"`
	DefaultMultiplier float64      `json:"defaultMultiplier"`
	AlbuminFactor     float64      `json:"albuminFactor"`
}

var modes = map[ExchangeMode]ModeInfo{
	ModePE:   {Mode: ModePE, DefaultMultiplier: 1.0, AlbuminFactor: 1.0},
	ModeSePE: {Mode: ModeSePE, DefaultMultiplier: 1.3, AlbuminFactor: 0.75},
}

// PlasmaOptions is what the simulator form offers
type PlasmaOptions struct {
	Modes       []ModeInfo `json:"modes"`
	Multipliers []float64  `json:"multipliers"`
	Fluids      []Fluid    `json:"fluids"`
}

// Options returns the simulator's choices and defaults
func Options() PlasmaOptions {
	return PlasmaOptions{
		Modes:       []ModeInfo{modes[ModePE], modes[ModeSePE]},
		Multipliers: Multipliers,
		Fluids:      []Fluid{FluidAlbumin, FluidFFP},
	}
}

// PlasmaExchangeInput is the simulator form. Mode defaults to PE, fluid to
// albumin, and an unset multiplier to the mode's default.
type PlasmaExchangeInput struct {
	Weight       Value        `json:"weight"`
	Hematocrit   Value        `json:"hematocrit"`
	SerumAlbumin Value        `json:"serumAlbumin"`
	Mode         ExchangeMode `json:"mode"`
	Fluid        Fluid        `json:"fluid"`
	Multiplier   Value        `json:"multiplier"`
}

// AlbuminPlan sizes an albumin replacement
type AlbuminPlan struct {
	TargetConcentration float64 `json:"targetConcentration"` // g/dL
	Mass                float64 `json:"massG"`
	Bottles             int     `json:"bottles"`
	DiluentML           float64 `json:"diluentML"`
}

// FFPPlan sizes a fresh frozen plasma replacement
type FFPPlan struct {
	TotalML     float64 `json:"totalML"`
	Bags480     int     `json:"bags480"`
	RemainderML float64 `json:"remainderML"`
	Units120    int     `json:"units120"`
}

// PlasmaExchangeResult carries at most one fluid plan
type PlasmaExchangeResult struct {
	Status             Status       `json:"status"`
	Reason             string       `json:"reason,omitempty"`
	Mode               ExchangeMode `json:"mode"`
	Fluid              Fluid        `json:"fluid"`
	Multiplier         float64      `json:"multiplier"`
	PlasmaVolumeL      *float64     `json:"plasmaVolumeL,omitempty"`
	ReplacementVolumeL *float64     `json:"replacementVolumeL,omitempty"`
	Albumin            *AlbuminPlan `json:"albumin,omitempty"`
	FFP                *FFPPlan     `json:"ffp,omitempty"`
}

// PlasmaVolume estimates circulating plasma volume in liters
func PlasmaVolume(weightKg, hematocrit float64) float64 {
	return weightKg / 13 * (1 - hematocrit/100)
}

// PlanAlbumin sizes 50 mL / 12.5 g bottles and the diluent around them
func PlanAlbumin(replacementL, serumAlbumin, factor float64) AlbuminPlan {
	target := serumAlbumin * factor
	mass := replacementL * 10 * target
	bottles := int(math.Ceil(mass / albuminBottleGrams))
	return AlbuminPlan{
		TargetConcentration: target,
		Mass:                mass,
		Bottles:             bottles,
		DiluentML:           replacementL*1000 - float64(bottles)*albuminBottleML,
	}
}

// PlanFFP splits the volume into 480 mL bags and 120 mL units for the rest
func PlanFFP(replacementL float64) FFPPlan {
	total := replacementL * 1000
	remainder := math.Mod(total, ffpBagML)
	return FFPPlan{
		TotalML:     total,
		Bags480:     int(math.Floor(total / ffpBagML)),
		RemainderML: remainder,
		Units120:    int(math.Ceil(remainder / ffpUnitML)),
	}
}

// CalculatePlasmaExchange runs the simulator
func CalculatePlasmaExchange(in PlasmaExchangeInput) PlasmaExchangeResult {
	if in.Mode == "" {
		in.Mode = ModePE
	}
	if in.Fluid == "" {
		in.Fluid = FluidAlbumin
	}
	res := PlasmaExchangeResult{Mode: in.Mode, Fluid: in.Fluid}

	mode, ok := modes[in.Mode]
	if !ok {
		return incompletePlasma(res, "unknown exchange mode")
	}
	if in.Fluid != FluidAlbumin && in.Fluid != FluidFFP {
		return incompletePlasma(res, "unknown replacement fluid")
	}

	res.Multiplier = mode.DefaultMultiplier
	if m, set := in.Multiplier.Get(); set && m != 0 {
		if !slices.Contains(Multipliers, m) {
			return incompletePlasma(res, "multiplier must be one of 1.0, 1.2, 1.3, 1.5")
		}
		res.Multiplier = m
	}

	weight, ok := in.Weight.Positive()
	if !ok {
		return incompletePlasma(res, "weight must be a positive number")
	}
	hct, ok := in.Hematocrit.Positive()
	if !ok || hct >= 100 {
		return incompletePlasma(res, "hematocrit must be between 0 and 100")
	}

	pv := PlasmaVolume(weight, hct)
	rep := pv * res.Multiplier
	res.PlasmaVolumeL = &pv
	res.ReplacementVolumeL = &rep

	switch in.Fluid {
	case FluidFFP:
		plan := PlanFFP(rep)
		res.FFP = &plan
	case FluidAlbumin:
		alb, ok := in.SerumAlbumin.Positive()
		if !ok {
			res.Status = StatusIncomplete
			res.Reason = "serum albumin must be a positive number"
			return res
		}
		plan := PlanAlbumin(rep, alb, mode.AlbuminFactor)
		res.Albumin = &plan
	}

	res.Status = StatusOK
	return res
}

func incompletePlasma(res PlasmaExchangeResult, reason string) PlasmaExchangeResult {
	res.Status = StatusIncomplete
	res.Reason = reason
	return res
}
