package models

// ContextFactors carries the situational multipliers and flags used to adjust
// a base projection. Every multiplier defaults to 1.0 and every flag to false,
// so a missing upstream signal degrades to a neutral adjustment rather than
// blocking the projection.
type ContextFactors struct {
	PaceMultiplier            float64 `json:"pace_multiplier"`
	DefenseMultiplier         float64 `json:"defense_multiplier"`
	PositionDefenseMultiplier float64 `json:"position_defense_multiplier"`
	RefereeMultiplier         float64 `json:"referee_multiplier"`
	Home                      bool    `json:"home"`
	BackToBack                bool    `json:"back_to_back"`
	TeammateOut               bool    `json:"teammate_out"`
}

// NeutralContext returns context factors with every multiplier at its neutral
// value. Callers overlay only the signals their providers could resolve.
func NeutralContext() ContextFactors {
	return ContextFactors{
		PaceMultiplier:            1.0,
		DefenseMultiplier:         1.0,
		PositionDefenseMultiplier: 1.0,
		RefereeMultiplier:         1.0,
	}
}
