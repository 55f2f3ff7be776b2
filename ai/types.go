package ai

// ModelTier selects the speed/accuracy trade-off for a model call.
// The light tier answers fast; the heavy tier answers better.
type ModelTier string

const (
	// TierLight routes to the small, low-latency model.
	TierLight ModelTier = "light"

	// TierHeavy routes to the larger, higher-quality model.
	TierHeavy ModelTier = "heavy"
)

// Tiers lists the valid model tiers.
var Tiers = []ModelTier{TierLight, TierHeavy}

// Valid reports whether t is a known tier.
func (t ModelTier) Valid() bool {
	return t == TierLight || t == TierHeavy
}
