package domain

import "github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"

// EffectiveChange is the percent change a pick contributes before boost.
// A frozen pick keeps whichever is higher of the captured floor and the
// live change, the freeze is a floor rather than a cap.
func EffectiveChange(pick *entity.Pick, currentPrice float64) float64 {
	if pick.PriceAtDraft == 0 {
		return 0
	}

	change := (currentPrice - pick.PriceAtDraft) / pick.PriceAtDraft * 100

	if pick.IsFrozen && pick.FrozenChange.Valid && pick.FrozenChange.Float64 > change {
		return pick.FrozenChange.Float64
	}

	return change
}

// EntryScore sums the boosted effective change of every pick. Picks whose
// asset is missing from the price snapshot contribute nothing.
func EntryScore(picks []entity.Pick, prices map[string]float64) float64 {
	var score float64
	for i := range picks {
		price, ok := prices[picks[i].AssetID]
		if !ok {
			continue
		}

		score += EffectiveChange(&picks[i], price) * picks[i].BoostMultiplier
	}

	return score
}
