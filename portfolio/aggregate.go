package portfolio

import (
	"github.com/quantsim/optionsim/models"
	"github.com/quantsim/optionsim/pricing"
)

// AggregateGreeks sums signed Greeks exposure across the open set.
// Stock contributes only delta, one per share, signed by direction.
// Options contribute each Greek scaled by contracts, the multiplier and
// the buy/sell sign. Put deltas are already negative from the model, so
// there is no extra flip for puts: a sold put nets out positive delta.
// Expired positions still contribute at the intrinsic-value boundary.
func AggregateGreeks(positions []models.Position, spot float64, currentDate string, marketIV float64) models.Greeks {
	var totals models.Greeks

	for _, pos := range positions {
		switch p := pos.(type) {
		case models.StockPosition:
			if p.Action == models.Buy {
				totals.Delta += float64(p.Quantity)
			} else {
				totals.Delta -= float64(p.Quantity)
			}
		case models.OptionPosition:
			dte := daysToExpiry(p.Expiration, currentDate)
			greeks := pricing.Greeks(spot, p.Strike, float64(dte)/365, p.RiskFreeRateAtEntry, marketIV, p.Type)

			multiplier := 1.0
			if p.Action == models.Sell {
				multiplier = -1.0
			}
			scale := float64(p.Quantity) * ContractMultiplier * multiplier

			totals.Delta += greeks.Delta * scale
			totals.Gamma += greeks.Gamma * scale
			totals.Theta += greeks.Theta * scale
			totals.Vega += greeks.Vega * scale
			totals.Rho += greeks.Rho * scale
		}
	}

	return models.Greeks{
		Delta: models.RoundTo(totals.Delta, 2),
		Gamma: models.RoundTo(totals.Gamma, 4),
		Theta: models.RoundTo(totals.Theta, 2),
		Vega:  models.RoundTo(totals.Vega, 2),
		Rho:   models.RoundTo(totals.Rho, 2),
	}
}

// AggregateValue sums current value and unrealized P&L across the open
// set. An empty set is all zeros.
func AggregateValue(positions []models.Position, spot float64, currentDate string, marketIV float64) (totalValue, unrealizedPnL float64) {
	for _, pos := range positions {
		v := Value(pos, spot, currentDate, marketIV)
		totalValue += v.CurrentValue
		unrealizedPnL += v.PnL
	}
	return models.RoundTo(totalValue, 2), models.RoundTo(unrealizedPnL, 2)
}
