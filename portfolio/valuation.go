package portfolio

import (
	"github.com/quantsim/optionsim/models"
	"github.com/quantsim/optionsim/pricing"
)

// ContractMultiplier is the number of underlying shares per option
// contract.
const ContractMultiplier = 100

// Valuation is the live mark of one open position. Greeks is nil for
// stock positions.
type Valuation struct {
	CurrentPrice float64             `json:"current_price"`
	CurrentValue float64             `json:"current_value"`
	PnL          float64             `json:"pnl"`
	PnLPercent   float64             `json:"pnl_percent"`
	Greeks       *models.OptionQuote `json:"greeks,omitempty"`
}

// ValueOption reprices an option position against the current spot and
// market-wide volatility. The entry volatility stays on the record for
// display; live marks always use the market's current IV.
func ValueOption(pos models.OptionPosition, spot float64, currentDate string, marketIV float64) Valuation {
	dte := daysToExpiry(pos.Expiration, currentDate)

	quote := pricing.Metrics(spot, pos.Strike, dte, pos.RiskFreeRateAtEntry, marketIV, pos.Type)

	currentValue := quote.Price * float64(pos.Quantity) * ContractMultiplier
	initialValue := pos.EntryPrice * float64(pos.Quantity) * ContractMultiplier

	pnl := currentValue - initialValue
	if pos.Action == models.Sell {
		pnl = initialValue - currentValue
	}

	pnlPercent := 0.0
	if initialValue != 0 {
		pnlPercent = pnl / initialValue * 100
	}

	return Valuation{
		CurrentPrice: quote.Price,
		CurrentValue: models.RoundTo(currentValue, 2),
		PnL:          models.RoundTo(pnl, 2),
		PnLPercent:   models.RoundTo(pnlPercent, 2),
		Greeks:       &quote,
	}
}

// ValueStock marks a share position to the current spot. Short stock
// mirrors the sign, the same way short options do.
func ValueStock(pos models.StockPosition, spot float64) Valuation {
	currentValue := spot * float64(pos.Quantity)
	initialValue := pos.EntryPrice * float64(pos.Quantity)

	pnl := currentValue - initialValue
	if pos.Action == models.Sell {
		pnl = initialValue - currentValue
	}

	pnlPercent := 0.0
	if initialValue != 0 {
		pnlPercent = pnl / initialValue * 100
	}

	return Valuation{
		CurrentPrice: spot,
		CurrentValue: models.RoundTo(currentValue, 2),
		PnL:          models.RoundTo(pnl, 2),
		PnLPercent:   models.RoundTo(pnlPercent, 2),
	}
}

// Value marks any open position.
func Value(pos models.Position, spot float64, currentDate string, marketIV float64) Valuation {
	switch p := pos.(type) {
	case models.OptionPosition:
		return ValueOption(p, spot, currentDate, marketIV)
	case models.StockPosition:
		return ValueStock(p, spot)
	}
	return Valuation{}
}

// Close values a position one last time and cuts the immutable closed
// record. Closing is one way: the caller removes the position from the
// open set in the same moment.
func Close(pos models.Position, spot float64, currentDate string, marketIV float64) models.ClosedPosition {
	v := Value(pos, spot, currentDate, marketIV)
	return models.ClosedPosition{
		Position:    pos,
		ClosedDate:  currentDate,
		ClosedPrice: v.CurrentPrice,
		RealizedPnL: v.PnL,
	}
}

// daysToExpiry floors at zero so expired, unexercised positions keep
// contributing at intrinsic value until explicitly closed.
func daysToExpiry(expiration, currentDate string) int {
	dte := models.DaysBetween(currentDate, expiration)
	if dte < 0 {
		return 0
	}
	return dte
}
