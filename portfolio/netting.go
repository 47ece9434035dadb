package portfolio

import "github.com/quantsim/optionsim/models"

// ApplyStockTrade folds a stock trade into the session's single stock
// slot and returns the resulting slot, nil when the trade empties it.
//
// The slot is a small state machine: empty, long-N or short-N. Trades
// in the same direction merge at the quantity-weighted entry price.
// Opposite trades offset; a partial offset keeps the old direction but
// blends the entry price the same weighted way. A larger opposite trade
// flips the direction at the trade's own price.
func ApplyStockTrade(existing *models.StockPosition, trade models.StockPosition) *models.StockPosition {
	if existing == nil {
		p := trade
		return &p
	}

	if existing.Action == trade.Action {
		merged := *existing
		merged.Quantity = existing.Quantity + trade.Quantity
		merged.EntryPrice = weightedEntry(existing.EntryPrice, existing.Quantity, trade.EntryPrice, trade.Quantity)
		return &merged
	}

	switch {
	case existing.Quantity > trade.Quantity:
		reduced := *existing
		reduced.Quantity = existing.Quantity - trade.Quantity
		reduced.EntryPrice = weightedEntry(existing.EntryPrice, existing.Quantity, trade.EntryPrice, trade.Quantity)
		return &reduced
	case existing.Quantity < trade.Quantity:
		flipped := trade
		flipped.Quantity = trade.Quantity - existing.Quantity
		return &flipped
	default:
		return nil
	}
}

func weightedEntry(oldPrice float64, oldQty int, tradePrice float64, tradeQty int) float64 {
	total := float64(oldQty + tradeQty)
	return models.RoundTo((oldPrice*float64(oldQty)+tradePrice*float64(tradeQty))/total, 2)
}
