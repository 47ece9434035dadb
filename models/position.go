package models

// Position is an open trade. The two variants are distinct types so a
// stock position cannot carry a strike or expiration; callers switch on
// the concrete type.
type Position interface {
	PositionID() int64
	PositionAction() TradeAction
	position()
}

// OptionPosition is an open call or put trade. Quantity is contracts,
// each controlling 100 underlying shares.
type OptionPosition struct {
	ID                  int64       `json:"id"`
	Type                OptionType  `json:"type"`
	Action              TradeAction `json:"action"`
	Strike              float64     `json:"strike"`
	Expiration          string      `json:"expiration"`
	Quantity            int         `json:"quantity"`
	EntryPrice          float64     `json:"entry_price"`
	EntryDate           string      `json:"entry_date"`
	EntryUnderlying     float64     `json:"entry_underlying"`
	VolatilityAtEntry   float64     `json:"volatility_at_entry"`
	RiskFreeRateAtEntry float64     `json:"risk_free_rate_at_entry"`
}

func (p OptionPosition) PositionID() int64 { return p.ID }
func (p OptionPosition) PositionAction() TradeAction { return p.Action }
func (OptionPosition) position() {}

// StockPosition is an open share trade. Quantity is shares.
type StockPosition struct {
	ID                  int64       `json:"id"`
	Action              TradeAction `json:"action"`
	Quantity            int         `json:"quantity"`
	EntryPrice          float64     `json:"entry_price"`
	EntryDate           string      `json:"entry_date"`
	VolatilityAtEntry   float64     `json:"volatility_at_entry"`
	RiskFreeRateAtEntry float64     `json:"risk_free_rate_at_entry"`
}

func (p StockPosition) PositionID() int64 { return p.ID }
func (p StockPosition) PositionAction() TradeAction { return p.Action }
func (StockPosition) position() {}

// ClosedPosition is the immutable record cut when an open position is
// closed. RealizedPnL is produced here and nowhere else.
type ClosedPosition struct {
	Position    Position `json:"position"`
	ClosedDate  string   `json:"closed_date"`
	ClosedPrice float64  `json:"closed_price"`
	RealizedPnL float64  `json:"realized_pnl"`
}
