package portfolio

import (
	"errors"

	"github.com/quantsim/optionsim/models"
)

var (
	ErrNoSeries          = errors.New("session has no price series")
	ErrDayOutOfRange     = errors.New("day index out of range")
	ErrInvalidQuantity   = errors.New("trade quantity must be positive")
	ErrInvalidInstrument = errors.New("unknown instrument type")
	ErrMissingStrike     = errors.New("option trade requires a strike")
	ErrMissingExpiration = errors.New("option trade requires an expiration")
	ErrPositionNotFound  = errors.New("open position not found")
)

// Session owns one simulated account: the replayed series, the current
// day cursor, the open and closed position sets and the id counter.
// Not safe for concurrent use; callers own a session per account.
type Session struct {
	symbol       string
	riskFreeRate float64

	bars  []models.PriceBar
	index int

	open   []models.Position
	closed []models.ClosedPosition
	nextID int64
}

func NewSession(symbol string, bars []models.PriceBar, riskFreeRate float64) *Session {
	return &Session{
		symbol:       symbol,
		riskFreeRate: riskFreeRate,
		bars:         bars,
		nextID:       1,
	}
}

func (s *Session) Symbol() string { return s.symbol }
func (s *Session) Bars() []models.PriceBar { return s.bars }
func (s *Session) Day() int { return s.index }
func (s *Session) Current() models.PriceBar { return s.bars[s.index] }

// SetDay moves the time cursor. The UI owns playback; the session only
// validates the index.
func (s *Session) SetDay(index int) error {
	if len(s.bars) == 0 {
		return ErrNoSeries
	}
	if index < 0 || index >= len(s.bars) {
		return ErrDayOutOfRange
	}
	s.index = index
	return nil
}

// Execute validates a trade request against the current day and applies
// it. Rejected trades leave the session untouched. The returned position
// is the resulting open slot, nil when a stock trade exactly offsets an
// existing one.
func (s *Session) Execute(req models.TradeRequest) (models.Position, error) {
	if len(s.bars) == 0 {
		return nil, ErrNoSeries
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	bar := s.Current()

	switch req.Instrument {
	case models.InstrumentCall, models.InstrumentPut:
		if req.Strike <= 0 {
			return nil, ErrMissingStrike
		}
		if req.Expiration == "" {
			return nil, ErrMissingExpiration
		}

		optionType := models.Call
		if req.Instrument == models.InstrumentPut {
			optionType = models.Put
		}

		pos := models.OptionPosition{
			ID:                  s.allocID(),
			Type:                optionType,
			Action:              req.Action,
			Strike:              req.Strike,
			Expiration:          req.Expiration,
			Quantity:            req.Quantity,
			EntryPrice:          req.Price,
			EntryDate:           bar.Date,
			EntryUnderlying:     bar.Close,
			VolatilityAtEntry:   bar.IV,
			RiskFreeRateAtEntry: s.riskFreeRate,
		}
		s.open = append(s.open, pos)
		return pos, nil

	case models.InstrumentStock:
		return s.executeStock(req, bar)
	}

	return nil, ErrInvalidInstrument
}

func (s *Session) executeStock(req models.TradeRequest, bar models.PriceBar) (models.Position, error) {
	trade := models.StockPosition{
		Action:              req.Action,
		Quantity:            req.Quantity,
		EntryPrice:          req.Price,
		EntryDate:           bar.Date,
		VolatilityAtEntry:   bar.IV,
		RiskFreeRateAtEntry: s.riskFreeRate,
	}

	slot, at := s.stockSlot()
	merged := ApplyStockTrade(slot, trade)

	switch {
	case merged == nil:
		// Exact offset, the slot empties without realizing P&L.
		s.open = append(s.open[:at], s.open[at+1:]...)
		return nil, nil
	case slot == nil:
		merged.ID = s.allocID()
		s.open = append(s.open, *merged)
	case merged.Action == slot.Action:
		// Merge or partial offset keeps the slot's identity.
		merged.ID = slot.ID
		merged.EntryDate = slot.EntryDate
		s.open[at] = *merged
	default:
		// Direction flip opens a fresh position at the trade's price.
		merged.ID = s.allocID()
		s.open[at] = *merged
	}
	return *merged, nil
}

func (s *Session) stockSlot() (*models.StockPosition, int) {
	for i, pos := range s.open {
		if p, ok := pos.(models.StockPosition); ok {
			return &p, i
		}
	}
	return nil, -1
}

// ClosePosition closes an open position at the current day's close and
// market IV, moving it to the closed set.
func (s *Session) ClosePosition(id int64) (models.ClosedPosition, error) {
	for i, pos := range s.open {
		if pos.PositionID() != id {
			continue
		}
		bar := s.Current()
		closed := Close(pos, bar.Close, bar.Date, bar.IV)
		s.closed = append(s.closed, closed)
		s.open = append(s.open[:i], s.open[i+1:]...)
		return closed, nil
	}
	return models.ClosedPosition{}, ErrPositionNotFound
}

// Reset clears both position sets, the scenario-switch semantics. The
// day cursor and id counter survive.
func (s *Session) Reset() {
	s.open = nil
	s.closed = nil
}

func (s *Session) OpenPositions() []models.Position {
	out := make([]models.Position, len(s.open))
	copy(out, s.open)
	return out
}

func (s *Session) ClosedPositions() []models.ClosedPosition {
	out := make([]models.ClosedPosition, len(s.closed))
	copy(out, s.closed)
	return out
}

func (s *Session) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// PositionReport is one open position with its live mark.
type PositionReport struct {
	Position  models.Position `json:"position"`
	Valuation Valuation       `json:"valuation"`
}

// Snapshot is the portfolio view for the current day.
type Snapshot struct {
	Symbol        string                  `json:"symbol"`
	Date          string                  `json:"date"`
	Spot          float64                 `json:"spot"`
	IV            float64                 `json:"iv"`
	Positions     []PositionReport        `json:"positions"`
	TotalValue    float64                 `json:"total_value"`
	UnrealizedPnL float64                 `json:"unrealized_pnl"`
	RealizedPnL   float64                 `json:"realized_pnl"`
	WinningTrades int                     `json:"winning_trades"`
	Greeks        models.Greeks           `json:"greeks"`
	Closed        []models.ClosedPosition `json:"closed,omitempty"`
}

// Snapshot assembles the full portfolio view for the current day.
func (s *Session) Snapshot() Snapshot {
	bar := s.Current()

	reports := make([]PositionReport, 0, len(s.open))
	for _, pos := range s.open {
		reports = append(reports, PositionReport{
			Position:  pos,
			Valuation: Value(pos, bar.Close, bar.Date, bar.IV),
		})
	}

	totalValue, unrealized := AggregateValue(s.open, bar.Close, bar.Date, bar.IV)

	realized := 0.0
	winning := 0
	for _, c := range s.closed {
		realized += c.RealizedPnL
		if c.RealizedPnL > 0 {
			winning++
		}
	}

	return Snapshot{
		Symbol:        s.symbol,
		Date:          bar.Date,
		Spot:          bar.Close,
		IV:            bar.IV,
		Positions:     reports,
		TotalValue:    totalValue,
		UnrealizedPnL: unrealized,
		RealizedPnL:   models.RoundTo(realized, 2),
		WinningTrades: winning,
		Greeks:        AggregateGreeks(s.open, bar.Close, bar.Date, bar.IV),
		Closed:        s.closedCopy(),
	}
}

func (s *Session) closedCopy() []models.ClosedPosition {
	if len(s.closed) == 0 {
		return nil
	}
	out := make([]models.ClosedPosition, len(s.closed))
	copy(out, s.closed)
	return out
}
