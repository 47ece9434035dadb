package portfolio

import (
	"testing"

	"github.com/quantsim/optionsim/models"
)

func sessionBars() []models.PriceBar {
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-08"}
	closes := []float64{100, 105, 98, 110, 120}
	bars := make([]models.PriceBar, len(dates))
	for i := range dates {
		c := closes[i]
		bars[i] = models.PriceBar{
			Date: dates[i], Open: c, High: c * 1.01, Low: c * 0.99,
			Close: c, Volume: 1000000, IV: 0.30,
		}
	}
	return bars
}

func newTestSession() *Session {
	return NewSession("mock_1", sessionBars(), testRate)
}

func TestSessionSetDay(t *testing.T) {
	s := newTestSession()
	if err := s.SetDay(3); err != nil {
		t.Fatalf("SetDay(3): %v", err)
	}
	if s.Current().Date != "2024-01-05" {
		t.Errorf("current date = %s", s.Current().Date)
	}
	if err := s.SetDay(-1); err != ErrDayOutOfRange {
		t.Errorf("SetDay(-1) = %v, want ErrDayOutOfRange", err)
	}
	if err := s.SetDay(5); err != ErrDayOutOfRange {
		t.Errorf("SetDay(5) = %v, want ErrDayOutOfRange", err)
	}
}

func TestSessionExecuteValidation(t *testing.T) {
	s := newTestSession()

	_, err := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 0, Price: 100})
	if err != ErrInvalidQuantity {
		t.Errorf("zero quantity = %v, want ErrInvalidQuantity", err)
	}

	_, err = s.Execute(models.TradeRequest{Instrument: models.InstrumentCall, Action: models.Buy, Quantity: 1, Expiration: "2024-02-01", Price: 2})
	if err != ErrMissingStrike {
		t.Errorf("no strike = %v, want ErrMissingStrike", err)
	}

	_, err = s.Execute(models.TradeRequest{Instrument: models.InstrumentCall, Action: models.Buy, Quantity: 1, Strike: 100, Price: 2})
	if err != ErrMissingExpiration {
		t.Errorf("no expiration = %v, want ErrMissingExpiration", err)
	}

	_, err = s.Execute(models.TradeRequest{Instrument: "bond", Action: models.Buy, Quantity: 1, Price: 100})
	if err != ErrInvalidInstrument {
		t.Errorf("bond = %v, want ErrInvalidInstrument", err)
	}

	if len(s.OpenPositions()) != 0 {
		t.Errorf("rejected trades left %d open positions", len(s.OpenPositions()))
	}
}

func TestSessionExecuteOption(t *testing.T) {
	s := newTestSession()

	pos, err := s.Execute(models.TradeRequest{
		Instrument: models.InstrumentPut, Action: models.Sell,
		Strike: 95, Expiration: "2024-02-16", Quantity: 2, Price: 1.80,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	opt, ok := pos.(models.OptionPosition)
	if !ok {
		t.Fatalf("got %T, want OptionPosition", pos)
	}
	if opt.Type != models.Put || opt.Action != models.Sell {
		t.Errorf("opened %s %s, want sell put", opt.Action, opt.Type)
	}
	if opt.EntryDate != "2024-01-02" || opt.EntryUnderlying != 100 {
		t.Errorf("entry stamped %s @ %v, want 2024-01-02 @ 100", opt.EntryDate, opt.EntryUnderlying)
	}
	if opt.VolatilityAtEntry != 0.30 || opt.RiskFreeRateAtEntry != testRate {
		t.Errorf("entry context %v/%v", opt.VolatilityAtEntry, opt.RiskFreeRateAtEntry)
	}
}

func TestSessionStockNettingKeepsIdentity(t *testing.T) {
	s := newTestSession()

	first, err := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 100, Price: 100})
	if err != nil {
		t.Fatal(err)
	}
	merged, err := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 50, Price: 110})
	if err != nil {
		t.Fatal(err)
	}

	if merged.PositionID() != first.PositionID() {
		t.Errorf("merge changed position id %d -> %d", first.PositionID(), merged.PositionID())
	}
	stock := merged.(models.StockPosition)
	if stock.Quantity != 150 || stock.EntryPrice != 103.33 {
		t.Errorf("merged to %d @ %v, want 150 @ 103.33", stock.Quantity, stock.EntryPrice)
	}
	if len(s.OpenPositions()) != 1 {
		t.Fatalf("%d open positions after merge, want 1", len(s.OpenPositions()))
	}
}

func TestSessionStockFlipGetsNewID(t *testing.T) {
	s := newTestSession()

	long, _ := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 100, Price: 100})
	flipped, err := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Sell, Quantity: 150, Price: 105})
	if err != nil {
		t.Fatal(err)
	}

	if flipped.PositionID() == long.PositionID() {
		t.Error("flip kept the old position id")
	}
	stock := flipped.(models.StockPosition)
	if stock.Action != models.Sell || stock.Quantity != 50 || stock.EntryPrice != 105 {
		t.Errorf("flipped to %s %d @ %v, want sell 50 @ 105", stock.Action, stock.Quantity, stock.EntryPrice)
	}
}

func TestSessionStockFullOffsetEmptiesSlot(t *testing.T) {
	s := newTestSession()

	s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 100, Price: 100})
	pos, err := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Sell, Quantity: 100, Price: 105})
	if err != nil {
		t.Fatal(err)
	}
	if pos != nil {
		t.Errorf("exact offset returned %+v, want nil", pos)
	}
	if len(s.OpenPositions()) != 0 {
		t.Errorf("%d open positions after exact offset", len(s.OpenPositions()))
	}
}

func TestSessionClosePosition(t *testing.T) {
	s := newTestSession()

	pos, _ := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 100, Price: 100})
	s.SetDay(4)

	closed, err := s.ClosePosition(pos.PositionID())
	if err != nil {
		t.Fatalf("ClosePosition: %v", err)
	}
	if closed.RealizedPnL != 2000 {
		t.Errorf("realized = %v, want 2000 on a 100 -> 120 move", closed.RealizedPnL)
	}
	if closed.ClosedDate != "2024-01-08" {
		t.Errorf("closed date = %s", closed.ClosedDate)
	}
	if len(s.OpenPositions()) != 0 || len(s.ClosedPositions()) != 1 {
		t.Errorf("open/closed = %d/%d after close", len(s.OpenPositions()), len(s.ClosedPositions()))
	}

	if _, err := s.ClosePosition(999); err != ErrPositionNotFound {
		t.Errorf("missing id = %v, want ErrPositionNotFound", err)
	}
}

func TestSessionSnapshot(t *testing.T) {
	s := newTestSession()

	winner, _ := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 100, Price: 100})
	s.SetDay(1)
	s.ClosePosition(winner.PositionID())

	loser, _ := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 100, Price: 105})
	s.SetDay(2)
	s.ClosePosition(loser.PositionID())

	s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 50, Price: 98})
	s.SetDay(3)

	snap := s.Snapshot()
	if snap.Date != "2024-01-05" || snap.Spot != 110 {
		t.Errorf("snapshot pinned to %s @ %v", snap.Date, snap.Spot)
	}
	if len(snap.Positions) != 1 {
		t.Fatalf("%d open positions in snapshot, want 1", len(snap.Positions))
	}
	if snap.RealizedPnL != -200 {
		t.Errorf("realized = %v, want +500 - 700 = -200", snap.RealizedPnL)
	}
	if snap.WinningTrades != 1 {
		t.Errorf("winning trades = %d, want 1", snap.WinningTrades)
	}
	if snap.UnrealizedPnL != 600 {
		t.Errorf("unrealized = %v, want 600 on 50 shares 98 -> 110", snap.UnrealizedPnL)
	}
	if snap.Greeks.Delta != 50 {
		t.Errorf("delta = %v, want 50", snap.Greeks.Delta)
	}
}

func TestSessionReset(t *testing.T) {
	s := newTestSession()

	s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 100, Price: 100})
	pos, _ := s.Execute(models.TradeRequest{
		Instrument: models.InstrumentCall, Action: models.Buy,
		Strike: 100, Expiration: "2024-02-16", Quantity: 1, Price: 3,
	})
	s.ClosePosition(pos.PositionID())

	s.Reset()
	if len(s.OpenPositions()) != 0 || len(s.ClosedPositions()) != 0 {
		t.Errorf("reset left open/closed = %d/%d", len(s.OpenPositions()), len(s.ClosedPositions()))
	}

	next, err := s.Execute(models.TradeRequest{Instrument: models.InstrumentStock, Action: models.Buy, Quantity: 1, Price: 100})
	if err != nil {
		t.Fatal(err)
	}
	if next.PositionID() <= pos.PositionID() {
		t.Errorf("id counter rewound: %d after %d", next.PositionID(), pos.PositionID())
	}
}
