package portfolio

import (
	"testing"

	"github.com/quantsim/optionsim/models"
)

func TestAggregateGreeksEmpty(t *testing.T) {
	got := AggregateGreeks(nil, 100, "2024-01-02", 0.30)
	if got != (models.Greeks{}) {
		t.Errorf("empty portfolio greeks = %+v, want zeros", got)
	}
}

func TestAggregateGreeksStockDelta(t *testing.T) {
	positions := []models.Position{
		models.StockPosition{ID: 1, Action: models.Buy, Quantity: 300, EntryPrice: 100},
	}
	got := AggregateGreeks(positions, 100, "2024-01-02", 0.30)
	if got.Delta != 300 {
		t.Errorf("long stock delta = %v, want 300", got.Delta)
	}
	if got.Gamma != 0 || got.Vega != 0 || got.Theta != 0 || got.Rho != 0 {
		t.Errorf("stock contributed higher greeks: %+v", got)
	}

	positions[0] = models.StockPosition{ID: 1, Action: models.Sell, Quantity: 300, EntryPrice: 100}
	got = AggregateGreeks(positions, 100, "2024-01-02", 0.30)
	if got.Delta != -300 {
		t.Errorf("short stock delta = %v, want -300", got.Delta)
	}
}

func TestAggregateGreeksSoldPutNetsPositiveDelta(t *testing.T) {
	positions := []models.Position{
		models.OptionPosition{
			ID: 1, Type: models.Put, Action: models.Sell,
			Strike: 100, Expiration: "2024-02-01", Quantity: 1,
			EntryPrice: 2, EntryDate: "2024-01-02", RiskFreeRateAtEntry: testRate,
		},
	}
	got := AggregateGreeks(positions, 100, "2024-01-02", 0.30)
	if got.Delta <= 0 {
		t.Errorf("sold ATM put delta = %v, want positive", got.Delta)
	}
	if got.Theta <= 0 {
		t.Errorf("sold put theta = %v, want positive carry", got.Theta)
	}
	if got.Vega >= 0 {
		t.Errorf("sold put vega = %v, want negative", got.Vega)
	}
}

func TestAggregateGreeksLongCallScaling(t *testing.T) {
	one := []models.Position{
		models.OptionPosition{
			ID: 1, Type: models.Call, Action: models.Buy,
			Strike: 100, Expiration: "2024-02-01", Quantity: 1,
			EntryPrice: 3, EntryDate: "2024-01-02", RiskFreeRateAtEntry: testRate,
		},
	}
	five := []models.Position{
		models.OptionPosition{
			ID: 1, Type: models.Call, Action: models.Buy,
			Strike: 100, Expiration: "2024-02-01", Quantity: 5,
			EntryPrice: 3, EntryDate: "2024-01-02", RiskFreeRateAtEntry: testRate,
		},
	}

	g1 := AggregateGreeks(one, 100, "2024-01-02", 0.30)
	g5 := AggregateGreeks(five, 100, "2024-01-02", 0.30)
	if g5.Delta != 5*g1.Delta {
		t.Errorf("5-lot delta = %v, want %v", g5.Delta, 5*g1.Delta)
	}
}

func TestAggregateGreeksExpiredBoundary(t *testing.T) {
	positions := []models.Position{
		models.OptionPosition{
			ID: 1, Type: models.Call, Action: models.Buy,
			Strike: 100, Expiration: "2024-02-01", Quantity: 1,
			EntryPrice: 3, EntryDate: "2024-01-02", RiskFreeRateAtEntry: testRate,
		},
	}

	got := AggregateGreeks(positions, 110, "2024-03-01", 0.30)
	if got.Delta != 100 {
		t.Errorf("expired ITM call delta = %v, want the 100-share boundary", got.Delta)
	}
	if got.Gamma != 0 || got.Vega != 0 {
		t.Errorf("expired call contributed %+v", got)
	}
}

func TestAggregateValue(t *testing.T) {
	positions := []models.Position{
		models.StockPosition{ID: 1, Action: models.Buy, Quantity: 100, EntryPrice: 90},
	}

	total, unrealized := AggregateValue(positions, 100, "2024-01-02", 0.30)
	if total != 10000 {
		t.Errorf("total value = %v, want 10000", total)
	}
	if unrealized != 1000 {
		t.Errorf("unrealized = %v, want 1000", unrealized)
	}

	total, unrealized = AggregateValue(nil, 100, "2024-01-02", 0.30)
	if total != 0 || unrealized != 0 {
		t.Errorf("empty portfolio = (%v, %v), want zeros", total, unrealized)
	}
}
