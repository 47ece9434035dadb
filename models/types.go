package models

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

type TradeAction string

const (
	Buy  TradeAction = "buy"
	Sell TradeAction = "sell"
)

type Instrument string

const (
	InstrumentCall  Instrument = "call"
	InstrumentPut   Instrument = "put"
	InstrumentStock Instrument = "stock"
)

// PriceBar is one trading day of a simulated or historical series.
// Bars are created once by the generator or loader and never mutated,
// except for the IV second pass that runs before the series is published.
type PriceBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
	IV     float64 `json:"iv,omitempty"`
}

// MarketEvent is a scripted shock. Exactly one of Jump or Drop is set,
// as a fractional price move on the event date. IVSpike is the target
// annualized volatility near the event.
type MarketEvent struct {
	Date    string  `json:"date"`
	Jump    float64 `json:"jump,omitempty"`
	Drop    float64 `json:"drop,omitempty"`
	IVSpike float64 `json:"iv_spike"`
}

type VolumeRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// ScenarioParams configures synthetic generation for one symbol.
type ScenarioParams struct {
	StartPrice      float64       `json:"start_price"`
	EndPrice        float64       `json:"end_price"`
	DailyVolatility float64       `json:"daily_volatility"`
	BaseIV          float64       `json:"base_iv"`
	Volume          VolumeRange   `json:"volume"`
	Events          []MarketEvent `json:"events,omitempty"`
	Seed            uint64        `json:"seed"`
}

// OptionQuote is the output of the pricing model for one contract.
// Theta is per calendar day, Vega and Rho per one percentage point.
type OptionQuote struct {
	Price             float64 `json:"price"`
	Delta             float64 `json:"delta"`
	Gamma             float64 `json:"gamma"`
	Theta             float64 `json:"theta"`
	Vega              float64 `json:"vega"`
	Rho               float64 `json:"rho"`
	ImpliedVolatility float64 `json:"implied_volatility"`
}

type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// TradeRequest is a trade submitted against the current simulated day.
type TradeRequest struct {
	Instrument Instrument  `json:"instrument"`
	Action     TradeAction `json:"action"`
	Strike     float64     `json:"strike,omitempty"`
	Expiration string      `json:"expiration,omitempty"`
	Quantity   int         `json:"quantity"`
	Price      float64     `json:"price"`
}

// RoundTo rounds x to the given number of decimal places. NaN passes
// through so invalid-domain results stay visibly invalid.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// ParseDate parses a calendar date in DateLayout. Dates inside the core
// come from the generator or loader and are always well formed.
func ParseDate(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

// DaysBetween returns the whole calendar days from one date to another,
// negative when to precedes from.
func DaysBetween(from, to string) int {
	return int(ParseDate(to).Sub(ParseDate(from)).Hours() / 24)
}
