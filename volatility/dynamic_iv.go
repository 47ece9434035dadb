package volatility

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/quantsim/optionsim/models"
)

const (
	// Window is the lookback, in bars, for realized-volatility blending.
	Window = 20

	tradingDaysPerYear = 252

	// Macro stress interval during which enhanced IVs are pushed up.
	crisisStart = "2020-02-20"
	crisisEnd   = "2020-03-31"
)

// DynamicIV estimates the annualized implied volatility for one bar of a
// series. A bar that already carries an IV seed (historical input) gets
// the enhancement path: the seed is refined with Garman-Klass realized
// vol and clamped to [0.25, 0.75]. A bare bar (synthetic series under
// construction) gets the generation path: base IV blended with realized
// vol from log returns, scripted event spikes with exponential decay,
// random jitter, clamped to [0.25, 1.00].
//
// rng drives the generation-path jitter and may be nil to disable it;
// the enhancement path never consumes randomness.
func DynamicIV(series []models.PriceBar, index int, params models.ScenarioParams, rng *rand.Rand) float64 {
	baseIV := params.BaseIV
	if baseIV == 0 {
		baseIV = 0.30
	}

	if series[index].IV > 0 {
		return enhanceIV(series, index)
	}

	realizedVol := baseIV
	if index >= Window {
		realizedVol = realizedFromReturns(series, index)
	}

	iv := baseIV*0.6 + realizedVol*0.4

	// Scripted events pull IV toward their spike level, decaying
	// exponentially with distance from the event date.
	current := models.ParseDate(series[index].Date)
	for _, event := range params.Events {
		daysDiff := math.Abs(current.Sub(models.ParseDate(event.Date)).Hours() / 24)
		if daysDiff < 30 {
			iv += (event.IVSpike - baseIV) * math.Exp(-daysDiff/10)
		}
	}

	if rng != nil {
		iv *= 0.95 + 0.10*rng.Float64()
	}

	return clamp(iv, 0.25, 1.00)
}

func enhanceIV(series []models.PriceBar, index int) float64 {
	iv := series[index].IV

	if gkVol, ok := garmanKlassWindow(series, index, Window); ok {
		iv = iv*0.6 + gkVol*0.4
	}

	if date := series[index].Date; date >= crisisStart && date <= crisisEnd {
		iv = math.Min(0.75, iv*1.3)
	}

	return clamp(iv, 0.25, 0.75)
}

// realizedFromReturns annualizes the population standard deviation of
// the log returns over the Window closes preceding index.
func realizedFromReturns(series []models.PriceBar, index int) float64 {
	returns := make([]float64, 0, Window)
	for i := index - Window; i < index; i++ {
		returns = append(returns, math.Log(series[i+1].Close/series[i].Close))
	}
	mean := stat.Mean(returns, nil)
	variance := stat.MomentAbout(2, returns, mean, nil)
	return math.Sqrt(variance * tradingDaysPerYear)
}

// garmanKlassWindow is the range-based realized-vol estimate over the
// Window bars preceding index. Reports false until the window fills.
func garmanKlassWindow(series []models.PriceBar, index, window int) (float64, bool) {
	if index < window {
		return 0, false
	}

	var hlTerm, coTerm float64
	for i := index - window; i < index; i++ {
		b := series[i]
		if b.High > 0 && b.Low > 0 && b.Close > 0 && b.Open > 0 && b.High > b.Low {
			hl := math.Log(b.High / b.Low)
			co := math.Log(b.Close / b.Open)
			hlTerm += hl * hl
			coTerm += co * co
		}
	}

	hlTerm /= float64(window)
	coTerm /= float64(window)

	gkVol := math.Sqrt(math.Max(0, 0.5*hlTerm-(2*math.Log(2)-1)*coTerm))
	return gkVol * math.Sqrt(tradingDaysPerYear), true
}

// IVRank places the current IV within its trailing range:
// (current - min) / (max - min) over the lookback window including the
// current bar. A flat window ranks 0.5; a window with no IV samples is
// unavailable and reports false.
func IVRank(series []models.PriceBar, index, lookback int) (float64, bool) {
	if len(series) == 0 || index < 0 || index >= len(series) {
		return 0, false
	}

	start := index - lookback
	if start < 0 {
		start = 0
	}

	var ivs []float64
	for i := start; i <= index; i++ {
		if series[i].IV > 0 {
			ivs = append(ivs, series[i].IV)
		}
	}
	if len(ivs) == 0 {
		return 0, false
	}

	minIV := floats.Min(ivs)
	maxIV := floats.Max(ivs)
	if maxIV == minIV {
		return 0.50, true
	}

	rank := (series[index].IV - minIV) / (maxIV - minIV)
	return models.RoundTo(rank, 2), true
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
