// Package indicators annotates a price series with the overlay data the
// chart layer draws: long moving average, Bollinger bands and RSI.
// Warm-up values are nil, never zero, so consumers can leave them blank.
package indicators

import (
	"math"

	"github.com/quantsim/optionsim/models"
)

// AnnotatedBar is a PriceBar plus indicator overlays. Pointer fields are
// nil while their lookback window is still filling.
type AnnotatedBar struct {
	models.PriceBar
	SMA200   *float64 `json:"sma200,omitempty"`
	BBUpper  *float64 `json:"bb_upper,omitempty"`
	BBMiddle *float64 `json:"bb_middle,omitempty"`
	BBLower  *float64 `json:"bb_lower,omitempty"`
	RSI      *float64 `json:"rsi,omitempty"`
}

// Annotate attaches the standard indicator set: SMA-200, 20-day
// Bollinger bands at 2 standard deviations, and 14-day RSI.
func Annotate(series []models.PriceBar) []AnnotatedBar {
	sma := SMA(series, 200)
	upper, middle, lower := Bollinger(series, 20, 2)
	rsi := RSI(series, 14)

	annotated := make([]AnnotatedBar, len(series))
	for i, bar := range series {
		annotated[i] = AnnotatedBar{
			PriceBar: bar,
			SMA200:   sma[i],
			BBUpper:  upper[i],
			BBMiddle: middle[i],
			BBLower:  lower[i],
			RSI:      rsi[i],
		}
	}
	return annotated
}

// SMA is the simple moving average of closes; nil until period bars
// exist.
func SMA(series []models.PriceBar, period int) []*float64 {
	result := make([]*float64, len(series))
	for i := range series {
		if i < period-1 {
			continue
		}
		sum := 0.0
		for j := 0; j < period; j++ {
			sum += series[i-j].Close
		}
		result[i] = round2p(sum / float64(period))
	}
	return result
}

// Bollinger returns the upper, middle and lower bands: the period SMA
// plus and minus k standard deviations of the closes.
func Bollinger(series []models.PriceBar, period int, k float64) (upper, middle, lower []*float64) {
	upper = make([]*float64, len(series))
	middle = make([]*float64, len(series))
	lower = make([]*float64, len(series))

	for i := range series {
		if i < period-1 {
			continue
		}

		sum := 0.0
		for j := 0; j < period; j++ {
			sum += series[i-j].Close
		}
		sma := sum / float64(period)

		squaredDiffSum := 0.0
		for j := 0; j < period; j++ {
			diff := series[i-j].Close - sma
			squaredDiffSum += diff * diff
		}
		stdDev := math.Sqrt(squaredDiffSum / float64(period))

		middle[i] = round2p(sma)
		upper[i] = round2p(sma + k*stdDev)
		lower[i] = round2p(sma - k*stdDev)
	}
	return upper, middle, lower
}

// RSI is the relative strength index over simple average gains and
// losses; pegs at 100 when the window has no losses.
func RSI(series []models.PriceBar, period int) []*float64 {
	result := make([]*float64, len(series))
	for i := range series {
		if i < period {
			continue
		}

		gains := 0.0
		losses := 0.0
		for j := 1; j <= period; j++ {
			change := series[i-j+1].Close - series[i-j].Close
			if change > 0 {
				gains += change
			} else {
				losses += math.Abs(change)
			}
		}

		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		if avgLoss == 0 {
			v := 100.0
			result[i] = &v
			continue
		}

		rs := avgGain / avgLoss
		result[i] = round2p(100 - 100/(1+rs))
	}
	return result
}

func round2p(x float64) *float64 {
	v := models.RoundTo(x, 2)
	return &v
}
