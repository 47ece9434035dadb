package indicators

import (
	"testing"

	"github.com/quantsim/optionsim/models"
)

func closeBars(closes []float64) []models.PriceBar {
	start := models.ParseDate("2024-01-01")
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = models.PriceBar{
			Date: start.AddDate(0, 0, i).Format(models.DateLayout),
			Open: c, High: c, Low: c, Close: c, Volume: 1000,
		}
	}
	return bars
}

func TestSMAWarmupAndValue(t *testing.T) {
	bars := closeBars([]float64{1, 2, 3, 4, 5, 6})
	sma := SMA(bars, 3)

	if sma[0] != nil || sma[1] != nil {
		t.Error("SMA reported a value inside the warm-up window")
	}
	if sma[2] == nil || *sma[2] != 2 {
		t.Errorf("SMA[2] = %v, want 2", sma[2])
	}
	if sma[5] == nil || *sma[5] != 5 {
		t.Errorf("SMA[5] = %v, want 5", sma[5])
	}
}

func TestBollingerBandsOrdering(t *testing.T) {
	bars := closeBars([]float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 13, 12, 14, 16, 15, 13, 12, 14, 15, 16})
	upper, middle, lower := Bollinger(bars, 20, 2)

	for i := range bars {
		if i < 19 {
			if upper[i] != nil {
				t.Fatalf("band value during warm-up at %d", i)
			}
			continue
		}
		if upper[i] == nil || middle[i] == nil || lower[i] == nil {
			t.Fatalf("missing band at %d", i)
		}
		if !(*lower[i] < *middle[i] && *middle[i] < *upper[i]) {
			t.Errorf("bands out of order at %d: %v %v %v", i, *lower[i], *middle[i], *upper[i])
		}
	}
}

func TestBollingerFlatSeries(t *testing.T) {
	bars := closeBars(make([]float64, 25))
	for i := range bars {
		bars[i].Close = 100
	}
	upper, middle, lower := Bollinger(bars, 20, 2)

	last := len(bars) - 1
	if *upper[last] != 100 || *middle[last] != 100 || *lower[last] != 100 {
		t.Errorf("flat series bands = %v %v %v, want all 100", *upper[last], *middle[last], *lower[last])
	}
}

func TestRSIExtremes(t *testing.T) {
	up := make([]float64, 20)
	for i := range up {
		up[i] = 100 + float64(i)
	}
	rsi := RSI(closeBars(up), 14)
	if rsi[13] != nil {
		t.Error("RSI reported a value inside the warm-up window")
	}
	if rsi[19] == nil || *rsi[19] != 100 {
		t.Errorf("all-gains RSI = %v, want 100", rsi[19])
	}

	down := make([]float64, 20)
	for i := range down {
		down[i] = 100 - float64(i)
	}
	rsi = RSI(closeBars(down), 14)
	if rsi[19] == nil || *rsi[19] != 0 {
		t.Errorf("all-losses RSI = %v, want 0", rsi[19])
	}
}

func TestAnnotateAlignsWithSeries(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	bars := closeBars(closes)

	annotated := Annotate(bars)
	if len(annotated) != len(bars) {
		t.Fatalf("annotated %d bars from %d", len(annotated), len(bars))
	}
	if annotated[100].SMA200 != nil {
		t.Error("SMA200 present before 200 bars")
	}
	if annotated[249].SMA200 == nil {
		t.Error("SMA200 missing at bar 250")
	}
	if annotated[249].RSI == nil || annotated[249].BBMiddle == nil {
		t.Error("indicator overlays missing at the end of the series")
	}
	if annotated[0].Close != bars[0].Close {
		t.Error("annotated bar lost its underlying data")
	}
}
