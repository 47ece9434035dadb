package series

import (
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/quantsim/optionsim/models"
	"github.com/quantsim/optionsim/volatility"
)

// Generate produces a synthetic daily series between two dates,
// weekends excluded. The deterministic trend compounds StartPrice into
// EndPrice over the span; scripted events add their jump or drop to the
// return on their exact date. All randomness comes from the scenario
// seed, so a fixed ScenarioParams reproduces the same series.
//
// IV is stamped in a second pass once the whole OHLC series exists,
// since the estimator's lookback windows read neighboring bars.
func Generate(params models.ScenarioParams, startDate, endDate string) []models.PriceBar {
	start := models.ParseDate(startDate)
	end := models.ParseDate(endDate)

	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(params.Seed))

	totalReturn := (params.EndPrice - params.StartPrice) / params.StartPrice
	dailyTrend := math.Pow(1+totalReturn, 1/float64(days)) - 1

	events := make(map[string]models.MarketEvent, len(params.Events))
	for _, event := range params.Events {
		events[event.Date] = event
	}

	var bars []models.PriceBar
	price := params.StartPrice

	for i := 0; i <= days; i++ {
		day := start.AddDate(0, 0, i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		dateStr := day.Format(models.DateLayout)

		eventImpact := 0.0
		if event, ok := events[dateStr]; ok {
			if event.Jump > 0 {
				eventImpact = event.Jump
			} else {
				eventImpact = -event.Drop
			}
		}

		dayReturn := dailyTrend + params.DailyVolatility*(rng.Float64()*2-1) + eventImpact
		price *= 1 + dayReturn

		// Intraday shape around the compounded price. The stored close
		// is perturbed; compounding continues from the unperturbed walk.
		dayVolatility := price * params.DailyVolatility * 0.7
		open := price + (rng.Float64()-0.5)*dayVolatility
		clos := price + (rng.Float64()-0.5)*dayVolatility
		high := math.Max(open, clos) + rng.Float64()*dayVolatility*0.5
		low := math.Min(open, clos) - rng.Float64()*dayVolatility*0.5

		volumeMultiplier := 1.0
		if eventImpact != 0 {
			volumeMultiplier = 1.5 + rng.Float64()
		}
		volume := int64((float64(params.Volume.Min) +
			rng.Float64()*float64(params.Volume.Max-params.Volume.Min)) * volumeMultiplier)

		bars = append(bars, models.PriceBar{
			Date:   dateStr,
			Open:   models.RoundTo(math.Max(0.01, open), 2),
			High:   models.RoundTo(math.Max(0.01, high), 2),
			Low:    models.RoundTo(math.Max(0.01, low), 2),
			Close:  models.RoundTo(math.Max(0.01, clos), 2),
			Volume: volume,
		})
	}

	for i := range bars {
		bars[i].IV = volatility.DynamicIV(bars, i, params, rng)
	}

	return bars
}

// TradingDays counts the weekdays from startDate through endDate.
func TradingDays(startDate, endDate string) int {
	start := models.ParseDate(startDate)
	end := models.ParseDate(endDate)

	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0
	}

	count := 0
	for i := 0; i <= days; i++ {
		day := start.AddDate(0, 0, i)
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}
