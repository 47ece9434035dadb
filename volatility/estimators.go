package volatility

import (
	"math"

	"github.com/quantsim/optionsim/models"
)

// IVRankLookback is the default trailing window for IVRank, about one
// trading year.
const IVRankLookback = 252

var periods = []struct {
	name string
	days int
}{
	{"1w", 5},
	{"1m", 21},
	{"3m", 63},
	{"6m", 126},
	{"1y", 252},
}

// Summary computes every realized-volatility estimator over the standard
// trailing periods, keyed estimator name then period.
func Summary(series []models.PriceBar) map[string]map[string]float64 {
	return map[string]map[string]float64{
		"garman_klass":    GarmanKlassPeriods(series),
		"parkinson":       ParkinsonPeriods(series),
		"yang_zhang":      YangZhangPeriods(series),
		"rogers_satchell": RogersSatchellPeriods(series),
	}
}

// GarmanKlassPeriods returns annualized Garman-Klass volatility over
// each standard trailing period with enough bars.
func GarmanKlassPeriods(series []models.PriceBar) map[string]float64 {
	results := make(map[string]float64)
	for _, period := range periods {
		if len(series) >= period.days {
			if vol := garmanKlass(tail(series, period.days)); vol != 0 {
				results[period.name] = vol
			}
		}
	}
	return results
}

func garmanKlass(bars []models.PriceBar) float64 {
	n := len(bars)
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, b := range bars {
		hl := 0.5 * math.Pow(math.Log(b.High/b.Low), 2)
		co := (2*math.Log(2) - 1) * math.Pow(math.Log(b.Close/b.Open), 2)
		sum += hl - co
	}

	// Annualize the volatility
	return math.Sqrt(sum / float64(n) * tradingDaysPerYear)
}

// ParkinsonPeriods returns the annualized Parkinson range estimate over
// each standard trailing period with enough bars.
func ParkinsonPeriods(series []models.PriceBar) map[string]float64 {
	results := make(map[string]float64)
	for _, period := range periods {
		if len(series) >= period.days {
			if vol := parkinson(tail(series, period.days)); vol != 0 {
				results[period.name] = vol * math.Sqrt(tradingDaysPerYear/float64(period.days))
			}
		}
	}
	return results
}

func parkinson(bars []models.PriceBar) float64 {
	n := len(bars)
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, b := range bars {
		logRatio := math.Log(b.High / b.Low)
		sum += logRatio * logRatio
	}

	return math.Sqrt(sum / (4 * float64(n) * math.Log(2)))
}

// YangZhangPeriods returns the annualized Yang-Zhang estimate, which
// combines overnight, open-close and Rogers-Satchell components, over
// each standard trailing period.
func YangZhangPeriods(series []models.PriceBar) map[string]float64 {
	results := make(map[string]float64)
	for _, period := range periods {
		if len(series) >= period.days {
			if vol := yangZhang(tail(series, period.days)); vol != 0 {
				results[period.name] = vol
			}
		}
	}
	return results
}

func yangZhang(bars []models.PriceBar) float64 {
	n := len(bars)
	if n < 2 {
		return 0
	}

	k := 0.34 / (1.34 + (float64(n)+1)/(float64(n)-1))
	overnight := overnightVariance(bars)
	openClose := openCloseVariance(bars)
	rs := rogersSatchell(bars)

	yz := math.Sqrt(overnight + k*openClose + (1-k)*rs)

	// Annualize the volatility
	return yz * math.Sqrt(tradingDaysPerYear)
}

func overnightVariance(bars []models.PriceBar) float64 {
	n := len(bars)
	sum := 0.0
	mean := 0.0
	for i := 1; i < n; i++ {
		logReturn := math.Log(bars[i].Open / bars[i-1].Close)
		mean += logReturn
		sum += logReturn * logReturn
	}
	mean /= float64(n - 1)
	return (sum/float64(n-1) - mean*mean) * float64(n) / float64(n-1)
}

func openCloseVariance(bars []models.PriceBar) float64 {
	n := len(bars)
	sum := 0.0
	mean := 0.0
	for _, b := range bars {
		logReturn := math.Log(b.Close / b.Open)
		mean += logReturn
		sum += logReturn * logReturn
	}
	mean /= float64(n)
	return (sum/float64(n) - mean*mean) * float64(n) / float64(n-1)
}

// RogersSatchellPeriods returns the annualized Rogers-Satchell estimate
// over each standard trailing period.
func RogersSatchellPeriods(series []models.PriceBar) map[string]float64 {
	results := make(map[string]float64)
	for _, period := range periods {
		if len(series) >= period.days {
			if rs := rogersSatchell(tail(series, period.days)); rs != 0 {
				results[period.name] = math.Sqrt(rs * tradingDaysPerYear)
			}
		}
	}
	return results
}

func rogersSatchell(bars []models.PriceBar) float64 {
	n := len(bars)
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, b := range bars {
		sum += math.Log(b.High/b.Close)*math.Log(b.High/b.Open) +
			math.Log(b.Low/b.Close)*math.Log(b.Low/b.Open)
	}

	return sum / float64(n)
}

func tail(series []models.PriceBar, days int) []models.PriceBar {
	return series[len(series)-days:]
}
