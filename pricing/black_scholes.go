package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantsim/optionsim/models"
)

const (
	maxIterations = 100
	epsilon       = 1e-8
)

// Price returns the Black-Scholes price for a European option, rounded
// to cents. At or past expiry it returns intrinsic value; the boundary
// is checked before sqrt(T) so expired contracts never divide by zero.
// Callers validate spot, strike and volatility; invalid domains produce
// NaN, never a clamped number.
func Price(spot, strike, timeToExpiry, riskFreeRate, volatility float64, optionType models.OptionType) float64 {
	return models.RoundTo(rawPrice(spot, strike, timeToExpiry, riskFreeRate, volatility, optionType), 2)
}

func rawPrice(spot, strike, timeToExpiry, riskFreeRate, volatility float64, optionType models.OptionType) float64 {
	if timeToExpiry <= 0 {
		if optionType == models.Call {
			return math.Max(0, spot-strike)
		}
		return math.Max(0, strike-spot)
	}

	d1, d2 := dValues(spot, strike, timeToExpiry, riskFreeRate, volatility)

	if optionType == models.Call {
		return spot*normCDF(d1) - strike*math.Exp(-riskFreeRate*timeToExpiry)*normCDF(d2)
	}
	return strike*math.Exp(-riskFreeRate*timeToExpiry)*normCDF(-d2) - spot*normCDF(-d1)
}

// Greeks returns the Black-Scholes partials, rounded to 4 places.
// Theta is scaled to per calendar day, vega and rho to per percentage
// point. At or past expiry delta is the moneyness boundary value and
// everything else is zero.
func Greeks(spot, strike, timeToExpiry, riskFreeRate, volatility float64, optionType models.OptionType) models.Greeks {
	if timeToExpiry <= 0 {
		return expiryGreeks(spot, strike, optionType)
	}

	sqrtT := math.Sqrt(timeToExpiry)
	d1, d2 := dValues(spot, strike, timeToExpiry, riskFreeRate, volatility)
	discount := math.Exp(-riskFreeRate * timeToExpiry)

	var delta float64
	if optionType == models.Call {
		delta = normCDF(d1)
	} else {
		delta = normCDF(d1) - 1
	}

	gamma := normPDF(d1) / (spot * volatility * sqrtT)

	term1 := -(spot * normPDF(d1) * volatility) / (2 * sqrtT)
	var theta, rho float64
	if optionType == models.Call {
		theta = (term1 - riskFreeRate*strike*discount*normCDF(d2)) / 365
		rho = strike * timeToExpiry * discount * normCDF(d2) / 100
	} else {
		theta = (term1 + riskFreeRate*strike*discount*normCDF(-d2)) / 365
		rho = -strike * timeToExpiry * discount * normCDF(-d2) / 100
	}

	vega := spot * normPDF(d1) * sqrtT / 100

	return models.Greeks{
		Delta: models.RoundTo(delta, 4),
		Gamma: models.RoundTo(gamma, 4),
		Theta: models.RoundTo(theta, 4),
		Vega:  models.RoundTo(vega, 4),
		Rho:   models.RoundTo(rho, 4),
	}
}

func expiryGreeks(spot, strike float64, optionType models.OptionType) models.Greeks {
	var delta float64
	if optionType == models.Call {
		if spot > strike {
			delta = 1
		}
	} else {
		if spot < strike {
			delta = -1
		}
	}
	return models.Greeks{Delta: delta}
}

// Metrics prices one contract and computes its Greeks in one call,
// echoing the input volatility. Expiry is given in calendar days, the
// way positions and the chain carry it.
func Metrics(spot, strike float64, daysToExpiry int, riskFreeRate, volatility float64, optionType models.OptionType) models.OptionQuote {
	t := float64(daysToExpiry) / 365

	price := Price(spot, strike, t, riskFreeRate, volatility, optionType)
	greeks := Greeks(spot, strike, t, riskFreeRate, volatility, optionType)

	return models.OptionQuote{
		Price:             price,
		Delta:             greeks.Delta,
		Gamma:             greeks.Gamma,
		Theta:             greeks.Theta,
		Vega:              greeks.Vega,
		Rho:               greeks.Rho,
		ImpliedVolatility: volatility,
	}
}

// ImpliedVolatility inverts the pricing model for a target premium by
// Newton iteration on vega. Returns NaN if it fails to converge.
func ImpliedVolatility(targetPrice, spot, strike, timeToExpiry, riskFreeRate float64, optionType models.OptionType) float64 {
	sigma := 0.5 // Initial guess
	for i := 0; i < maxIterations; i++ {
		price := rawPrice(spot, strike, timeToExpiry, riskFreeRate, sigma, optionType)
		vega := rawVega(spot, strike, timeToExpiry, riskFreeRate, sigma)

		diff := price - targetPrice
		if math.Abs(diff) < epsilon {
			return sigma
		}

		sigma = sigma - diff/vega
		if sigma <= 0 {
			sigma = 0.0001 // Avoid negative volatility
		}
	}
	return math.NaN()
}

func rawVega(spot, strike, timeToExpiry, riskFreeRate, volatility float64) float64 {
	d1, _ := dValues(spot, strike, timeToExpiry, riskFreeRate, volatility)
	return spot * normPDF(d1) * math.Sqrt(timeToExpiry)
}

func dValues(spot, strike, timeToExpiry, riskFreeRate, volatility float64) (float64, float64) {
	d1 := (math.Log(spot/strike) + (riskFreeRate+0.5*volatility*volatility)*timeToExpiry) /
		(volatility * math.Sqrt(timeToExpiry))
	return d1, d1 - volatility*math.Sqrt(timeToExpiry)
}

func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
