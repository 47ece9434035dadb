package series

import (
	"math"
	"sort"

	"github.com/quantsim/optionsim/models"
)

// Expiration is one rung of the expiration ladder offered to the chain.
type Expiration struct {
	Date         string `json:"date"`
	DaysToExpiry int    `json:"days_to_expiry"`
	Default      bool   `json:"default,omitempty"`
}

// StrikeLadder builds count+1 strikes around the current price using
// exchange-style increments for the price band.
func StrikeLadder(currentPrice float64, count int) []float64 {
	baseStrike := math.Round(currentPrice/10) * 10

	var step float64
	switch {
	case currentPrice < 25:
		step = 0.50
	case currentPrice < 100:
		step = 1.00
	case currentPrice < 200:
		step = 2.5
	case currentPrice < 500:
		step = 5
	default:
		step = 10.00
	}

	var strikes []float64
	for i := -count / 2; i <= count/2; i++ {
		strikes = append(strikes, baseStrike+float64(i)*step)
	}
	sort.Float64s(strikes)
	return strikes
}

var expirationTargetDays = []int{7, 14, 30, 45, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330, 360, 390, 420, 450, 480, 510, 540, 570, 600}

// ExpirationLadder builds up to count expirations from the current date,
// snapped forward to Fridays, the 30-day rung marked as default.
func ExpirationLadder(currentDate string, count int) []Expiration {
	current := models.ParseDate(currentDate)

	targets := expirationTargetDays
	if count < len(targets) {
		targets = targets[:count]
	}

	var expirations []Expiration
	for _, days := range targets {
		expDate := current.AddDate(0, 0, days)

		// Listed options expire on Fridays.
		dayOfWeek := int(expDate.Weekday())
		daysToFriday := 5 - dayOfWeek
		if dayOfWeek > 5 {
			daysToFriday = 12 - dayOfWeek
		}
		expDate = expDate.AddDate(0, 0, daysToFriday)

		expirations = append(expirations, Expiration{
			Date:         expDate.Format(models.DateLayout),
			DaysToExpiry: int(expDate.Sub(current).Hours() / 24),
			Default:      days == 30,
		})
	}

	sort.Slice(expirations, func(i, j int) bool {
		return expirations[i].DaysToExpiry < expirations[j].DaysToExpiry
	})

	return expirations
}
