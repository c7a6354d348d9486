package utils

import (
	"time"

	"github.com/jwaldner/finengine/calcerr"
)

// DateLayout is the expiration date format accepted by the API and CLIs.
const DateLayout = "2006-01-02"

// YearsToExpiration converts an expiration date into a year fraction using
// whole calendar days from now's date over daysPerYear (ACT/365 by default).
// Dates on or before today are rejected.
func YearsToExpiration(expirationDate string, now time.Time, daysPerYear float64) (float64, error) {
	expiration, err := time.Parse(DateLayout, expirationDate)
	if err != nil {
		return 0, calcerr.InvalidParameter("invalid expiration date %q, want YYYY-MM-DD", expirationDate)
	}
	if daysPerYear <= 0 {
		return 0, calcerr.InvalidParameter("days per year must be positive, got %v", daysPerYear)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := expiration.Sub(today).Hours() / 24
	if days < 1 {
		return 0, calcerr.InvalidParameter("expiration date %s is not after %s", expirationDate, today.Format(DateLayout))
	}
	return days / daysPerYear, nil
}

// NextMonthlyExpiration returns the next third Friday for options expiration
// This implements the standard options expiration business logic:
// - Third Friday of current month if we haven't reached the expiration week yet
// - Third Friday of next month if we're in or past the expiration week
func NextMonthlyExpiration(now time.Time) string {
	thirdFriday := thirdFridayOf(now.Year(), now.Month(), now.Location())

	// If current day is in the week of 3rd Friday or past it, use next month's 3rd Friday
	weekStart := thirdFriday.AddDate(0, 0, -7)
	if now.After(weekStart) || now.Equal(weekStart) {
		next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		return thirdFridayOf(next.Year(), next.Month(), now.Location()).Format(DateLayout)
	}

	return thirdFriday.Format(DateLayout)
}

func thirdFridayOf(year int, month time.Month, loc *time.Location) time.Time {
	firstFriday := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for firstFriday.Weekday() != time.Friday {
		firstFriday = firstFriday.AddDate(0, 0, 1)
	}
	return firstFriday.AddDate(0, 0, 14)
}
