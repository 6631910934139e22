// Package expiry computes expiry dates for issued cards.
package expiry

import (
	"fmt"
	"time"
)

// DefaultYears is how long a virtual card stays valid from issue.
const DefaultYears = 3

// MonthYear returns the expiry month and four-digit year for a card issued
// at issue and valid for years. The calendar month is kept, so a card
// issued in August 2026 with three years expires at the end of 08/2029.
func MonthYear(issue time.Time, years int) (month, year int) {
	t := issue.UTC()
	return int(t.Month()), t.Year() + years
}

// CardFace formats an expiry as MM/YY for display.
func CardFace(month, year int) string {
	return fmt.Sprintf("%02d/%02d", month, year%100)
}
