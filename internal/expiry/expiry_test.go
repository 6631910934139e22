package expiry

import (
	"testing"
	"time"
)

func TestMonthYear(t *testing.T) {
	issue := time.Date(2029, time.December, 15, 0, 0, 0, 0, time.UTC)
	month, year := MonthYear(issue, 1)
	if month != 12 || year != 2030 {
		t.Fatalf("MonthYear got %d/%d want 12/2030", month, year)
	}
}

func TestMonthYearLeapIssue(t *testing.T) {
	issue := time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC)
	month, year := MonthYear(issue, DefaultYears)
	if month != 2 || year != 2031 {
		t.Fatalf("MonthYear got %d/%d want 2/2031", month, year)
	}
}

func TestCardFace(t *testing.T) {
	if got := CardFace(12, 2030); got != "12/30" {
		t.Fatalf("CardFace got %s want 12/30", got)
	}
	if got := CardFace(2, 2031); got != "02/31" {
		t.Fatalf("CardFace got %s want 02/31", got)
	}
}
