package stats

import (
	"strconv"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
)

// monthAbbrev holds the Italian month abbreviations, already
// capitalized.  An explicit table avoids the locale lookup plus
// first-letter uppercasing the charting layer used to do by hand.
var monthAbbrev = [12]string{
	"Gen", "Feb", "Mar", "Apr", "Mag", "Giu",
	"Lug", "Ago", "Set", "Ott", "Nov", "Dic",
}

// monthName holds the full Italian month names used for report period
// labels ("Marzo 2026").
var monthName = [12]string{
	"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno",
	"Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre",
}

// MonthLabel formats a calendar month as "Abbrev Year", e.g. "Gen 2026".
// Months outside 1..12 yield just the year.
func MonthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(year)
	}
	return monthAbbrev[month-1] + " " + strconv.Itoa(year)
}

// PeriodLabel formats a calendar month with its full name, e.g.
// "Gennaio 2026".  Months outside 1..12 yield just the year.
func PeriodLabel(year, month int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(year)
	}
	return monthName[month-1] + " " + strconv.Itoa(year)
}

// LastNMonths returns the n calendar months ending at now's month,
// oldest first.  It is the fixed time axis of the activity series:
// callers overlay their counts onto it so that empty months still
// appear.
func LastNMonths(now time.Time, n int) []model.YearMonth {
	if n <= 0 {
		return nil
	}
	months := make([]model.YearMonth, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i, 0)
		months = append(months, model.YearMonth{Year: m.Year(), Month: int(m.Month())})
	}
	return months
}
