package domain

import "time"

// DateRange bounds a time interval. A zero To means the interval is
// open-ended.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DateRangeBounds translates a free-text date-range label into concrete
// bounds relative to now. Unrecognized labels default to the start of the
// current year with an open upper bound.
func DateRangeBounds(label string, now time.Time) DateRange {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	switch label {
	case "last week":
		return DateRange{From: now.AddDate(0, 0, -7), To: now}
	case "last month":
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{From: monthStart.AddDate(0, -1, 0), To: monthStart}
	case "this month":
		return DateRange{From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), To: now}
	case "Q1":
		return DateRange{From: yearStart, To: yearStart.AddDate(0, 3, 0)}
	case "Q2":
		return DateRange{From: yearStart.AddDate(0, 3, 0), To: yearStart.AddDate(0, 6, 0)}
	case "Q3":
		return DateRange{From: yearStart.AddDate(0, 6, 0), To: yearStart.AddDate(0, 9, 0)}
	case "Q4":
		return DateRange{From: yearStart.AddDate(0, 9, 0), To: yearStart.AddDate(1, 0, 0)}
	default:
		return DateRange{From: yearStart}
	}
}
