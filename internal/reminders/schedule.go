package reminders

import (
	"fmt"
	"time"
)

// nextOccurrence returns the next calendar occurrence of a recurring event
// on or after today. The event's year is a placeholder; only month and day
// matter. Feb 29 events are observed on Feb 28 in non-leap years.
func nextOccurrence(today time.Time, eventDate string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", eventDate, today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse event date %q: %w", eventDate, err)
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	occurrence := occurrenceInYear(day.Year(), parsed.Month(), parsed.Day(), today.Location())
	if occurrence.Before(day) {
		occurrence = occurrenceInYear(day.Year()+1, parsed.Month(), parsed.Day(), today.Location())
	}
	return occurrence, nil
}

func occurrenceInYear(year int, month time.Month, day int, loc *time.Location) time.Time {
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysUntil counts whole days from today to the next occurrence.
func daysUntil(today time.Time, eventDate string) (int, error) {
	occurrence, err := nextOccurrence(today, eventDate)
	if err != nil {
		return 0, err
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return int(occurrence.Sub(day).Hours() / 24), nil
}
