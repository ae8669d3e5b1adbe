package domain

import (
	"fmt"
	"time"
)

// DateLayout is the date-only format used in requests and summary keys.
const DateLayout = "2006-01-02"

// DateWindow is an inclusive time range.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateWindow validates that start is not after end.
func NewDateWindow(start, end time.Time) (DateWindow, error) {
	if start.After(end) {
		return DateWindow{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return DateWindow{Start: start, End: end}, nil
}

// LastDays returns the window [now-days, now].
func LastDays(now time.Time, days int) DateWindow {
	return DateWindow{Start: now.AddDate(0, 0, -days), End: now}
}

// Contains reports whether t lies inside the window, bounds included.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DateOnly truncates both bounds to UTC midnight, the granularity summaries are keyed on.
func (w DateWindow) DateOnly() DateWindow {
	return DateWindow{Start: TruncateDay(w.Start), End: TruncateDay(w.End)}
}

// EndOfDay extends End to the last instant of its day.
func (w DateWindow) EndOfDay() DateWindow {
	return DateWindow{Start: w.Start, End: TruncateDay(w.End).Add(24*time.Hour - time.Nanosecond)}
}

// TruncateDay returns midnight UTC of t's calendar day.
func TruncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := TruncateDay(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

// YearMonth identifies one monthly archive page.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MonthsInRange lists every month touched by the window, oldest first.
func MonthsInRange(w DateWindow) []YearMonth {
	start := w.Start.UTC()
	end := w.End.UTC()
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []YearMonth
	for !cur.After(last) {
		months = append(months, YearMonth{Year: cur.Year(), Month: cur.Month()})
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}
