package core

import "time"

const (
	// WindowMonth covers the trailing calendar month, charted per day.
	WindowMonth Window = "1M"
	// WindowHalfYear covers the trailing six calendar months, charted per month.
	WindowHalfYear Window = "6M"
	// WindowYear covers the trailing calendar year, charted per month.
	WindowYear Window = "1Y"
)

// Window is a symbolic chart range ending at "now". The tokens match the
// period selector of the trends chart.
type Window string

// ParseWindow validates a window token from the API.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowMonth, WindowHalfYear, WindowYear:
		return Window(s), nil
	}
	return "", ErrInvalidWindow
}

// Range maps the window to the concrete [start, end] date interval anchored
// at now. Boundaries are calendar days, inclusive on both ends.
func (w Window) Range(now time.Time) (start, end Date) {
	end = DateOf(now)
	switch w {
	case WindowHalfYear:
		start = monthsBack(end, 6)
	case WindowYear:
		start = monthsBack(end, 12)
	default:
		start = monthsBack(end, 1)
	}
	return start, end
}

// monthsBack subtracts whole calendar months, clamping the day to the target
// month's length. time.AddDate would normalize Mar 31 - 1 month into March
// again; clamping keeps the result inside the expected month (Feb 28/29).
func monthsBack(d Date, months int) Date {
	year, month := d.Year(), int(d.Month())
	month -= months
	for month < 1 {
		month += 12
		year--
	}
	day := d.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

func daysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
