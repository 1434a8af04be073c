package schedule

import "time"

const (
	// SlotInterval is the spacing between consecutive appointment slots.
	SlotInterval = 30 * time.Minute

	openingHour    = 8
	morningEnd     = 13
	afternoonStart = 14
	closingHour    = 19
)

// Generate returns the ordered grid of candidate start instants t with
// start <= t < end and t = start + k*interval, skipping the lunch block.
// The result is empty when start >= end.
func Generate(start, end time.Time, interval time.Duration) []time.Time {
	var slots []time.Time
	for t := start; t.Before(end); t = t.Add(interval) {
		if isLunch(t) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

// The clinic closes for lunch between 13:00 and 14:00, so the 13:00 and
// 13:30 grid points are never bookable.
func isLunch(t time.Time) bool {
	h, m, _ := t.Clock()
	return h == morningEnd && (m == 0 || m == 30)
}

// DaySlots returns the clinic-hours grid (08:00 to 19:00) for the calendar
// day of d.
func DaySlots(d time.Time) []time.Time {
	y, m, day := d.Date()
	opening := time.Date(y, m, day, openingHour, 0, 0, 0, d.Location())
	closing := time.Date(y, m, day, closingHour, 0, 0, 0, d.Location())
	return Generate(opening, closing, SlotInterval)
}

// InOperatingHours reports whether the time of day of t falls inside clinic
// operating hours: [08:00, 13:00) or [14:00, 19:00).
func InOperatingHours(t time.Time) bool {
	h := t.Hour()
	return (h >= openingHour && h < morningEnd) || (h >= afternoonStart && h < closingHour)
}

// ISOWeekday maps t's weekday to the affiliation convention 0=Monday through
// 6=Sunday.
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
