package appointment

import (
	"time"

	"github.com/saudehub/clinic-scheduling/internal/schedule"
)

// slotsPerDoctor is how many upcoming free slots the availability listing
// offers per doctor.
const slotsPerDoctor = 3

// nextAvailableSlots walks forward from now, day by day, over the doctor's
// working weekdays and collects up to limit clinic-hour slots that are
// strictly in the future and not in the taken set. The scan stops after
// scanDays days even if fewer than limit slots were found, so a doctor with
// no working weekdays yields an empty result instead of a spin.
func nextAvailableSlots(now time.Time, workdays map[int]bool, taken map[time.Time]bool, limit, scanDays int) []time.Time {
	var free []time.Time
	day := now
	for i := 0; i < scanDays && len(free) < limit; i++ {
		if workdays[schedule.ISOWeekday(day)] {
			for _, t := range schedule.DaySlots(day) {
				if len(free) >= limit {
					break
				}
				if t.After(now) && !taken[t] {
					free = append(free, t)
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return free
}
