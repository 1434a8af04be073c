package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotStrings(slots []time.Time) []string {
	var out []string
	for _, s := range slots {
		out = append(out, s.Format("2006-01-02 15:04"))
	}
	return out
}

func TestNextAvailableSlots_SameDay(t *testing.T) {
	// Monday 10:00; doctor works Mondays.
	got := nextAvailableSlots(testNow, map[int]bool{0: true}, nil, 3, 90)

	assert.Equal(t, []string{
		"2025-06-02 10:30",
		"2025-06-02 11:00",
		"2025-06-02 11:30",
	}, slotStrings(got))
}

func TestNextAvailableSlots_SkipsTakenSlots(t *testing.T) {
	taken := map[time.Time]bool{
		time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC): true,
		time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC): true,
	}

	got := nextAvailableSlots(testNow, map[int]bool{0: true}, taken, 3, 90)

	assert.Equal(t, []string{
		"2025-06-02 11:00",
		"2025-06-02 12:00",
		"2025-06-02 12:30",
	}, slotStrings(got))
}

func TestNextAvailableSlots_SkipsLunch(t *testing.T) {
	noon := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	got := nextAvailableSlots(noon, map[int]bool{0: true}, nil, 3, 90)

	assert.Equal(t, []string{
		"2025-06-02 12:30",
		"2025-06-02 14:00",
		"2025-06-02 14:30",
	}, slotStrings(got))
}

func TestNextAvailableSlots_SpansWeeks(t *testing.T) {
	lateMonday := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)

	got := nextAvailableSlots(lateMonday, map[int]bool{0: true}, nil, 3, 90)

	assert.Equal(t, []string{
		"2025-06-02 18:30",
		"2025-06-09 08:00",
		"2025-06-09 08:30",
	}, slotStrings(got))
}

func TestNextAvailableSlots_EveryResultIsFutureAndOrdered(t *testing.T) {
	got := nextAvailableSlots(testNow, map[int]bool{2: true, 4: true}, nil, 3, 90)

	require.Len(t, got, 3)
	for i, s := range got {
		assert.True(t, s.After(testNow))
		if i > 0 {
			assert.True(t, got[i-1].Before(s))
		}
	}
}

// A doctor with no working weekdays must terminate with an empty result
// instead of scanning forever.
func TestNextAvailableSlots_NoWorkdaysTerminates(t *testing.T) {
	got := nextAvailableSlots(testNow, map[int]bool{}, nil, 3, 90)
	assert.Empty(t, got)
}

func TestNextAvailableSlots_HorizonBoundsPartialResults(t *testing.T) {
	// Doctor only works Mondays but the scan starting Tuesday ends Thursday.
	tuesday := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	got := nextAvailableSlots(tuesday, map[int]bool{0: true}, nil, 3, 3)
	assert.Empty(t, got)
}
