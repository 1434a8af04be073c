package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestGenerate_GridProperties(t *testing.T) {
	start := at(8, 0)
	end := at(19, 0)

	slots := Generate(start, end, SlotInterval)

	// 22 half-hour points in [08:00, 19:00) minus the two lunch points.
	require.Len(t, slots, 20)

	for i, s := range slots {
		assert.False(t, s.Before(start), "slot %d before start", i)
		assert.True(t, s.Before(end), "slot %d not before end", i)
		assert.Zero(t, s.Sub(start)%SlotInterval, "slot %d off the grid", i)
		if i > 0 {
			assert.True(t, slots[i-1].Before(s), "slots out of order at %d", i)
		}
	}
}

func TestGenerate_ExcludesLunch(t *testing.T) {
	slots := Generate(at(12, 30), at(14, 30), SlotInterval)

	var got []string
	for _, s := range slots {
		got = append(got, s.Format("15:04"))
	}
	assert.Equal(t, []string{"12:30", "14:00"}, got)
}

func TestGenerate_EmptyWhenStartNotBeforeEnd(t *testing.T) {
	assert.Empty(t, Generate(at(10, 0), at(10, 0), SlotInterval))
	assert.Empty(t, Generate(at(11, 0), at(10, 0), SlotInterval))
}

func TestDaySlots_CoversClinicHours(t *testing.T) {
	slots := DaySlots(time.Date(2025, 6, 2, 15, 42, 7, 0, time.UTC))

	require.Len(t, slots, 20)
	assert.Equal(t, "08:00", slots[0].Format("15:04"))
	assert.Equal(t, "18:30", slots[len(slots)-1].Format("15:04"))
	for _, s := range slots {
		assert.NotEqual(t, "13:00", s.Format("15:04"))
		assert.NotEqual(t, "13:30", s.Format("15:04"))
	}
}

func TestInOperatingHours(t *testing.T) {
	cases := []struct {
		hour, min, sec int
		want           bool
	}{
		{7, 59, 59, false},
		{8, 0, 0, true},
		{12, 30, 0, true},
		{12, 59, 59, true},
		{13, 0, 0, false},
		{13, 15, 0, false},
		{13, 59, 59, false},
		{14, 0, 0, true},
		{18, 59, 59, true},
		{19, 0, 0, false},
		{22, 0, 0, false},
	}
	for _, tc := range cases {
		got := InOperatingHours(time.Date(2025, 6, 2, tc.hour, tc.min, tc.sec, 0, time.UTC))
		assert.Equalf(t, tc.want, got, "%02d:%02d:%02d", tc.hour, tc.min, tc.sec)
	}
}

func TestISOWeekday(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, ISOWeekday(monday.AddDate(0, 0, i)))
	}
}
