package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TutorBookingService/pkg/types"
)

func slot(day int, start, end string) AvailabilitySlot {
	return AvailabilitySlot{DayOfWeek: day, StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func TestIsWithinAvailability(t *testing.T) {
	slots := []AvailabilitySlot{
		slot(1, "08:00", "10:00"),
		slot(1, "10:00", "12:00"),
		slot(3, "14:00", "16:00"),
	}

	tests := []struct {
		name  string
		day   int
		start string
		end   string
		want  bool
	}{
		{name: "inside", day: 1, start: "08:30", end: "09:30", want: true},
		{name: "exact slot", day: 1, start: "08:00", end: "10:00", want: true},
		{name: "touching end is inclusive", day: 1, start: "09:00", end: "10:00", want: true},
		{name: "one minute past end", day: 1, start: "09:00", end: "10:01", want: false},
		{name: "starts before slot", day: 1, start: "07:59", end: "09:00", want: false},
		{name: "adjacent slots are not merged", day: 1, start: "09:30", end: "10:30", want: false},
		{name: "wrong day", day: 2, start: "08:30", end: "09:30", want: false},
		{name: "other day slot", day: 3, start: "15:00", end: "16:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsWithinAvailability(slots, tt.day, types.TimeString(tt.start), types.TimeString(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWithinAvailability_NoSlots(t *testing.T) {
	assert.False(t, IsWithinAvailability(nil, 1, "09:00", "10:00"))
}

// Для любого слота и интервала того же дня: true тогда и только тогда, когда интервал внутри слота
func TestIsWithinAvailability_ContainmentProperty(t *testing.T) {
	s := slot(5, "10:00", "14:00")
	slotStart, _ := s.StartTime.Minutes()
	slotEnd, _ := s.EndTime.Minutes()

	for start := 9 * 60; start < 15*60; start += 15 {
		for end := start + 15; end <= 15*60; end += 15 {
			startTS, err := types.NewTimeStringFromMinutes(start)
			assert.NoError(t, err)
			endTS, err := types.NewTimeStringFromMinutes(end)
			assert.NoError(t, err)

			want := start >= slotStart && end <= slotEnd
			got := IsWithinAvailability([]AvailabilitySlot{s}, 5, startTS, endTS)
			assert.Equal(t, want, got, "interval %s-%s", startTS, endTS)
		}
	}
}

func TestAvailabilitySlot_IsValid(t *testing.T) {
	assert.True(t, slot(0, "09:00", "10:00").IsValid())
	assert.True(t, slot(6, "00:00", "23:59").IsValid())
	assert.False(t, slot(7, "09:00", "10:00").IsValid())
	assert.False(t, slot(-1, "09:00", "10:00").IsValid())
	assert.False(t, slot(1, "10:00", "10:00").IsValid())
	assert.False(t, slot(1, "11:00", "10:00").IsValid())
	assert.False(t, slot(1, "9:00", "10:00").IsValid())
}

func TestOverlappingSlotPairs(t *testing.T) {
	slots := []AvailabilitySlot{
		slot(1, "08:00", "10:00"),
		slot(1, "09:00", "11:00"),
		slot(1, "11:00", "12:00"),
		slot(2, "09:00", "11:00"),
	}

	assert.Equal(t, [][2]int{{0, 1}}, OverlappingSlotPairs(slots))
	assert.Empty(t, OverlappingSlotPairs(slots[2:]))
}

func TestSlotsForDay(t *testing.T) {
	slots := []AvailabilitySlot{slot(1, "08:00", "10:00"), slot(2, "09:00", "11:00"), slot(1, "12:00", "13:00")}

	got := SlotsForDay(slots, 1)
	assert.Len(t, got, 2)
	assert.Empty(t, SlotsForDay(slots, 4))
}
