package domain

import "github.com/m04kA/TutorBookingService/pkg/types"

// AvailabilitySlot is a recurring weekly window in which a tutor accepts bookings
type AvailabilitySlot struct {
	ID        int64
	TutorID   int64
	DayOfWeek int // 0 = Sunday ... 6 = Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// IsValid checks day range, time format and StartTime < EndTime
func (s AvailabilitySlot) IsValid() bool {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return false
	}
	if s.StartTime.Validate() != nil || s.EndTime.Validate() != nil {
		return false
	}
	return s.StartTime.IsBefore(s.EndTime)
}

// Contains reports whether [start, end) lies inside the slot on the same day.
// The slot end is inclusive: a session may finish exactly when the slot closes.
func (s AvailabilitySlot) Contains(dayOfWeek int, start, end types.TimeString) bool {
	return s.DayOfWeek == dayOfWeek &&
		!start.IsBefore(s.StartTime) &&
		!end.IsAfter(s.EndTime)
}

// Overlaps reports whether two slots of the same day share any minute
func (s AvailabilitySlot) Overlaps(other AvailabilitySlot) bool {
	return s.DayOfWeek == other.DayOfWeek &&
		s.StartTime.IsBefore(other.EndTime) &&
		other.StartTime.IsBefore(s.EndTime)
}

// IsWithinAvailability returns true iff a single slot of dayOfWeek covers [start, end).
// Adjacent or overlapping slots are not merged.
func IsWithinAvailability(slots []AvailabilitySlot, dayOfWeek int, start, end types.TimeString) bool {
	for _, slot := range slots {
		if slot.Contains(dayOfWeek, start, end) {
			return true
		}
	}
	return false
}

// OverlappingSlotPairs returns index pairs of slots that overlap each other
func OverlappingSlotPairs(slots []AvailabilitySlot) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Overlaps(slots[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// SlotsForDay returns the slots declared for dayOfWeek
func SlotsForDay(slots []AvailabilitySlot, dayOfWeek int) []AvailabilitySlot {
	result := make([]AvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		if slot.DayOfWeek == dayOfWeek {
			result = append(result, slot)
		}
	}
	return result
}
