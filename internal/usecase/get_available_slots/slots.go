package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/pkg/types"
)

// generateSlots генерирует свободные интервалы длительностью duration на день day
// Начала идут с шагом step от начала каждого окна расписания; интервал не выходит за окно
// Отбрасываются интервалы, начинающиеся не позже now, и пересекающиеся с активными бронями
func generateSlots(
	windows []domain.AvailabilitySlot,
	bookings []*domain.Booking,
	tutorID int64,
	day time.Time,
	now time.Time,
	duration int,
	step int,
) ([]Slot, error) {
	seen := make(map[types.TimeString]bool)
	result := make([]Slot, 0)

	for _, window := range domain.SlotsForDay(windows, int(day.Weekday())) {
		windowStart, err := window.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		windowEnd, err := window.EndTime.Minutes()
		if err != nil {
			return nil, err
		}

		for start := windowStart; start+duration <= windowEnd; start += step {
			startTS, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				return nil, err
			}
			// Окна одного дня могут пересекаться, одинаковые начала не дублируем
			if seen[startTS] {
				continue
			}

			startAt, err := startTS.OnDate(day)
			if err != nil {
				return nil, err
			}
			endAt := startAt.Add(time.Duration(duration) * time.Minute)

			if !startAt.After(now) {
				continue
			}
			if domain.HasConflict(bookings, tutorID, startAt, endAt) {
				continue
			}

			seen[startTS] = true
			result = append(result, Slot{
				StartTime: startAt,
				EndTime:   endAt,
				Start:     startTS,
				End:       types.NewTimeString(endAt),
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})

	return result, nil
}
