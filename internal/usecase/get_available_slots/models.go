package get_available_slots

import (
	"time"

	"github.com/m04kA/TutorBookingService/pkg/types"
)

// Request модель запроса на получение свободного времени репетитора
type Request struct {
	TutorID         int64     // ID профиля репетитора
	Date            time.Time // Дата (время суток игнорируется)
	DurationMinutes int       // Длительность занятия, 0 = по умолчанию
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	TutorID         int64
	DurationMinutes int
	Slots           []Slot
}

// Slot свободный интервал, который можно передать в создание бронирования
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Start     types.TimeString // Время начала в часовом поясе сервиса
	End       types.TimeString
}
