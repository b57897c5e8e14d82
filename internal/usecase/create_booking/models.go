package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64     // ID пользователя-студента (из токена)
	TutorID   int64     // ID профиля репетитора
	StartTime time.Time // Начало занятия
	EndTime   time.Time // Конец занятия (не включается)
	Subject   *string   // Предмет (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	TutorID   int64
	StudentID int64
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Subject   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
