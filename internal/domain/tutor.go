package domain

import "time"

// TutorProfile is created together with a TUTOR account
type TutorProfile struct {
	ID         int64
	UserID     int64
	Name       string // users.name, filled by read queries
	Subjects   []string
	HourlyRate float64
	Bio        string
	Rating     float64

	Availability []AvailabilitySlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TutorSearchFilter фильтр каталога репетиторов (все поля опциональны)
type TutorSearchFilter struct {
	Subject   *string
	MaxRate   *float64
	MinRating *float64
	Search    *string // подстрока имени или описания, без учёта регистра
}
