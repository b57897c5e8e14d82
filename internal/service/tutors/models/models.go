package models

import (
	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/pkg/types"
)

// SearchRequest фильтр каталога
type SearchRequest struct {
	Subject   *string
	MaxRate   *float64
	MinRating *float64
	Search    *string
}

// UpdateProfileRequest запрос на обновление профиля репетитора
type UpdateProfileRequest struct {
	Subjects   []string `json:"subjects" validate:"max=20,dive,required,max=100"`
	HourlyRate float64  `json:"hourlyRate" validate:"gte=0,lte=10000"`
	Bio        string   `json:"bio" validate:"max=2000"`
}

// SlotDTO слот недельного расписания
type SlotDTO struct {
	DayOfWeek int              `json:"dayOfWeek" validate:"gte=0,lte=6"`
	StartTime types.TimeString `json:"startTime" validate:"required"`
	EndTime   types.TimeString `json:"endTime" validate:"required"`
}

// SetAvailabilityRequest полная замена расписания
type SetAvailabilityRequest struct {
	Slots []SlotDTO `json:"slots" validate:"max=100,dive"`
}

// TutorResponse карточка репетитора
type TutorResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Subjects     []string  `json:"subjects"`
	HourlyRate   float64   `json:"hourlyRate"`
	Bio          string    `json:"bio"`
	Rating       float64   `json:"rating"`
	Availability []SlotDTO `json:"availability,omitempty"`
}

// TutorListResponse результат поиска
type TutorListResponse struct {
	Tutors []TutorResponse `json:"tutors"`
}

// AvailabilityResponse расписание репетитора
type AvailabilityResponse struct {
	TutorID int64     `json:"tutorId"`
	Slots   []SlotDTO `json:"slots"`
}

// FromDomainTutor конвертирует domain модель в DTO
func FromDomainTutor(t *domain.TutorProfile) *TutorResponse {
	if t == nil {
		return nil
	}

	subjects := t.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	resp := &TutorResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		Name:       t.Name,
		Subjects:   subjects,
		HourlyRate: t.HourlyRate,
		Bio:        t.Bio,
		Rating:     t.Rating,
	}
	if len(t.Availability) > 0 {
		resp.Availability = FromDomainSlots(t.Availability)
	}
	return resp
}

// FromDomainSlots конвертирует слоты в DTO
func FromDomainSlots(slots []domain.AvailabilitySlot) []SlotDTO {
	result := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotDTO{DayOfWeek: s.DayOfWeek, StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return result
}

// ToDomainSlots конвертирует DTO в domain слоты
func ToDomainSlots(tutorID int64, slots []SlotDTO) []domain.AvailabilitySlot {
	result := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, s := range slots {
		result = append(result, domain.AvailabilitySlot{
			TutorID:   tutorID,
			DayOfWeek: s.DayOfWeek,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return result
}
