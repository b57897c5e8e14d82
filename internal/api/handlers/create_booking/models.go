package create_booking

import (
	"time"

	createBooking "github.com/m04kA/TutorBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// startTime и endTime передаются в RFC 3339, интервал [startTime, endTime)
type CreateBookingRequest struct {
	TutorID   int64     `json:"tutorId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	Subject   *string   `json:"subject,omitempty" validate:"omitempty,max=255"` // domain.MaxBookingSubjectLength
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	TutorID   int64  `json:"tutorId"`
	StudentID int64  `json:"studentId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:    userID,
		TutorID:   r.TutorID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Subject:   r.Subject,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		TutorID:   resp.TutorID,
		StudentID: resp.StudentID,
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
		Status:    resp.Status,
		Subject:   resp.Subject,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
