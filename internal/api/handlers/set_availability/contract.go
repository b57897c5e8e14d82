package set_availability

import (
	"context"

	"github.com/m04kA/TutorBookingService/internal/service/tutors/models"
)

type TutorService interface {
	SetAvailability(ctx context.Context, userID int64, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
