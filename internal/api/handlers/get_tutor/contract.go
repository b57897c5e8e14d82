package get_tutor

import (
	"context"

	"github.com/m04kA/TutorBookingService/internal/service/tutors/models"
)

type TutorService interface {
	GetByID(ctx context.Context, tutorID int64) (*models.TutorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
