package update_tutor_profile

import (
	"context"

	"github.com/m04kA/TutorBookingService/internal/service/tutors/models"
)

type TutorService interface {
	UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.TutorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
