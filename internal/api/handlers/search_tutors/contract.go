package search_tutors

import (
	"context"

	"github.com/m04kA/TutorBookingService/internal/service/tutors/models"
)

type TutorService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.TutorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
