package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
)

// UseCase use case для получения свободного времени репетитора
type UseCase struct {
	bookingRepo  BookingRepository
	tutorRepo    TutorRepository
	location     *time.Location
	stepMinutes  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tutorRepo TutorRepository,
	location *time.Location,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if stepMinutes <= 0 {
		stepMinutes = domain.MinSessionMinutes
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		tutorRepo:    tutorRepo,
		location:     location,
		stepMinutes:  stepMinutes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tutor=%d, date=%s, duration=%d",
		req.TutorID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSessionMinutes
	}

	// 2. Дата в часовом поясе сервиса
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	now := uc.timeProvider.Now()

	if err := validateDate(day, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем репетитора
	if _, err := uc.tutorRepo.GetByID(ctx, req.TutorID); err != nil {
		if errors.Is(err, tutorRepo.ErrTutorNotFound) {
			uc.logger.Warn("GetAvailableSlots: tutor id=%d not found", req.TutorID)
			return nil, ErrTutorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get tutor id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get tutor: %v", ErrInternal, err)
	}

	// 4. Расписание
	windows, err := uc.tutorRepo.GetAvailability(ctx, req.TutorID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Активные брони этого дня
	bookings, err := uc.bookingRepo.FindOverlapping(ctx, req.TutorID, day, day.AddDate(0, 0, 1), domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем свободные интервалы
	slots, err := generateSlots(windows, bookings, req.TutorID, day, now, duration, uc.stepMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for tutor=%d, date=%s",
		len(slots), req.TutorID, day.Format(domain.DateFormat))

	return &Response{
		Date:            day,
		TutorID:         req.TutorID,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
