package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TutorBookingService/internal/domain"
	bookingRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/booking"
	studentRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/student"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
	"github.com/m04kA/TutorBookingService/pkg/txmanager"
)

// maxAttempts полная проверка повторяется один раз при конфликте записи в БД
const maxAttempts = 2

const outcomeError = "error"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	tutorRepo    TutorRepository
	studentRepo  StudentRepository
	txManager    TransactionManager
	locker       TutorLocker
	notifier     Notifier
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location определяет, в каком часовом поясе вычисляются день недели и время суток
func NewUseCase(
	bookingRepo BookingRepository,
	tutorRepo TutorRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	locker TutorLocker,
	notifier Notifier,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		tutorRepo:    tutorRepo,
		studentRepo:  studentRepo,
		txManager:    txManager,
		locker:       locker,
		notifier:     notifier,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Приём бронирований одного репетитора сериализован: блокировкой в процессе,
// блокировкой строки репетитора в сериализуемой транзакции и ограничением БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, tutor=%d, start=%s, end=%s",
		req.UserID, req.TutorID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проекция интервала на календарный день
	iv, err := projectInterval(req, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid interval: %v", err)
		return nil, err
	}

	// 3. Занятие не может начинаться в прошлом
	if err := validateNotInPast(iv, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: start %s is in the past", iv.Start.Format(time.RFC3339))
		return nil, err
	}

	// 4. Получаем профиль студента
	student, err := uc.studentRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			uc.logger.Warn("CreateBooking: student profile for user=%d not found", req.UserID)
			return nil, ErrStudentProfileNotFound
		}
		uc.logger.Error("CreateBooking: failed to get student profile for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get student profile: %v", ErrInternal, err)
	}

	// 5. Получаем репетитора
	tutor, err := uc.tutorRepo.GetByID(ctx, req.TutorID)
	if err != nil {
		if errors.Is(err, tutorRepo.ErrTutorNotFound) {
			uc.logger.Warn("CreateBooking: tutor id=%d not found", req.TutorID)
			return nil, ErrTutorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tutor id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get tutor: %v", ErrInternal, err)
	}

	// 6. Берём блокировку репетитора на всё время проверки и записи
	release, err := uc.locker.Acquire(ctx, req.TutorID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to acquire lock for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to acquire tutor lock: %v", ErrInternal, err)
	}
	defer release()

	booking := &domain.Booking{
		TutorID:   req.TutorID,
		StudentID: student.ID,
		StartTime: iv.Start,
		EndTime:   iv.End,
		Status:    domain.StatusPending,
		Subject:   subjectOrDefault(req.Subject),
	}

	// 7. Проверка и запись; конфликт записи в БД перезапускает проверку целиком один раз
	var created *domain.Booking
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		created, err = uc.admit(ctx, booking, iv)
		if err == nil || !isWriteConflict(err) {
			break
		}
		uc.logger.Warn("CreateBooking: write conflict for tutor=%d on attempt %d/%d: %v",
			req.TutorID, attempt, maxAttempts, err)
	}

	if err != nil {
		return nil, uc.finishWithError(req, err)
	}

	uc.metrics.RecordBookingAdmission(string(domain.AdmissionAccepted))
	uc.logger.Info("CreateBooking: successfully created booking id=%d for tutor=%d", created.ID, created.TutorID)

	// 8. Уведомляем репетитора (ошибка не отменяет бронирование)
	uc.notifyTutor(ctx, tutor, created)

	return &Response{
		ID:        created.ID,
		TutorID:   created.TutorID,
		StudentID: created.StudentID,
		StartTime: created.StartTime,
		EndTime:   created.EndTime,
		Status:    string(created.Status),
		Subject:   created.Subject,
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	}, nil
}

// admit выполняет одну попытку приёма в сериализуемой транзакции
func (uc *UseCase) admit(ctx context.Context, booking *domain.Booking, iv domain.DayInterval) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем строку репетитора: параллельные транзакции других инстансов ждут здесь
		if err := uc.tutorRepo.LockByID(txCtx, booking.TutorID); err != nil {
			if errors.Is(err, tutorRepo.ErrTutorNotFound) {
				return ErrTutorNotFound
			}
			return fmt.Errorf("%w: failed to lock tutor: %w", ErrInternal, err)
		}

		// 7.2. Расписание репетитора
		slots, err := uc.tutorRepo.GetAvailability(txCtx, booking.TutorID)
		if err != nil {
			return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
		}

		// 7.3. Активные брони этого дня
		existing, err := uc.bookingRepo.FindOverlapping(txCtx, booking.TutorID, iv.DayStart, iv.DayEnd, domain.ActiveStatuses)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 7.4. Решение
		switch domain.DecideAdmission(slots, existing, booking.TutorID, iv) {
		case domain.AdmissionRejectedNotAvailable:
			return ErrNotAvailable
		case domain.AdmissionRejectedConflict:
			return ErrConflict
		}

		// 7.5. Сохраняем бронирование в статусе pending
		toCreate := *booking
		created, err := uc.bookingRepo.Create(txCtx, &toCreate)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// finishWithError приводит ошибку попытки к ошибке usecase и фиксирует исход
func (uc *UseCase) finishWithError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrNotAvailable):
		uc.metrics.RecordBookingAdmission(string(domain.AdmissionRejectedNotAvailable))
		uc.logger.Warn("CreateBooking: tutor=%d not available at %s-%s",
			req.TutorID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))
		return ErrNotAvailable
	case errors.Is(err, ErrConflict), errors.Is(err, bookingRepo.ErrOverlap):
		uc.metrics.RecordBookingAdmission(string(domain.AdmissionRejectedConflict))
		uc.logger.Warn("CreateBooking: tutor=%d already booked at %s-%s",
			req.TutorID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))
		return ErrConflict
	case errors.Is(err, ErrTutorNotFound):
		uc.logger.Warn("CreateBooking: tutor id=%d disappeared during admission", req.TutorID)
		return ErrTutorNotFound
	}

	uc.metrics.RecordBookingAdmission(outcomeError)
	uc.logger.Error("CreateBooking: failed to create booking for tutor=%d: %v", req.TutorID, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func (uc *UseCase) notifyTutor(ctx context.Context, tutor *domain.TutorProfile, booking *domain.Booking) {
	message := fmt.Sprintf("New %s session requested for %s - %s",
		booking.Subject,
		booking.StartTime.In(uc.location).Format("2006-01-02 15:04"),
		booking.EndTime.In(uc.location).Format(domain.TimeFormat),
	)

	if err := uc.notifier.Notify(ctx, tutor.UserID, domain.NotificationBookingCreated, "New booking request", message); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify tutor user=%d about booking id=%d: %v",
			tutor.UserID, booking.ID, err)
	}
}

// isWriteConflict сообщает, что попытку можно повторить:
// вставка нарушила ограничение пересечений или транзакция не прошла сериализацию
func isWriteConflict(err error) bool {
	return errors.Is(err, bookingRepo.ErrOverlap) || txmanager.IsSerializationFailure(err)
}
