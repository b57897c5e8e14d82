package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TutorBookingService/internal/domain"
	bookingRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/booking"
	studentRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/student"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
	"github.com/m04kA/TutorBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	tutorRepo   TutorRepository
	studentRepo StudentRepository
	txManager   TransactionManager
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	tutorRepo TutorRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		tutorRepo:   tutorRepo,
		studentRepo: studentRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только его студент и репетитор
func (s *Service) GetByID(ctx context.Context, id int64, caller models.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, caller.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkParticipant(ctx, booking, caller); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", caller.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования текущего пользователя
// Студент видит свои бронирования, репетитор - бронирования своего профиля
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d role=%s, status=%v", req.Caller.UserID, req.Caller.Role, req.Status)

	var filter domain.BookingsFilter
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.Caller.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	profileID, err := s.resolveProfile(ctx, req.Caller)
	if err != nil {
		return nil, err
	}

	switch req.Caller.Role {
	case domain.RoleTutor:
		filter.TutorID = &profileID
	default:
		filter.StudentID = &profileID
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Caller.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for user=%d", len(bookings), req.Caller.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования
// Репетитор может подтвердить, завершить или отменить, студент - только отменить.
// Отмена освобождает время репетитора.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.Caller.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || newStatus == domain.StatusPending {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !roleMaySet(req.Caller.Role, newStatus) {
		s.logger.Warn("UpdateStatus: role=%s may not set status=%s", req.Caller.Role, newStatus)
		return nil, ErrAccessDenied
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// В транзакции строка блокируется до коммита
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := s.checkParticipant(ctx, booking, req.Caller); err != nil {
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", bookingID, booking.Status, newStatus)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			return err
		}

		updated, err = s.bookingRepo.GetByID(ctx, bookingID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrProfileNotFound):
			return nil, err
		}
		s.logger.Error("UpdateStatus: failed to update booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)

	s.notifyCounterpart(ctx, updated, req.Caller.Role)

	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

// roleMaySet проверяет, может ли роль устанавливать статус
func roleMaySet(role domain.Role, status domain.BookingStatus) bool {
	switch role {
	case domain.RoleTutor:
		return status == domain.StatusConfirmed || status == domain.StatusCompleted || status == domain.StatusCancelled
	case domain.RoleStudent:
		return status == domain.StatusCancelled
	}
	return false
}

// resolveProfile возвращает ID профиля пользователя для его роли
func (s *Service) resolveProfile(ctx context.Context, caller models.Caller) (int64, error) {
	switch caller.Role {
	case domain.RoleTutor:
		tutor, err := s.tutorRepo.GetByUserID(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, tutorRepo.ErrTutorNotFound) {
				s.logger.Warn("resolveProfile: no tutor profile for user=%d", caller.UserID)
				return 0, ErrProfileNotFound
			}
			s.logger.Error("resolveProfile: repository error for user=%d: %v", caller.UserID, err)
			return 0, fmt.Errorf("%w: resolveProfile - repository error: %v", ErrInternal, err)
		}
		return tutor.ID, nil
	case domain.RoleStudent:
		student, err := s.studentRepo.GetByUserID(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				s.logger.Warn("resolveProfile: no student profile for user=%d", caller.UserID)
				return 0, ErrProfileNotFound
			}
			s.logger.Error("resolveProfile: repository error for user=%d: %v", caller.UserID, err)
			return 0, fmt.Errorf("%w: resolveProfile - repository error: %v", ErrInternal, err)
		}
		return student.ID, nil
	}

	return 0, fmt.Errorf("%w: unknown role %q", ErrAccessDenied, caller.Role)
}

// checkParticipant проверяет, что пользователь - студент или репетитор бронирования
func (s *Service) checkParticipant(ctx context.Context, booking *domain.Booking, caller models.Caller) error {
	profileID, err := s.resolveProfile(ctx, caller)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return ErrAccessDenied
		}
		return err
	}

	switch caller.Role {
	case domain.RoleTutor:
		if booking.TutorID == profileID {
			return nil
		}
	case domain.RoleStudent:
		if booking.StudentID == profileID {
			return nil
		}
	}

	return ErrAccessDenied
}

// notifyCounterpart уведомляет вторую сторону бронирования
// Ошибки только логируются: смена статуса уже зафиксирована
func (s *Service) notifyCounterpart(ctx context.Context, booking *domain.Booking, actor domain.Role) {
	var recipientID int64

	if actor == domain.RoleTutor {
		student, err := s.studentRepo.GetByID(ctx, booking.StudentID)
		if err != nil {
			s.logger.Warn("notifyCounterpart: failed to get student id=%d: %v", booking.StudentID, err)
			return
		}
		recipientID = student.UserID
	} else {
		tutor, err := s.tutorRepo.GetByID(ctx, booking.TutorID)
		if err != nil {
			s.logger.Warn("notifyCounterpart: failed to get tutor id=%d: %v", booking.TutorID, err)
			return
		}
		recipientID = tutor.UserID
	}

	message := fmt.Sprintf("Booking #%d on %s is now %s",
		booking.ID, booking.StartTime.Format("2006-01-02 15:04 MST"), booking.Status)

	if err := s.notifier.Notify(ctx, recipientID, domain.NotificationBookingStatusChanged, "Booking status changed", message); err != nil {
		s.logger.Warn("notifyCounterpart: failed to notify user=%d about booking id=%d: %v", recipientID, booking.ID, err)
	}
}
