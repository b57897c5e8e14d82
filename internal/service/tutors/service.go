package tutors

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/TutorBookingService/internal/domain"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
	"github.com/m04kA/TutorBookingService/internal/service/tutors/models"
)

// Service сервис каталога и профилей репетиторов
type Service struct {
	tutorRepo TutorRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса репетиторов
func NewService(tutorRepo TutorRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		tutorRepo: tutorRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Search возвращает репетиторов по фильтру
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.TutorListResponse, error) {
	filter := domain.TutorSearchFilter{
		Subject:   trimmed(req.Subject),
		MaxRate:   req.MaxRate,
		MinRating: req.MinRating,
		Search:    trimmed(req.Search),
	}

	list, err := s.tutorRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	resp := &models.TutorListResponse{Tutors: make([]models.TutorResponse, 0, len(list))}
	for _, t := range list {
		resp.Tutors = append(resp.Tutors, *models.FromDomainTutor(t))
	}

	s.logger.Info("Search: found %d tutors", len(resp.Tutors))
	return resp, nil
}

// GetByID возвращает профиль репетитора вместе с расписанием
func (s *Service) GetByID(ctx context.Context, tutorID int64) (*models.TutorResponse, error) {
	s.logger.Info("GetByID: fetching tutor id=%d", tutorID)

	tutor, err := s.tutorRepo.GetByID(ctx, tutorID)
	if err != nil {
		return nil, s.mapRepoError("GetByID", tutorID, err)
	}

	slots, err := s.tutorRepo.GetAvailability(ctx, tutor.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to get availability for tutor id=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: GetByID - get availability: %v", ErrInternal, err)
	}
	tutor.Availability = slots

	resp := models.FromDomainTutor(tutor)
	resp.Availability = models.FromDomainSlots(slots)
	return resp, nil
}

// UpdateProfile обновляет профиль репетитора, принадлежащий userID
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.TutorResponse, error) {
	s.logger.Info("UpdateProfile: updating profile of user=%d", userID)

	subjects, err := normalizeSubjects(req.Subjects)
	if err != nil {
		s.logger.Warn("UpdateProfile: invalid subjects for user=%d: %v", userID, err)
		return nil, err
	}
	if req.HourlyRate < 0 || req.HourlyRate > domain.MaxHourlyRate || math.IsNaN(req.HourlyRate) {
		return nil, fmt.Errorf("%w: hourlyRate must be between 0 and %d", ErrInvalidInput, domain.MaxHourlyRate)
	}
	if len([]rune(req.Bio)) > domain.MaxBioLength {
		return nil, fmt.Errorf("%w: bio must be at most %d characters", ErrInvalidInput, domain.MaxBioLength)
	}

	tutor, err := s.tutorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapRepoError("UpdateProfile", userID, err)
	}

	tutor.Subjects = subjects
	tutor.HourlyRate = req.HourlyRate
	tutor.Bio = strings.TrimSpace(req.Bio)

	if err := s.tutorRepo.UpdateProfile(ctx, tutor); err != nil {
		return nil, s.mapRepoError("UpdateProfile", userID, err)
	}

	s.logger.Info("UpdateProfile: tutor id=%d updated", tutor.ID)
	return models.FromDomainTutor(tutor), nil
}

// SetAvailability заменяет недельное расписание репетитора целиком
// Пересекающиеся слоты допускаются, но логируются
func (s *Service) SetAvailability(ctx context.Context, userID int64, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("SetAvailability: user=%d, slots=%d", userID, len(req.Slots))

	if len(req.Slots) > domain.MaxAvailabilitySlots {
		return nil, fmt.Errorf("%w: at most %d slots allowed", ErrInvalidInput, domain.MaxAvailabilitySlots)
	}

	tutor, err := s.tutorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapRepoError("SetAvailability", userID, err)
	}

	slots := models.ToDomainSlots(tutor.ID, req.Slots)
	for i, slot := range slots {
		if !slot.IsValid() {
			s.logger.Warn("SetAvailability: invalid slot #%d for tutor id=%d: day=%d %s-%s",
				i, tutor.ID, slot.DayOfWeek, slot.StartTime, slot.EndTime)
			return nil, fmt.Errorf("%w: slot #%d must have day 0-6 and HH:MM start before end", ErrInvalidSlot, i)
		}
	}

	for _, pair := range domain.OverlappingSlotPairs(slots) {
		a, b := slots[pair[0]], slots[pair[1]]
		s.logger.Warn("SetAvailability: tutor id=%d has overlapping slots day=%d %s-%s and %s-%s",
			tutor.ID, a.DayOfWeek, a.StartTime, a.EndTime, b.StartTime, b.EndTime)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.tutorRepo.ReplaceAvailability(ctx, tutor.ID, slots)
	})
	if err != nil {
		s.logger.Error("SetAvailability: failed to replace slots for tutor id=%d: %v", tutor.ID, err)
		return nil, fmt.Errorf("%w: SetAvailability - replace availability: %v", ErrInternal, err)
	}

	s.logger.Info("SetAvailability: tutor id=%d now has %d slots", tutor.ID, len(slots))
	return &models.AvailabilityResponse{
		TutorID: tutor.ID,
		Slots:   models.FromDomainSlots(slots),
	}, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, tutorRepo.ErrTutorNotFound) {
		s.logger.Warn("%s: tutor not found for id=%d", op, id)
		return ErrTutorNotFound
	}
	s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// normalizeSubjects убирает пробелы и дубликаты, сохраняя порядок
func normalizeSubjects(subjects []string) ([]string, error) {
	if len(subjects) > domain.MaxSubjects {
		return nil, fmt.Errorf("%w: at most %d subjects allowed", ErrInvalidInput, domain.MaxSubjects)
	}

	seen := make(map[string]struct{}, len(subjects))
	result := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		subject = strings.TrimSpace(subject)
		if subject == "" {
			return nil, fmt.Errorf("%w: subject must not be empty", ErrInvalidInput)
		}
		key := strings.ToLower(subject)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, subject)
	}
	return result, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
