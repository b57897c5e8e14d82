package create_booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/TutorBookingService/internal/domain"
	bookingRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/booking"
	studentRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/student"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
)

// memStore хранилище в памяти, реализующее репозитории usecase
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
	tutors   map[int64]*domain.TutorProfile
	slots    map[int64][]domain.AvailabilitySlot
	students map[int64]*domain.StudentProfile // по user_id

	// failCreate ошибки, которые Create вернёт по очереди перед успешной записью
	failCreate []error
	creates    int
}

func newMemStore() *memStore {
	return &memStore{
		tutors:   make(map[int64]*domain.TutorProfile),
		slots:    make(map[int64][]domain.AvailabilitySlot),
		students: make(map[int64]*domain.StudentProfile),
	}
}

func (s *memStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++
	if len(s.failCreate) > 0 {
		err := s.failCreate[0]
		s.failCreate = s.failCreate[1:]
		return nil, err
	}

	s.nextID++
	stored := *b
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.bookings = append(s.bookings, &stored)

	result := stored
	return &result, nil
}

func (s *memStore) FindOverlapping(_ context.Context, tutorID int64, from, to time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed := make(map[domain.BookingStatus]bool, len(statuses))
	for _, st := range statuses {
		allowed[st] = true
	}

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.TutorID == tutorID && allowed[b.Status] && b.Overlaps(from, to) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.TutorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tutors[id]
	if !ok {
		return nil, tutorRepo.ErrTutorNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *memStore) LockByID(ctx context.Context, id int64) error {
	_, err := s.GetByID(ctx, id)
	return err
}

func (s *memStore) GetAvailability(_ context.Context, tutorID int64) ([]domain.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AvailabilitySlot(nil), s.slots[tutorID]...), nil
}

func (s *memStore) GetByUserID(_ context.Context, userID int64) (*domain.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.students[userID]
	if !ok {
		return nil, studentRepo.ErrStudentNotFound
	}
	return p, nil
}

func (s *memStore) activeBookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.IsActive() {
			result = append(result, b)
		}
	}
	return result
}

type fakeTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []int64
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, userID int64, _, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, userID)
	return nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *fakeMetrics) RecordBookingAdmission(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

func (m *fakeMetrics) count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[outcome]
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func overlapErr() error {
	return fmt.Errorf("%w: Create - tutor_id=1: %w", bookingRepo.ErrOverlap, &pq.Error{Code: "23P01"})
}
