package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/pkg/dbmetrics"
	"github.com/m04kA/TutorBookingService/pkg/psqlbuilder"
)

// pgExclusionViolation SQLSTATE exclusion_violation
const pgExclusionViolation = "23P01"

// Колонки бронирования с именами участников (для чтения)
var detailedColumns = []string{
	"b.id",
	"b.tutor_id",
	"b.student_id",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.subject",
	"COALESCE(tu.name, '')",
	"COALESCE(su.name, '')",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Пересечение с активной бронью того же репетитора отсекается ограничением БД
// и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"tutor_id",
			"student_id",
			"start_time",
			"end_time",
			"status",
			"subject",
		).
		Values(
			booking.TutorID,
			booking.StudentID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Subject,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - tutor_id=%d: %w", ErrOverlap, booking.TutorID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с именами репетитора и студента
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := withParticipants(psqlbuilder.Select(detailedColumns...)).
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanDetailed(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает бронирования по фильтру, сначала самые поздние
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := withParticipants(psqlbuilder.Select(detailedColumns...)).
		OrderBy("b.start_time DESC")

	if filter.TutorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.tutor_id": *filter.TutorID})
	}
	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.student_id": *filter.StudentID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanDetailed(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// FindOverlapping возвращает брони репетитора с указанными статусами,
// пересекающие полуинтервал [from, to)
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) FindOverlapping(
	ctx context.Context,
	tutorID int64,
	from, to time.Time,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"tutor_id",
		"student_id",
		"start_time",
		"end_time",
		"status",
		"subject",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	if len(statusStrings) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.TutorID,
			&booking.StudentID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.Subject,
			&booking.CancelledAt,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FindOverlapping - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
// При отмене проставляется cancelled_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func withParticipants(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.From("bookings b").
		LeftJoin("tutor_profiles tp ON tp.id = b.tutor_id").
		LeftJoin("users tu ON tu.id = tp.user_id").
		LeftJoin("student_profiles sp ON sp.id = b.student_id").
		LeftJoin("users su ON su.id = sp.user_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetailed(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.TutorID,
		&booking.StudentID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Subject,
		&booking.TutorName,
		&booking.StudentName,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation
}
