package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/database"
	"appointment-booking/pkg/utils"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AppointmentRepository interface {
	// Create inserts the appointment and, when not empty, its feedback in one
	// transaction. A positive ceiling makes the capacity check part of the
	// same transaction.
	Create(ctx context.Context, appointment *entity.Appointment, feedback *entity.Feedback, ceiling int) error
	FindByID(ctx context.Context, id int64) (*entity.Appointment, error)
	List(ctx context.Context, status *entity.AppointmentStatus) ([]*entity.AppointmentWithFeedback, error)
	CountByDate(ctx context.Context, date time.Time) (entity.DailyCount, error)
	CountByDateAndType(ctx context.Context, date time.Time, appointmentType entity.AppointmentType) (int, error)
	UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) error
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

const insertAppointmentQuery = `
	INSERT INTO appointments (date, time_slot, appointment_type, full_name, street_address,
	                          area, phone, email, meeting_purpose, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at
`

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment, feedback *entity.Feedback, ceiling int) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.log.Warn("Failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if ceiling > 0 {
		if err = r.lockSlot(ctx, tx, appointment.Date, appointment.AppointmentType); err != nil {
			return err
		}

		var count int
		count, err = countByDateAndType(ctx, tx, appointment.Date, appointment.AppointmentType)
		if err != nil {
			return err
		}
		if count >= ceiling {
			return ErrSlotFull
		}
	}

	err = tx.QueryRow(ctx, insertAppointmentQuery,
		appointment.Date,
		appointment.TimeSlot,
		appointment.AppointmentType,
		appointment.FullName,
		appointment.StreetAddress,
		appointment.Area,
		appointment.Phone,
		appointment.Email,
		appointment.MeetingPurpose,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("date", appointment.Date.Format(utils.DateLayout)),
			zap.String("type", string(appointment.AppointmentType)),
		)
		return fmt.Errorf("create appointment: %w", err)
	}

	if !feedback.IsEmpty() {
		feedback.AppointmentID = appointment.ID
		if err = insertFeedback(ctx, tx, feedback); err != nil {
			r.log.Error("Failed to create feedback",
				zap.Error(err),
				zap.Int64("appointment_id", appointment.ID),
			)
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit appointment", zap.Error(err))
		return fmt.Errorf("commit appointment: %w", err)
	}

	return nil
}

// lockSlot serializes guarded inserts for one date+type until the
// transaction ends.
func (r *appointmentRepository) lockSlot(ctx context.Context, tx pgx.Tx, date time.Time, appointmentType entity.AppointmentType) error {
	key := fmt.Sprintf("appointments:%s:%s", date.Format(utils.DateLayout), appointmentType)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		r.log.Error("Failed to lock appointment slot", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("lock slot %s: %w", key, err)
	}
	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	query := `
		SELECT id, date, time_slot, appointment_type, full_name, street_address,
		       area, phone, email, meeting_purpose, status, created_at
		FROM appointments
		WHERE id = $1
	`

	var a entity.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Date,
		&a.TimeSlot,
		&a.AppointmentType,
		&a.FullName,
		&a.StreetAddress,
		&a.Area,
		&a.Phone,
		&a.Email,
		&a.MeetingPurpose,
		&a.Status,
		&a.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.Int64("appointment_id", id),
		)
		return nil, fmt.Errorf("find appointment by ID %d: %w", id, err)
	}

	return &a, nil
}

func (r *appointmentRepository) List(ctx context.Context, status *entity.AppointmentStatus) ([]*entity.AppointmentWithFeedback, error) {
	builder := database.PSQL.
		Select(
			"a.id", "a.date", "a.time_slot", "a.appointment_type", "a.full_name",
			"a.street_address", "a.area", "a.phone", "a.email", "a.meeting_purpose",
			"a.status", "a.created_at",
			"f.id", "f.feedback_text", "f.rating", "f.video_path", "f.created_at",
		).
		From("appointments a").
		LeftJoin("feedback f ON f.appointment_id = a.id").
		OrderBy("a.date DESC", "a.created_at DESC", "a.id DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list appointments query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list appointments", zap.Error(err))
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]*entity.AppointmentWithFeedback, 0)
	for rows.Next() {
		var (
			item         entity.AppointmentWithFeedback
			feedbackID   *int64
			feedbackText *string
			rating       *string
			videoPath    *string
			feedbackAt   *time.Time
		)
		err := rows.Scan(
			&item.ID,
			&item.Date,
			&item.TimeSlot,
			&item.AppointmentType,
			&item.FullName,
			&item.StreetAddress,
			&item.Area,
			&item.Phone,
			&item.Email,
			&item.MeetingPurpose,
			&item.Status,
			&item.CreatedAt,
			&feedbackID,
			&feedbackText,
			&rating,
			&videoPath,
			&feedbackAt,
		)
		if err != nil {
			r.log.Error("Failed to scan appointment row", zap.Error(err))
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}

		if feedbackID != nil {
			item.Feedback = &entity.Feedback{
				BaseSimple:    entity.BaseSimple{ID: *feedbackID},
				AppointmentID: item.ID,
				FeedbackText:  feedbackText,
				Rating:        rating,
				VideoPath:     videoPath,
			}
			if feedbackAt != nil {
				item.Feedback.CreatedAt = *feedbackAt
			}
		}

		appointments = append(appointments, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *appointmentRepository) CountByDate(ctx context.Context, date time.Time) (entity.DailyCount, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE appointment_type = $2),
		       COUNT(*) FILTER (WHERE appointment_type = $3)
		FROM appointments
		WHERE date = $1
	`

	var count entity.DailyCount
	err := r.db.QueryRow(ctx, query, date, entity.AppointmentTypeOnline, entity.AppointmentTypePhysical).
		Scan(&count.Online, &count.Physical)
	if err != nil {
		r.log.Error("Failed to count appointments by date",
			zap.Error(err),
			zap.String("date", date.Format(utils.DateLayout)),
		)
		return entity.DailyCount{}, fmt.Errorf("count appointments on %s: %w", date.Format(utils.DateLayout), err)
	}

	return count, nil
}

func (r *appointmentRepository) CountByDateAndType(ctx context.Context, date time.Time, appointmentType entity.AppointmentType) (int, error) {
	count, err := countByDateAndType(ctx, r.db, date, appointmentType)
	if err != nil {
		r.log.Error("Failed to count appointments",
			zap.Error(err),
			zap.String("date", date.Format(utils.DateLayout)),
			zap.String("type", string(appointmentType)),
		)
	}
	return count, err
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update appointment status",
			zap.Error(err),
			zap.Int64("appointment_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update appointment %d status to %s: %w", id, status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", id, ErrAppointmentNotFound)
	}

	return nil
}

// rowQuerier is satisfied by both the pool and a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countByDateAndType(ctx context.Context, q rowQuerier, date time.Time, appointmentType entity.AppointmentType) (int, error) {
	query, args, err := database.PSQL.
		Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"appointment_type": appointmentType}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s appointments on %s: %w",
			appointmentType, date.Format(utils.DateLayout), err)
	}
	return count, nil
}
