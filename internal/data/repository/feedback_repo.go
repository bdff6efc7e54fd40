package repository

import (
	"context"
	"errors"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByAppointmentID(ctx context.Context, appointmentID int64) (*entity.Feedback, error)
	List(ctx context.Context) ([]*entity.Feedback, error)
}

type feedbackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackRepository(db database.PgxIface, log *zap.Logger) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback")),
	}
}

const uniqueViolation = "23505"

func insertFeedback(ctx context.Context, q rowQuerier, feedback *entity.Feedback) error {
	query := `
		INSERT INTO feedback (appointment_id, feedback_text, rating, video_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		feedback.AppointmentID,
		feedback.FeedbackText,
		feedback.Rating,
		feedback.VideoPath,
	).Scan(&feedback.ID, &feedback.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("appointment %d: %w", feedback.AppointmentID, ErrFeedbackExists)
	}
	if err != nil {
		return fmt.Errorf("create feedback for appointment %d: %w", feedback.AppointmentID, err)
	}
	return nil
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	if err := insertFeedback(ctx, r.db, feedback); err != nil {
		if !errors.Is(err, ErrFeedbackExists) {
			r.log.Error("Failed to create feedback",
				zap.Error(err),
				zap.Int64("appointment_id", feedback.AppointmentID),
			)
		}
		return err
	}
	return nil
}

func (r *feedbackRepository) FindByAppointmentID(ctx context.Context, appointmentID int64) (*entity.Feedback, error) {
	query := `
		SELECT id, appointment_id, feedback_text, rating, video_path, created_at
		FROM feedback
		WHERE appointment_id = $1
	`

	var f entity.Feedback
	err := r.db.QueryRow(ctx, query, appointmentID).Scan(
		&f.ID,
		&f.AppointmentID,
		&f.FeedbackText,
		&f.Rating,
		&f.VideoPath,
		&f.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find feedback by appointment ID",
			zap.Error(err),
			zap.Int64("appointment_id", appointmentID),
		)
		return nil, fmt.Errorf("find feedback for appointment %d: %w", appointmentID, err)
	}

	return &f, nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]*entity.Feedback, error) {
	query, args, err := database.PSQL.
		Select("id", "appointment_id", "feedback_text", "rating", "video_path", "created_at").
		From("feedback").
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list feedback query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list feedback", zap.Error(err))
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]*entity.Feedback, 0)
	for rows.Next() {
		var f entity.Feedback
		if err := rows.Scan(
			&f.ID,
			&f.AppointmentID,
			&f.FeedbackText,
			&f.Rating,
			&f.VideoPath,
			&f.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan feedback row", zap.Error(err))
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		feedbacks = append(feedbacks, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}

	return feedbacks, nil
}
