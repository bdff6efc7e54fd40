package repository

import (
	"appointment-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Appointment AppointmentRepository
	Feedback    FeedbackRepository
	Admin       AdminRepository
	Token       TokenDenylist
}

// NewRepository wires every repository; rdb may be nil.
func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	return &Repository{
		Appointment: NewAppointmentRepository(db, log),
		Feedback:    NewFeedbackRepository(db, log),
		Admin:       NewAdminRepository(db, log),
		Token:       NewTokenDenylist(rdb, log),
	}
}
