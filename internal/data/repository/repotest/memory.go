// Package repotest provides in-memory repositories with the same semantics as
// the PostgreSQL ones, for service and handler tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
)

type Store struct {
	mu             sync.Mutex
	nextID         int64
	nextFeedbackID int64
	clock          time.Time
	appointments   []*entity.Appointment
	feedback       map[int64]*entity.Feedback
	admins         map[string]*entity.Admin
	revoked        map[string]time.Duration

	// AfterCount runs after CountByDateAndType has read the count and released
	// the store, so tests can interleave concurrent submissions there.
	AfterCount func()
}

func NewStore() *Store {
	return &Store{
		clock:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		feedback: make(map[int64]*entity.Feedback),
		admins:   make(map[string]*entity.Admin),
		revoked:  make(map[string]time.Duration),
	}
}

// Repository bundles the fakes the way repository.NewRepository does.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		Appointment: &Appointments{s},
		Feedback:    &Feedbacks{s},
		Admin:       &Admins{s},
		Token:       &Denylist{s},
	}
}

// AddAdmin seeds an admin account.
func (s *Store) AddAdmin(username, passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[username] = &entity.Admin{Username: username, PasswordHash: passwordHash}
}

// Count returns how many appointments are stored.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// RevokedTTL reports the TTL a token was revoked with.
func (s *Store) RevokedTTL(tokenID string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ttl, ok := s.revoked[tokenID]
	return ttl, ok
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) countLocked(date time.Time, t entity.AppointmentType) int {
	n := 0
	for _, a := range s.appointments {
		if a.Date.Equal(date) && a.AppointmentType == t {
			n++
		}
	}
	return n
}

func (s *Store) insertFeedbackLocked(f *entity.Feedback) error {
	if _, ok := s.feedback[f.AppointmentID]; ok {
		return fmt.Errorf("appointment %d: %w", f.AppointmentID, repository.ErrFeedbackExists)
	}
	s.nextFeedbackID++
	f.ID = s.nextFeedbackID
	f.CreatedAt = s.tick()
	stored := *f
	s.feedback[f.AppointmentID] = &stored
	return nil
}

type Appointments struct{ s *Store }

func (r *Appointments) Create(_ context.Context, a *entity.Appointment, f *entity.Feedback, ceiling int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if ceiling > 0 && s.countLocked(a.Date, a.AppointmentType) >= ceiling {
		return repository.ErrSlotFull
	}

	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = s.tick()
	stored := *a
	s.appointments = append(s.appointments, &stored)

	if !f.IsEmpty() {
		f.AppointmentID = a.ID
		if err := s.insertFeedbackLocked(f); err != nil {
			s.appointments = s.appointments[:len(s.appointments)-1]
			return err
		}
	}
	return nil
}

func (r *Appointments) FindByID(_ context.Context, id int64) (*entity.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			found := *a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Appointments) List(_ context.Context, status *entity.AppointmentStatus) ([]*entity.AppointmentWithFeedback, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.AppointmentWithFeedback, 0, len(s.appointments))
	for _, a := range s.appointments {
		if status != nil && a.Status != *status {
			continue
		}
		item := &entity.AppointmentWithFeedback{Appointment: *a}
		if f, ok := s.feedback[a.ID]; ok {
			fb := *f
			item.Feedback = &fb
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out, nil
}

func (r *Appointments) CountByDate(_ context.Context, date time.Time) (entity.DailyCount, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.DailyCount{
		Online:   s.countLocked(date, entity.AppointmentTypeOnline),
		Physical: s.countLocked(date, entity.AppointmentTypePhysical),
	}, nil
}

func (r *Appointments) CountByDateAndType(_ context.Context, date time.Time, t entity.AppointmentType) (int, error) {
	s := r.s
	s.mu.Lock()
	n := s.countLocked(date, t)
	hook := s.AfterCount
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return n, nil
}

func (r *Appointments) UpdateStatus(_ context.Context, id int64, status entity.AppointmentStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return fmt.Errorf("appointment %d: %w", id, repository.ErrAppointmentNotFound)
}

type Feedbacks struct{ s *Store }

func (r *Feedbacks) Create(_ context.Context, f *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertFeedbackLocked(f)
}

func (r *Feedbacks) FindByAppointmentID(_ context.Context, appointmentID int64) (*entity.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.feedback[appointmentID]; ok {
		found := *f
		return &found, nil
	}
	return nil, nil
}

func (r *Feedbacks) List(_ context.Context) ([]*entity.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Feedback, 0, len(r.s.feedback))
	for _, f := range r.s.feedback {
		fb := *f
		out = append(out, &fb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type Admins struct{ s *Store }

func (r *Admins) FindByUsername(_ context.Context, username string) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.admins[username]; ok {
		found := *a
		return &found, nil
	}
	return nil, nil
}

type Denylist struct{ s *Store }

func (d *Denylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	d.s.revoked[tokenID] = ttl
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	_, ok := d.s.revoked[tokenID]
	return ok, nil
}

func (d *Denylist) Enabled() bool { return true }
