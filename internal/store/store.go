// Package store owns the studio's appointment list. It is the single source
// of truth: every mutation goes through it and is written to durable storage
// as one JSON snapshot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"tattoo-studio-server/internal/logging"
	"tattoo-studio-server/internal/metrics"
	"tattoo-studio-server/internal/models"
	"tattoo-studio-server/internal/scheduling"
	"tattoo-studio-server/internal/storage"
	"tattoo-studio-server/internal/validation"
)

const persistTimeout = 5 * time.Second

// Store holds appointments, the admin filter and the booking catalog.
// It is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	appointments []models.Appointment
	nextID       int
	filter       models.Filter

	catalog   models.Catalog
	weekStart time.Weekday
	kv        storage.KeyValue
	key       string
	logger    *logging.Logger
	metrics   *metrics.BookingMetrics
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for store events.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics sets the booking metrics sink.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock sets the source of "now". It should return times in the studio's location.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithKey overrides the durable key the snapshot is written under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithWeekStart sets the first day of the week for stats and the calendar.
func WithWeekStart(d time.Weekday) Option {
	return func(s *Store) { s.weekStart = d }
}

// New creates an empty store. Call Restore before serving requests.
func New(kv storage.KeyValue, catalog models.Catalog, opts ...Option) *Store {
	s := &Store{
		nextID:    1,
		catalog:   catalog,
		weekStart: time.Sunday,
		kv:        kv,
		key:       storage.AppointmentsKey,
		logger:    logging.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Catalog returns a copy of the bookable slots and services.
func (s *Store) Catalog() models.Catalog {
	return models.Catalog{
		TimeSlots: slices.Clone(s.catalog.TimeSlots),
		Services:  slices.Clone(s.catalog.Services),
	}
}

// Add stores c as a new appointment without validating it.
func (s *Store) Add(ctx context.Context, c models.Candidate) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(ctx, c)
}

// Book validates c and stores it in one step, so two submissions for the
// same date and slot cannot both pass the availability check.
func (s *Store) Book(ctx context.Context, c models.Candidate) (models.Appointment, error) {
	c = c.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	res := validation.Submission(c, s.catalog, s.byDateLocked(c.Date), s.now())
	if err := res.Err(); err != nil {
		ve, _ := validation.AsError(err)
		if ve.HasCode(validation.CodeSlotTaken) {
			s.metrics.ObserveBooking(metrics.OutcomeConflict)
		} else {
			s.metrics.ObserveBooking(metrics.OutcomeInvalid)
		}
		s.logger.Info("submission rejected", "date", c.Date, "slot", c.TimeSlot, "errors", len(res.Errors))
		return models.Appointment{}, err
	}

	a := s.addLocked(ctx, c)
	s.metrics.ObserveBooking(metrics.OutcomeCreated)
	return a, nil
}

func (s *Store) addLocked(ctx context.Context, c models.Candidate) models.Appointment {
	a := models.Appointment{
		ID:         s.nextID,
		ClientName: c.ClientName,
		Phone:      c.Phone,
		Email:      c.Email,
		Date:       c.Date,
		TimeSlot:   c.TimeSlot,
		Service:    c.Service,
		Notes:      c.Notes,
		CreatedAt:  s.now(),
	}
	s.nextID++
	s.appointments = append(s.appointments, a)
	s.persistAfterMutation(ctx)
	s.logger.Info("appointment created", "id", a.ID, "date", a.Date, "slot", a.TimeSlot)
	return a
}

// Remove deletes the appointment with id. Removing an unknown id is a no-op;
// the result reports whether anything was deleted.
func (s *Store) Remove(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.appointments)
	s.appointments = slices.DeleteFunc(s.appointments, func(a models.Appointment) bool {
		return a.ID == id
	})
	removed := len(s.appointments) != before

	s.persistAfterMutation(ctx)
	s.metrics.ObserveDeletion(removed)
	if removed {
		s.logger.Info("appointment removed", "id", id)
	}
	return removed
}

// Find returns the appointment with id.
func (s *Store) Find(id int) (models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return models.Appointment{}, false
}

// All returns a copy of every appointment in insertion order.
func (s *Store) All() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.appointments)
}

// ByDate returns the appointments on date, unordered.
func (s *Store) ByDate(date string) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byDateLocked(date)
}

func (s *Store) byDateLocked(date string) []models.Appointment {
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// FilteredView returns the appointments matching f ordered by date and slot.
func (s *Store) FilteredView(f models.Filter) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scheduling.Apply(s.appointments, f)
}

// CurrentView is FilteredView with the stored admin filter.
func (s *Store) CurrentView() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scheduling.Apply(s.appointments, s.filter)
}

// Filter returns the stored admin filter.
func (s *Store) Filter() models.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter replaces the stored admin filter.
func (s *Store) SetFilter(f models.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// ResetFilter clears the stored admin filter.
func (s *Store) ResetFilter() {
	s.SetFilter(models.Filter{})
}

// AvailableSlots lists the catalog slots still bookable on date.
func (s *Store) AvailableSlots(date string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scheduling.AvailableSlots(s.catalog.TimeSlots, s.byDateLocked(date), date, s.now())
}

// Stats counts appointments in total, today and this week.
func (s *Store) Stats() scheduling.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scheduling.ComputeStats(s.appointments, s.now(), s.weekStart)
}

// Calendar returns the six-week grid for the month.
func (s *Store) Calendar(year int, month time.Month) []scheduling.CalendarDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scheduling.MonthGrid(year, month, s.appointments, s.now(), s.weekStart)
}

// DaySchedule returns the appointments on date ordered by slot.
func (s *Store) DaySchedule(date string) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scheduling.DaySchedule(s.appointments, date)
}

// Persist writes the full appointment list to durable storage.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	list := s.appointments
	if list == nil {
		list = []models.Appointment{}
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode appointments: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("persist appointments: %w", err)
	}
	return nil
}

// persistAfterMutation keeps memory authoritative when the durable write fails.
// The write is not bound to the caller's cancellation.
func (s *Store) persistAfterMutation(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.persistLocked(ctx); err != nil {
		s.metrics.ObserveStorageError("persist")
		s.logger.Warn("could not persist appointments, keeping in-memory state", "key", s.key, "err", err)
	}
}

// Restore replaces the in-memory list with the stored snapshot. An absent
// key leaves the store as it is and returns nil. A storage or decode error
// also leaves the store untouched and is returned after being logged.
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("no stored appointments, starting empty", "key", s.key)
		return nil
	}
	if err != nil {
		s.metrics.ObserveStorageError("restore")
		s.logger.Warn("could not load appointments", "key", s.key, "err", err)
		return fmt.Errorf("restore appointments: %w", err)
	}

	var list []models.Appointment
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.metrics.ObserveStorageError("restore")
		s.logger.Warn("stored appointments are malformed, ignoring", "key", s.key, "err", err)
		return fmt.Errorf("decode appointments: %w", err)
	}

	maxID := 0
	for _, a := range list {
		maxID = max(maxID, a.ID)
	}

	s.mu.Lock()
	s.appointments = list
	s.nextID = maxID + 1
	s.mu.Unlock()

	s.logger.Info("appointments restored", "count", len(list), "next_id", maxID+1)
	return nil
}
