package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/srmendes/dashboard/internal/entity"
)

// AppointmentAPI is the slice of the backend the agenda needs.
type AppointmentAPI interface {
	Appointments(ctx context.Context) ([]entity.Appointment, error)
	CreateAppointment(ctx context.Context, in entity.NewAppointment) (entity.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, in entity.AppointmentUpdate) (entity.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (entity.Appointment, error)
	CompleteAppointment(ctx context.Context, id string) (entity.Appointment, error)
}

type Agenda struct {
	api      AppointmentAPI
	fallback FallbackProvider

	mu           sync.RWMutex
	appointments []entity.Appointment
}

func NewAgenda(api AppointmentAPI, fallback FallbackProvider) *Agenda {
	return &Agenda{api: api, fallback: fallback}
}

// Load fetches the caller-owned appointments with the same never-empty
// fallback contract as the registry.
func (a *Agenda) Load(ctx context.Context) []entity.Appointment {
	list, err := a.api.Appointments(ctx)
	if err != nil {
		slog.WarnContext(ctx, "list appointments", "error", err)
		list = nil
	}

	if len(list) == 0 && a.fallback != nil {
		list = a.fallback.Appointments()
	}

	if list == nil {
		list = []entity.Appointment{}
	}

	a.mu.Lock()
	a.appointments = list
	a.mu.Unlock()

	return a.List()
}

func (a *Agenda) List() []entity.Appointment {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return slices.Clone(a.appointments)
}

// Day returns the appointments of one calendar day, ascending by
// time-of-day.
func (a *Agenda) Day(day time.Time) []entity.Appointment {
	return entity.FilterByDate(a.List(), day)
}

func (a *Agenda) Create(ctx context.Context, in entity.NewAppointment) (entity.Appointment, error) {
	err := in.Validate()
	if err != nil {
		return entity.Appointment{}, err
	}

	created, err := a.api.CreateAppointment(ctx, in)
	if err != nil {
		return entity.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}

	if created.Status == "" {
		created.Status = entity.StatusPending
	}

	a.mu.Lock()
	a.appointments = append([]entity.Appointment{created}, a.appointments...)
	a.mu.Unlock()

	return created, nil
}

// Update forwards the edit to the backend. When the backend has no update
// endpoint the entity.ErrUnsupported it yields is propagated untouched;
// editing never silently no-ops.
func (a *Agenda) Update(ctx context.Context, id string, in entity.AppointmentUpdate) (entity.Appointment, error) {
	status, ok := a.statusOf(id)
	if !ok {
		return entity.Appointment{}, fmt.Errorf("appointment %s: %w", id, entity.ErrNotFound)
	}

	if status.Terminal() {
		return entity.Appointment{}, fmt.Errorf("%w: appointment %s is already %s", entity.ErrInvalidArgument, id, status)
	}

	updated, err := a.api.UpdateAppointment(ctx, id, in)
	if err != nil {
		return entity.Appointment{}, fmt.Errorf("update appointment %s: %w", id, err)
	}

	a.replace(updated)

	return updated, nil
}

// Cancel is a server-confirmed mutation: local state changes only after
// the backend acknowledged the transition.
func (a *Agenda) Cancel(ctx context.Context, id string) (entity.Appointment, error) {
	return a.transition(ctx, id, entity.StatusCancelled, a.api.CancelAppointment)
}

func (a *Agenda) Complete(ctx context.Context, id string) (entity.Appointment, error) {
	return a.transition(ctx, id, entity.StatusCompleted, a.api.CompleteAppointment)
}

func (a *Agenda) transition(
	ctx context.Context,
	id string,
	next entity.AppointmentStatus,
	call func(context.Context, string) (entity.Appointment, error),
) (entity.Appointment, error) {
	status, ok := a.statusOf(id)
	if !ok {
		return entity.Appointment{}, fmt.Errorf("appointment %s: %w", id, entity.ErrNotFound)
	}

	if !status.CanTransitionTo(next) {
		return entity.Appointment{}, fmt.Errorf("%w: appointment %s cannot go from %s to %s",
			entity.ErrInvalidArgument, id, status, next)
	}

	updated, err := call(ctx, id)
	if err != nil {
		return entity.Appointment{}, fmt.Errorf("set appointment %s to %s: %w", id, next, err)
	}

	a.replace(updated)

	return updated, nil
}

// Summary aggregates one day for the dashboard page: attendances, revenue
// of finished services, per-service counts and the still-upcoming slots.
func (a *Agenda) Summary(today time.Time) entity.DaySummary {
	day := a.Day(today)

	summary := entity.DaySummary{
		Date:          entity.DateOf(today),
		Revenue:       decimal.Zero,
		ServiceCounts: map[string]int{},
		Upcoming:      []entity.Appointment{},
	}

	for _, appt := range day {
		switch appt.Status {
		case entity.StatusCancelled:
			continue
		case entity.StatusCompleted:
			summary.Revenue = summary.Revenue.Add(appt.Price)
			summary.ServiceCounts[appt.Service]++
		default:
			summary.Upcoming = append(summary.Upcoming, appt)
		}

		summary.Attendances++
	}

	return summary
}

func (a *Agenda) statusOf(id string) (entity.AppointmentStatus, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, appt := range a.appointments {
		if appt.ID == id {
			return appt.Status, true
		}
	}

	return "", false
}

func (a *Agenda) replace(updated entity.Appointment) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.appointments {
		if a.appointments[i].ID == updated.ID {
			a.appointments[i] = updated
			break
		}
	}
}
