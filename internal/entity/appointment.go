package entity

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmado"
	StatusPending   AppointmentStatus = "pendente"
	StatusCompleted AppointmentStatus = "finalizado"
	StatusCancelled AppointmentStatus = "cancelado"
)

func (s AppointmentStatus) String() string {
	return string(s)
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// Terminal statuses accept no further transitions: once a booking is
// finished or cancelled it stays that way.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s.Terminal() || !next.IsValid() {
		return false
	}

	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCompleted || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}

	return false
}

// Appointment is a scheduled or completed service booking. The canonical
// shape carries both the client id and the display name; Service is free
// text and may describe several combined services.
type Appointment struct {
	ID         string            `json:"id"`
	ClientID   string            `json:"cliente_id,omitempty"`
	ClientName string            `json:"cliente"`
	Service    string            `json:"servico"`
	When       DateTime          `json:"horario"`
	Price      decimal.Decimal   `json:"preco"`
	Status     AppointmentStatus `json:"status"`
}

// UnmarshalJSON absorbs the historical "data" + "hora" split into the
// single When timestamp and defaults a missing status to pendente.
func (a *Appointment) UnmarshalJSON(b []byte) error {
	type alias Appointment

	aux := struct {
		*alias
		Data string `json:"data,omitempty"`
		Hora string `json:"hora,omitempty"`
	}{alias: (*alias)(a)}

	err := json.Unmarshal(b, &aux)
	if err != nil {
		return err
	}

	if a.When.IsZero() && aux.Data != "" {
		hora := aux.Hora
		if hora == "" {
			hora = "00:00"
		}

		when, err := ParseDateTime(aux.Data + "T" + hora)
		if err != nil {
			return fmt.Errorf("combine data %q and hora %q: %w", aux.Data, aux.Hora, err)
		}

		a.When = when
	}

	if a.Status == "" {
		a.Status = StatusPending
	}

	return nil
}

type NewAppointment struct {
	ClientID   string          `json:"cliente_id,omitempty"`
	ClientName string          `json:"cliente"`
	Service    string          `json:"servico"`
	When       DateTime        `json:"horario"`
	Price      decimal.Decimal `json:"preco"`
}

func (n NewAppointment) Validate() error {
	if n.ClientID == "" && n.ClientName == "" {
		return fmt.Errorf("%w: client reference is required", ErrInvalidArgument)
	}

	if n.Service == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidArgument)
	}

	if n.When.IsZero() {
		return fmt.Errorf("%w: schedule timestamp is required", ErrInvalidArgument)
	}

	return nil
}

// AppointmentUpdate carries only the fields being changed; nil means keep.
type AppointmentUpdate struct {
	ClientName *string          `json:"cliente,omitempty"`
	Service    *string          `json:"servico,omitempty"`
	When       *DateTime        `json:"horario,omitempty"`
	Price      *decimal.Decimal `json:"preco,omitempty"`
}

// FilterByDate returns the appointments scheduled on the given calendar
// day, ascending by time-of-day. Filtering an already filtered and sorted
// slice by the same day yields the same slice.
func FilterByDate(appointments []Appointment, day time.Time) []Appointment {
	out := make([]Appointment, 0, len(appointments))

	for _, a := range appointments {
		if SameDay(a.When.Time, day) {
			out = append(out, a)
		}
	}

	slices.SortStableFunc(out, func(a, b Appointment) int {
		return a.When.Compare(b.When.Time)
	})

	return out
}

// DaySummary is the dashboard aggregate for a single day.
type DaySummary struct {
	Date          Date            `json:"data"`
	Attendances   int             `json:"atendimentos"`
	Revenue       decimal.Decimal `json:"receita"`
	ServiceCounts map[string]int  `json:"servicos"`
	Upcoming      []Appointment   `json:"proximos"`
}
