package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/srmendes/dashboard/internal/entity"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		from entity.AppointmentStatus
		to   entity.AppointmentStatus
		want bool
	}{
		{entity.StatusPending, entity.StatusConfirmed, true},
		{entity.StatusPending, entity.StatusCancelled, true},
		{entity.StatusPending, entity.StatusCompleted, true},
		{entity.StatusConfirmed, entity.StatusCancelled, true},
		{entity.StatusConfirmed, entity.StatusCompleted, true},
		{entity.StatusConfirmed, entity.StatusPending, false},
		{entity.StatusCompleted, entity.StatusCancelled, false},
		{entity.StatusCancelled, entity.StatusConfirmed, false},
		{entity.StatusCancelled, entity.StatusCancelled, false},
		{entity.StatusPending, entity.AppointmentStatus("agendado"), false},
	} {
		tt := tt
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppointment_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("single timestamp", func(t *testing.T) {
		t.Parallel()

		var a entity.Appointment

		err := json.Unmarshal([]byte(`{
			"id": "7",
			"cliente": "João Silva",
			"servico": "Barba",
			"horario": "2025-08-27T15:30:00",
			"status": "confirmado"
		}`), &a)
		require.NoError(t, err)

		require.Equal(t, "João Silva", a.ClientName)
		require.Equal(t, entity.StatusConfirmed, a.Status)
		require.Equal(t, "2025-08-27T15:30:00", a.When.String())
	})

	t.Run("split date and time normalize", func(t *testing.T) {
		t.Parallel()

		var a entity.Appointment

		err := json.Unmarshal([]byte(`{
			"id": "8",
			"cliente": "Pedro Santos",
			"servico": "Corte",
			"data": "2025-08-27",
			"hora": "09:00"
		}`), &a)
		require.NoError(t, err)

		require.Equal(t, "2025-08-27T09:00:00", a.When.String())
	})

	t.Run("missing status defaults to pendente", func(t *testing.T) {
		t.Parallel()

		var a entity.Appointment

		err := json.Unmarshal([]byte(`{"id": "9", "cliente": "Carlos Lima", "servico": "Barba", "horario": "2025-08-27T10:00:00"}`), &a)
		require.NoError(t, err)

		require.Equal(t, entity.StatusPending, a.Status)
	})
}

func TestFilterByDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.August, 27, 0, 0, 0, 0, time.Local)

	at := func(hour, minute int) entity.DateTime {
		return entity.DateTime{Time: day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)}
	}

	appointments := []entity.Appointment{
		{ID: "1", ClientName: "Carlos Lima", When: at(15, 30)},
		{ID: "2", ClientName: "Outro Dia", When: entity.DateTime{Time: day.AddDate(0, 0, 1)}},
		{ID: "3", ClientName: "João Silva", When: at(9, 0)},
		{ID: "4", ClientName: "Pedro Santos", When: at(15, 0)},
	}

	got := entity.FilterByDate(appointments, day)

	require.Len(t, got, 3)
	require.Equal(t, []string{"3", "4", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})

	// Filtering the filtered result by the same day changes nothing.
	require.Equal(t, got, entity.FilterByDate(got, day))
}
