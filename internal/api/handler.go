package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/srmendes/dashboard/internal/entity"
)

type RegistryService interface {
	Load(ctx context.Context) []entity.Client
	Create(ctx context.Context, in entity.NewClient) (entity.Client, error)
	Update(ctx context.Context, id string, in entity.ClientUpdate) (entity.Client, error)
	UpcomingBirthdays(today time.Time) []entity.Birthday
}

type AgendaService interface {
	Load(ctx context.Context) []entity.Appointment
	Day(day time.Time) []entity.Appointment
	Create(ctx context.Context, in entity.NewAppointment) (entity.Appointment, error)
	Update(ctx context.Context, id string, in entity.AppointmentUpdate) (entity.Appointment, error)
	Cancel(ctx context.Context, id string) (entity.Appointment, error)
	Complete(ctx context.Context, id string) (entity.Appointment, error)
	Summary(today time.Time) entity.DaySummary
}

type ReportService interface {
	Bundle(ctx context.Context, from, to time.Time) entity.ReportBundle
	Export(ctx context.Context) (io.ReadCloser, string, error)
}

type Handler struct {
	registry RegistryService
	agenda   AgendaService
	reports  ReportService
	now      func() time.Time
}

func NewHandler(registry RegistryService, agenda AgendaService, reports ReportService) *Handler {
	return &Handler{
		registry: registry,
		agenda:   agenda,
		reports:  reports,
		now:      time.Now,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	SendJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type DashboardResponse struct {
	Summary   entity.DaySummary `json:"resumo"`
	Birthdays []entity.Birthday `json:"aniversarios"`
}

// Dashboard is the day-at-a-glance payload: today's agenda summary plus
// the next birthdays.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := h.now()

	h.agenda.Load(ctx)
	h.registry.Load(ctx)

	birthdays := h.registry.UpcomingBirthdays(today)
	if len(birthdays) > 5 {
		birthdays = birthdays[:5]
	}

	SendJSON(ctx, w, http.StatusOK, DashboardResponse{
		Summary:   h.agenda.Summary(today),
		Birthdays: birthdays,
	})
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	SendJSON(ctx, w, http.StatusOK, h.registry.Load(ctx))
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in entity.NewClient

	err := json.NewDecoder(r.Body).Decode(&in)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Dados inválidos")
		return
	}

	created, err := h.registry.Create(ctx, in)
	if err != nil {
		code, msg := errStatus(err)
		SendJSONErr(ctx, w, code, err, msg)

		return
	}

	SendJSON(ctx, w, http.StatusCreated, created)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var in entity.ClientUpdate

	err := json.NewDecoder(r.Body).Decode(&in)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Dados inválidos")
		return
	}

	updated, err := h.registry.Update(ctx, id, in)
	if err != nil {
		code, msg := errStatus(err)
		SendJSONErr(ctx, w, code, err, msg)

		return
	}

	SendJSON(ctx, w, http.StatusOK, updated)
}

func (h *Handler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.registry.Load(ctx)

	SendJSON(ctx, w, http.StatusOK, h.registry.UpcomingBirthdays(h.now()))
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list := h.agenda.Load(ctx)

	if raw := r.URL.Query().Get("data"); raw != "" {
		day, err := entity.ParseDate(raw)
		if err != nil {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Data inválida")
			return
		}

		list = h.agenda.Day(day.Time)
	}

	SendJSON(ctx, w, http.StatusOK, list)
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in entity.NewAppointment

	err := json.NewDecoder(r.Body).Decode(&in)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Dados inválidos")
		return
	}

	created, err := h.agenda.Create(ctx, in)
	if err != nil {
		code, msg := errStatus(err)
		SendJSONErr(ctx, w, code, err, msg)

		return
	}

	SendJSON(ctx, w, http.StatusCreated, created)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var in entity.AppointmentUpdate

	err := json.NewDecoder(r.Body).Decode(&in)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Dados inválidos")
		return
	}

	updated, err := h.agenda.Update(ctx, id, in)
	if err != nil {
		code, msg := errStatus(err)
		SendJSONErr(ctx, w, code, err, msg)

		return
	}

	SendJSON(ctx, w, http.StatusOK, updated)
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.agenda.Cancel)
}

func (h *Handler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.agenda.Complete)
}

func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	call func(context.Context, string) (entity.Appointment, error),
) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	updated, err := call(ctx, id)
	if err != nil {
		code, msg := errStatus(err)
		SendJSONErr(ctx, w, code, err, msg)

		return
	}

	SendJSON(ctx, w, http.StatusOK, updated)
}

func (h *Handler) ReportBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var from, to time.Time

	if raw := r.URL.Query().Get("inicio"); raw != "" {
		d, err := entity.ParseDate(raw)
		if err != nil {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Data inválida")
			return
		}

		from = d.Time
	}

	if raw := r.URL.Query().Get("fim"); raw != "" {
		d, err := entity.ParseDate(raw)
		if err != nil {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Data inválida")
			return
		}

		to = d.Time
	}

	SendJSON(ctx, w, http.StatusOK, h.reports.Bundle(ctx, from, to))
}

// ExportReport streams the backend PDF through unchanged. An export
// failure is scoped to this request; it mutates nothing.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, contentType, err := h.reports.Export(ctx)
	if err != nil {
		code, msg := errStatus(err)
		SendJSONErr(ctx, w, code, err, msg)

		return
	}

	defer body.Close()

	if contentType == "" {
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="relatorio.pdf"`)
	w.WriteHeader(http.StatusOK)

	_, err = io.Copy(w, body)
	if err != nil {
		slog.ErrorContext(ctx, "stream report export", "error", err)
	}
}
