package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors, mw.Bearer)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.Health)
		r.Get("/dashboard", h.Dashboard)

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Get("/aniversarios", h.UpcomingBirthdays)
			r.Put("/{id}", h.UpdateClient)
		})

		r.Route("/agenda", func(r chi.Router) {
			r.Get("/", h.ListAppointments)
			r.Post("/", h.CreateAppointment)
			r.Put("/{id}", h.UpdateAppointment)
			r.Post("/{id}/cancelar", h.CancelAppointment)
			r.Post("/{id}/finalizar", h.CompleteAppointment)
		})

		r.Route("/relatorios", func(r chi.Router) {
			r.Get("/", h.ReportBundle)
			r.Get("/export.pdf", h.ExportReport)
		})
	})

	return mux
}
