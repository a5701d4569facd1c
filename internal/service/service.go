// Package service holds the three data-management modules behind the
// dashboard pages: the client registry, the agenda and the reports. Each
// owns its own in-memory snapshot for the lifetime of the process; there is
// no cross-module synchronization and no persistence beyond the backend.
package service

import (
	"github.com/srmendes/dashboard/internal/entity"
)

// FallbackProvider supplies the demonstration records substituted when a
// read comes back empty or fails. A nil provider disables substitution and
// empty stays empty.
type FallbackProvider interface {
	Clients() []entity.Client
	Appointments() []entity.Appointment
	ReportBundle() entity.ReportBundle
}
