package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/srmendes/dashboard/internal/entity"
)

// ClientAPI is the slice of the backend the registry needs.
type ClientAPI interface {
	Clients(ctx context.Context) ([]entity.Client, error)
	CreateClient(ctx context.Context, in entity.NewClient) (entity.Client, error)
	UpdateClient(ctx context.Context, id string, in entity.ClientUpdate) (entity.Client, error)
}

type Registry struct {
	api      ClientAPI
	fallback FallbackProvider

	mu      sync.RWMutex
	clients []entity.Client
}

func NewRegistry(api ClientAPI, fallback FallbackProvider) *Registry {
	return &Registry{api: api, fallback: fallback}
}

// Load fetches the client list. Reads never fail the view: transport and
// shape errors are recovered by substituting the fallback set, and so is
// an empty backend.
func (r *Registry) Load(ctx context.Context) []entity.Client {
	list, err := r.api.Clients(ctx)
	if err != nil {
		slog.WarnContext(ctx, "list clients", "error", err)
		list = nil
	}

	if len(list) == 0 && r.fallback != nil {
		list = r.fallback.Clients()
	}

	if list == nil {
		list = []entity.Client{}
	}

	r.mu.Lock()
	r.clients = list
	r.mu.Unlock()

	return r.List()
}

func (r *Registry) List() []entity.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.clients)
}

// Create posts a new record and prepends the server reply. A failed write
// leaves the local list untouched.
func (r *Registry) Create(ctx context.Context, in entity.NewClient) (entity.Client, error) {
	err := in.Validate()
	if err != nil {
		return entity.Client{}, err
	}

	created, err := r.api.CreateClient(ctx, in)
	if err != nil {
		return entity.Client{}, fmt.Errorf("create client: %w", err)
	}

	r.mu.Lock()
	r.clients = append([]entity.Client{created}, r.clients...)
	r.mu.Unlock()

	return created, nil
}

// Update puts the changed fields and replaces the matching local entry.
// An id absent from local state is entity.ErrNotFound before any network
// call happens.
func (r *Registry) Update(ctx context.Context, id string, in entity.ClientUpdate) (entity.Client, error) {
	if !r.has(id) {
		return entity.Client{}, fmt.Errorf("client %s: %w", id, entity.ErrNotFound)
	}

	updated, err := r.api.UpdateClient(ctx, id, in)
	if err != nil {
		return entity.Client{}, fmt.Errorf("update client %s: %w", id, err)
	}

	r.mu.Lock()
	for i := range r.clients {
		if r.clients[i].ID == id {
			r.clients[i] = updated
			break
		}
	}
	r.mu.Unlock()

	return updated, nil
}

// UpcomingBirthdays lists clients with a known birth date ordered by how
// soon the next one falls, today first.
func (r *Registry) UpcomingBirthdays(today time.Time) []entity.Birthday {
	clients := r.List()

	out := make([]entity.Birthday, 0, len(clients))

	for _, c := range clients {
		if c.BirthDate == nil || c.BirthDate.IsZero() {
			continue
		}

		out = append(out, entity.Birthday{
			Client: c,
			Days:   entity.DaysUntilBirthday(*c.BirthDate, today),
		})
	}

	slices.SortStableFunc(out, func(a, b entity.Birthday) int {
		return a.Days - b.Days
	})

	return out
}

func (r *Registry) has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.ContainsFunc(r.clients, func(c entity.Client) bool {
		return c.ID == id
	})
}
