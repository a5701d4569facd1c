package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/srmendes/dashboard/internal/demo"
	"github.com/srmendes/dashboard/internal/entity"
	"github.com/srmendes/dashboard/internal/service"
)

type fakeClientAPI struct {
	clients func(ctx context.Context) ([]entity.Client, error)
	create  func(ctx context.Context, in entity.NewClient) (entity.Client, error)
	update  func(ctx context.Context, id string, in entity.ClientUpdate) (entity.Client, error)
}

func (f *fakeClientAPI) Clients(ctx context.Context) ([]entity.Client, error) {
	return f.clients(ctx)
}

func (f *fakeClientAPI) CreateClient(ctx context.Context, in entity.NewClient) (entity.Client, error) {
	return f.create(ctx, in)
}

func (f *fakeClientAPI) UpdateClient(ctx context.Context, id string, in entity.ClientUpdate) (entity.Client, error) {
	return f.update(ctx, id, in)
}

func serverClients() []entity.Client {
	return []entity.Client{
		{ID: "10", Name: "Ana Souza", Phone: "11977777777"},
		{ID: "11", Name: "Bruno Costa", Phone: "11966666666"},
	}
}

func TestRegistry_Load(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		clients func(ctx context.Context) ([]entity.Client, error)
		want    string
		wantLen int
	}{
		{
			name: "backend data passes through",
			clients: func(_ context.Context) ([]entity.Client, error) {
				return serverClients(), nil
			},
			want:    "Ana Souza",
			wantLen: 2,
		},
		{
			name: "empty backend falls back to sample data",
			clients: func(_ context.Context) ([]entity.Client, error) {
				return []entity.Client{}, nil
			},
			want:    "Maria Oliveira",
			wantLen: 2,
		},
		{
			name: "backend error falls back to sample data",
			clients: func(_ context.Context) ([]entity.Client, error) {
				return nil, errors.New("connection refused")
			},
			want:    "Maria Oliveira",
			wantLen: 2,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := service.NewRegistry(&fakeClientAPI{clients: tt.clients}, demo.NewProvider())

			got := registry.Load(context.Background())

			require.Len(t, got, tt.wantLen)
			require.Equal(t, tt.want, got[0].Name)
		})
	}
}

func TestRegistry_Load_NoFallback(t *testing.T) {
	t.Parallel()

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) {
			return nil, errors.New("connection refused")
		},
	}

	registry := service.NewRegistry(api, nil)

	got := registry.Load(context.Background())

	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestRegistry_Create(t *testing.T) {
	t.Parallel()

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) {
			return serverClients(), nil
		},
		create: func(_ context.Context, in entity.NewClient) (entity.Client, error) {
			return entity.Client{ID: "12", Name: in.Name, Phone: in.Phone}, nil
		},
	}

	registry := service.NewRegistry(api, nil)
	registry.Load(context.Background())

	created, err := registry.Create(context.Background(), entity.NewClient{Name: "Carla Dias", Phone: "11955555555"})
	require.NoError(t, err)
	require.Equal(t, "12", created.ID)

	list := registry.List()
	require.Len(t, list, 3)
	require.Equal(t, created, list[0])
}

func TestRegistry_Create_ValidationSkipsBackend(t *testing.T) {
	t.Parallel()

	called := false

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) { return serverClients(), nil },
		create: func(_ context.Context, _ entity.NewClient) (entity.Client, error) {
			called = true
			return entity.Client{}, nil
		},
	}

	registry := service.NewRegistry(api, nil)
	registry.Load(context.Background())

	_, err := registry.Create(context.Background(), entity.NewClient{Phone: "11955555555"})
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
	require.False(t, called)
	require.Len(t, registry.List(), 2)
}

func TestRegistry_Create_BackendFailureLeavesListUntouched(t *testing.T) {
	t.Parallel()

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) { return serverClients(), nil },
		create: func(_ context.Context, _ entity.NewClient) (entity.Client, error) {
			return entity.Client{}, &entity.HTTPError{Status: 500, Message: "sem conexão com o banco"}
		},
	}

	registry := service.NewRegistry(api, nil)
	registry.Load(context.Background())

	_, err := registry.Create(context.Background(), entity.NewClient{Name: "Carla Dias", Phone: "11955555555"})

	var httpErr *entity.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "sem conexão com o banco", httpErr.Message)

	require.Len(t, registry.List(), 2)
}

func TestRegistry_Update(t *testing.T) {
	t.Parallel()

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) { return serverClients(), nil },
		update: func(_ context.Context, id string, in entity.ClientUpdate) (entity.Client, error) {
			return entity.Client{ID: id, Name: *in.Name, Phone: "11977777777"}, nil
		},
	}

	registry := service.NewRegistry(api, nil)
	registry.Load(context.Background())

	name := "Ana S. Souza"

	updated, err := registry.Update(context.Background(), "10", entity.ClientUpdate{Name: &name})
	require.NoError(t, err)

	list := registry.List()
	require.Len(t, list, 2)
	require.Equal(t, updated, list[0])
	require.Equal(t, "Bruno Costa", list[1].Name)
}

func TestRegistry_CreateThenUpdate_ReplacesExactlyOne(t *testing.T) {
	t.Parallel()

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) { return serverClients(), nil },
		create: func(_ context.Context, in entity.NewClient) (entity.Client, error) {
			return entity.Client{ID: "12", Name: in.Name, Phone: in.Phone}, nil
		},
		update: func(_ context.Context, id string, in entity.ClientUpdate) (entity.Client, error) {
			return entity.Client{ID: id, Name: *in.Name, Phone: "11955555555"}, nil
		},
	}

	registry := service.NewRegistry(api, nil)
	registry.Load(context.Background())

	created, err := registry.Create(context.Background(), entity.NewClient{Name: "Carla Dias", Phone: "11955555555"})
	require.NoError(t, err)

	name := "Carla D. Dias"

	updated, err := registry.Update(context.Background(), created.ID, entity.ClientUpdate{Name: &name})
	require.NoError(t, err)

	list := registry.List()
	require.Len(t, list, 3)
	require.Equal(t, updated, list[0])
	require.Equal(t, "Ana Souza", list[1].Name)
	require.Equal(t, "Bruno Costa", list[2].Name)
}

func TestRegistry_Update_UnknownIDSkipsBackend(t *testing.T) {
	t.Parallel()

	called := false

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) { return serverClients(), nil },
		update: func(_ context.Context, _ string, _ entity.ClientUpdate) (entity.Client, error) {
			called = true
			return entity.Client{}, nil
		},
	}

	registry := service.NewRegistry(api, nil)
	registry.Load(context.Background())

	name := "Ninguém"

	_, err := registry.Update(context.Background(), "99", entity.ClientUpdate{Name: &name})
	require.ErrorIs(t, err, entity.ErrNotFound)
	require.False(t, called)
}

func TestRegistry_UpcomingBirthdays(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, time.August, 27, 12, 0, 0, 0, time.UTC)

	sameDay := entity.DateOf(time.Date(1985, time.August, 27, 0, 0, 0, 0, time.UTC))
	nextYear := entity.DateOf(time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC))

	api := &fakeClientAPI{
		clients: func(_ context.Context) ([]entity.Client, error) {
			return []entity.Client{
				{ID: "1", Name: "Maio", Phone: "1", BirthDate: &nextYear},
				{ID: "2", Name: "Sem Data", Phone: "2"},
				{ID: "3", Name: "Hoje", Phone: "3", BirthDate: &sameDay},
			}, nil
		},
	}

	registry := service.NewRegistry(api, nil)
	registry.Load(context.Background())

	got := registry.UpcomingBirthdays(today)

	require.Len(t, got, 2)
	require.Equal(t, "Hoje", got[0].Client.Name)
	require.Equal(t, 0, got[0].Days)
	require.Equal(t, "Maio", got[1].Client.Name)
	require.Equal(t, 258, got[1].Days)
}
