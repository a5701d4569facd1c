// Package demo is the injectable fallback-data provider: the fixed sample
// records the dashboard renders when the backend returns nothing usable.
// Production wires it only when DEMO_FALLBACK is on; tests substitute
// their own fixtures through the service interfaces.
package demo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/srmendes/dashboard/internal/entity"
)

type Provider struct {
	now func() time.Time
}

func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// NewProviderAt pins "today" for deterministic output.
func NewProviderAt(now func() time.Time) *Provider {
	return &Provider{now: now}
}

func (p *Provider) Clients() []entity.Client {
	maria := entity.DateOf(time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC))
	joao := entity.DateOf(time.Date(1985, time.September, 21, 0, 0, 0, 0, time.UTC))
	lastVisit := entity.DateOf(p.now().AddDate(0, 0, -9))

	return []entity.Client{
		{
			ID:        "1",
			Name:      "Maria Oliveira",
			Phone:     "11999999999",
			BirthDate: &maria,
			Notes:     "Prefere WhatsApp",
			History: &entity.ClientHistory{
				VisitCount:    8,
				LastVisit:     &lastVisit,
				TopService:    "Corte",
				LifetimeSpend: decimal.RequireFromString("560.00"),
			},
		},
		{
			ID:        "2",
			Name:      "João Silva",
			Phone:     "11988888888",
			BirthDate: &joao,
		},
	}
}

func (p *Provider) Appointments() []entity.Appointment {
	day := entity.BeginningOfDay(p.now())

	return []entity.Appointment{
		{
			ID:         "1",
			ClientName: "João Silva",
			Service:    "Corte e Barba",
			When:       entity.DateTime{Time: day.Add(9 * time.Hour)},
			Price:      decimal.RequireFromString("55.00"),
			Status:     entity.StatusConfirmed,
		},
		{
			ID:         "2",
			ClientName: "Pedro Santos",
			Service:    "Corte",
			When:       entity.DateTime{Time: day.Add(15 * time.Hour)},
			Price:      decimal.RequireFromString("35.00"),
			Status:     entity.StatusConfirmed,
		},
		{
			ID:         "3",
			ClientName: "Carlos Lima",
			Service:    "Barba",
			When:       entity.DateTime{Time: day.Add(15*time.Hour + 30*time.Minute)},
			Price:      decimal.RequireFromString("25.00"),
			Status:     entity.StatusPending,
		},
	}
}

func (p *Provider) ReportBundle() entity.ReportBundle {
	today := entity.DateOf(p.now())

	series := make([]entity.RevenuePoint, 0, 7)
	totals := []string{"430.00", "515.00", "380.00", "620.00", "470.00", "545.00", "580.00"}

	for i, total := range totals {
		series = append(series, entity.RevenuePoint{
			Period: entity.DateOf(today.AddDate(0, 0, i-6)),
			Total:  decimal.RequireFromString(total),
		})
	}

	return entity.ReportBundle{
		TopServices: []entity.ServiceStat{
			{Name: "Corte e Barba", Count: 5, Revenue: decimal.RequireFromString("275.00")},
			{Name: "Corte", Count: 4, Revenue: decimal.RequireFromString("140.00")},
			{Name: "Barba", Count: 3, Revenue: decimal.RequireFromString("75.00")},
			{Name: "Sobrancelha", Count: 1, Revenue: decimal.RequireFromString("15.00")},
		},
		RevenueSeries: series,
		ClientFrequency: []entity.ClientStat{
			{Name: "Maria Oliveira", Visits: 8, Spent: decimal.RequireFromString("560.00")},
			{Name: "João Silva", Visits: 5, Spent: decimal.RequireFromString("325.00")},
			{Name: "Pedro Santos", Visits: 3, Spent: decimal.RequireFromString("105.00")},
		},
	}
}
