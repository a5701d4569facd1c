package entity

import (
	"github.com/shopspring/decimal"
)

// ReportBundle is the read-only aggregate behind the reports page. It has
// no identity of its own and is refetched on every display.
type ReportBundle struct {
	TopServices     []ServiceStat  `json:"servicos"`
	RevenueSeries   []RevenuePoint `json:"receita"`
	ClientFrequency []ClientStat   `json:"frequencia"`
}

type ServiceStat struct {
	Name    string          `json:"nome"`
	Count   int             `json:"quantidade"`
	Revenue decimal.Decimal `json:"receita"`
}

type RevenuePoint struct {
	Period Date            `json:"periodo"`
	Total  decimal.Decimal `json:"total"`
}

type ClientStat struct {
	Name   string          `json:"nome"`
	Visits int             `json:"visitas"`
	Spent  decimal.Decimal `json:"total_gasto"`
}
