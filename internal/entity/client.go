package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Client is a registered customer. IDs are assigned by the backend on
// creation and never change.
type Client struct {
	ID        string          `json:"id"`
	Name      string          `json:"nome"`
	Phone     string          `json:"telefone"`
	BirthDate *Date           `json:"aniversario,omitempty"`
	Notes     string          `json:"obs,omitempty"`
	History   *ClientHistory  `json:"historico,omitempty"`
	Services  []ServiceRecord `json:"servicos,omitempty"`
}

type ClientHistory struct {
	VisitCount    int             `json:"visitas"`
	LastVisit     *Date           `json:"ultima_visita,omitempty"`
	TopService    string          `json:"servico_frequente,omitempty"`
	LifetimeSpend decimal.Decimal `json:"total_gasto"`
}

type ServiceRecord struct {
	Date    Date            `json:"data"`
	Service string          `json:"servico"`
	Price   decimal.Decimal `json:"preco"`
}

type NewClient struct {
	Name      string `json:"nome"`
	Phone     string `json:"telefone"`
	BirthDate *Date  `json:"aniversario,omitempty"`
	Notes     string `json:"obs,omitempty"`
}

func (n NewClient) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	if n.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidArgument)
	}

	return nil
}

// ClientUpdate carries only the fields being changed; nil means keep.
type ClientUpdate struct {
	Name      *string `json:"nome,omitempty"`
	Phone     *string `json:"telefone,omitempty"`
	BirthDate *Date   `json:"aniversario,omitempty"`
	Notes     *string `json:"obs,omitempty"`
}

// Birthday pairs a client with the day count to their next birthday.
type Birthday struct {
	Client Client `json:"cliente"`
	Days   int    `json:"dias"`
}
