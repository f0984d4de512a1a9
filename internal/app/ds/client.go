// internal/app/ds/client.go
package ds

import "time"

// ClientStatus статус клиента в формате upstream API
type ClientStatus string

const (
	StatusActive   ClientStatus = "active"
	StatusInactive ClientStatus = "inactive"
)

// Client клиент из upstream CRM API (только чтение, персистентность на стороне upstream)
type Client struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Status     ClientStatus `json:"status"`
	Price      float64      `json:"price"`
	ProviderID uint         `json:"providerId"`
	Provider   *Provider    `json:"provider,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ClientInput тело запроса на создание/обновление клиента
type ClientInput struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	ProviderID *uint    `json:"providerId,omitempty"`
}

// Provider поставщик, используется для панели фильтров
type Provider struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProviderGroup группа поставщиков по первой букве имени
type ProviderGroup struct {
	Letter string     `json:"letter"`
	Items  []Provider `json:"items"`
}
