package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingMethod is a delivery option within a country's shipping zone.
type ShippingMethod struct {
	ID       uuid.UUID           `json:"id" db:"id"`
	ZoneID   uuid.UUID           `json:"zone" db:"zone_id"`
	Name     string              `json:"name" db:"name"`
	BaseRate decimal.Decimal     `json:"base_rate" db:"base_rate"`
	FreeOver decimal.NullDecimal `json:"free_over" db:"free_over"`
	Active   bool                `json:"active" db:"active"`
}

// TaxRate is a dated tax rate within a country's tax zone. Rate is a fraction (0.10 = 10%).
type TaxRate struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ZoneID    uuid.UUID       `json:"zone" db:"zone_id"`
	Rate      decimal.Decimal `json:"rate" db:"rate"`
	StartDate time.Time       `json:"start_date" db:"start_date"`
	EndDate   *time.Time      `json:"end_date,omitempty" db:"end_date"`
	Active    bool            `json:"active" db:"active"`
}
