package models

import "time"

// Property is a registered short-term-rental property.
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MarketID  string    `json:"marketId"`
	BasePrice float64   `json:"basePrice"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePropertyRequest is the body of POST /admin/properties.
type CreatePropertyRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	MarketID  string  `json:"market_id"`
	BasePrice float64 `json:"base_price"`
}

// PropertyPhoto is the optimized dashboard photo of a property.
type PropertyPhoto struct {
	PropertyID  string    `json:"propertyId"`
	Photo       []byte    `json:"-"`
	ContentType string    `json:"contentType"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
