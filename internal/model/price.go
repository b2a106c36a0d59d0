package model

import "fmt"

// Price базовая цена с валютой.
type Price struct {
	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency"`
}

// Format форматирует цену для отображения.
func (p Price) Format() string {
	return fmt.Sprintf("%.2f %s", p.BasePrice, p.Currency)
}

// PriceOption вариант цены услуги или товара.
type PriceOption struct {
	Price
	Type        string        `json:"type,omitempty"` // standard | custom | complex
	CustomValue LocalizedText `json:"customValue,omitempty"`
}
