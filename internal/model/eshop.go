package model

// ProductVariant вариант товара с атрибутами и ценой.
type ProductVariant struct {
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes"`
	Price      Price             `json:"price"`
}

// Product товар интернет-магазина.
type Product struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Slug     string           `json:"slug"`
	Variants []ProductVariant `json:"variants"`
}

// EshopCartItem строка корзины магазина.
// Однотипные строки (товар + вариант) объединяются увеличением количества.
type EshopCartItem struct {
	ID                string            `json:"id"`
	ProductID         string            `json:"productId"`
	VariantID         string            `json:"variantId"`
	ProductName       string            `json:"productName"`
	ProductSlug       string            `json:"productSlug"`
	VariantAttributes map[string]string `json:"variantAttributes"`
	Price             Price             `json:"price"`
	Quantity          int               `json:"quantity"` // всегда >= 1
	AddedAt           int64             `json:"addedAt"`  // unix-миллисекунды
}

// OrderItem строка заказа для API чекаута.
type OrderItem struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}
