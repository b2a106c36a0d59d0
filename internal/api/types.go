package api

import "github.com/miracura/booking_widget/internal/model"

// SlotWindow интервал доступности, как его присылает сервер.
type SlotWindow struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// SlotQuery параметры запроса доступных слотов.
type SlotQuery struct {
	ServiceID  string
	From       int64
	To         int64
	Limit      int
	ProviderID string
}

type loginRequest struct {
	Provider string `json:"provider"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type itemsEnvelope[T any] struct {
	Data *struct {
		Items []T `json:"items"`
	} `json:"data"`
	Items []T `json:"items"`
}

// list возвращает элементы независимо от того, обёрнут ли ответ в data.
func (e itemsEnvelope[T]) list() []T {
	if e.Data != nil && e.Data.Items != nil {
		return e.Data.Items
	}
	return e.Items
}

type updatePhoneRequest struct {
	PhoneNumber  string   `json:"phoneNumber"`
	PhoneNumbers []string `json:"phoneNumbers"`
	Addresses    []string `json:"addresses"`
}

type confirmPhoneRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

// ReservationRequest запрос на создание брони из накопленных частей.
type ReservationRequest struct {
	BusinessID    string               `json:"businessId"`
	Blocks        []model.Block        `json:"blocks"`
	Parts         []model.CheckoutPart `json:"parts"`
	PaymentMethod string               `json:"paymentMethod,omitempty"`
}

// ReservationResult ответ сервера на создание брони.
type ReservationResult struct {
	ReservationID string `json:"reservationId"`
	ClientSecret  string `json:"clientSecret,omitempty"`
}

// OrderRequest запрос чекаута интернет-магазина.
type OrderRequest struct {
	BusinessID      string            `json:"businessId"`
	Items           []model.OrderItem `json:"items"`
	PaymentMethod   string            `json:"paymentMethod"`
	Blocks          []model.Block     `json:"blocks"`
	PaymentIntentID string            `json:"paymentIntentId,omitempty"`
}

// OrderResult ответ сервера на чекаут заказа.
type OrderResult struct {
	OrderID      string `json:"orderId"`
	ClientSecret string `json:"clientSecret,omitempty"`
}
