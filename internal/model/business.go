package model

// BusinessConfig конфигурация бизнеса: формы чекаута и способы оплаты.
type BusinessConfig struct {
	OrderBlocks           []Block  `json:"orderBlocks,omitempty"`
	ReservationBlocks     []Block  `json:"reservationBlocks,omitempty"`
	CheckoutBlocks        []Block  `json:"checkoutBlocks,omitempty"`
	AllowedPaymentMethods []string `json:"allowedPaymentMethods,omitempty"`
	Currency              string   `json:"currency,omitempty"`
}

// Business бизнес, которому принадлежат услуги и товары.
type Business struct {
	ID      string         `json:"id"`
	Name    LocalizedText  `json:"name"`
	Configs BusinessConfig `json:"configs"`
}
