package model

// ReservationCartPart один завершённый проход мастера бронирования,
// поставленный в очередь на чекаут. После создания неизменяем, только удаление.
type ReservationCartPart struct {
	ID                string            `json:"id"`
	ServiceID         string            `json:"serviceId"`
	ServiceName       string            `json:"serviceName"`
	Date              string            `json:"date"` // строка для отображения
	From              int64             `json:"from"`
	To                int64             `json:"to"`
	TimeText          string            `json:"timeText"`
	IsMultiDay        bool              `json:"isMultiDay"`
	ReservationMethod ReservationMethod `json:"reservationMethod"`
	ProviderID        string            `json:"providerId,omitempty"`
	Blocks            []Block           `json:"blocks"`
}

// CheckoutPart часть запроса на создание брони: только то, что нужно серверу.
type CheckoutPart struct {
	ServiceID         string            `json:"serviceId"`
	From              int64             `json:"from"`
	To                int64             `json:"to"`
	Blocks            []Block           `json:"blocks"`
	ReservationMethod ReservationMethod `json:"reservationMethod"`
	ProviderID        string            `json:"providerId,omitempty"`
}

// ToCheckoutPart отбрасывает отображаемые поля перед отправкой.
func (p ReservationCartPart) ToCheckoutPart() CheckoutPart {
	return CheckoutPart{
		ServiceID:         p.ServiceID,
		From:              p.From,
		To:                p.To,
		Blocks:            p.Blocks,
		ReservationMethod: p.ReservationMethod,
		ProviderID:        p.ProviderID,
	}
}
