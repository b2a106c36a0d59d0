package model

import "strings"

// ReservationMethod способ бронирования услуги.
type ReservationMethod string

const (
	MethodStandard         ReservationMethod = "STANDARD"
	MethodOrder            ReservationMethod = "ORDER"
	MethodSpecificProvider ReservationMethod = "SPECIFIC_PROVIDER"
)

// IsSpecific возвращает true для методов с выбором конкретного исполнителя.
func (m ReservationMethod) IsSpecific() bool {
	return strings.Contains(string(m), "SPECIFIC")
}

// ServiceDuration одна часть длительности услуги в секундах.
type ServiceDuration struct {
	Duration int64 `json:"duration"`
}

// ReservationConfigs настройки бронирования услуги.
type ReservationConfigs struct {
	IsMultiDay bool `json:"isMultiDay"`
}

// Service услуга бизнеса, доступная для бронирования.
type Service struct {
	ID                 string              `json:"id"`
	Name               LocalizedText       `json:"name"`
	ReservationMethods []ReservationMethod `json:"reservationMethods"`
	ReservationConfigs ReservationConfigs  `json:"reservationConfigs"`
	Durations          []ServiceDuration   `json:"durations"`
	ReservationBlocks  []Block             `json:"reservationBlocks"`
	PriceOption        *PriceOption        `json:"priceOption,omitempty"`
}

// TotalDuration суммарная длительность услуги в секундах.
// Если длительности не заданы, возвращает час по умолчанию.
func (s *Service) TotalDuration() int64 {
	var total int64
	for _, d := range s.Durations {
		total += d.Duration
	}
	if total == 0 {
		return 3600
	}
	return total
}
