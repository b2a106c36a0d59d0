package model

// Slot конкретный интервал времени, доступный для бронирования.
// Приходит с сервера (одиночный день) или синтезируется локально (диапазон дней).
type Slot struct {
	ID         string `json:"id"`
	From       int64  `json:"from"` // unix-секунды, всегда From < To
	To         int64  `json:"to"`
	Day        string `json:"day"` // ISO-дата начала слота
	TimeText   string `json:"timeText"`
	IsMultiDay bool   `json:"isMultiDay"`
	DateRange  string `json:"dateRange,omitempty"`
}
