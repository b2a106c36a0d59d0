package model

import "time"

// CalendarCell одна ячейка сетки месяца.
// Blank — пустая ячейка выравнивания в начале/конце сетки.
type CalendarCell struct {
	Blank     bool      `json:"blank"`
	Date      time.Time `json:"date,omitzero"`
	Available bool      `json:"available"`
}

// ISODate возвращает дату ячейки в формате YYYY-MM-DD.
func (c CalendarCell) ISODate() string {
	if c.Blank {
		return ""
	}
	return c.Date.Format("2006-01-02")
}
