package calendar

import (
	"time"

	"github.com/miracura/booking_widget/internal/model"
)

// Weekdays подписи колонок сетки, неделя начинается с понедельника.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FirstOfMonth возвращает первое число месяца, к которому относится t.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths сдвигает месяц на n, всегда возвращая первое число.
func AddMonths(month time.Time, n int) time.Time {
	return FirstOfMonth(month).AddDate(0, n, 0)
}

// MonthTitle заголовок сетки, например "June 2026".
func MonthTitle(month time.Time) string {
	return month.Format("January 2006")
}

// MonthBounds возвращает unix-границы окна доступности месяца:
// от полуночи первого числа до полуночи последнего числа включительно.
func MonthBounds(month time.Time) (from, to int64) {
	first := FirstOfMonth(month)
	last := first.AddDate(0, 1, -1)
	return first.Unix(), last.Unix()
}

// BuildMonthGrid строит сетку месяца: ячейки дней, выровненные пустыми
// ячейками до полных недель по 7 колонок.
func BuildMonthGrid(month time.Time) []model.CalendarCell {
	first := FirstOfMonth(month)
	last := first.AddDate(0, 1, -1)

	cells := make([]model.CalendarCell, 0, 42)

	// Ведущие пустые ячейки: Weekday() считает от воскресенья
	pad := (int(first.Weekday()) + 6) % 7
	for i := 0; i < pad; i++ {
		cells = append(cells, model.CalendarCell{Blank: true})
	}

	for d := 1; d <= last.Day(); d++ {
		cells = append(cells, model.CalendarCell{
			Date: time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, month.Location()),
		})
	}

	// Завершающие пустые ячейки до кратности недели
	suffix := (7 - len(cells)%7) % 7
	for i := 0; i < suffix; i++ {
		cells = append(cells, model.CalendarCell{Blank: true})
	}

	return cells
}

// ApplyAvailability проставляет доступность ячеек по множеству ISO-дат,
// в которые сервер сообщил хотя бы один свободный слот.
func ApplyAvailability(cells []model.CalendarCell, available map[string]bool) []model.CalendarCell {
	out := make([]model.CalendarCell, len(cells))
	for i, c := range cells {
		if !c.Blank {
			c.Available = available[c.ISODate()]
		}
		out[i] = c
	}
	return out
}

// AvailableDays собирает множество ISO-дат из unix-времён начала слотов.
func AvailableDays(slotStarts []int64, loc *time.Location) map[string]bool {
	days := make(map[string]bool, len(slotStarts))
	for _, from := range slotStarts {
		days[time.Unix(from, 0).In(loc).Format("2006-01-02")] = true
	}
	return days
}
