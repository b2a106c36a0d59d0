package calendar

import (
	"fmt"
	"time"
)

// FormatSlotTime форматирует интервал слота в поясе пользователя.
func FormatSlotTime(from, to int64, loc *time.Location) string {
	a := time.Unix(from, 0).In(loc)
	b := time.Unix(to, 0).In(loc)
	return fmt.Sprintf("%s – %s", a.Format("15:04"), b.Format("15:04"))
}

// FormatDayDisplay форматирует дату для карточки корзины.
func FormatDayDisplay(t time.Time) string {
	return t.Format("Mon, Jan 2, 2006")
}

// FormatShortDate форматирует короткую дату без года.
func FormatShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// FormatRangeDisplay форматирует диапазон дат для карточки корзины.
func FormatRangeDisplay(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

// ParseISODate разбирает дату формата YYYY-MM-DD в поясе loc.
func ParseISODate(iso string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", iso, loc)
}
