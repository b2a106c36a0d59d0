package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/miracura/booking_widget/internal/calendar"
	"github.com/miracura/booking_widget/internal/model"
	"go.uber.org/zap"
)

// Границы синтезированного диапазонного слота: локальные 09:00 первого
// дня и 17:00 последнего.
const (
	multiDayStartHour = 9
	multiDayEndHour   = 17
)

// SelectDate обрабатывает клик по ячейке календаря.
// Пустая или недоступная ячейка — тихий no-op.
//
// В режиме диапазона клики образуют трёхтактный цикл: первый задаёт
// начало, второй — конец (границы нормализуются, начало всегда не позже
// конца), третий начинает диапазон заново.
func (s *Store) SelectDate(ctx context.Context, cell model.CalendarCell) {
	if cell.Blank || !cell.Available {
		return
	}
	iso := cell.ISODate()

	s.mu.Lock()
	if !s.isMultiDay {
		s.selectedSlot = nil
		s.selectedDate = iso
		s.fetchGen++
		s.mu.Unlock()
		s.fetchAvailability(ctx, FetchDay, iso)
		return
	}

	switch {
	case s.startDate == "":
		s.startDate = iso
		s.selectedDate = iso
		s.endDate = ""
		s.selectedSlot = nil
	case s.endDate == "":
		// ISO-даты сравниваются лексикографически
		if iso < s.startDate {
			s.endDate = s.startDate
			s.startDate = iso
		} else {
			s.endDate = iso
		}
	default:
		s.startDate = iso
		s.selectedDate = iso
		s.endDate = ""
		s.selectedSlot = nil
	}
	s.fetchGen++
	s.ensureMultiDaySlotLocked()
	s.mu.Unlock()
}

// SelectTimeSlot выбирает слот из списка.
func (s *Store) SelectTimeSlot(slot model.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSlot = &slot
}

// ensureMultiDaySlotLocked синтезирует диапазонный слот, когда диапазон
// полон, а список слотов его ещё не отражает.
func (s *Store) ensureMultiDaySlotLocked() {
	if !s.isMultiDay || s.startDate == "" || s.endDate == "" {
		return
	}
	if s.currentStepKindLocked() != StepDatetime {
		return
	}
	if len(s.slots) > 0 && s.slots[0].IsMultiDay {
		return
	}

	start, err := calendar.ParseISODate(s.startDate, s.loc)
	if err != nil {
		return
	}
	end, err := calendar.ParseISODate(s.endDate, s.loc)
	if err != nil {
		return
	}

	from := time.Date(start.Year(), start.Month(), start.Day(), multiDayStartHour, 0, 0, 0, s.loc).Unix()
	to := time.Date(end.Year(), end.Month(), end.Day(), multiDayEndHour, 0, 0, 0, s.loc).Unix()

	slot := model.Slot{
		ID:         fmt.Sprintf("multi-day-slot-%d-%d", from, to),
		From:       from,
		To:         to,
		Day:        s.startDate,
		TimeText:   "9:00 AM - 5:00 PM daily",
		IsMultiDay: true,
		DateRange:  fmt.Sprintf("%s to %s", calendar.FormatShortDate(start), calendar.FormatShortDate(end)),
	}
	s.slots = []model.Slot{slot}
	s.selectedSlot = &slot
}

// PrevMonth листает календарь на месяц назад.
func (s *Store) PrevMonth(ctx context.Context) {
	s.shiftMonth(ctx, -1)
}

// NextMonth листает календарь на месяц вперёд.
func (s *Store) NextMonth(ctx context.Context) {
	s.shiftMonth(ctx, 1)
}

func (s *Store) shiftMonth(ctx context.Context, n int) {
	s.mu.Lock()
	s.current = calendar.AddMonths(s.current, n)
	s.days = calendar.BuildMonthGrid(s.current)
	s.fetchGen++
	hasService := s.service != nil
	s.mu.Unlock()

	if hasService {
		s.fetchAvailability(ctx, FetchMonth, "")
	}
}

// SetTimeZone меняет пояс отображения. Слоты выбранного дня
// перезапрашиваются: текст времени пересчитывается, а не переподписывается.
func (s *Store) SetTimeZone(ctx context.Context, zone string) {
	s.mu.Lock()
	if zone == s.timezone {
		s.mu.Unlock()
		return
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("Ignoring unknown time zone", zap.String("zone", zone))
		return
	}

	s.timezone = zone
	s.loc = loc
	s.fetchGen++

	onDatetime := s.currentStepKindLocked() == StepDatetime
	selectedDate := s.selectedDate
	startDate := s.startDate
	s.mu.Unlock()

	if !onDatetime {
		return
	}
	if selectedDate != "" {
		s.fetchAvailability(ctx, FetchDay, selectedDate)
	} else if startDate == "" {
		s.fetchAvailability(ctx, FetchFirst, "")
	}
}
