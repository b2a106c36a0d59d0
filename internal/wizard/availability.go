package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/miracura/booking_widget/internal/api"
	"github.com/miracura/booking_widget/internal/calendar"
	"github.com/miracura/booking_widget/internal/model"
	"go.uber.org/zap"
)

// FetchKind вид запроса доступности.
type FetchKind string

const (
	FetchMonth FetchKind = "month" // окно отображаемого месяца
	FetchDay   FetchKind = "day"   // сутки от местной полуночи даты
	FetchFirst FetchKind = "first" // первый свободный слот на 3 месяца вперёд
)

const (
	monthFetchLimit = 100
	dayFetchLimit   = 100
)

// fetchAvailability запрашивает доступность и применяет результат.
// Запрос выполняется только на шаге выбора даты: на остальных шагах
// данные не нужны и вызов подавляется.
//
// Снятое при выдаче запроса поколение сравнивается с текущим при
// получении ответа: если контекст выбора успел измениться (месяц, дата,
// исполнитель, услуга, пояс), устаревший ответ отбрасывается.
func (s *Store) fetchAvailability(ctx context.Context, kind FetchKind, isoDate string) {
	s.mu.Lock()
	if s.service == nil || s.currentStepKindLocked() != StepDatetime {
		s.mu.Unlock()
		return
	}

	gen := s.fetchGen
	loc := s.loc
	q := api.SlotQuery{ServiceID: s.service.ID}
	if s.selectedProvider != nil {
		q.ProviderID = s.selectedProvider.ID
	}

	switch kind {
	case FetchMonth:
		q.From, q.To = calendar.MonthBounds(s.current)
		q.Limit = monthFetchLimit
	case FetchDay:
		day, err := calendar.ParseISODate(isoDate, loc)
		if err != nil {
			s.mu.Unlock()
			s.logger.Error("Invalid day for availability fetch", zap.String("date", isoDate))
			return
		}
		q.From = day.Unix()
		q.To = q.From + 24*3600
		q.Limit = dayFetchLimit
	case FetchFirst:
		now := time.Now().In(loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		q.From = today.Unix()
		q.To = calendar.AddMonths(now, 3).AddDate(0, 0, -1).Unix()
		q.Limit = 1
	default:
		s.mu.Unlock()
		return
	}

	s.loading = true
	s.mu.Unlock()

	windows, err := s.api.AvailableSlots(ctx, q)

	s.mu.Lock()
	s.loading = false

	if err != nil {
		s.mu.Unlock()
		s.logger.Error("Failed to fetch availability",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return
	}
	if gen != s.fetchGen {
		s.mu.Unlock()
		s.logger.Debug("Discarding stale availability response",
			zap.String("kind", string(kind)),
			zap.Uint64("gen", gen))
		return
	}

	switch kind {
	case FetchMonth:
		s.applyMonthLocked(windows)
		s.mu.Unlock()

	case FetchDay:
		s.applyDayLocked(windows)
		s.mu.Unlock()

	case FetchFirst:
		if len(windows) == 0 {
			s.mu.Unlock()
			return
		}
		first := time.Unix(windows[0].From, 0).In(loc)
		iso := first.Format("2006-01-02")

		// Перепрыгиваем календарь на месяц первого свободного слота
		s.current = calendar.FirstOfMonth(first)
		s.days = calendar.BuildMonthGrid(s.current)

		multiDay := s.isMultiDay
		if multiDay {
			s.startDate = iso
			s.selectedDate = iso
		} else {
			s.selectedDate = iso
		}
		s.mu.Unlock()

		s.fetchAvailability(ctx, FetchMonth, "")
		if !multiDay {
			s.fetchAvailability(ctx, FetchDay, iso)
		}
	}
}

// applyMonthLocked проставляет доступность ячеек сетки.
func (s *Store) applyMonthLocked(windows []api.SlotWindow) {
	starts := make([]int64, 0, len(windows))
	for _, w := range windows {
		starts = append(starts, w.From)
	}
	s.days = calendar.ApplyAvailability(s.days, calendar.AvailableDays(starts, s.loc))
}

// applyDayLocked превращает окна в слоты дня. Первый слот выбирается
// автоматически, если пользователь ещё ничего не выбрал.
func (s *Store) applyDayLocked(windows []api.SlotWindow) {
	slots := make([]model.Slot, 0, len(windows))
	for i, w := range windows {
		slots = append(slots, model.Slot{
			ID:       fmt.Sprintf("slot-%d-%d", w.From, i),
			From:     w.From,
			To:       w.To,
			Day:      time.Unix(w.From, 0).In(s.loc).Format("2006-01-02"),
			TimeText: calendar.FormatSlotTime(w.From, w.To, s.loc),
		})
	}

	s.slots = slots

	// Уже выбранный слот перепривязывается к новому списку: после смены
	// пояса его текст времени пересчитан заново
	if s.selectedSlot != nil {
		for i := range slots {
			if slots[i].From == s.selectedSlot.From && slots[i].To == s.selectedSlot.To {
				s.selectedSlot = &slots[i]
				return
			}
		}
		s.selectedSlot = nil
	}
	if len(slots) > 0 && s.selectedSlot == nil {
		first := slots[0]
		s.selectedSlot = &first
	}
}

// FindFirstAvailable запускает поиск первого свободного слота.
func (s *Store) FindFirstAvailable(ctx context.Context) {
	s.fetchAvailability(ctx, FetchFirst, "")
}

// FetchMonthAvailability перезапрашивает доступность отображаемого месяца.
func (s *Store) FetchMonthAvailability(ctx context.Context) {
	s.fetchAvailability(ctx, FetchMonth, "")
}
