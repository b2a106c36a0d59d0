package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/miracura/booking_widget/internal/calendar"
	"github.com/miracura/booking_widget/internal/model"
	"go.uber.org/zap"
)

// AddToCart превращает завершённый проход мастера в неизменяемую часть
// корзины: снимок услуги, метода, исполнителя и блоков формы. Часть
// добавляется в память и сразу сохраняется в хранилище, после чего выбор
// даты сбрасывается и мастер возвращается на первый шаг.
func (s *Store) AddToCart(ctx context.Context, slot model.Slot) Result {
	s.mu.Lock()
	if s.service == nil {
		s.mu.Unlock()
		return fail("no service selected")
	}

	var dateDisplay string
	if s.isMultiDay && slot.IsMultiDay {
		a := time.Unix(slot.From, 0).In(s.loc)
		b := time.Unix(slot.To, 0).In(s.loc)
		dateDisplay = calendar.FormatRangeDisplay(a, b)
	} else {
		day := time.Unix(slot.From, 0).In(s.loc)
		if s.selectedDate != "" {
			if parsed, err := calendar.ParseISODate(s.selectedDate, s.loc); err == nil {
				day = parsed
			}
		}
		dateDisplay = calendar.FormatDayDisplay(day)
	}

	part := model.ReservationCartPart{
		ID:                uuid.NewString(),
		ServiceID:         s.service.ID,
		ServiceName:       s.service.Name.Resolve(s.locale),
		Date:              dateDisplay,
		From:              slot.From,
		To:                slot.To,
		TimeText:          slot.TimeText,
		IsMultiDay:        s.isMultiDay && (s.endDate != "" || slot.IsMultiDay),
		ReservationMethod: s.selectedMethod,
		Blocks:            model.WrapBlockValues(s.service.ReservationBlocks),
	}
	if part.Blocks == nil {
		part.Blocks = []model.Block{}
	}
	if s.selectedProvider != nil {
		part.ProviderID = s.selectedProvider.ID
	}

	s.parts = append(s.parts, part)
	snapshot := append([]model.ReservationCartPart(nil), s.parts...)

	// Следующий проход начинается с чистого выбора
	s.resetDateSelectionLocked()
	s.currentStep = 1
	if len(s.service.ReservationMethods) > 1 {
		s.selectedMethod = ""
	}
	s.mu.Unlock()

	if err := s.repo.SaveParts(ctx, snapshot); err != nil {
		s.logger.Error("Failed to persist reservation cart", zap.Error(err))
		return fail("failed to persist cart: %v", err)
	}

	s.logger.Info("Part added to cart",
		zap.String("part_id", part.ID),
		zap.String("service_id", part.ServiceID),
		zap.Int("parts", len(snapshot)))
	return ok()
}

// RemovePart удаляет часть из обеих копий корзины.
func (s *Store) RemovePart(ctx context.Context, id string) Result {
	s.mu.Lock()
	filtered := make([]model.ReservationCartPart, 0, len(s.parts))
	for _, p := range s.parts {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	s.parts = filtered
	snapshot := append([]model.ReservationCartPart(nil), filtered...)
	s.mu.Unlock()

	if err := s.repo.SaveParts(ctx, snapshot); err != nil {
		s.logger.Error("Failed to persist reservation cart", zap.Error(err))
		return fail("failed to persist cart: %v", err)
	}
	return ok()
}

// Parts возвращает копию накопленных частей.
func (s *Store) Parts() []model.ReservationCartPart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ReservationCartPart(nil), s.parts...)
}
