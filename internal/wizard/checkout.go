package wizard

import (
	"context"

	"github.com/miracura/booking_widget/internal/api"
	"github.com/miracura/booking_widget/internal/model"
	"go.uber.org/zap"
)

// Checkout отправляет все накопленные части одним запросом.
// Всё или ничего: при ошибке сервера корзина остаётся нетронутой,
// повтор всегда возможен. Успех очищает обе копии корзины.
func (s *Store) Checkout(ctx context.Context, paymentMethod string) Result {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return fail("checkout already in progress")
	}
	if len(s.parts) == 0 {
		s.mu.Unlock()
		return fail("Cart is empty")
	}

	s.loading = true
	parts := make([]model.CheckoutPart, 0, len(s.parts))
	for _, p := range s.parts {
		parts = append(parts, p.ToCheckoutPart())
	}
	businessID := s.businessID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.Error("Checkout aborted: no guest token", zap.Error(err))
		return fail("failed to get guest token: %v", err)
	}

	res, err := s.api.CreateReservation(ctx, token, api.ReservationRequest{
		BusinessID:    businessID,
		Blocks:        []model.Block{},
		Parts:         parts,
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		s.logger.Error("Checkout failed", zap.Error(err))
		return fail("%v", err)
	}

	s.mu.Lock()
	s.parts = []model.ReservationCartPart{}
	s.mu.Unlock()

	if err := s.repo.SaveParts(ctx, []model.ReservationCartPart{}); err != nil {
		// Бронь уже создана: память очищена, хранилище догонит на
		// следующей мутации
		s.logger.Error("Failed to clear persisted cart", zap.Error(err))
	}

	s.logger.Info("Reservation created",
		zap.String("reservation_id", res.ReservationID),
		zap.Int("parts", len(parts)))
	return ok()
}
