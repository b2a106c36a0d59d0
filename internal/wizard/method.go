package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/miracura/booking_widget/internal/calendar"
	"github.com/miracura/booking_widget/internal/model"
	"go.uber.org/zap"
)

const providersPageLimit = 50

// SelectMethod выбирает метод бронирования: сбрасывает выбор даты и
// слота, пересчитывает шаги и исполняет вычисленное намерение перехода.
//
// ORDER синтезирует немедленный слот и уводит сразу на review;
// SPECIFIC-метод загружает исполнителей и при единственном выбирает его
// автоматически; STANDARD уводит сразу на выбор даты.
func (s *Store) SelectMethod(ctx context.Context, method model.ReservationMethod, advance bool) {
	s.mu.Lock()
	s.resetDateSelectionLocked()
	s.selectedMethod = method
	s.determineStepsLocked()

	if method == model.MethodOrder {
		s.synthesizeOrderSlotLocked()
	}
	s.mu.Unlock()

	providerCount := 0
	if method.IsSpecific() {
		s.loadProviders(ctx)

		s.mu.Lock()
		providerCount = len(s.providers)
		if advance && providerCount == 1 {
			p := s.providers[0]
			s.selectedProvider = &p
		}
		s.mu.Unlock()
	}

	switch decideMethodNavigation(method, advance, providerCount) {
	case NavToReview:
		if idx, found := s.stepIndex(StepReview); found {
			s.GoToStep(ctx, idx)
		}
	case NavToDatetime:
		if idx, found := s.stepIndex(StepDatetime); found {
			s.GoToStep(ctx, idx)
		}
	case NavNext:
		s.mu.Lock()
		atLast := s.currentStep >= len(s.steps)
		s.mu.Unlock()
		if !atLast {
			s.NextStep(ctx)
		}
	case NavStay:
	}
}

// stepIndex возвращает 1-базный номер шага по виду.
func (s *Store) stepIndex(kind StepKind) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepIndexLocked(kind)
}

// synthesizeOrderSlotLocked создаёт слот "сейчас + суммарная длительность"
// для метода ORDER: дата и время сервером не запрашиваются.
func (s *Store) synthesizeOrderSlotLocked() {
	if s.service == nil {
		return
	}

	from := time.Now().Unix()
	to := from + s.service.TotalDuration()
	slot := model.Slot{
		ID:       uuid.NewString(),
		From:     from,
		To:       to,
		Day:      time.Unix(from, 0).In(s.loc).Format("2006-01-02"),
		TimeText: calendar.FormatSlotTime(from, to, s.loc),
	}
	s.selectedSlot = &slot
}

// loadProviders загружает список исполнителей услуги.
// Сетевая ошибка оставляет список пустым, наружу не выбрасывается.
func (s *Store) loadProviders(ctx context.Context) {
	s.mu.Lock()
	if s.service == nil {
		s.mu.Unlock()
		return
	}
	serviceID := s.service.ID
	s.providers = nil
	s.loading = true
	s.mu.Unlock()

	providers, err := s.api.Providers(ctx, serviceID, providersPageLimit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.logger.Error("Failed to load providers",
			zap.String("service_id", serviceID),
			zap.Error(err))
		return
	}
	s.providers = providers
}

// SelectProvider выбирает исполнителя и сбрасывает выбор даты:
// доступность у каждого исполнителя своя.
func (s *Store) SelectProvider(ctx context.Context, p model.Provider) {
	s.mu.Lock()
	provider := p
	s.selectedProvider = &provider
	s.resetDateSelectionLocked()
	onDatetime := s.currentStepKindLocked() == StepDatetime
	s.mu.Unlock()

	if onDatetime {
		s.fetchAvailability(ctx, FetchMonth, "")
		s.fetchAvailability(ctx, FetchFirst, "")
	}
}
