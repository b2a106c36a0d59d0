package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/miracura/booking_widget/internal/api"
	"github.com/miracura/booking_widget/internal/model"
	"github.com/miracura/booking_widget/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations

type fakeAPI struct {
	mu sync.Mutex

	slotsFn      func(q api.SlotQuery) ([]api.SlotWindow, error)
	slotQueries  []api.SlotQuery
	providers    []model.Provider
	providersErr error

	reservations   []api.ReservationRequest
	reservationErr error

	updatePhoneErr error
	confirmErr     error
	phoneCalls     int
}

func (f *fakeAPI) AvailableSlots(_ context.Context, q api.SlotQuery) ([]api.SlotWindow, error) {
	f.mu.Lock()
	f.slotQueries = append(f.slotQueries, q)
	fn := f.slotsFn
	f.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(q)
}

func (f *fakeAPI) Providers(_ context.Context, _ string, _ int) ([]model.Provider, error) {
	return f.providers, f.providersErr
}

func (f *fakeAPI) CreateReservation(_ context.Context, _ string, req api.ReservationRequest) (*api.ReservationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reservationErr != nil {
		return nil, f.reservationErr
	}
	f.reservations = append(f.reservations, req)
	return &api.ReservationResult{ReservationID: "res-1"}, nil
}

func (f *fakeAPI) UpdateProfilePhone(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phoneCalls++
	return f.updatePhoneErr
}

func (f *fakeAPI) ConfirmPhoneNumber(_ context.Context, _, _, _ string) error {
	return f.confirmErr
}

func (f *fakeAPI) slotQueryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slotQueries)
}

type fakeTokens struct {
	err   error
	calls int
}

func (f *fakeTokens) Token(_ context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "guest-token", nil
}

// Вид запроса доступности восстанавливается по форме окна: сутки от
// полуночи — день, лимит 1 — первый свободный, остальное — месяц.
func queryKind(q api.SlotQuery) FetchKind {
	switch {
	case q.Limit == 1:
		return FetchFirst
	case q.To-q.From == 24*3600:
		return FetchDay
	default:
		return FetchMonth
	}
}

func newTestRepo() *repository.CartRepository {
	return repository.NewCartRepository(repository.NewMemoryStore())
}

func newTestStore(t *testing.T, apiClient *fakeAPI) (*Store, *repository.CartRepository) {
	t.Helper()
	repo := newTestRepo()
	s := NewStore(apiClient, &fakeTokens{}, repo, Options{
		BusinessID: "biz-1",
		Locale:     "en",
		DeviceZone: "UTC",
	}, nil)
	require.NoError(t, s.Init(context.Background()))
	return s, repo
}

func standardService() *model.Service {
	return &model.Service{
		ID:                 "svc-standard",
		Name:               model.LocalizedText{"en": "Haircut"},
		ReservationMethods: []model.ReservationMethod{model.MethodStandard},
		Durations:          []model.ServiceDuration{{Duration: 1800}},
	}
}

func multiMethodService() *model.Service {
	return &model.Service{
		ID:   "svc-multi",
		Name: model.LocalizedText{"en": "Consultation"},
		ReservationMethods: []model.ReservationMethod{
			model.MethodStandard, model.MethodOrder, model.MethodSpecificProvider,
		},
		Durations: []model.ServiceDuration{{Duration: 3600}},
	}
}

func multiDayService() *model.Service {
	return &model.Service{
		ID:                 "svc-rental",
		Name:               model.LocalizedText{"en": "Equipment Rental"},
		ReservationMethods: []model.ReservationMethod{model.MethodStandard},
		ReservationConfigs: model.ReservationConfigs{IsMultiDay: true},
	}
}

// availableCell ячейка календаря для фабрикации кликов в тестах.
func availableCell(iso string) model.CalendarCell {
	date, _ := time.ParseInLocation("2006-01-02", iso, time.UTC)
	return model.CalendarCell{Date: date, Available: true}
}

func TestSetServiceAutoSelectsSoleMethod(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), standardService())

	st := s.Snapshot()
	assert.Equal(t, model.MethodStandard, st.SelectedMethod)
	assert.Equal(t, []StepKind{StepDatetime, StepReview}, kinds(st.Steps))
	assert.Equal(t, 1, st.CurrentStep)
}

func TestSetServiceMultiMethodWaitsForChoice(t *testing.T) {
	f := &fakeAPI{}
	s, _ := newTestStore(t, f)
	s.SetService(context.Background(), multiMethodService())

	st := s.Snapshot()
	assert.Empty(t, st.SelectedMethod)
	assert.Equal(t, []StepKind{StepMethod, StepReview}, kinds(st.Steps))
	// Вне шага даты запрос доступности подавлен
	assert.Equal(t, 0, f.slotQueryCount())
}

func TestNextStepGatedByCanProceed(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), multiMethodService())

	s.NextStep(context.Background())
	assert.Equal(t, 1, s.Snapshot().CurrentStep)

	s.SelectMethod(context.Background(), model.MethodStandard, false)
	s.NextStep(context.Background())

	st := s.Snapshot()
	assert.Equal(t, 2, st.CurrentStep)
	assert.Equal(t, StepDatetime, st.Steps[st.CurrentStep-1].Kind)
}

func TestPrevStepClearsLeavingStepState(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), standardService())

	s.SelectDate(context.Background(), availableCell("2026-09-10"))
	s.SelectTimeSlot(model.Slot{ID: "slot-1", From: 100, To: 200})
	require.True(t, s.CanProceed())
	s.NextStep(context.Background())
	require.Equal(t, StepReview, s.CurrentStepKind())

	s.PrevStep()

	st := s.Snapshot()
	assert.Equal(t, StepDatetime, st.Steps[st.CurrentStep-1].Kind)
	// Review не несёт состояния, выбор даты не тронут
	assert.Equal(t, "2026-09-10", st.SelectedDate)

	s.PrevStep()
	assert.Equal(t, StepDatetime, s.CurrentStepKind())
}

func TestGoToStepBackwardClearsIntermediateSteps(t *testing.T) {
	f := &fakeAPI{providers: []model.Provider{
		{ID: "p1", Name: model.LocalizedText{"en": "Anna"}},
		{ID: "p2", Name: model.LocalizedText{"en": "Boris"}},
	}}
	s, _ := newTestStore(t, f)
	s.SetService(context.Background(), multiMethodService())

	s.SelectMethod(context.Background(), model.MethodSpecificProvider, true)
	require.Equal(t, StepProvider, s.CurrentStepKind())

	s.SelectProvider(context.Background(), f.providers[0])
	s.NextStep(context.Background())
	require.Equal(t, StepDatetime, s.CurrentStepKind())
	s.SelectDate(context.Background(), availableCell("2026-09-10"))

	s.GoToStep(context.Background(), 1)

	st := s.Snapshot()
	assert.Equal(t, 1, st.CurrentStep)
	// Промежуточные шаги очищены, сам целевой шаг не тронут
	assert.Nil(t, st.SelectedProvider)
	assert.Empty(t, st.SelectedDate)
	assert.Equal(t, model.MethodSpecificProvider, st.SelectedMethod)
}

func TestGoToStepOutOfRangeIgnored(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), standardService())

	s.GoToStep(context.Background(), 0)
	assert.Equal(t, 1, s.Snapshot().CurrentStep)
	s.GoToStep(context.Background(), 99)
	assert.Equal(t, 1, s.Snapshot().CurrentStep)
}

func TestCanProceedPerStep(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), standardService())

	// Шаг даты: нужны и дата, и слот
	assert.False(t, s.CanProceed())
	s.SelectDate(context.Background(), availableCell("2026-09-10"))
	assert.False(t, s.CanProceed())
	s.SelectTimeSlot(model.Slot{ID: "slot-1", From: 100, To: 200})
	assert.True(t, s.CanProceed())
}
