package wizard

import (
	"context"
	"testing"

	"github.com/miracura/booking_widget/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartPersistsAndResetsWizard(t *testing.T) {
	s, repo := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), standardService())
	s.SelectDate(context.Background(), availableCell("2026-09-10"))

	slot := model.Slot{ID: "slot-1", From: 100, To: 1900, TimeText: "10:00 – 10:30"}
	s.SelectTimeSlot(slot)

	res := s.AddToCart(context.Background(), slot)
	require.True(t, res.Success, res.Error)

	st := s.Snapshot()
	require.Len(t, st.Parts, 1)
	part := st.Parts[0]
	assert.NotEmpty(t, part.ID)
	assert.Equal(t, "svc-standard", part.ServiceID)
	assert.Equal(t, "Haircut", part.ServiceName)
	assert.Equal(t, "Thu, Sep 10, 2026", part.Date)
	assert.Equal(t, model.MethodStandard, part.ReservationMethod)

	// Мастер вернулся к чистому выбору
	assert.Equal(t, 1, st.CurrentStep)
	assert.Empty(t, st.SelectedDate)
	assert.Nil(t, st.SelectedSlot)
	// Единственный метод услуги переживает сброс
	assert.Equal(t, model.MethodStandard, st.SelectedMethod)

	// Перезапуск с тем же хранилищем восстанавливает корзину
	reloaded := NewStore(&fakeAPI{}, &fakeTokens{}, repo, Options{BusinessID: "biz-1"}, nil)
	require.NoError(t, reloaded.Init(context.Background()))
	restored := reloaded.Parts()
	require.Len(t, restored, 1)
	assert.Equal(t, part.ID, restored[0].ID)
	assert.Equal(t, part.ServiceName, restored[0].ServiceName)
}

func TestAddToCartClearsMethodOnlyForMultiMethodService(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), multiMethodService())
	s.SelectMethod(context.Background(), model.MethodStandard, true)
	s.SelectDate(context.Background(), availableCell("2026-09-10"))

	slot := model.Slot{ID: "slot-1", From: 100, To: 1900}
	s.SelectTimeSlot(slot)
	res := s.AddToCart(context.Background(), slot)
	require.True(t, res.Success, res.Error)

	assert.Empty(t, s.Snapshot().SelectedMethod)
}

func TestAddToCartMultiDayRangeDisplay(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), multiDayService())
	s.SelectDate(context.Background(), availableCell("2026-09-05"))
	s.SelectDate(context.Background(), availableCell("2026-09-10"))

	st := s.Snapshot()
	require.NotNil(t, st.SelectedSlot)
	res := s.AddToCart(context.Background(), *st.SelectedSlot)
	require.True(t, res.Success, res.Error)

	parts := s.Parts()
	require.Len(t, parts, 1)
	assert.Equal(t, "Sep 5 - Sep 10, 2026", parts[0].Date)
	assert.True(t, parts[0].IsMultiDay)
}

func TestAddToCartWithoutServiceFails(t *testing.T) {
	s, _ := newTestStore(t, &fakeAPI{})
	res := s.AddToCart(context.Background(), model.Slot{ID: "slot-1"})
	assert.False(t, res.Success)
	assert.Empty(t, s.Parts())
}

func TestRemovePart(t *testing.T) {
	s, repo := newTestStore(t, &fakeAPI{})
	s.SetService(context.Background(), standardService())

	for _, iso := range []string{"2026-09-10", "2026-09-11"} {
		s.SelectDate(context.Background(), availableCell(iso))
		slot := model.Slot{ID: "slot-" + iso, From: 100, To: 1900}
		s.SelectTimeSlot(slot)
		require.True(t, s.AddToCart(context.Background(), slot).Success)
	}

	parts := s.Parts()
	require.Len(t, parts, 2)

	res := s.RemovePart(context.Background(), parts[0].ID)
	require.True(t, res.Success, res.Error)

	remaining := s.Parts()
	require.Len(t, remaining, 1)
	assert.Equal(t, parts[1].ID, remaining[0].ID)

	persisted, err := repo.LoadParts(context.Background())
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, parts[1].ID, persisted[0].ID)
}
