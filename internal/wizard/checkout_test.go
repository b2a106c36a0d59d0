package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/miracura/booking_widget/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addPart(t *testing.T, s *Store, iso string) {
	t.Helper()
	s.SelectDate(context.Background(), availableCell(iso))
	slot := model.Slot{ID: "slot-" + iso, From: 100, To: 1900}
	s.SelectTimeSlot(slot)
	require.True(t, s.AddToCart(context.Background(), slot).Success)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := &fakeAPI{}
	tokens := &fakeTokens{}
	repo := newTestRepo()
	s := NewStore(f, tokens, repo, Options{BusinessID: "biz-1"}, nil)

	res := s.Checkout(context.Background(), "CASH")

	assert.False(t, res.Success)
	assert.Equal(t, "Cart is empty", res.Error)
	// До сети дело не дошло
	assert.Zero(t, tokens.calls)
	assert.Empty(t, f.reservations)
}

func TestCheckoutSendsAllPartsAndClearsCart(t *testing.T) {
	f := &fakeAPI{}
	s, repo := newTestStore(t, f)
	s.SetService(context.Background(), standardService())
	addPart(t, s, "2026-09-10")
	addPart(t, s, "2026-09-11")

	res := s.Checkout(context.Background(), "CASH")
	require.True(t, res.Success, res.Error)

	require.Len(t, f.reservations, 1)
	req := f.reservations[0]
	assert.Equal(t, "biz-1", req.BusinessID)
	assert.Equal(t, "CASH", req.PaymentMethod)
	require.Len(t, req.Parts, 2)
	assert.Equal(t, "svc-standard", req.Parts[0].ServiceID)
	assert.NotNil(t, req.Blocks)

	// Обе копии корзины пусты
	assert.Empty(t, s.Parts())
	persisted, err := repo.LoadParts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	f := &fakeAPI{reservationErr: errors.New("payment required")}
	s, repo := newTestStore(t, f)
	s.SetService(context.Background(), standardService())
	addPart(t, s, "2026-09-10")

	res := s.Checkout(context.Background(), "CASH")

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "payment required")
	assert.Len(t, s.Parts(), 1)

	persisted, err := repo.LoadParts(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted, 1)

	// Ошибка не зажала повторную попытку
	f.mu.Lock()
	f.reservationErr = nil
	f.mu.Unlock()
	res = s.Checkout(context.Background(), "CASH")
	assert.True(t, res.Success, res.Error)
	assert.Empty(t, s.Parts())
}

func TestCheckoutWithoutTokenFails(t *testing.T) {
	f := &fakeAPI{}
	repo := newTestRepo()
	s := NewStore(f, &fakeTokens{err: errors.New("login rejected")}, repo, Options{BusinessID: "biz-1"}, nil)
	s.SetService(context.Background(), standardService())
	addPart(t, s, "2026-09-10")

	res := s.Checkout(context.Background(), "CASH")

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "failed to get guest token")
	assert.Len(t, s.Parts(), 1)
	assert.Empty(t, f.reservations)
}
