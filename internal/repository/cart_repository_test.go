package repository

import (
	"context"
	"testing"

	"github.com/miracura/booking_widget/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepositoryPartsRoundTrip(t *testing.T) {
	repo := NewCartRepository(NewMemoryStore())
	ctx := context.Background()

	parts := []model.ReservationCartPart{{
		ID:                "part-1",
		ServiceID:         "svc-1",
		ServiceName:       "Haircut",
		Date:              "Thu, Sep 10, 2026",
		From:              100,
		To:                1900,
		ReservationMethod: model.MethodStandard,
		Blocks:            []model.Block{},
	}}
	require.NoError(t, repo.SaveParts(ctx, parts))

	loaded, err := repo.LoadParts(ctx)
	require.NoError(t, err)
	assert.Equal(t, parts, loaded)
}

func TestCartRepositoryNilSavedAsEmptyArray(t *testing.T) {
	store := NewMemoryStore()
	repo := NewCartRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.SaveParts(ctx, nil))
	data, err := store.Get(ctx, ReservationCartKey)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	require.NoError(t, repo.SaveItems(ctx, nil))
	data, err = store.Get(ctx, EshopCartKey)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestCartRepositoryCorruptPayload(t *testing.T) {
	store := NewMemoryStore()
	repo := NewCartRepository(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ReservationCartKey, []byte("not json")))
	_, err := repo.LoadParts(ctx)
	assert.Error(t, err)
}

func TestCartKeysSeparate(t *testing.T) {
	repo := NewCartRepository(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.SaveParts(ctx, []model.ReservationCartPart{{ID: "part-1"}}))
	require.NoError(t, repo.SaveItems(ctx, []model.EshopCartItem{{ID: "item-1"}, {ID: "item-2"}}))

	parts, err := repo.LoadParts(ctx)
	require.NoError(t, err)
	items, err := repo.LoadItems(ctx)
	require.NoError(t, err)

	assert.Len(t, parts, 1)
	assert.Len(t, items, 2)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
