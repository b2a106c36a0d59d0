package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/miracura/booking_widget/internal/model"
)

// CartRepository хранит обе корзины как JSON-массивы под фиксированными
// ключами. Читается один раз при старте, пишется на каждой мутации.
type CartRepository struct {
	store KVStore
}

// NewCartRepository создаёт репозиторий корзин.
func NewCartRepository(store KVStore) *CartRepository {
	return &CartRepository{store: store}
}

// LoadParts загружает сохранённые части брони.
// Отсутствие ключа — пустая корзина, не ошибка.
func (r *CartRepository) LoadParts(ctx context.Context) ([]model.ReservationCartPart, error) {
	var parts []model.ReservationCartPart
	if err := r.load(ctx, ReservationCartKey, &parts); err != nil {
		return nil, err
	}
	if parts == nil {
		parts = []model.ReservationCartPart{}
	}
	return parts, nil
}

// SaveParts перезаписывает сохранённые части брони.
func (r *CartRepository) SaveParts(ctx context.Context, parts []model.ReservationCartPart) error {
	if parts == nil {
		parts = []model.ReservationCartPart{}
	}
	return r.save(ctx, ReservationCartKey, parts)
}

// LoadItems загружает сохранённые строки корзины магазина.
func (r *CartRepository) LoadItems(ctx context.Context) ([]model.EshopCartItem, error) {
	var items []model.EshopCartItem
	if err := r.load(ctx, EshopCartKey, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.EshopCartItem{}
	}
	return items, nil
}

// SaveItems перезаписывает сохранённые строки корзины магазина.
func (r *CartRepository) SaveItems(ctx context.Context, items []model.EshopCartItem) error {
	if items == nil {
		items = []model.EshopCartItem{}
	}
	return r.save(ctx, EshopCartKey, items)
}

func (r *CartRepository) load(ctx context.Context, key string, out any) error {
	data, err := r.store.Get(ctx, key)
	if IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *CartRepository) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
