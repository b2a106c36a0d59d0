package repository

import (
	"context"
	"errors"
)

// ErrNotFound значение по ключу отсутствует.
var ErrNotFound = errors.New("key not found")

// Фиксированные ключи корзин. Значение — JSON-массив целиком,
// перезаписываемый при каждой мутации.
const (
	ReservationCartKey = "reservationCart"
	EshopCartKey       = "eshopCart"
)

// KVStore хранилище JSON-значений по фиксированным ключам.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// IsNotFound проверяет является ли ошибка "значение не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
