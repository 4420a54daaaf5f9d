// Package store holds the hash-record backends the mapper writes through.
package store

import (
	"context"
	"errors"
)

var ErrUnknownDriver = errors.New("unknown store driver")

// Store — минимальный контракт хэш-хранилища, которым пользуется маппер.
// Запись существует, пока в ней есть хотя бы одно поле.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	SetField(ctx context.Context, key, field, value string) error
	// GetField возвращает ok=false, если поля нет.
	GetField(ctx context.Context, key, field string) (value string, ok bool, err error)
}

// Deleter удаляет запись целиком. Маппер его не использует — только вызывающий код и тесты.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Dumper отдаёт все поля записи.
type Dumper interface {
	Fields(ctx context.Context, key string) (map[string]string, error)
}
