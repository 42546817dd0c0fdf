// Package storage holds the durable key-value backends the appointment store
// writes its snapshot to. Values are opaque strings.
package storage

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	AppointmentsKey = "tattoo-agendamentos"
	ThemeKey        = "tattoo-theme"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KeyValue is a string-valued durable store.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
