package cart

import (
	"context"
	"errors"
)

const (
	CartNamespace    = "revollution-cart"
	HistoryNamespace = "revollution-orders"
)

var ErrNotFound = errors.New("storage key not found")

// Storage persists raw snapshots under a key. Load returns ErrNotFound for absent keys.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

func storageKey(namespace, id string) string {
	if id == "" {
		return namespace
	}
	return namespace + ":" + id
}
