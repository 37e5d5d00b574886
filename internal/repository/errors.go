package repository

import (
	"context"
	"errors"

	"github.com/revollution/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	ErrNotFound             = errors.New("document not found")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// classify maps a driver error onto a domain kind by its type, never its text.
func classify(message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.WrapError(domain.KindNotFound, message, ErrNotFound)
	}
	if unavailable(err) {
		return domain.WrapError(domain.KindDatabaseUnavailable, message, err)
	}
	return domain.WrapError(domain.KindUnknown, message, err)
}

func unavailable(err error) bool {
	var selection topology.ServerSelectionError
	switch {
	case errors.As(err, &selection):
		return true
	case errors.Is(err, mongo.ErrClientDisconnected):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return true
	}
	return false
}
