package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// DocumentStore keeps serialized JSON documents by key.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// PutBatch writes every document in one transaction.
	PutBatch(ctx context.Context, docs map[string][]byte) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
