package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mailio/go-campaign-console/types"
)

// fixed keys of the locally owned collections
const (
	TemplatesKey = "emailTemplates"
	SendersKey   = "savedSenders"
)

// Collection is a list of T serialized as one JSON array under a single key.
// Every write replaces the whole array (last writer wins).
type Collection[T any] struct {
	storage Storage
	key     string
}

func NewCollection[T any](storage Storage, key string) *Collection[T] {
	return &Collection[T]{storage: storage, key: key}
}

// Load reads the whole collection. A missing key is an empty collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.storage.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var items []T
	if uErr := json.Unmarshal(data, &items); uErr != nil {
		return nil, fmt.Errorf("collection %s is corrupted: %w", c.key, uErr)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll overwrites the stored collection with items
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.storage.Put(ctx, c.key, data)
}

func (c *Collection[T]) Key() string {
	return c.key
}
