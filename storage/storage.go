// Package storage persists named collections of records as whole JSON
// documents. Every backend overwrites the full collection on save; none of
// them lock.
package storage

import (
	"context"
	"encoding/json"
	"regexp"

	"career-guide/errors"
	"career-guide/logger"
)

// Adapter loads and saves the serialized form of a named collection.
//
// Load returns an errors.NotFound kind when the collection was never
// written and errors.Internal when it exists but cannot be read.
type Adapter interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
}

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

func checkName(collection string) error {
	if !collectionName.MatchString(collection) {
		return errors.E(errors.Invalid, "invalid collection name: "+collection)
	}
	return nil
}

// Decode loads a collection and unmarshals it, reporting why it failed.
func Decode[T any](ctx context.Context, a Adapter, collection string) ([]T, error) {
	data, err := a.Load(ctx, collection)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.E(errors.Internal, "corrupt collection "+collection, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Read returns the stored records of a collection. A missing, unreadable or
// corrupt collection reads as empty; the failure is logged, not returned.
func Read[T any](ctx context.Context, a Adapter, collection string) []T {
	out, err := Decode[T](ctx, a, collection)
	if err != nil {
		if errors.IsKind(err, errors.NotFound) {
			logger.Debug("Collection %s not found, starting empty", collection)
		} else {
			logger.Error("Error reading %s: %v", collection, err)
		}
		return []T{}
	}
	return out
}

// Write replaces the whole collection with records.
func Write[T any](ctx context.Context, a Adapter, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.E(errors.Internal, "encode "+collection, err)
	}
	if err := a.Save(ctx, collection, data); err != nil {
		logger.Error("Error writing %s: %v", collection, err)
		return err
	}
	return nil
}
