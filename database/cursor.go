package database

import (
	"context"
	"fmt"
)

// docCursor is the subset of mongo.Cursor the decode loop depends on.
type docCursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
}

// DecodeAll drains a query cursor into a slice. A cursor that stops early
// because of a driver error surfaces that error instead of silently returning
// a truncated result set.
func DecodeAll[T any](ctx context.Context, cursor docCursor, label string) ([]T, error) {
	var docs []T
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", label, err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", label, err)
	}
	return docs, nil
}
