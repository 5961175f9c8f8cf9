package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCursor struct {
	items     []string
	pos       int
	err       error
	decodeErr error
}

func (c *stubCursor) Next(context.Context) bool {
	if c.pos >= len(c.items) {
		return false
	}
	c.pos++
	return true
}

func (c *stubCursor) Decode(val interface{}) error {
	if c.decodeErr != nil {
		return c.decodeErr
	}
	*(val.(*string)) = c.items[c.pos-1]
	return nil
}

func (c *stubCursor) Err() error { return c.err }

func TestDecodeAllDrainsCursor(t *testing.T) {
	docs, err := DecodeAll[string](context.Background(), &stubCursor{items: []string{"a", "b"}}, "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, docs)
}

func TestDecodeAllEmptyCursor(t *testing.T) {
	docs, err := DecodeAll[string](context.Background(), &stubCursor{}, "test")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecodeAllSurfacesCursorError(t *testing.T) {
	// The driver yields part of the result set and then fails mid-iteration;
	// the partial slice must not be reported as a complete page.
	cursorErr := errors.New("connection reset")
	docs, err := DecodeAll[string](context.Background(), &stubCursor{items: []string{"a"}, err: cursorErr}, "test")
	assert.Nil(t, docs)
	require.Error(t, err)
	assert.ErrorIs(t, err, cursorErr)
}

func TestDecodeAllSurfacesDecodeError(t *testing.T) {
	decodeErr := errors.New("bad document")
	_, err := DecodeAll[string](context.Background(), &stubCursor{items: []string{"a"}, decodeErr: decodeErr}, "test")
	assert.ErrorIs(t, err, decodeErr)
}
