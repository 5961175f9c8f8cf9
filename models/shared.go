package models

import (
	"bytes"
	"fmt"
)

// ActiveFlag is a boolean that tolerates the legacy wire encodings "0"/"1"
// (strings) alongside plain booleans. Internally the value is always a bool;
// conversion happens at the JSON boundary only.
type ActiveFlag bool

func (f ActiveFlag) Bool() bool {
	return bool(f)
}

func (f ActiveFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

func (f *ActiveFlag) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte(`"1"`)), bytes.Equal(data, []byte("1")):
		*f = true
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte(`"0"`)), bytes.Equal(data, []byte("0")):
		*f = false
	case bytes.Equal(data, []byte("null")):
		// leave as-is
	default:
		return fmt.Errorf("invalid is_active value: %s", string(data))
	}
	return nil
}

// Pagination describes a page of a list response.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}
