package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveFlagAcceptsLegacyEncodings(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`1`, true},
		{`0`, false},
	}
	for _, tc := range cases {
		var f ActiveFlag
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &f), tc.raw)
		assert.Equal(t, tc.want, f.Bool(), tc.raw)
	}
}

func TestActiveFlagRejectsGarbage(t *testing.T) {
	var f ActiveFlag
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`2`), &f))
}

func TestActiveFlagMarshalsAsBool(t *testing.T) {
	out, err := json.Marshal(struct {
		Active ActiveFlag `json:"is_active"`
	}{Active: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_active":true}`, string(out))
}

func TestActiveFlagNullLeavesValue(t *testing.T) {
	f := ActiveFlag(true)
	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.True(t, f.Bool())
}
