package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		present bool
		value   any
		wantErr bool
	}{
		{name: "json number", in: `{"n": 42}`, present: true, value: int64(42)},
		{name: "zero is present", in: `{"n": 0}`, present: true, value: int64(0)},
		{name: "numeric string", in: `{"n": "1500000"}`, present: true, value: int64(1500000)},
		{name: "decimal string", in: `{"n": "12.5"}`, present: true, value: 12.5},
		{name: "empty string", in: `{"n": ""}`},
		{name: "null", in: `{"n": null}`},
		{name: "missing", in: `{}`},
		{name: "garbage", in: `{"n": "abc"}`, wantErr: true},
		{name: "largest exact integer", in: `{"n": "9007199254740992"}`, present: true, value: int64(1 << 53)},
		{name: "out of range string", in: `{"n": "1e30"}`, wantErr: true},
		{name: "out of range negative", in: `{"n": "-1e30"}`, wantErr: true},
		{name: "out of range number", in: `{"n": 1e30}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				N Number `json:"n"`
			}
			err := json.Unmarshal([]byte(tt.in), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.present, out.N.Present())
			if tt.present {
				assert.Equal(t, tt.value, out.N.Value())
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := MissingField("email")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "email: is required", err.Error())
}
