package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"Nil", nil, 0},
		{"Int", 42, 42},
		{"JSON number", float64(1234567890123), 1234567890123},
		{"String", " 17 ", 17},
		{"Bytes", []byte("9"), 9},
		{"Garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
	assert.Equal(t, 3, ToInt(float64(3.9)))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "x", ToString("x"))
	assert.Equal(t, "12", ToString(float64(12)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "true", ToString(true))
}

func TestToStringSlice(t *testing.T) {
	assert.Nil(t, ToStringSlice(nil))
	assert.Nil(t, ToStringSlice([]any{}))
	assert.Nil(t, ToStringSlice(""))
	assert.Equal(t, []string{"a", "b"}, ToStringSlice([]any{"a", "b"}))
	assert.Equal(t, []string{"solo"}, ToStringSlice("solo"))
	assert.Equal(t, []string{"x"}, ToStringSlice([]string{"x"}))
}
