package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoType(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{"nil_to_empty_string", nil, ""},
		{"true_literal", "TRUE", true},
		{"false_literal", "FALSE", false},
		{"int", "42", 42},
		{"negative_int", "-1", -1},
		{"float", "1.5", 1.5},
		{"plain_string", "hello", "hello"},
		{"lowercase_true_stays_string", "true", "true"},
		{"non_string_passthrough", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AutoType(tt.in))
		})
	}
}

func TestAutoUntype(t *testing.T) {
	assert.Equal(t, "TRUE", AutoUntype(true))
	assert.Equal(t, "FALSE", AutoUntype(false))
	assert.Equal(t, "already", AutoUntype("already"))
	assert.Equal(t, 42, AutoUntype(42))
}

func TestAsList(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want []interface{}
	}{
		{"nil", nil, nil},
		{"list_as_is", []interface{}{"a", "b"}, []interface{}{"a", "b"}},
		{"bare_value_wrapped", "a", []interface{}{"a"}},
		{"bare_map_wrapped", Params{"x": "y"}, []interface{}{Params{"x": "y"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsList(tt.in))
		})
	}
}

func TestContent(t *testing.T) {
	assert.Equal(t, "text", Content(Params{"_content": "text"}))
	assert.Equal(t, "bare", Content("bare"))
	assert.Equal(t, "", Content(nil))
	assert.Equal(t, "", Content(Params{}))
	assert.Equal(t, "42", Content(42))
}
