package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Stringify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps key order", `{"b":1,"a":2}`, `{"b":1,"a":2}`},
		{"no html escaping", `{"t":"<b>é&"}`, `{"t":"<b>é&"}`},
		{"shortest numbers", `{"n":1.50,"m":1E2,"k":-0,"s":0.0000001,"l":1e21}`, `{"n":1.5,"m":100,"k":0,"s":1e-7,"l":1e+21}`},
		{"out of range", `[1e400,-1e400,1e-400]`, `[null,null,0]`},
		{"control characters", `"a\u0001\n\"\\/"`, `"a\u0001\n\"\\/"`},
		{"duplicate key keeps first position", `{"a":1,"b":2,"a":3}`, `{"a":3,"b":2}`},
		{"index keys first", `{"b":1,"10":2,"2":3,"01":4}`, `{"2":3,"10":2,"b":1,"01":4}`},
		{"empty containers", `{"o":{},"a":[]}`, `{"o":{},"a":[]}`},
		{"scalars", `true`, `true`},
		{"null", `null`, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Record(tt.in).Stringify("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestRecord_StringifyIndented(t *testing.T) {
	out, err := Record(`{"a":[1,{"b":null}],"c":{},"d":[]}`).Stringify("  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    {\n      \"b\": null\n    }\n  ],\n  \"c\": {},\n  \"d\": []\n}", string(out))
}

func TestStringifyArray(t *testing.T) {
	out, err := StringifyArray(nil, "  ")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	out, err = StringifyArray([]Record{Record(`{"x":"<i>"}`), Record(`2.50`)}, "  ")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"x\": \"<i>\"\n  },\n  2.5\n]", string(out))
}

func TestRecord_StringifyInvalid(t *testing.T) {
	_, err := Record(`{"a":`).Stringify("")
	assert.Error(t, err)
}
