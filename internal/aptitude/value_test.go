package aptitude

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_JSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		json  string
	}{
		{"string", StringValue("growth"), `"growth"`},
		{"integer", NumberValue(3), `3`},
		{"fraction", NumberValue(2.5), `2.5`},
		{"numeric-looking string stays a string", StringValue("4"), `"4"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(b))

			var back Value
			require.NoError(t, json.Unmarshal(b, &back))
			assert.Equal(t, tt.value, back)
		})
	}
}

func TestValue_UnmarshalRejectsOtherTypes(t *testing.T) {
	for _, in := range []string{`true`, `null`, `[1]`, `{"a":1}`} {
		var v Value
		assert.Error(t, json.Unmarshal([]byte(in), &v), "input %s", in)
	}
}

func TestValue_Float(t *testing.T) {
	tests := []struct {
		value  Value
		want   float64
		wantOK bool
	}{
		{NumberValue(5), 5, true},
		{StringValue("3"), 3, true},
		{StringValue(" 2.5\n"), 2.5, true},
		{StringValue("five"), 0, false},
		{StringValue(""), 0, false},
		{StringValue("Inf"), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.value.Float()
		assert.Equal(t, tt.wantOK, ok, "Float(%q)", tt.value.String())
		assert.Equal(t, tt.want, got, "Float(%q)", tt.value.String())
	}
}

func TestAnswer_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(num("q3", 4))
	require.NoError(t, err)
	assert.JSONEq(t, `{"questionId":"q3","value":4,"answeredAt":"2025-01-01T00:00:00Z"}`, string(b))
}
