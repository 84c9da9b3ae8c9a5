package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt64_KeepsPrecision(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{`9007199254740993`, 9007199254740993},
		{`"9007199254740993"`, 9007199254740993},
		{`"42"`, 42},
		{`"12.0"`, 12},
		{`null`, 0},
		{`""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v flexInt64
			require.NoError(t, v.UnmarshalJSON([]byte(tt.raw)))
			assert.Equal(t, tt.want, int64(v))
		})
	}
}

func TestFlexInt_RejectsFractions(t *testing.T) {
	for _, raw := range []string{`"1.5"`, `2.25`, `"abc"`, `"1e30"`} {
		var v flexInt
		assert.Error(t, v.UnmarshalJSON([]byte(raw)), raw)
	}

	var v flexInt
	require.NoError(t, v.UnmarshalJSON([]byte(`"80"`)))
	assert.Equal(t, 80, int(v))
}

func TestFlexFloat_AcceptsStrings(t *testing.T) {
	var v flexFloat
	require.NoError(t, v.UnmarshalJSON([]byte(`"1440.5"`)))
	assert.Equal(t, 1440.5, float64(v))
}
