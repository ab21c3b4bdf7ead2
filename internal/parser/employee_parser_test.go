package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmployeeID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{" #12 ", 12, false},
		{"", 0, true},
		{"#", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEmployeeID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"active", "ACTIVE", "on", "true", "yes", "1"} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.True(t, got, in)
	}
	for _, in := range []string{"inactive", "Off", "false", "no", "0"} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.False(t, got, in)
	}

	_, err := ParseStatus("maybe")
	assert.EqualError(t, err, "invalid status 'maybe'. Use: active or inactive")
}

func TestStatusWordRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		got, err := ParseStatus(StatusWord(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := map[string]string{"": "table", "table": "table", "JSON": "json", "yml": "yaml", "yaml": "yaml"}
	for in, want := range tests {
		got, err := OutputFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := OutputFormat("csv")
	assert.Error(t, err)
}
