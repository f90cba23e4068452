package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	cases := []struct {
		in   string
		want State
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"all", StateAll},
		{"current", StateCurrent},
		{"PAST", StatePast},
		{"Future", StateFuture},
		{"WAITING", StateWaiting},
		{"rejected", StateRejected},
	}
	for _, tc := range cases {
		got, err := ParseState(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseStateUnknown(t *testing.T) {
	_, err := ParseState("SOMETIMES")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "SOMETIMES", se.Value)
	assert.Equal(t, "Unknown state: SOMETIMES", se.Error())
}
