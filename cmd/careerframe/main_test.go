package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTriple(t *testing.T) {
	tests := []struct {
		arg        string
		discipline string
		level      string
		track      string
		wantErr    bool
	}{
		{arg: "swe:l3", discipline: "swe", level: "l3"},
		{arg: "swe:l3:platform", discipline: "swe", level: "l3", track: "platform"},
		{arg: "swe", wantErr: true},
		{arg: "swe:l3:platform:extra", wantErr: true},
		{arg: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			d, l, tr, err := parseTriple(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.discipline, d)
			assert.Equal(t, tt.level, l)
			assert.Equal(t, tt.track, tr)
		})
	}
}

func TestDerivedNameRoundTripsThroughParseTriple(t *testing.T) {
	for _, name := range []string{derivedName("swe", "l3", ""), derivedName("swe", "l3", "platform")} {
		d, l, tr, err := parseTriple(name)
		require.NoError(t, err)
		assert.Equal(t, name, derivedName(d, l, tr))
	}
}
