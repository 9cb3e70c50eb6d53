package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func TestParseArchitecture(t *testing.T) {
	tests := []struct {
		input   string
		want    naming.Architecture
		wantErr bool
	}{
		{"medallion", naming.Medallion, false},
		{"Medallion", naming.Medallion, false},
		{" traditional ", naming.Traditional, false},
		{"lakehouse", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := naming.ParseArchitecture(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyStyle(t *testing.T) {
	tests := []struct {
		input  string
		want   naming.KeyStyle
		wantOK bool
	}{
		{"_key", naming.KeyStyleKey, true},
		{"key", naming.KeyStyleKey, true},
		{"_id", naming.KeyStyleID, true},
		{"ID", naming.KeyStyleID, true},
		{"_pk", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := naming.ParseKeyStyle(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableForMedallion(t *testing.T) {
	table := naming.TableFor(naming.Medallion)

	assert.Equal(t, naming.Medallion, table.Architecture())
	assert.Equal(t, naming.KeyStyleKey, table.KeyStyle())

	layers := table.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, []string{"raw", "int", "anl"}, prefixes(layers))

	raw, ok := table.Lookup("raw")
	require.True(t, ok)
	assert.Equal(t, 3, raw.Arity)
	assert.Equal(t, naming.PolicySingular, raw.Plural)
	assert.False(t, raw.FactDim)
	assert.Equal(t, "raw_<party>__<source>__<table>", raw.Pattern())

	anl, ok := table.Lookup("anl")
	require.True(t, ok)
	assert.Equal(t, 2, anl.Arity)
	assert.Equal(t, naming.PolicyPlural, anl.Plural)
	assert.True(t, anl.FactDim)

	_, ok = table.Lookup("stg")
	assert.False(t, ok, "traditional prefixes are unknown to medallion")
}

func TestTableForTraditional(t *testing.T) {
	table := naming.TableFor(naming.Traditional)

	assert.Equal(t, naming.KeyStyleID, table.KeyStyle())
	assert.Equal(t, []string{"dl", "stg", "ods", "dw", "bi"}, prefixes(table.Layers()))

	for _, prefix := range []string{"dl", "stg", "ods"} {
		rule, ok := table.Lookup(prefix)
		require.True(t, ok, prefix)
		assert.Equal(t, 3, rule.Arity, prefix)
		assert.Equal(t, naming.PolicySingular, rule.Plural, prefix)
	}
	for _, prefix := range []string{"dw", "bi"} {
		rule, ok := table.Lookup(prefix)
		require.True(t, ok, prefix)
		assert.Equal(t, 2, rule.Arity, prefix)
		assert.True(t, rule.FactDim, prefix)
	}
}

func TestAnalyticsRule(t *testing.T) {
	anl := naming.TableFor(naming.Medallion).AnalyticsRule()
	assert.Equal(t, "anl", anl.Prefix)
	assert.True(t, anl.FactDim)

	dw := naming.TableFor(naming.Traditional).AnalyticsRule()
	assert.Equal(t, "dw", dw.Prefix)
	assert.True(t, dw.FactDim)
}

func TestSetKeyStyle(t *testing.T) {
	table := naming.TableFor(naming.Medallion)
	table.SetKeyStyle(naming.KeyStyleID)
	assert.Equal(t, naming.KeyStyleID, table.KeyStyle())
}

func prefixes(layers []naming.LayerRule) []string {
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.Prefix
	}
	return out
}
