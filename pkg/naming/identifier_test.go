package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantPrefix   string
		wantSegments []string
		wantErr      string
	}{
		{
			name:         "three segment raw model",
			raw:          "raw_acme__salesforce__account",
			wantPrefix:   "raw",
			wantSegments: []string{"acme", "salesforce", "account"},
		},
		{
			name:         "two segment analytics model",
			raw:          "anl_sales__fact_orders",
			wantPrefix:   "anl",
			wantSegments: []string{"sales", "fact_orders"},
		},
		{
			name:         "multi word inner segment",
			raw:          "int_acme__sales_ops__customer",
			wantPrefix:   "int",
			wantSegments: []string{"acme", "sales_ops", "customer"},
		},
		{
			name:         "bare dim name",
			raw:          "dim_customers",
			wantPrefix:   "dim",
			wantSegments: []string{"customers"},
		},
		{
			name:         "single word",
			raw:          "raw",
			wantPrefix:   "raw",
			wantSegments: nil,
		},
		{
			name:         "digits allowed",
			raw:          "raw_acme__sap_r3__order",
			wantPrefix:   "raw",
			wantSegments: []string{"acme", "sap_r3", "order"},
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: "empty identifier",
		},
		{
			name:    "spaces rejected",
			raw:     "int sales customer",
			wantErr: "invalid character",
		},
		{
			name:    "uppercase rejected",
			raw:     "Raw_acme__salesforce__account",
			wantErr: "invalid character",
		},
		{
			name:    "hyphen rejected",
			raw:     "raw-acme__salesforce__account",
			wantErr: "invalid character",
		},
		{
			name:    "leading underscore",
			raw:     "_raw_acme",
			wantErr: "leading or trailing underscore",
		},
		{
			name:    "trailing underscore",
			raw:     "raw_acme_",
			wantErr: "leading or trailing underscore",
		},
		{
			name:    "triple underscore",
			raw:     "raw_acme___salesforce",
			wantErr: "inconsistent delimiter usage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := naming.Tokenize(tt.raw, naming.KindModel)

			if tt.wantErr != "" {
				require.Error(t, err)
				var malformed *naming.MalformedError
				require.ErrorAs(t, err, &malformed)
				assert.Contains(t, malformed.Reason, tt.wantErr)
				assert.Equal(t, tt.raw, malformed.Raw)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.raw, id.Raw)
			assert.Equal(t, tt.wantPrefix, id.Prefix)
			assert.Equal(t, tt.wantSegments, id.Segments)
		})
	}
}

func TestTokenizeIsPure(t *testing.T) {
	// Same input twice must yield identical results.
	a, err := naming.Tokenize("raw_acme__salesforce__account", naming.KindModel)
	require.NoError(t, err)
	b, err := naming.Tokenize("raw_acme__salesforce__account", naming.KindModel)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEntityWord(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"raw_acme__salesforce__account", "account"},
		{"anl_sales__fact_orders", "orders"},
		{"int_acme__customer_address", "address"},
		{"dim_customers", "customers"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := naming.Tokenize(tt.raw, naming.KindModel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.EntityWord())
		})
	}
}

func TestParseFactDim(t *testing.T) {
	tests := []struct {
		segment       string
		wantOK        bool
		wantCanonical string
		wantAbbrev    bool
	}{
		{"fact_orders", true, "fact", false},
		{"dim_customers", true, "dim", false},
		{"f_orders", true, "fact", true},
		{"fi_orders", true, "fact", true},
		{"d_customers", true, "dim", true},
		{"orders", false, "", false},
		{"factorders", false, "", false},
		{"fact_", false, "", false},
		{"report_orders", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			seg, ok := naming.ParseFactDim(tt.segment)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantCanonical, seg.Canonical)
				assert.Equal(t, tt.wantAbbrev, seg.Abbreviated)
			}
		})
	}
}

func TestIsBareFactDim(t *testing.T) {
	tests := []struct {
		raw  string
		kind naming.Kind
		want bool
	}{
		{"dim_customers", naming.KindModel, true},
		{"fact_orders", naming.KindModel, true},
		{"f_orders", naming.KindModel, true},
		{"anl_sales__fact_orders", naming.KindModel, false},
		{"customer_key", naming.KindColumn, false},
		{"raw_account", naming.KindModel, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := naming.Tokenize(tt.raw, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.IsBareFactDim())
		})
	}
}

func TestKeySuffix(t *testing.T) {
	tests := []struct {
		raw        string
		wantBase   string
		wantSuffix string
		wantOK     bool
	}{
		{"customer_key", "customer", "_key", true},
		{"customer_id", "customer", "_id", true},
		{"order_key_pk", "order_key", "_pk", true},
		{"order_date", "", "", false},
		{"_key", "", "", false},
		{"amount", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			base, suffix, ok := naming.KeySuffix(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantSuffix, suffix)
		})
	}
}
