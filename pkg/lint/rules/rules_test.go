package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/layerlint/pkg/lint"
	_ "github.com/leapstack-labs/layerlint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

// runRule checks one identifier against a single registered rule.
func runRule(t *testing.T, raw string, kind naming.Kind, arch naming.Architecture, ruleID string, opts map[string]any) []lint.Diagnostic {
	t.Helper()

	rule, ok := lint.GetByID(ruleID)
	require.True(t, ok, "rule %s not registered", ruleID)

	ctx := &lint.Context{
		Raw:   raw,
		Kind:  kind,
		Table: naming.TableFor(arch),
	}
	id, err := naming.Tokenize(raw, kind)
	if err != nil {
		var malformed *naming.MalformedError
		require.ErrorAs(t, err, &malformed)
		ctx.TokenizeErr = malformed
	} else {
		ctx.Identifier = id
	}

	return rule.Check(ctx, opts)
}

func TestNC01_MalformedIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		arch     naming.Architecture
		wantDiag bool
	}{
		{
			name:     "valid raw model",
			raw:      "raw_acme__salesforce__account",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:     "spaces instead of underscores",
			raw:      "int sales customer",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "single underscores collapse segments",
			raw:      "raw_acme_salesforce_account",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "too few segments for raw layer",
			raw:      "raw_acme__account",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "too many segments for analytics layer",
			raw:      "anl_sales__extra__fact_orders",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "triple underscore",
			raw:      "raw_acme___salesforce__account",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "unknown prefix is not an arity problem",
			raw:      "curated_acme__salesforce__account",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:     "valid staging model",
			raw:      "stg_acme__salesforce__account",
			arch:     naming.Traditional,
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.raw, naming.KindModel, tt.arch, "NC01", nil)
			if tt.wantDiag {
				require.NotEmpty(t, diags, "expected NC01 diagnostic")
				assert.Equal(t, lint.KindMalformedIdentifier, diags[0].Kind)
				assert.Equal(t, lint.SeverityError, diags[0].Severity)
			} else {
				assert.Empty(t, diags, "unexpected NC01 diagnostic")
			}
		})
	}
}

func TestNC02_UnknownLayer(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		arch     naming.Architecture
		wantDiag bool
	}{
		{
			name:     "known medallion prefix",
			raw:      "raw_acme__salesforce__account",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:     "unknown prefix",
			raw:      "curated_acme__salesforce__account",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "traditional prefix under medallion",
			raw:      "stg_acme__salesforce__account",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "medallion prefix under traditional",
			raw:      "anl_sales__fact_orders",
			arch:     naming.Traditional,
			wantDiag: true,
		},
		{
			name:     "bare dim name belongs to the fact dim layer",
			raw:      "dim_customers",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:     "bare abbreviated fact name is not an unknown layer",
			raw:      "f_orders",
			arch:     naming.Medallion,
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.raw, naming.KindModel, tt.arch, "NC02", nil)
			if tt.wantDiag {
				require.NotEmpty(t, diags, "expected NC02 diagnostic")
				assert.Equal(t, lint.KindUnknownLayer, diags[0].Kind)
				assert.Contains(t, diags[0].Message, "matches no")
			} else {
				assert.Empty(t, diags, "unexpected NC02 diagnostic")
			}
		})
	}
}

func TestNC03_Pluralization(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		arch         naming.Architecture
		opts         map[string]any
		wantDiag     bool
		wantExpected string
	}{
		{
			name:     "singular in raw layer",
			raw:      "raw_acme__salesforce__account",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:         "plural in raw layer",
			raw:          "raw_acme__salesforce__accounts",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "account",
		},
		{
			name:     "singular noun ending in s is not plural",
			raw:      "raw_acme__salesforce__address",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:     "plural in analytics layer",
			raw:      "anl_sales__fact_orders",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:         "singular in analytics layer",
			raw:          "anl_sales__fact_order",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "orders",
		},
		{
			name:     "bare dim name checked against analytics policy",
			raw:      "dim_customers",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:         "bare singular dim name",
			raw:          "dim_customer",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "customers",
		},
		{
			name:     "ignored word",
			raw:      "raw_acme__salesforce__accounts",
			arch:     naming.Medallion,
			opts:     map[string]any{"ignore": []string{"accounts"}},
			wantDiag: false,
		},
		{
			name:     "plural in staging layer",
			raw:      "stg_acme__salesforce__accounts",
			arch:     naming.Traditional,
			wantDiag: true,
		},
		{
			name:     "unknown layer is not this rule's concern",
			raw:      "curated_acme__salesforce__accounts",
			arch:     naming.Medallion,
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.raw, naming.KindModel, tt.arch, "NC03", tt.opts)
			if tt.wantDiag {
				require.NotEmpty(t, diags, "expected NC03 diagnostic")
				assert.Equal(t, lint.KindPluralization, diags[0].Kind)
				assert.Equal(t, lint.SeverityWarning, diags[0].Severity)
				if tt.wantExpected != "" {
					assert.Equal(t, tt.wantExpected, diags[0].Expected)
				}
			} else {
				assert.Empty(t, diags, "unexpected NC03 diagnostic")
			}
		})
	}
}

func TestNC04_Abbreviation(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		arch         naming.Architecture
		wantDiag     bool
		wantExpected string
	}{
		{
			name:     "full fact marker",
			raw:      "anl_sales__fact_orders",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:         "abbreviated f marker",
			raw:          "anl_sales__f_orders",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "fact_orders",
		},
		{
			name:         "abbreviated fi marker",
			raw:          "anl_sales__fi_orders",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "fact_orders",
		},
		{
			name:         "abbreviated d marker",
			raw:          "dw_sales__d_customers",
			arch:         naming.Traditional,
			wantDiag:     true,
			wantExpected: "dim_customers",
		},
		{
			name:     "missing marker in analytics layer",
			raw:      "anl_sales__orders",
			arch:     naming.Medallion,
			wantDiag: true,
		},
		{
			name:     "bare full dim name",
			raw:      "dim_customers",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:         "bare abbreviated dim name",
			raw:          "d_customers",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "dim_customers",
		},
		{
			name:     "raw layer has no marker requirement",
			raw:      "raw_acme__salesforce__account",
			arch:     naming.Medallion,
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.raw, naming.KindModel, tt.arch, "NC04", nil)
			if tt.wantDiag {
				require.NotEmpty(t, diags, "expected NC04 diagnostic")
				assert.Equal(t, lint.KindAbbreviation, diags[0].Kind)
				if tt.wantExpected != "" {
					assert.Equal(t, tt.wantExpected, diags[0].Expected)
				}
			} else {
				assert.Empty(t, diags, "unexpected NC04 diagnostic")
			}
		})
	}
}

func TestNC05_KeyNaming(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		arch         naming.Architecture
		opts         map[string]any
		wantDiag     bool
		wantExpected string
	}{
		{
			name:     "key suffix under medallion",
			raw:      "customer_key",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:         "id suffix under medallion",
			raw:          "customer_id",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "customer_key",
		},
		{
			name:     "id suffix under traditional",
			raw:      "customer_id",
			arch:     naming.Traditional,
			wantDiag: false,
		},
		{
			name:         "key suffix under traditional",
			raw:          "customer_key",
			arch:         naming.Traditional,
			wantDiag:     true,
			wantExpected: "customer_id",
		},
		{
			name:     "non key column ignored",
			raw:      "order_date",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:     "pk accepted when base already carries key",
			raw:      "order_key_pk",
			arch:     naming.Medallion,
			wantDiag: false,
		},
		{
			name:         "bare pk rejected under key style",
			raw:          "customer_pk",
			arch:         naming.Medallion,
			wantDiag:     true,
			wantExpected: "customer_key",
		},
		{
			name:     "style option overrides architecture default",
			raw:      "customer_id",
			arch:     naming.Medallion,
			opts:     map[string]any{"style": "_id"},
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.raw, naming.KindColumn, tt.arch, "NC05", tt.opts)
			if tt.wantDiag {
				require.NotEmpty(t, diags, "expected NC05 diagnostic")
				assert.Equal(t, lint.KindKeyNaming, diags[0].Kind)
				if tt.wantExpected != "" {
					assert.Equal(t, tt.wantExpected, diags[0].Expected)
				}
			} else {
				assert.Empty(t, diags, "unexpected NC05 diagnostic")
			}
		})
	}
}

func TestRulesIgnoreOtherKinds(t *testing.T) {
	// Model-only rules skip columns and the column rule skips models.
	assert.Empty(t, runRule(t, "customer_id", naming.KindColumn, naming.Medallion, "NC02", nil))
	assert.Empty(t, runRule(t, "customer_id", naming.KindColumn, naming.Medallion, "NC03", nil))
	assert.Empty(t, runRule(t, "customer_id", naming.KindColumn, naming.Medallion, "NC04", nil))
	assert.Empty(t, runRule(t, "anl_sales__fact_orders", naming.KindModel, naming.Medallion, "NC05", nil))
}
