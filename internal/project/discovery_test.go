package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/layerlint/internal/project"
	"github.com/leapstack-labs/layerlint/internal/testutil"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "models", "raw_acme__salesforce__account.sql"), "select 1")
	writeFile(t, filepath.Join(root, "models", "marts", "anl_sales__fact_orders.sql"), "select 1")
	writeFile(t, filepath.Join(root, "models", "schema.yml"), `version: 2
models:
  - name: anl_sales__fact_orders
    columns:
      - name: customer_key
      - name: order_date
`)
	writeFile(t, filepath.Join(root, "models", "README.md"), "not a model")
	return root
}

func TestDiscoveryCollect(t *testing.T) {
	root := setupProject(t)

	disc := &project.Discovery{
		ModelsDir:   filepath.Join(root, "models"),
		SchemaGlobs: []string{"models/**/*.yml"},
		Root:        root,
		Logger:      testutil.NewTestLogger(t),
	}

	result, err := disc.Collect()
	require.NoError(t, err)
	assert.False(t, result.HasErrors())

	var models, columns []string
	for _, item := range result.Items {
		switch item.Kind {
		case naming.KindModel:
			models = append(models, item.Name)
		case naming.KindColumn:
			columns = append(columns, item.Name)
		}
	}

	assert.Equal(t, []string{"anl_sales__fact_orders", "raw_acme__salesforce__account"}, models,
		"model stems sorted by file path, non-sql files skipped")
	assert.Equal(t, []string{"customer_key", "order_date"}, columns)

	// Models come before columns and carry their file paths.
	assert.Equal(t, naming.KindModel, result.Items[0].Kind)
	assert.NotEmpty(t, result.Items[0].FilePath)
}

func TestDiscoveryExclude(t *testing.T) {
	root := setupProject(t)

	disc := &project.Discovery{
		ModelsDir:   filepath.Join(root, "models"),
		SchemaGlobs: []string{"models/**/*.yml"},
		Exclude:     []string{"models/marts/**"},
		Root:        root,
		Logger:      testutil.NewTestLogger(t),
	}

	result, err := disc.Collect()
	require.NoError(t, err)

	for _, item := range result.Items {
		assert.NotEqual(t, "anl_sales__fact_orders", item.Name, "excluded path leaked through")
	}
}

func TestDiscoveryUnreadableSchemaIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "models", "raw_acme__salesforce__account.sql"), "select 1")
	writeFile(t, filepath.Join(root, "models", "schema.yml"), "version: [broken")

	disc := &project.Discovery{
		ModelsDir:   filepath.Join(root, "models"),
		SchemaGlobs: []string{"models/**/*.yml"},
		Root:        root,
		Logger:      testutil.NewTestLogger(t),
	}

	result, err := disc.Collect()
	require.NoError(t, err, "a broken schema file must not abort discovery")
	require.True(t, result.HasErrors())
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Path, "schema.yml")

	// The model stem is still collected.
	require.Len(t, result.Items, 1)
	assert.Equal(t, "raw_acme__salesforce__account", result.Items[0].Name)
}

func TestDiscoveryMissingModelsDir(t *testing.T) {
	disc := &project.Discovery{
		ModelsDir: filepath.Join(t.TempDir(), "does-not-exist"),
		Logger:    testutil.NewTestLogger(t),
	}
	result, err := disc.Collect()
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestParseSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yml")
	writeFile(t, path, `version: 2
models:
  - name: dw_sales__dim_customers
    columns:
      - name: customer_id
      - name: signup_date
`)

	schema, err := project.ParseSchemaFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, schema.Version)
	require.Len(t, schema.Models, 1)
	assert.Equal(t, "dw_sales__dim_customers", schema.Models[0].Name)
	require.Len(t, schema.Models[0].Columns, 2)
	assert.Equal(t, "customer_id", schema.Models[0].Columns[0].Name)
}
