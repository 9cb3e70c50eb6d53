package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/layerlint/internal/cli/output"
	"github.com/leapstack-labs/layerlint/pkg/naming"
	"github.com/spf13/cobra"
)

const configTemplate = `# layerlint configuration
# Naming architecture: medallion (raw/int/anl) or traditional (dl/stg/ods/dw/bi)
architecture: %s

models_dir: models

# Schema files searched for column definitions
schema_globs:
  - models/**/*.yml
  - models/**/*.yaml

# Paths skipped during discovery
exclude: []

lint:
  # Rule IDs to turn off, e.g. [NC03]
  disabled: []

  # Per-rule severity overrides, e.g. NC03: error
  severity: {}

  # Per-rule options
  rules: {}
`

// medallionExample and traditionalExample seed a project with one
// passing model per layer plus a schema file.
var medallionExample = map[string]string{
	"models/raw_acme__salesforce__account.sql": "select * from salesforce.account\n",
	"models/int_acme__crm__customer.sql":       "select * from {{ ref('raw_acme__salesforce__account') }}\n",
	"models/anl_sales__fact_orders.sql":        "select * from {{ ref('int_acme__crm__customer') }}\n",
	"models/schema.yml": `version: 2
models:
  - name: anl_sales__fact_orders
    columns:
      - name: customer_key
      - name: order_date
`,
}

var traditionalExample = map[string]string{
	"models/stg_acme__salesforce__account.sql": "select * from salesforce.account\n",
	"models/ods_acme__crm__customer.sql":       "select * from {{ ref('stg_acme__salesforce__account') }}\n",
	"models/dw_sales__dim_customers.sql":       "select * from {{ ref('ods_acme__crm__customer') }}\n",
	"models/schema.yml": `version: 2
models:
  - name: dw_sales__dim_customers
    columns:
      - name: customer_id
      - name: signup_date
`,
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a layerlint project",
		Long: `Initialize a project with a layerlint.yaml configuration file.

Use --example to also create a models/ directory with sample models and
a schema file that follow the configured architecture's conventions.`,
		Example: `  # Initialize in current directory
  layerlint init

  # Initialize with sample models
  layerlint init --example

  # Initialize in a new directory
  layerlint init my-project --example

  # Force overwrite existing config
  layerlint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			arch, err := naming.ParseArchitecture(cfg.Architecture)
			if err != nil {
				return err
			}
			return runInit(r, dir, arch, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create sample models following the conventions")

	return cmd
}

func runInit(r *output.Renderer, dir string, arch naming.Architecture, force, example bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "layerlint.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("layerlint.yaml already exists. Use --force to overwrite")
	}

	content := fmt.Sprintf(configTemplate, arch)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	r.Println("  created layerlint.yaml")

	if example {
		files := medallionExample
		if arch == naming.Traditional {
			files = traditionalExample
		}
		rels := make([]string, 0, len(files))
		for rel := range files {
			rels = append(rels, rel)
		}
		sort.Strings(rels)
		for _, rel := range rels {
			path := filepath.Join(dir, filepath.FromSlash(rel))
			body := files[rel]
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", rel, err)
			}
			r.Println("  created " + rel)
		}
	} else if err := os.MkdirAll(filepath.Join(dir, "models"), 0o750); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}

	r.Println("")
	r.Success("layerlint project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Create SQL models in models/")
	r.Println("  2. Run 'layerlint check' to validate names")
	r.Println("  3. Run 'layerlint rules' to see the conventions")

	return nil
}
