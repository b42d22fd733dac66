package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .nubepurge.yaml config file",
	Long:  `Create a .nubepurge.yaml configuration file in the current directory with the default settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".nubepurge.yaml"); err == nil && !force {
			return fmt.Errorf(".nubepurge.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".nubepurge.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .nubepurge.yaml")
		return nil
	},
}

const defaultConfig = `# nubepurge configuration
# Every key can also be set with a NUBEPURGE_ environment variable,
# e.g. NUBEPURGE_MIN_SIBLING=true or NUBEPURGE_WATCH_DEBOUNCE=500ms

# Scanning
content: src
extensions:
  - .astro
  - .jsx
  - .js
  - .ts
  - .tsx
  - .vue
  - .svelte
  - .html
gitignore: false

# Stylesheets
source: styles/system.css
# output: styles/system.purged.css   # default <source>.purged.css
minify: false
min-sibling: false     # also write <output>.min.css

# Rules kept regardless of usage
safelist:
  standard:
    - html
    - body
  greedy:              # regular expressions
    - ^is-
    - ^has-
    - ^data-

# Reporting
format: text           # text | json
verbose: false

watch:
  debounce: 200ms
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
