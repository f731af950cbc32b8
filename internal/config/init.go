package config

import (
	"fmt"
	"os"
)

const defaultConfigTemplate = `# paperbuild configuration
paper:
  source: main.tex
  # output_dir: build        # defaults to the source directory
  # latexmk: latexmk
  # extra_args: []

checks:
  # Checks run strictly in this order; the first failure aborts the run.
  order:
    - healthy-band
    - spin2-structure
  data_dir: data
  # tolerance: 1e-12

report:
  results_dir: results

daemon:
  listen: ":8787"
  watch:
    - "*.tex"
  debounce: 2s
  check_interval: 1h
  metrics: true
  # store_path: paperbuild.db   # empty keeps the run ledger in memory
  nats:
    enabled: false
    # url: nats://127.0.0.1:4222
    # subject: paperbuild.runs
`

// Init writes a commented default configuration file. Refuses to overwrite
// an existing file unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}
