package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sigreer/lvmgod/internal/collector"
	"github.com/sigreer/lvmgod/internal/config"
	"github.com/sigreer/lvmgod/internal/export"
	"github.com/sigreer/lvmgod/internal/history"
	"github.com/sigreer/lvmgod/internal/lvm"
	"github.com/sigreer/lvmgod/internal/render"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check LVM stack health",
	Long: `Perform a full LVM health check:
  - Inventory physical volumes, volume groups and logical volumes
  - Check thin pool data and metadata usage
  - List mounted LVM filesystems and device-mapper targets
  - Inspect metadata backup directories
  - Record the result in the check history`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().BoolP("verbose", "v", false, "Print collection diagnostics to stderr")
	checkCmd.Flags().BoolP("json", "j", false, "Write the snapshot to a JSON file")
	checkCmd.Flags().BoolP("prometheus", "p", false, "Write a Prometheus textfile")
	checkCmd.Flags().StringP("output", "o", "", "JSON output path (overrides config)")
	checkCmd.Flags().String("prom-file", "", "Prometheus textfile path (overrides config)")
	checkCmd.Flags().Bool("no-color", false, "Disable colored output")
	checkCmd.Flags().Int("timeout", 0, "Per-command timeout in seconds (overrides config)")
	checkCmd.Flags().Bool("no-history", false, "Skip recording this check in the history database")
}

func runCheck(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOut, _ := cmd.Flags().GetBool("json")
	promOut, _ := cmd.Flags().GetBool("prometheus")
	jsonPath, _ := cmd.Flags().GetString("output")
	promPath, _ := cmd.Flags().GetString("prom-file")
	noColor, _ := cmd.Flags().GetBool("no-color")
	timeout, _ := cmd.Flags().GetInt("timeout")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(3)
	}
	if timeout > 0 {
		cfg.TimeoutSeconds = timeout
	}

	if os.Geteuid() != 0 {
		fmt.Fprintln(os.Stderr, "Warning: not running as root, output may be incomplete")
	}

	snap, diags, err := collector.New(cfg).Collect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}

	if verbose {
		for _, diag := range diags {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", diag)
		}
	}

	color := !noColor && cfg.ColorEnabled(isatty.IsTerminal(os.Stdout.Fd()))
	render.New(os.Stdout, color).Report(snap)

	if jsonOut || jsonPath != "" {
		path := jsonPath
		if path == "" {
			path = cfg.Exports.JSONPath
		}
		if err := export.WriteJSON(path, snap); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "Snapshot written to %s\n", path)
		}
	}
	if promOut || promPath != "" {
		path := promPath
		if path == "" {
			path = cfg.Exports.PromPath
		}
		if err := export.WriteMetrics(path, snap); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "Metrics written to %s\n", path)
		}
	}

	recordCheck(cfg, snap, noHistory)

	switch snap.OverallStatus() {
	case lvm.StatusCritical:
		os.Exit(2)
	case lvm.StatusWarning:
		os.Exit(1)
	}
}

// recordCheck stores the run in the history database (optional - the check
// result stands without it)
func recordCheck(cfg *config.Config, snap *lvm.HealthSnapshot, skip bool) {
	if skip || cfg.History.Disabled {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record check: %v\n", err)
	}
}
