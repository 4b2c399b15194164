package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigreer/lvmgod/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lvmgod",
	Short: "LVM health monitoring tool",
	Long: `LVMgod inspects the LVM stack (physical volumes, volume groups,
logical volumes, thin pools) plus device-mapper state and metadata
backups, and reports an overall health verdict.

Exit codes:
  0  healthy
  1  warnings found
  2  critical problems found
  3  check could not run`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/lvmgod/config.yaml)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
