package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sigreer/lvmgod/internal/config"
	"github.com/sigreer/lvmgod/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded health checks",
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of checks to show")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
	historyCmd.Flags().Bool("findings", false, "Include stored findings per check")
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOut, _ := cmd.Flags().GetBool("json")
	withFindings, _ := cmd.Flags().GetBool("findings")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(3)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(3)
	}
	defer store.Close()

	checks, err := store.Recent(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}

	if jsonOut {
		printHistoryJSON(store, checks, withFindings)
		return
	}

	if len(checks) == 0 {
		fmt.Println("No checks recorded")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTATUS\tPVS\tVGS\tLVS\tPOOLS\tISSUES\tWARNINGS")
	for _, c := range checks {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			c.Timestamp.Format("2006-01-02 15:04:05"), c.OverallStatus,
			c.PVCount, c.VGCount, c.LVCount, c.PoolCount,
			c.IssueCount, c.WarningCount)
	}
	w.Flush()

	if withFindings {
		for _, c := range checks {
			findings, err := store.Findings(c.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				continue
			}
			if len(findings) == 0 {
				continue
			}

			fmt.Printf("\n%s (%s):\n", c.Timestamp.Format("2006-01-02 15:04:05"), c.ReportID)
			for _, f := range findings {
				symbol := "⚠"
				if f.Severity == history.SeverityCritical {
					symbol = "✗"
				}
				fmt.Printf("  %s %s\n", symbol, f.Message)
			}
		}
	}
}

// historyEntry is the JSON form of one check plus its findings
type historyEntry struct {
	*history.Check
	Findings []*history.Finding `json:"findings,omitempty"`
}

func printHistoryJSON(store *history.Store, checks []*history.Check, withFindings bool) {
	entries := make([]historyEntry, 0, len(checks))
	for _, c := range checks {
		entry := historyEntry{Check: c}
		if withFindings {
			findings, err := store.Findings(c.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			entry.Findings = findings
		}
		entries = append(entries, entry)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(entries)
}
