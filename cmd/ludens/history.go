package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yoimerdr/ludens-sub001/internal/platform/tui"
)

var (
	flagHistoryList  bool
	flagHistoryLimit int
	flagHistoryPrune int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse settings snapshots",
	Long: `Browse the settings snapshots kept by the sqlite backend. Every saved
change is a snapshot; restoring one saves it again as the newest.

Requires settings.backend: sqlite in the configuration.

Examples:
  ludens history
  ludens history --list --limit 5
  ludens history --prune 10`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryList, "list", false, "Print the snapshots instead of opening the browser")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Snapshots to print with --list")
	historyCmd.Flags().IntVar(&flagHistoryPrune, "prune", 0, "Delete all but the newest N snapshots")
}

func runHistory(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()

	repo, store, closeRepo, err := openRepository(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening settings: %v\n", err)
		os.Exit(1)
	}
	defer closeRepo()

	if store == nil {
		fmt.Fprintln(os.Stderr, "Error: settings history needs the sqlite backend")
		fmt.Fprintln(os.Stderr, "Set settings.backend: sqlite in the configuration.")
		os.Exit(1)
	}

	if flagHistoryPrune > 0 {
		n, err := store.Prune(ctx, flagHistoryPrune)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d snapshots\n", n)
		return
	}

	if !flagHistoryList {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(ctx, store, repo, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	snapshots, err := store.History(ctx, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Settings History")
	fmt.Println()

	if len(snapshots) == 0 {
		fmt.Println("No settings saved yet.")
		return
	}

	fmt.Printf("  %-6s  %-12s  %-10s  %-5s  %-8s  %s\n", "ID", "Saved", "Sound", "FPS", "Overlay", "Locale")
	fmt.Printf("  %-6s  %-12s  %-10s  %-5s  %-8s  %s\n", "--", "-----", "-----", "---", "-------", "------")
	for _, row := range tui.SnapshotRows(snapshots) {
		fmt.Printf("  %-6s  %-12s  %-10s  %-5s  %-8s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}
}
