package main

import (
	"fmt"
	"os"

	"bitsense/cmd/bitsense/ui"
	"bitsense/internal/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyLimit int

// historyCmd lists recent rounds
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played rounds",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

// statsCmd summarizes all recorded rounds
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy and speed per bit width",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of rounds to show")
}

// openHistory opens the configured store, or returns nil when there is
// nothing recorded yet.
func openHistory() (*history.Store, error) {
	path := cfg.HistoryPath(workspace)
	if path != history.MemoryPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, nil
		}
	}
	logger.Debug("opening history", zap.String("path", path))
	return history.Open(path)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if store == nil {
		fmt.Fprintln(out, "No rounds recorded yet. Run 'bitsense play' to start.")
		return nil
	}
	defer store.Close()

	entries, err := store.Recent(cmdContext(cmd), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No rounds recorded yet. Run 'bitsense play' to start.")
		return nil
	}

	table := ui.NewSimpleTable("Recent rounds", []string{"When", "Conversion", "Bits", "Prompt", "Answer", "Result", "Time", "Bits/s"}).
		AlignRight(2, 6, 7)
	for _, e := range entries {
		bps := "-"
		if e.Correct {
			bps = fmt.Sprintf("%.2f", e.BitsPerSecond)
		}
		table.AddRow(
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Conversion(),
			fmt.Sprintf("%d", e.BitWidth),
			e.Prompt(),
			e.Answer(),
			e.Status.String(),
			fmt.Sprintf("%.2fs", e.Elapsed.Seconds()),
			bps,
		)
	}
	fmt.Fprint(out, table.View(ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if store == nil {
		fmt.Fprintln(out, "No rounds recorded yet. Run 'bitsense play' to start.")
		return nil
	}
	defer store.Close()

	summary, err := store.Summary(cmdContext(cmd))
	if err != nil {
		return err
	}
	if len(summary) == 0 {
		fmt.Fprintln(out, "No rounds recorded yet. Run 'bitsense play' to start.")
		return nil
	}

	table := ui.NewSimpleTable("Performance", []string{"Bits", "Conversion", "Rounds", "Correct", "Accuracy", "Best bits/s", "Avg bits/s", "Avg time"}).
		AlignRight(0, 2, 3, 4, 5, 6, 7)
	var total, correct int
	for _, s := range summary {
		total += s.Attempts
		correct += s.Correct
		table.AddRow(
			fmt.Sprintf("%d", s.BitWidth),
			s.Conversion,
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d", s.Correct),
			fmt.Sprintf("%.0f%%", s.Accuracy()*100),
			fmt.Sprintf("%.2f", s.BestBitsPerSecond),
			fmt.Sprintf("%.2f", s.AvgBitsPerSecond),
			fmt.Sprintf("%.2fs", s.AvgElapsed.Seconds()),
		)
	}
	fmt.Fprint(out, table.View(ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))))
	fmt.Fprintf(out, "Total: %d rounds, %d correct\n", total, correct)
	return nil
}
