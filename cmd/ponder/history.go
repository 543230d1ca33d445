package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ponder/internal/session"
	"ponder/internal/store"
)

var (
	historyLimit int
	historyForce bool
)

// historyCmd inspects the stored conversation turns.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored conversation turns",
	Long: `Reads the local SQLite history written by the chat interface.

Turns are listed newest first with a short ID; pass the short ID (or any
unique prefix) to "history show" to see the full turn, including the
phase timeline the status line walked through while the model was
thinking.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent turns",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one turn in full, including its phase timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search prompts and answers",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearch,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored turns",
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum turns to list")
	historySearchCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum matches to list")
	historyClearCmd.Flags().BoolVar(&historyForce, "force", false, "Skip the confirmation prompt")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// openHistory opens the store configured for the chat interface.
func openHistory() (*store.HistoryStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in the configuration")
	}
	return store.NewHistoryStore(cfg.History.Path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	hs, err := openHistory()
	if err != nil {
		return err
	}
	defer hs.Close()

	turns, err := hs.RecentTurns(historyLimit)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		fmt.Println("No stored turns yet.")
		return nil
	}

	printTurns(turns)

	total, err := hs.CountTurns()
	if err != nil {
		return err
	}
	fmt.Printf("\nShowing %d of %d turns (%s)\n", len(turns), total, hs.Path())
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	hs, err := openHistory()
	if err != nil {
		return err
	}
	defer hs.Close()

	turn, err := hs.FindTurn(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Turn     %s\n", turn.ID)
	fmt.Printf("Started  %s\n", turn.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if !turn.FinishedAt.IsZero() {
		fmt.Printf("Duration %s\n", turn.FinishedAt.Sub(turn.StartedAt).Round(time.Millisecond))
	}
	if turn.Provider != "" {
		fmt.Printf("Provider %s (%s)\n", turn.Provider, turn.Model)
	}
	fmt.Printf("Phase    %s\n", turn.Phase)
	fmt.Printf("Status   %s\n", turn.StatusText)
	fmt.Printf("\nPrompt:\n  %s\n", strings.ReplaceAll(turn.Prompt, "\n", "\n  "))

	if len(turn.Timeline) > 0 {
		fmt.Println("\nTimeline:")
		for _, ev := range turn.Timeline {
			fmt.Printf("  %+7.1fs  %-12s (%d reasoning bytes)\n",
				ev.At.Sub(turn.StartedAt).Seconds(), ev.Phase, ev.Offset)
		}
	}

	if turn.Answer != "" {
		fmt.Printf("\nAnswer:\n  %s\n", strings.ReplaceAll(turn.Answer, "\n", "\n  "))
	}
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	hs, err := openHistory()
	if err != nil {
		return err
	}
	defer hs.Close()

	turns, err := hs.SearchTurns(args[0], historyLimit)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		fmt.Printf("No turns match %q.\n", args[0])
		return nil
	}

	printTurns(turns)
	fmt.Printf("\n%d matches for %q\n", len(turns), args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	hs, err := openHistory()
	if err != nil {
		return err
	}
	defer hs.Close()

	total, err := hs.CountTurns()
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Println("History is already empty.")
		return nil
	}

	if !historyForce {
		fmt.Printf("Delete all %d stored turns? [y/N] ", total)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := hs.Clear(); err != nil {
		return err
	}
	logger.Info("History cleared", zap.Int64("turns", total))
	fmt.Printf("Deleted %d turns.\n", total)
	return nil
}

// printTurns renders one line per turn for list and search output.
func printTurns(turns []session.Turn) {
	fmt.Printf("%-8s  %-16s  %-12s  %-20s  %s\n",
		"ID", "STARTED", "PHASE", "PROVIDER", "PROMPT")
	for _, t := range turns {
		provider := t.Provider
		if t.Model != "" {
			provider += "/" + t.Model
		}
		fmt.Printf("%-8s  %-16s  %-12s  %-20s  %s\n",
			shortID(t.ID),
			t.StartedAt.Local().Format("2006-01-02 15:04"),
			t.Phase,
			excerpt(provider, 20),
			excerpt(t.Prompt, 48))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// excerpt collapses whitespace and trims to max runes.
func excerpt(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
