package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously previewed links",
	Long: `Lists accepted previews, newest first.

History is stored in ~/.linkcard/data/history.db unless --ephemeral is set
or history.enabled is false in the config file.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [entry-id]",
	Short: "Show one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history entries",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of entries (default from settings)")
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output entries as JSON")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries, err := historyService.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, entries)
	}

	if len(entries) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	cmd.Println("History:")
	cmd.Println()
	for i := range entries {
		printEntry(cmd, i+1, &entries[i])
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entry, err := historyService.Get(context.Background(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("history entry %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get history entry: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, entry)
	}

	cmd.Printf("ID:          %s\n", entry.ID)
	cmd.Printf("Fetched:     %s\n", entry.FetchedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("Text:        %s\n", entry.Text)
	cmd.Printf("Link:        %s\n", valueOr(entry.Data.Link, "(none)"))
	cmd.Printf("Domain:      %s\n", valueOr(entry.Data.Domain, "(none)"))
	cmd.Printf("Title:       %s\n", valueOr(entry.Data.Title, "(none)"))
	cmd.Printf("Description: %s\n", valueOr(entry.Data.Description, "(none)"))
	if entry.Data.HasImage() {
		cmd.Printf("Image:       %s (%.0fx%.0f)\n", entry.Data.Image.URL, entry.Data.Image.Width, entry.Data.Image.Height)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	cmd.Println("History cleared.")
	return nil
}

func printEntry(cmd *cobra.Command, n int, e *domain.HistoryEntry) {
	label := valueOr(e.Data.Title, valueOr(e.Data.Link, e.Text))
	cmd.Printf("  [%d] %s\n", n, label)
	cmd.Printf("      %s  %s  %s\n", e.ID, e.FetchedAt.Local().Format("2006-01-02 15:04"), e.Data.Domain)
	cmd.Println()
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
