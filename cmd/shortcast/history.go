package main

import (
	"context"
	"fmt"

	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the latest run and the run history",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most this many records (0 shows all)")
	rootCmd.AddCommand(historyCmd)
}

type historyOutput struct {
	Latest  *domain.RunRecord   `json:"latest"`
	History []*domain.RunRecord `json:"history"`
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	latest, err := a.store.Latest(ctx)
	if err != nil {
		return fmt.Errorf("failed to read latest run: %w", err)
	}
	history, err := a.store.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), historyOutput{Latest: latest, History: limitHistory(history, historyLimit)})
}

func limitHistory(history []*domain.RunRecord, n int) []*domain.RunRecord {
	if history == nil {
		return []*domain.RunRecord{}
	}
	if n > 0 && len(history) > n {
		return history[:n]
	}
	return history
}
