package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/shortcast/internal/application/trigger"
	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one run and print its outcome",
	Long:  "Executes the pipeline once, prints {ok, run_id, status} and exits non-zero unless the run succeeded.",
	RunE:  runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runSummary is the CLI's one-line outcome of a run
type runSummary struct {
	OK     bool             `json:"ok"`
	RunID  string           `json:"run_id,omitempty"`
	Status domain.RunStatus `json:"status,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func summarize(record *domain.RunRecord, err error) runSummary {
	s := runSummary{}
	if record != nil {
		s.RunID = record.ID
		s.Status = record.Status
		s.Error = record.Error
	}
	if err != nil {
		s.Error = err.Error()
	}
	s.OK = err == nil && record != nil && record.Status == domain.RunStatusSuccess
	return s
}

func runOnce(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.wirePipeline(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := summarize(a.gate.Trigger(ctx, trigger.SourceCLI))
	if err := printJSON(cmd.OutOrStdout(), summary); err != nil {
		return err
	}

	if !summary.OK {
		return fmt.Errorf("run %s did not succeed", summary.Status)
	}
	return nil
}
