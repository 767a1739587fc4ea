package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aescanero/shortcast/internal/application/orchestrator"
	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/aescanero/shortcast/pkg/ports"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or apply the brand config",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved brand config as YAML",
	RunE:  runConfigShow,
}

var configApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Merge a YAML brand config file into the saved config",
	Long:  "Reads a partial brand config from a YAML file, merges it over the saved config (or the defaults), validates the result and saves it.",
	RunE:  runConfigApply,
}

var configApplyFile string

func init() {
	configApplyCmd.Flags().StringVarP(&configApplyFile, "file", "f", "", "Path to brand config YAML file (required)")
	if err := configApplyCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configApplyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, err := a.store.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read brand config: %w", err)
	}
	if cfg == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "no brand config saved yet")
		return nil
	}

	return writeYAML(cmd.OutOrStdout(), cfg)
}

func runConfigApply(cmd *cobra.Command, _ []string) error {
	patch, err := readBrandFile(configApplyFile)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := applyBrandPatch(context.Background(), a.store, orchestrator.NewValidator(), patch)
	if err != nil {
		return err
	}

	return writeYAML(cmd.OutOrStdout(), saved)
}

// readBrandFile parses a partial brand config from YAML
func readBrandFile(path string) (domain.BrandConfigPatch, error) {
	var patch domain.BrandConfigPatch

	data, err := os.ReadFile(path)
	if err != nil {
		return patch, fmt.Errorf("failed to read brand config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &patch); err != nil {
		return patch, fmt.Errorf("failed to parse brand config YAML: %w", err)
	}

	return patch, nil
}

// applyBrandPatch validates the merged result before saving, the same way the HTTP API does
func applyBrandPatch(ctx context.Context, store ports.ConfigStore, validator *orchestrator.Validator, patch domain.BrandConfigPatch) (*domain.BrandConfig, error) {
	existing, err := store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand config: %w", err)
	}

	merged := domain.MergeBrandConfig(existing, patch)
	if err := validator.Validate(&merged); err != nil {
		return nil, fmt.Errorf("invalid brand config: %w", err)
	}

	saved, err := store.Upsert(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to save brand config: %w", err)
	}
	return saved, nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
