package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/partstack/bomtree"
	"github.com/partstack/bomtree/internal/logging"
	"github.com/partstack/bomtree/pkg/adapters/file"
	"github.com/partstack/bomtree/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "bomtree",
	Short: "Bomtree builds assembly trees from bill of materials data",
	Long:  `Bomtree loads a parts dataset and resolves nested bill of materials structures into assembly trees, with cycle detection and depth limits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dataset", "bom.yaml", "Path to the YAML parts dataset")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
}

// newRepository loads the dataset named by the persistent --dataset flag.
func newRepository(cmd *cobra.Command) (ports.PartRepository, error) {
	dataset, _ := cmd.Flags().GetString("dataset")
	repo, err := file.Load(dataset)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", dataset, err)
	}
	return repo, nil
}

func newLogLevel(cmd *cobra.Command) slog.Level {
	name, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		level = slog.LevelInfo
	}
	return level
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(newLogLevel(cmd))
}

func newService(cmd *cobra.Command) (*bomtree.Service, error) {
	repo, err := newRepository(cmd)
	if err != nil {
		return nil, err
	}
	return bomtree.New(repo, bomtree.WithLogger(newLogger(cmd))), nil
}
