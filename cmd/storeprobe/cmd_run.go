package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storeprobe/internal/scenario"
)

var runAll bool

// runCmd executes one or more scenarios
var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run one or more scenarios against the storefront",
	Long: `Runs the named scenarios in order, sharing one browser instance.
A failing scenario does not stop the ones after it.

Examples:
  storeprobe run homepage
  storeprobe run search auth
  storeprobe run --all`,
	RunE: runScenarios,
}

// listCmd prints the available scenarios
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available scenarios",
	RunE:  listScenarios,
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "Run every scenario")
}

func runScenarios(cmd *cobra.Command, args []string) error {
	names := args
	if runAll {
		if len(args) > 0 {
			return fmt.Errorf("--all does not take scenario names")
		}
		for _, s := range scenario.Registry() {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no scenario given; try 'storeprobe list' or --all")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	logger.Info("Running scenarios",
		zap.Strings("scenarios", names),
		zap.String("base_url", cfg.Target.BaseURL))

	runner := scenario.NewRunner(cfg, logger)
	return runner.Run(ctx, names...)
}

var listNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))

func listScenarios(cmd *cobra.Command, args []string) error {
	for _, s := range scenario.Registry() {
		fmt.Printf("%s\n    %s\n", listNameStyle.Render(s.Name), s.Description)
	}
	return nil
}
