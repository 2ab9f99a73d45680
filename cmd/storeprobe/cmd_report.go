package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"storeprobe/internal/report"
)

var watchMode bool

// reportCmd renders the screenshot gallery
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the HTML report from captured screenshots",
	Long: `Scans the screenshots directory, groups captures by their step prefix
and writes one standalone HTML page with a lightbox viewer.

With --watch the report is regenerated whenever screenshots change, so it can
run alongside 'storeprobe run' and stay current.`,
	RunE: generateReport,
}

func init() {
	reportCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Regenerate on screenshot changes")
}

func generateReport(cmd *cobra.Command, args []string) error {
	gen := report.NewGenerator(cfg.Artifacts.Dir, cfg.Report.OutputPath, logger)

	if watchMode {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			cancel()
		}()

		fmt.Printf("👀 Surveillance de %s (Ctrl+C pour arrêter)\n", cfg.Artifacts.Dir)
		if err := gen.Watch(ctx, cfg.Report.Debounce()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	res, err := gen.Generate()
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Printf("❌ Aucune capture d'écran trouvée dans %s/\n", cfg.Artifacts.Dir)
		fmt.Println("   Lancez d'abord un scénario: storeprobe run search")
		return nil
	}

	fmt.Printf("✅ Rapport HTML généré: %s\n", res.Path)
	fmt.Printf("   📊 %d étapes, %d captures\n", res.Steps, res.Shots)
	return nil
}
