package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"db-seed/internal/engine"
	"db-seed/internal/schema"
	"db-seed/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load generated artifacts into the database in dependency order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(need{store: true})
		if err != nil {
			return err
		}
		plan, err := cfg.Plan()
		if err != nil {
			return err
		}
		return runLoad(cmd, cfg, plan)
	},
}

func init() {
	RootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, cfg *Config, plan *schema.Plan) error {
	ctx := cmd.Context()
	d, err := cfg.Dialect()
	if err != nil {
		return err
	}

	db, err := store.Connect(ctx, d, cfg.Conn)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("🦅 Connected to %s (%s@%s)\n", d.DriverName(), cfg.Conn.User, cfg.Conn.Host)
	start := time.Now()

	if _, err := loadArtifacts(ctx, cfg.OutputDir, plan.LoadOrder(), store.Open(db), store.Counter{DB: db, Dialect: d}); err != nil {
		return err
	}
	log.Printf("Load Done! Time Elapsed: %s", time.Since(start))
	return nil
}

// loadArtifacts applies the artifacts in dir and verifies the loaded row counts.
func loadArtifacts(ctx context.Context, dir string, order []string, open store.Opener, counter engine.RowCounter) ([]engine.LoadResult, error) {
	progress, bar := newProgress("Loading: ", len(order))

	loader := &engine.Loader{
		Dir:        dir,
		Open:       open,
		OnProgress: func() { bar.Incr() },
	}
	results, err := loader.LoadAll(ctx, order)

	progress.Stop()

	if err != nil {
		printLoadReport(results)
		return results, err
	}

	verified := engine.Verify(ctx, counter, results)
	printLoadReport(verified)
	return verified, nil
}

func printLoadReport(results []engine.LoadResult) {
	fmt.Println("\n📊 Load Report (Dependency Order):")
	total := 0
	for i, r := range results {
		icon := color.GreenString("✓")
		if r.Status != engine.StatusVerifiedOK && r.Status != engine.StatusLoaded && r.Status != engine.StatusDiscovered {
			icon = color.YellowString("!")
		}
		statusDisplay := r.Status
		if statusDisplay == engine.StatusVerifiedOK {
			statusDisplay = "OK (Verified)"
		}
		fmt.Printf("[%s] [%02d/%02d] %-28s : %d rows (Actual: %d) - %s\n",
			icon, i+1, len(results), r.File, r.Rows, r.Actual, statusDisplay)
		total += r.Rows
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Total Inserts: %d\n", total)
}
