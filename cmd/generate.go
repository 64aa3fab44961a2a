package cmd

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"db-seed/internal/engine"
	"db-seed/internal/schema"
	"db-seed/internal/source"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate MOCK_<Table>_DATA.sql artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(need{target: true})
		if err != nil {
			return err
		}
		plan, err := cfg.Plan()
		if err != nil {
			return err
		}
		_, err = runGenerate(cmd, cfg, plan)
		return err
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)
}

// newAcquirer builds the configured row source.
func newAcquirer(cfg *Config) engine.Acquirer {
	if cfg.Source == SourceRemote {
		return &source.Remote{Host: cfg.GeneratorHost, APIKey: cfg.APIKey, Count: cfg.Count}
	}
	return &source.File{Dir: cfg.InputDir}
}

func runGenerate(cmd *cobra.Command, cfg *Config, plan *schema.Plan) (*engine.Report, error) {
	d, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}
	target := d.Target(cfg.Conn, cfg.Schema)

	log.Printf("Using Dialect: %s (target %s)\n", d.DriverName(), target)
	log.Printf("Generating %d tables from %s source into %s", len(plan.Tables), cfg.Source, cfg.OutputDir)
	start := time.Now()

	progress, bar := newProgress("Generating: ", len(plan.Tables)+len(plan.Auth))

	g := &engine.Generator{
		Plan:       plan,
		Source:     newAcquirer(cfg),
		Writer:     engine.Writer{Dialect: d, Target: target},
		OutDir:     cfg.OutputDir,
		Faker:      gofakeit.New(cfg.Seed),
		Discover:   cfg.Discover,
		OnProgress: func() { bar.Incr() },
	}
	report, err := g.Generate(cmd.Context())

	progress.Stop()

	printGenerateReport(report)
	if err != nil {
		return report, err
	}
	log.Printf("Generation Done! Time Elapsed: %s", time.Since(start))
	return report, nil
}

func printGenerateReport(report *engine.Report) {
	if report == nil {
		return
	}
	fmt.Println("\n📊 Generation Report (Dependency Order):")
	total := 0
	for i, r := range report.Tables {
		icon := color.GreenString("✓")
		if r.Status == engine.StatusSkipped {
			icon = color.YellowString("!")
		}
		fmt.Printf("[%s] [%02d] %-20s : %d rows - %s\n", icon, i+1, r.Table, r.Rows, r.Status)
		if len(r.Injected) > 0 {
			fmt.Printf("    └ Foreign keys: %s\n", strings.Join(r.Injected, ", "))
		}
		if r.Reason != "" {
			fmt.Printf("    └ %s\n", r.Reason)
		}
		total += r.Rows
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Total Rows: %d\n", total)
}
