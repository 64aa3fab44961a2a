package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"db-seed/internal/artifact"
	"db-seed/internal/schema"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate artifacts, then load them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(need{store: !dryRun, target: true})
		if err != nil {
			return err
		}
		plan, err := cfg.Plan()
		if err != nil {
			return err
		}

		if dryRun {
			printPlan(plan)
			return nil
		}

		if _, err := runGenerate(cmd, cfg, plan); err != nil {
			return err
		}
		return runLoad(cmd, cfg, plan)
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and print the plan without generating or loading")
}

func printPlan(plan *schema.Plan) {
	fmt.Println("[SIMULATION] Dry-Run Mode Active: No data will be written.")
	fmt.Printf("🔍 Plan (Dependency Order):\n")
	for i, t := range plan.Tables {
		fmt.Printf("[%02d] %-14s keys=%v depends_on=%v -> %s\n",
			i+1, t.Name, t.Keys, t.DependsOn, artifact.FileName(t.Name))
	}
	for _, a := range plan.Auth {
		fmt.Printf("[--] %-14s derived from %s(%s)\n",
			a.AuthTable, a.Table, strings.Join([]string{a.IDColumn, a.NameColumn}, ", "))
	}
}
