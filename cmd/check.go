package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"db-seed/internal/schema"
	"db-seed/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the declared table order with the database's foreign keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(need{store: true})
		if err != nil {
			return err
		}
		plan, err := cfg.Plan()
		if err != nil {
			return err
		}
		d, err := cfg.Dialect()
		if err != nil {
			return err
		}

		db, err := store.Connect(cmd.Context(), d, cfg.Conn)
		if err != nil {
			return err
		}
		defer db.Close()

		fks, err := schema.ForeignKeys(cmd.Context(), db, d)
		if err != nil {
			return err
		}
		fmt.Printf("🔍 Found %d foreign keys in %s\n", len(fks), cfg.Conn.Database)

		violations := schema.CheckOrder(plan, fks)
		if len(violations) == 0 {
			color.Green("✓ Declared order satisfies every foreign key")
			return nil
		}
		for _, v := range violations {
			color.Yellow("! %s", v)
		}
		fmt.Printf("Suggested order: %s\n", strings.Join(schema.SuggestOrder(plan.Names(), fks), ", "))
		return fmt.Errorf("%d foreign keys not satisfied by the declared order", len(violations))
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
