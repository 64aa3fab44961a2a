package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"db-seed/internal/dialect"
	"db-seed/internal/store"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete all rows from the seeded tables",
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

		fmt.Printf("🦅 Connected to %s (%s@%s)\n", d.DriverName(), cfg.Conn.User, cfg.Conn.Host)
		return cleanDatabase(db, d, plan.LoadOrder())
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)
}

// cleanDatabase empties tables in reverse load order.
func cleanDatabase(db *sql.DB, d dialect.Dialect, tables []string) error {
	before, after := d.CleanHooks()
	if before != "" {
		log.Printf("Relaxing constraints: %s", before)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	if err := d.BeforeClean(tx); err != nil {
		color.Yellow("Warning: Failed to execute BeforeClean hook: %v. Continuing...", err)
	}

	count := 0
	total := len(tables)
	for i := len(tables) - 1; i >= 0; i-- {
		count++
		if _, err := tx.Exec(d.CleanQuery(tables[i])); err != nil {
			color.Yellow("Warning: Failed to clean %s: %v (continuing...)", tables[i], err)
		}
		if count%5 == 0 || count == total {
			log.Printf("Cleaned %d/%d tables...", count, total)
		}
	}

	if after != "" {
		log.Printf("Restoring constraints: %s", after)
	}
	if err := d.AfterClean(tx); err != nil {
		color.Yellow("Warning: Failed to execute AfterClean hook: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cleaning transaction: %w", err)
	}
	tx = nil

	log.Println("Database Cleaned Successfully!")
	return nil
}
