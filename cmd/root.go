package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "db-seed",
	Short: "Generate and load referentially consistent mock data",
	Long: `
DB SEED 🌱 - Mock Data Generator & Loader

Acquires rows per table (hosted generator or CSV files), rewrites foreign-key
columns so every reference resolves to an already generated parent row, writes
MOCK_<Table>_DATA.sql artifacts and loads them in dependency order.
`,
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./db-seed.yaml)")
	flags.String("driver", "", "database driver: mysql, postgres, pgx, sqlserver, oracle")
	flags.String("source", "", "row source: file or remote")
	flags.String("input", "", "directory holding <Table>.csv inputs")
	flags.String("output", "", "directory for generated MOCK_<Table>_DATA.sql artifacts")
	flags.Int("count", 0, "rows per table requested from the remote generator")
	flags.Int64("seed", 0, "random seed for foreign-key resampling and passwords (0 = random)")
	flags.Bool("discover", false, "also convert input files that are not declared in the plan")

	viper.BindPFlag("database.driver", flags.Lookup("driver"))
	viper.BindPFlag("source", flags.Lookup("source"))
	viper.BindPFlag("input_dir", flags.Lookup("input"))
	viper.BindPFlag("output_dir", flags.Lookup("output"))
	viper.BindPFlag("generator.count", flags.Lookup("count"))
	viper.BindPFlag("seed", flags.Lookup("seed"))
	viper.BindPFlag("discover", flags.Lookup("discover"))

	bindConfig(viper.GetViper())
}

// initConfig reads .env files, the config file and environment variables.
func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-seed")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves and validates the configuration for a command.
func loadConfig(n need) (*Config, error) {
	cfg, err := LoadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(n); err != nil {
		return nil, err
	}
	return cfg, nil
}
