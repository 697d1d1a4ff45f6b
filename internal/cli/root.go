package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/nhalm/canonlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/znsio/specmatic-catalog-admin-go/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "catalog-admin",
	Short:         "Manage the product catalog through its REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// .env is optional
		_ = godotenv.Load()

		if err := config.LoadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		cfg := config.GetConfig()
		canonlog.SetupGlobalLogger(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", ".", "Directory containing config.yaml")
	rootCmd.PersistentFlags().String("backend-url", "", "Base URL of the product API")
	rootCmd.PersistentFlags().String("token", "", "Value of the Authenticate header")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request timeout")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	_ = viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend-url"))
	_ = viper.BindPFlag("backend.token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("backend.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
