// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the journal-search CLI: catalog
// search from the command line, the terminal browser and the web host.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/journal-search/internal/catalog"
	"github.com/pdiddy/journal-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE; commands log through it.
var logger = zap.NewNop()

// rootCmd is the base command for the journal-search CLI.
var rootCmd = &cobra.Command{
	Use:   "journal-search",
	Short: "Search the 《澳门语言学刊》 article catalog",
	Long: `journal-search loads the article catalog of 《澳门语言学刊》 and searches it
by title keyword, year, article type and author. Results are shown fifteen to
a page.

Use search and export for one-off queries, browse for the terminal browser
and serve for the web page. The catalog is a CSV file, a SQLite snapshot
written by index, or an http(s) URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./journal-search.yaml or ~/.config/journal-search/journal-search.yaml)")
	pf.String("catalog", "", "catalog source: CSV file, SQLite snapshot or http(s) URL (default journals.csv)")
	pf.Bool("verbose", false, "enable debug logging")

	_ = viper.BindPFlag("catalog.path", pf.Lookup("catalog"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journal-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "journal-search"))
		}
	}

	viper.SetDefault("catalog.path", types.DefaultCatalogPath)
	viper.SetDefault("catalog.encodings", types.DefaultEncodings)
	viper.SetDefault("catalog.user_agent", types.DefaultUserAgent)
	viper.SetDefault("server.addr", types.DefaultAddr)
	viper.SetDefault("server.session_ttl", defaultSessionTTL)
	viper.SetDefault("server.title", types.DefaultTitle)
	viper.SetDefault("server.footer", types.DefaultFooter)
	viper.SetDefault("server.secrets_dir", ".secrets/")

	viper.SetEnvPrefix("JOURNAL_SEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, file and default settings.
func loadConfig() (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// loadCatalog reads the configured catalog.
func loadCatalog(ctx context.Context) (*catalog.Dataset, types.AppConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	ds, err := catalog.Load(ctx, cfg.Catalog, logger)
	if err != nil {
		return nil, cfg, err
	}
	return ds, cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
