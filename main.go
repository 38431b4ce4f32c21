// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"prodledger/backup"
	"prodledger/config"
	"prodledger/database"
	"prodledger/loader"
	"runtime"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

func main() {
	// レポート金額は JSON 数値として出力する
	decimal.MarshalJSONWithoutQuotes = true

	rootCmd := &cobra.Command{
		Use:   "prodledger",
		Short: "Production ledger and recipe engine",
		Long: `prodledger keeps the product / material catalog, bill-of-materials recipes,
daily production and manpower, and builds monthly and yearly production reports.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./prodledger.toml", "config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(importRecipeCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(restoreCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup は .env と設定ファイルを読み、ロガーを差し替えます。
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "WARN: failed to load .env: %v\n", err)
	}

	config.SetPath(configPath)
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: Failed to load config file: %v. Using defaults.\n", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func initLogger(cfg config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.LogMode == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	switch cfg.LogLevel {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

// openDatabase は設定の DB を開き、スキーマ適用と初回シードを行います。
func openDatabase() (*sqlx.DB, config.Config, error) {
	cfg := config.GetConfig()
	zap.S().Infof("Connecting to database %s...", cfg.DatabasePath)
	dbConn, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, cfg, err
	}
	if err := loader.InitDatabase(dbConn, cfg); err != nil {
		dbConn.Close()
		return nil, cfg, fmt.Errorf("database initialization failed: %w", err)
	}
	zap.S().Info("Database initialization complete.")
	return dbConn, cfg, nil
}

func serveCmd() *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			backups := backup.NewManager(dbConn, cfg.DatabasePath, cfg.BackupDir)
			mux := http.NewServeMux()
			SetupRoutes(mux, dbConn, backups)

			srv := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				zap.S().Infof("Starting server on http://%s", cfg.ListenAddr)
				errCh <- srv.ListenAndServe()
			}()
			if open {
				openBrowser("http://" + cfg.ListenAddr)
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server start error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			zap.S().Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.S().Errorf("Server forced to shutdown: %v", err)
			}
			zap.S().Info("Server exited")
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "open the browser after start")
	return cmd
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		zap.S().Warnf("failed to open browser: %v", err)
	}
}
