package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/config"
	"cafe-backend/internal/logging"
	"cafe-backend/internal/models"
	"cafe-backend/internal/server"
	"cafe-backend/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	port    string
	envFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cafe",
	Short: "Café retail back office: POS, inventory, staff and finances",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if port != "" {
			cfg.HTTPPort = port
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
		}

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		for _, w := range cfg.Warnings {
			logger.Warn(w)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	st := store.New(store.WithLocation(cfg.Location))
	if cfg.SeedDemoData {
		if err := st.Seed(store.DemoData(st.Now())); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("demo data loaded")
	}

	accounts := auth.NewAccounts()
	if _, err := accounts.Register(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, models.StaffRoleManager); err != nil {
		return fmt.Errorf("bootstrap manager account: %w", err)
	}

	app := server.New(server.Deps{
		Config:   cfg,
		Store:    st,
		Accounts: accounts,
		Trail:    audit.NewTrail(nil),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("port", cfg.HTTPPort), zap.String("timezone", cfg.Location.String()))
		errCh <- app.Listen(":" + cfg.HTTPPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading the environment")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "HTTP port (overrides HTTP_PORT)")

	// bare `cafe` behaves like `cafe serve`
	rootCmd.RunE = serveCmd.RunE
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
