package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"companysite/internal/bootstrap"
	"companysite/internal/config"
	cronpkg "companysite/internal/cron"
	"companysite/internal/dashboard"
	"companysite/internal/handler/api"
	"companysite/internal/middleware"
	"companysite/internal/notify"
	"companysite/internal/pkg/httpclient"
	"companysite/internal/pkg/telegram"
	"companysite/internal/repository"
	"companysite/internal/router"
	"companysite/internal/status"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:          "companysite",
	Short:        "Internal company dashboard",
	Long:         "Serves the reports, database status, access request and schedules dashboard API",
	SilenceUsage: true,
	RunE:         runServer,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the schedule watcher",
	RunE:  runServer,
}

var holidaysFile string

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap-db",
	Short: "Create the control tables and optionally import holidays",
	RunE:  runDBBootstrap,
}

func init() {
	bootstrapCmd.Flags().StringVar(&holidaysFile, "holidays", "", "YAML file with holidays to import")
	rootCmd.AddCommand(serveCmd, bootstrapCmd, nextRunsCmd)
}

func main() {
	// --- Logger ---
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loc := cfg.Server.Location()
	clock := api.SystemClock(loc)

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := bootstrap.MigrateAndSeed(db); err != nil {
		return fmt.Errorf("bootstrap database schema: %w", err)
	}

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	// --- Submission Deduper (Redis with in-memory fallback) ---
	deduper, dedupeErr := middleware.NewSubmissionDeduper(
		cfg.Redis.Addr,
		cfg.Redis.Pass,
		cfg.Redis.DB,
		cfg.Redis.DedupeTTL,
	)
	if dedupeErr != nil {
		logger.Warn("Redis unavailable for submission dedup, using in-memory fallback", zap.Error(dedupeErr))
	}

	// --- Routes ---
	router.Setup(e, db, cfg, status.NewMySQLDialer(), deduper, clock, logger)

	// --- Cron Scheduler ---
	var scheduler *cronpkg.Scheduler
	notifier := buildNotifier(cfg)
	switch {
	case !cfg.Watch.Enabled:
		logger.Info("Schedule watcher disabled")
	case len(notifier) == 0:
		logger.Info("Schedule watcher disabled: no alert channel configured")
	default:
		views := dashboard.NewService(repository.NewScheduleRepository(db), repository.NewCompanyRepository(db))
		scheduler = cronpkg.New(cfg.Watch.Spec, views, notifier, loc, logger)
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("start schedule watcher: %w", err)
		}
	}

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting dashboard server", zap.String("addr", addr), zap.String("env", cfg.Server.Env))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	// Stop cron
	if scheduler != nil {
		ctx := scheduler.Stop()
		<-ctx.Done()
	}

	// Stop HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
	return nil
}

func buildNotifier(cfg *config.Config) notify.Multi {
	var out notify.Multi
	if cfg.Alert.SlackToken != "" && cfg.Alert.SlackChannel != "" {
		out = append(out, notify.NewSlackNotifier(cfg.Alert.SlackToken, cfg.Alert.SlackChannel))
	}
	if cfg.Alert.WebhookURL != "" {
		out = append(out, notify.NewWebhookNotifier(cfg.Alert.WebhookURL, httpclient.New()))
	}
	if cfg.Alert.TelegramToken != "" && cfg.Alert.TelegramChatID != "" {
		out = append(out, notify.NewTelegramNotifier(telegram.NewBotAPI(cfg.Alert.TelegramToken), cfg.Alert.TelegramChatID))
	}
	return out
}

func runDBBootstrap(cmd *cobra.Command, args []string) error {
	dbCfg, err := config.LoadDatabaseOnly()
	if err != nil {
		return err
	}
	db, err := config.NewDatabase(dbCfg)
	if err != nil {
		return err
	}
	if err := bootstrap.MigrateAndSeed(db); err != nil {
		return err
	}
	logger.Info("Schema migration and default seed completed")

	if holidaysFile == "" {
		return nil
	}
	f, err := os.Open(holidaysFile)
	if err != nil {
		return fmt.Errorf("open holidays file: %w", err)
	}
	defer f.Close()

	inserted, err := bootstrap.ImportHolidays(cmd.Context(), repository.NewScheduleRepository(db), f)
	if err != nil {
		return fmt.Errorf("import holidays: %w", err)
	}
	logger.Info("Holidays imported", zap.String("file", holidaysFile), zap.Int("inserted", inserted))
	return nil
}
