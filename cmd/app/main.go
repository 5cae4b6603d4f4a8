package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"foodbot/cmd"
	"foodbot/internal/adapters/out/postgres/courierrepo"
	"foodbot/internal/adapters/out/postgres/orderrepo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err = db.AutoMigrate(&orderrepo.OrderDTO{}, &courierrepo.CourierDTO{}); err != nil {
		logger.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("bot api connection failed", "error", err)
		os.Exit(1)
	}
	logger.Info("bot authorized", "username", bot.Self.UserName)

	root, err := cmd.NewCompositionRoot(cfg, db, bot, logger)
	if err != nil {
		logger.Error("wiring failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = root.JobManager().StartAll(ctx); err != nil {
		logger.Error("background jobs failed to start", "error", err)
		os.Exit(1)
	}
	defer root.JobManager().StopAll()

	go func() {
		if pollErr := root.Poller().Run(ctx); pollErr != nil && !errors.Is(pollErr, context.Canceled) {
			logger.Error("update poller exited", "error", pollErr)
			stop()
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	root.HTTPServer().RegisterRoutes(e)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		if serveErr := e.Start(address); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server exited", "error", serveErr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func loadConfig() (cmd.Config, error) {
	// Missing .env is fine in containerized deployments, everything can come
	// from the process environment.
	_ = godotenv.Load(".env")

	adminIDs, err := cmd.ParseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return cmd.Config{}, err
	}

	windowDelay, err := cmd.ParseWindowDelay(os.Getenv("WINDOW_DELAY"))
	if err != nil {
		return cmd.Config{}, err
	}

	channelChatID, err := parseChatID("CHANNEL_CHAT_ID")
	if err != nil {
		return cmd.Config{}, err
	}

	auditChatID, err := parseChatID("AUDIT_CHAT_ID")
	if err != nil {
		return cmd.Config{}, err
	}

	cfg := cmd.Config{
		HTTPPort:      os.Getenv("HTTP_PORT"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     os.Getenv("DB_SSLMODE"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		ChannelChatID: channelChatID,
		AuditChatID:   auditChatID,
		AdminIDs:      adminIDs,
		WindowDelay:   windowDelay,
	}

	if err = cfg.Validate(); err != nil {
		return cmd.Config{}, err
	}
	return cfg, nil
}

func parseChatID(key string) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}

	var id int64
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return id, nil
}
