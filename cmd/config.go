package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodbot/internal/pkg/errs"
)

const defaultWindowDelay = 30 * time.Second

// Config carries everything the application needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BotToken      string
	ChannelChatID int64
	AuditChatID   int64
	AdminIDs      []int64
	WindowDelay   time.Duration
}

// DSN renders the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Validate checks the required fields are present.
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return errs.NewValueIsRequiredError("HTTP_PORT")
	}
	if c.BotToken == "" {
		return errs.NewValueIsRequiredError("BOT_TOKEN")
	}
	if c.ChannelChatID == 0 {
		return errs.NewValueIsRequiredError("CHANNEL_CHAT_ID")
	}
	if c.AuditChatID == 0 {
		return errs.NewValueIsRequiredError("AUDIT_CHAT_ID")
	}
	if len(c.AdminIDs) == 0 {
		return errs.NewValueIsRequiredError("ADMIN_IDS")
	}
	return nil
}

// ParseAdminIDs parses the comma-separated operator list from the
// environment.
func ParseAdminIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("ADMIN_IDS", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseWindowDelay parses the cancellation window duration, falling back to
// the default when unset.
func ParseWindowDelay(raw string) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return defaultWindowDelay, nil
	}

	delay, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("WINDOW_DELAY", err)
	}
	if delay <= 0 {
		return 0, errs.NewValueIsInvalidError("WINDOW_DELAY")
	}
	return delay, nil
}
