// Package telegram implements the message gateway on the Telegram Bot API.
// Transient API failures (rate limits, server errors, network problems) are
// retried with exponential backoff; failures that mean the target message no
// longer exists surface as ports.ErrMessageGone so the synchronizer can
// repost.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"foodbot/internal/core/ports"
	"foodbot/internal/pkg/errs"
)

const (
	retryInitialInterval = 200 * time.Millisecond
	retryMaxElapsed      = 10 * time.Second
)

// botClient is the slice of the Bot API client the gateway needs.
// *tgbotapi.BotAPI satisfies it.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Gateway sends, edits and deletes chat messages through the Telegram Bot API.
type Gateway struct {
	bot     botClient
	retries bool
	logger  *slog.Logger
}

// NewGateway creates a Telegram message gateway that retries transient
// failures.
func NewGateway(bot botClient, logger *slog.Logger) (*Gateway, error) {
	return newGateway(bot, true, logger)
}

// NewDirectGateway creates a gateway that attempts each call exactly once.
// The audit surface uses it: a dropped audit message is logged and forgotten,
// never retried.
func NewDirectGateway(bot botClient, logger *slog.Logger) (*Gateway, error) {
	return newGateway(bot, false, logger)
}

func newGateway(bot botClient, retries bool, logger *slog.Logger) (*Gateway, error) {
	if bot == nil {
		return nil, errs.NewValueIsRequiredError("bot")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Gateway{
		bot:     bot,
		retries: retries,
		logger:  logger.With("component", "telegram-gateway"),
	}, nil
}

// Send posts a new message and returns its reference for later edits.
func (g *Gateway) Send(ctx context.Context, chatID int64, text string, buttons []ports.Button) (ports.MessageRef, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := inlineKeyboard(buttons); markup != nil {
		msg.ReplyMarkup = *markup
	}

	var sent tgbotapi.Message
	err := g.retry(ctx, func() error {
		var sendErr error
		sent, sendErr = g.bot.Send(msg)
		return sendErr
	})
	if err != nil {
		return ports.MessageRef{}, fmt.Errorf("send to chat %d: %w", chatID, err)
	}

	return ports.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// Edit replaces the text and buttons of a previously sent message.
// Returns ports.ErrMessageGone when the message no longer exists.
func (g *Gateway) Edit(ctx context.Context, ref ports.MessageRef, text string, buttons []ports.Button) error {
	var msg tgbotapi.Chattable
	if markup := inlineKeyboard(buttons); markup != nil {
		msg = tgbotapi.NewEditMessageTextAndMarkup(ref.ChatID, ref.MessageID, text, *markup)
	} else {
		msg = tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)
	}

	err := g.retry(ctx, func() error {
		_, editErr := g.bot.Send(msg)
		return editErr
	})
	if err != nil {
		// Editing to the text the message already has is fine.
		if isNotModified(err) {
			return nil
		}
		if isMessageGone(err) {
			return ports.ErrMessageGone
		}
		return fmt.Errorf("edit message %d in chat %d: %w", ref.MessageID, ref.ChatID, err)
	}
	return nil
}

// Delete removes a previously sent message.
// Returns ports.ErrMessageGone when the message no longer exists.
func (g *Gateway) Delete(ctx context.Context, ref ports.MessageRef) error {
	err := g.retry(ctx, func() error {
		_, delErr := g.bot.Request(tgbotapi.NewDeleteMessage(ref.ChatID, ref.MessageID))
		return delErr
	})
	if err != nil {
		if isMessageGone(err) {
			return ports.ErrMessageGone
		}
		return fmt.Errorf("delete message %d in chat %d: %w", ref.MessageID, ref.ChatID, err)
	}
	return nil
}

// retry runs op with exponential backoff, retrying only transient failures.
// A direct gateway runs op once and returns whatever it got.
func (g *Gateway) retry(ctx context.Context, op func() error) error {
	if !g.retries {
		return op()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.MaxElapsedTime = retryMaxElapsed

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		g.logger.Warn("transient telegram api failure, retrying",
			"attempt", attempt, "error", err)
		return err
	}, backoff.WithContext(policy, ctx))
}

// isTransient reports whether the error is worth retrying: rate limits,
// server-side failures and anything that never reached the API.
func isTransient(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		// Network-level failure, the request may not have arrived.
		return true
	}
	return apiErr.Code == 429 || apiErr.Code >= 500
}

// isMessageGone reports whether the API refused the call because the target
// message (or chat) is no longer reachable.
func isMessageGone(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == 403 {
		// Bot kicked from the chat or blocked by the user.
		return true
	}
	if apiErr.Code != 400 {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "message to edit not found") ||
		strings.Contains(msg, "message to delete not found") ||
		strings.Contains(msg, "message can't be edited") ||
		strings.Contains(msg, "message_id_invalid") ||
		strings.Contains(msg, "chat not found")
}

func isNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) &&
		apiErr.Code == 400 &&
		strings.Contains(strings.ToLower(apiErr.Message), "message is not modified")
}

// inlineKeyboard builds a one-button-per-row inline keyboard, or nil when
// there are no buttons.
func inlineKeyboard(buttons []ports.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data),
		))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
