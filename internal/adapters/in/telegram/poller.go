// Package telegram translates incoming bot updates into application
// operations: callback buttons become lifecycle triggers, free text and
// photos feed the courier's delivery handshake, and chat commands drive
// operator actions.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"foodbot/internal/core/application/session"
	"foodbot/internal/core/application/trigger"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/errs"
)

const pollTimeoutSeconds = 30

// updatesClient is the slice of the Bot API client the poller needs.
// *tgbotapi.BotAPI satisfies it.
type updatesClient interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	StopReceivingUpdates()
}

// Poller long-polls the Bot API and routes every update to the matching
// application operation. Lifecycle actions, code and receipt submissions
// included, go through the trigger dispatcher; only courier enrollment is
// handled directly, since it is not an order transition.
type Poller struct {
	bot        updatesClient
	dispatcher *trigger.Dispatcher
	sessions   *session.Registry
	admins     commands.AdminRegistry
	notifier   commands.OrderNotifier

	registerCourier *commands.RegisterCourierCommandHandler

	logger *slog.Logger
}

// NewPoller creates an update poller.
func NewPoller(
	bot updatesClient,
	dispatcher *trigger.Dispatcher,
	sessions *session.Registry,
	admins commands.AdminRegistry,
	notifier commands.OrderNotifier,
	registerCourier *commands.RegisterCourierCommandHandler,
	logger *slog.Logger,
) (*Poller, error) {
	if err := errors.Join(
		requireDep("bot", bot == nil),
		requireDep("dispatcher", dispatcher == nil),
		requireDep("sessions", sessions == nil),
		requireDep("admins", admins == nil),
		requireDep("notifier", notifier == nil),
		requireDep("registerCourier handler", registerCourier == nil),
		requireDep("logger", logger == nil),
	); err != nil {
		return nil, err
	}

	return &Poller{
		bot:             bot,
		dispatcher:      dispatcher,
		sessions:        sessions,
		admins:          admins,
		notifier:        notifier,
		registerCourier: registerCourier,
		logger:          logger.With("component", "telegram-poller"),
	}, nil
}

func requireDep(name string, missing bool) error {
	if missing {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// Run consumes the update stream until the context is canceled or the
// stream closes.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := p.bot.GetUpdatesChan(cfg)

	p.logger.Info("update poller started")
	for {
		select {
		case <-ctx.Done():
			p.bot.StopReceivingUpdates()
			p.logger.Info("update poller stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				p.logger.Info("update stream closed")
				return nil
			}
			p.handleUpdate(ctx, update)
		}
	}
}

func (p *Poller) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		p.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		p.handleMessage(ctx, update.Message)
	}
}

// handleCallback turns a pressed inline button into a lifecycle trigger.
// The callback is always answered so the client stops its spinner; errors
// surface as a short alert text.
func (p *Poller) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil {
		return
	}
	actor := cb.From.ID

	kind, number, err := trigger.Parse(cb.Data)
	if err != nil {
		p.logger.Warn("unparseable callback", "data", cb.Data, "actor", actor)
		p.answerCallback(cb.ID, "Unknown action.")
		return
	}

	// Publishing is an operator action; the channel never carries a publish
	// button, so a payload of that kind is hand-crafted.
	if kind == trigger.KindPublish && !p.admins.IsAdmin(actor) {
		p.logger.Warn("publish callback from non-admin", "order", number, "actor", actor)
		p.answerCallback(cb.ID, "You are not allowed to do that.")
		return
	}

	err = p.dispatcher.Dispatch(ctx, trigger.Trigger{Kind: kind, OrderNumber: number, Actor: actor})
	if err != nil {
		p.logger.Warn("trigger rejected",
			"kind", kind, "order", number, "actor", actor, "error", err)
	}
	p.answerCallback(cb.ID, callbackFeedback(err))
}

func (p *Poller) answerCallback(callbackID, text string) {
	if _, err := p.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		p.logger.Warn("callback answer failed", "error", err)
	}
}

// callbackFeedback maps application errors to the short alert shown on the
// pressed button. An empty string is a silent acknowledgment.
func callbackFeedback(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, commands.ErrNotAuthorized):
		return "You are not allowed to do that."
	case errors.Is(err, session.ErrSessionExists):
		return "Finish your current confirmation first."
	case errors.Is(err, order.ErrStatusConflict):
		return "This order has already moved on."
	case errors.Is(err, errs.ErrObjectNotFound):
		return "Order not found."
	default:
		return "Something went wrong, please try again."
	}
}

func (p *Poller) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	from := msg.From.ID

	switch {
	case len(msg.Photo) > 0:
		p.handlePhoto(ctx, from, msg.Photo)
	case msg.IsCommand():
		p.handleCommand(ctx, from, msg.Command(), msg.CommandArguments())
	case msg.Text != "":
		p.handleText(ctx, from, msg.Text)
	}
}

// handlePhoto feeds a receipt photo into the courier's open delivery
// handshake.
func (p *Poller) handlePhoto(ctx context.Context, from int64, photos []tgbotapi.PhotoSize) {
	// The last size is the largest rendition.
	photoID := photos[len(photos)-1].FileID

	t := trigger.Trigger{Kind: trigger.KindReceiptSubmit, Actor: from, Args: []string{photoID}}
	err := p.dispatcher.Dispatch(ctx, t)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNoSession), errors.Is(err, commands.ErrReceiptNotExpected):
		p.notifier.Notify(ctx, from, "I was not expecting a photo right now.")
	default:
		p.logger.Error("receipt submission failed", "actor", from, "error", err)
		p.notifier.Notify(ctx, from, "Something went wrong, please try again.")
	}
}

// handleText treats free text from a courier with an open handshake as a
// confirmation code attempt. Everything else is ignored.
func (p *Poller) handleText(ctx context.Context, from int64, text string) {
	s, ok := p.sessions.Get(from)
	if !ok || s.Mode != session.ModeAwaitingCode {
		return
	}

	t := trigger.Trigger{Kind: trigger.KindOtpSubmit, Actor: from, Args: []string{strings.TrimSpace(text)}}
	err := p.dispatcher.Dispatch(ctx, t)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		p.notifier.Notify(ctx, from, "That does not look like a confirmation code.")
	case errors.Is(err, commands.ErrCodeMismatch):
		// The handler already told the courier to retry.
	default:
		p.logger.Error("code submission failed", "actor", from, "error", err)
		p.notifier.Notify(ctx, from, "Something went wrong, please try again.")
	}
}

func (p *Poller) handleCommand(ctx context.Context, from int64, command, args string) {
	switch command {
	case "addcourier":
		p.handleAddCourier(ctx, from, args)
	case "edit":
		p.handleEdit(ctx, from, args)
	case "cancel":
		p.handleCancel(ctx, from, args)
	case "publish":
		p.handlePublish(ctx, from, args)
	default:
		p.logger.Debug("ignored command", "command", command, "actor", from)
	}
}

// handleAddCourier enrolls a courier: /addcourier <chat id> <phone> <name>.
func (p *Poller) handleAddCourier(ctx context.Context, from int64, args string) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		p.notifier.Notify(ctx, from, "Usage: /addcourier <chat id> <phone> <name>")
		return
	}

	chatID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		p.notifier.Notify(ctx, from, "Usage: /addcourier <chat id> <phone> <name>")
		return
	}

	phone, err := kernel.NewPhone(fields[1])
	if err != nil {
		p.notifier.Notify(ctx, from, err.Error())
		return
	}

	name := strings.Join(fields[2:], " ")
	cmd, err := commands.NewRegisterCourierCommand(from, chatID, name, phone)
	if err != nil {
		p.notifier.Notify(ctx, from, err.Error())
		return
	}

	if err := p.registerCourier.Handle(ctx, cmd); err != nil {
		p.notifier.Notify(ctx, from, operatorFeedback(err))
		return
	}
	p.notifier.Notify(ctx, from, fmt.Sprintf("Courier %s enrolled.", name))
}

// handleEdit stages an item change: /edit <order> <total> <name:qty,name:qty>.
// The total and the item specs travel as trigger arguments; the registered
// trigger handler parses and validates them.
func (p *Poller) handleEdit(ctx context.Context, from int64, args string) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		p.notifier.Notify(ctx, from, "Usage: /edit <order> <total> <name:qty,name:qty>")
		return
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil {
		p.notifier.Notify(ctx, from, "Usage: /edit <order> <total> <name:qty,name:qty>")
		return
	}

	triggerArgs := []string{fields[1]}
	for _, spec := range strings.Split(strings.Join(fields[2:], " "), ",") {
		triggerArgs = append(triggerArgs, strings.TrimSpace(spec))
	}

	t := trigger.Trigger{Kind: trigger.KindEditPropose, OrderNumber: number, Actor: from, Args: triggerArgs}
	if err := p.dispatcher.Dispatch(ctx, t); err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsRequired) {
			p.notifier.Notify(ctx, from, err.Error())
			return
		}
		p.notifier.Notify(ctx, from, operatorFeedback(err))
		return
	}
	p.notifier.Notify(ctx, from, fmt.Sprintf("Change for order #%d sent to the customer.", number))
}

// handleCancel cancels an order on behalf of the sender: /cancel <order>.
// Authorization (owner inside the window, or operator) is enforced by the
// command handler.
func (p *Poller) handleCancel(ctx context.Context, from int64, args string) {
	number, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		p.notifier.Notify(ctx, from, "Usage: /cancel <order>")
		return
	}

	t := trigger.Trigger{Kind: trigger.KindCancel, OrderNumber: number, Actor: from}
	if err := p.dispatcher.Dispatch(ctx, t); err != nil {
		p.notifier.Notify(ctx, from, operatorFeedback(err))
		return
	}
	p.notifier.Notify(ctx, from, fmt.Sprintf("Order #%d canceled.", number))
}

// handlePublish pushes an order to the dispatch channel ahead of its window
// expiry: /publish <order>. Operators only.
func (p *Poller) handlePublish(ctx context.Context, from int64, args string) {
	if !p.admins.IsAdmin(from) {
		p.notifier.Notify(ctx, from, "You are not allowed to do that.")
		return
	}

	number, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		p.notifier.Notify(ctx, from, "Usage: /publish <order>")
		return
	}

	t := trigger.Trigger{Kind: trigger.KindPublish, OrderNumber: number, Actor: from}
	if err := p.dispatcher.Dispatch(ctx, t); err != nil {
		p.notifier.Notify(ctx, from, operatorFeedback(err))
		return
	}
	p.notifier.Notify(ctx, from, fmt.Sprintf("Order #%d published.", number))
}

// operatorFeedback maps application errors to replies for typed commands.
func operatorFeedback(err error) string {
	switch {
	case errors.Is(err, commands.ErrNotAuthorized):
		return "You are not allowed to do that."
	case errors.Is(err, commands.ErrCourierAlreadyRegistered):
		return "This courier is already enrolled."
	case errors.Is(err, order.ErrStatusConflict):
		return "This order has already moved on."
	case errors.Is(err, errs.ErrObjectNotFound):
		return "Order not found."
	default:
		return "Something went wrong, please try again."
	}
}
