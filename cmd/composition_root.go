package cmd

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	httpin "foodbot/internal/adapters/in/http"
	telegramin "foodbot/internal/adapters/in/telegram"
	"foodbot/internal/adapters/out/audit"
	"foodbot/internal/adapters/out/postgres"
	"foodbot/internal/adapters/out/postgres/orderrepo"
	telegramout "foodbot/internal/adapters/out/telegram"
	"foodbot/internal/core/application/messaging"
	"foodbot/internal/core/application/session"
	"foodbot/internal/core/application/trigger"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/application/usecases/queries"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/domain/services"
	"foodbot/internal/jobs"
	"foodbot/internal/pkg/errs"
)

// CompositionRoot wires adapters, use cases and jobs into one application.
type CompositionRoot struct {
	gormDB     *gorm.DB
	dispatcher *trigger.Dispatcher
	jobManager *jobs.JobManager
	httpServer *httpin.Server
	poller     *telegramin.Poller
}

// NewCompositionRoot builds the full object graph.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	bot *tgbotapi.BotAPI,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var orderUoWFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return uowFactory.Create()
	})
	var courierUoWFactory commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return uowFactory.Create()
	})
	var fullUoWFactory commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return uowFactory.Create()
	})

	gateway, err := telegramout.NewGateway(bot, logger)
	if err != nil {
		return nil, err
	}

	bindingStore := orderrepo.NewBindingStore(gormDB)
	synchronizer := messaging.NewSynchronizer(gateway, bindingStore, cfg.ChannelChatID, logger)

	// Audit reports are best-effort: sent once, logged on failure.
	auditGateway, err := telegramout.NewDirectGateway(bot, logger)
	if err != nil {
		return nil, err
	}
	reporter, err := audit.NewReporter(auditGateway, cfg.AuditChatID, logger)
	if err != nil {
		return nil, err
	}

	admins := NewStaticAdminRegistry(cfg.AdminIDs)
	sessions := session.NewRegistry()
	dispatcher := trigger.NewDispatcher(logger)
	scheduler := jobs.NewExpiryScheduler(cfg.WindowDelay, dispatcher, orderUoWFactory, logger)

	checkout := commands.NewCheckoutCommandHandler(
		orderUoWFactory, services.NewOTPGenerator(), scheduler, synchronizer, reporter)
	publish := commands.NewPublishOrderCommandHandler(orderUoWFactory, scheduler, synchronizer, reporter)
	accept := commands.NewAcceptOrderCommandHandler(fullUoWFactory, synchronizer, reporter)
	returnOrder := commands.NewReturnOrderCommandHandler(orderUoWFactory, sessions, synchronizer, reporter)
	confirm := commands.NewConfirmDeliveryCommandHandler(fullUoWFactory, sessions, synchronizer, reporter)
	submitOTP := commands.NewSubmitOTPCommandHandler(fullUoWFactory, sessions, synchronizer, reporter)
	submitReceipt := commands.NewSubmitReceiptCommandHandler(fullUoWFactory, sessions, synchronizer, reporter)
	cancel := commands.NewCancelOrderCommandHandler(orderUoWFactory, admins, scheduler, sessions, synchronizer, reporter)
	proposeEdit := commands.NewProposeEditCommandHandler(orderUoWFactory, admins, synchronizer, reporter)
	resolveEdit := commands.NewResolveEditCommandHandler(orderUoWFactory, synchronizer, reporter)
	registerCourier := commands.NewRegisterCourierCommandHandler(courierUoWFactory, admins, reporter)

	registerTriggers(dispatcher,
		&publish, &accept, &returnOrder, &confirm, &cancel, &resolveEdit,
		&submitOTP, &submitReceipt, &proposeEdit)

	digest := jobs.NewAuditDigestJob(queries.NewGetOrderStatsQueryHandler(gormDB), reporter, logger)
	jobManager := jobs.NewJobManager(scheduler, digest, logger)

	httpServer := httpin.NewServer(
		&checkout,
		&registerCourier,
		dispatcher,
		queries.NewGetActiveOrdersQueryHandler(gormDB),
		queries.NewGetCourierEarningsQueryHandler(gormDB),
	)

	poller, err := telegramin.NewPoller(
		bot, dispatcher, sessions, admins, synchronizer, &registerCourier, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		dispatcher: dispatcher,
		jobManager: jobManager,
		httpServer: httpServer,
		poller:     poller,
	}, nil
}

// registerTriggers binds every trigger kind to its command handler. The
// scheduler, the callback poller and the HTTP trigger endpoint all dispatch
// through the same table.
func registerTriggers(
	dispatcher *trigger.Dispatcher,
	publish *commands.PublishOrderCommandHandler,
	accept *commands.AcceptOrderCommandHandler,
	returnOrder *commands.ReturnOrderCommandHandler,
	confirm *commands.ConfirmDeliveryCommandHandler,
	cancel *commands.CancelOrderCommandHandler,
	resolveEdit *commands.ResolveEditCommandHandler,
	submitOTP *commands.SubmitOTPCommandHandler,
	submitReceipt *commands.SubmitReceiptCommandHandler,
	proposeEdit *commands.ProposeEditCommandHandler,
) {
	dispatcher.Register(trigger.KindPublish, func(ctx context.Context, t trigger.Trigger) error {
		cmd, err := commands.NewPublishOrderCommand(t.OrderNumber)
		if err != nil {
			return err
		}
		return publish.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindAccept, func(ctx context.Context, t trigger.Trigger) error {
		cmd, err := commands.NewAcceptOrderCommand(t.OrderNumber, t.Actor)
		if err != nil {
			return err
		}
		return accept.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindReturn, func(ctx context.Context, t trigger.Trigger) error {
		cmd, err := commands.NewReturnOrderCommand(t.OrderNumber, t.Actor)
		if err != nil {
			return err
		}
		return returnOrder.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindDeliver, func(ctx context.Context, t trigger.Trigger) error {
		cmd, err := commands.NewConfirmDeliveryCommand(t.OrderNumber, t.Actor)
		if err != nil {
			return err
		}
		return confirm.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindCancel, func(ctx context.Context, t trigger.Trigger) error {
		cmd, err := commands.NewCancelOrderCommand(t.OrderNumber, t.Actor)
		if err != nil {
			return err
		}
		return cancel.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindApproveEdit, func(ctx context.Context, t trigger.Trigger) error {
		cmd, err := commands.NewResolveEditCommand(t.OrderNumber, t.Actor, true)
		if err != nil {
			return err
		}
		return resolveEdit.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindRejectEdit, func(ctx context.Context, t trigger.Trigger) error {
		cmd, err := commands.NewResolveEditCommand(t.OrderNumber, t.Actor, false)
		if err != nil {
			return err
		}
		return resolveEdit.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindOtpSubmit, func(ctx context.Context, t trigger.Trigger) error {
		if len(t.Args) != 1 {
			return errs.NewValueIsRequiredError("code")
		}
		cmd, err := commands.NewSubmitOTPCommand(t.Actor, t.Args[0])
		if err != nil {
			return err
		}
		return submitOTP.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindReceiptSubmit, func(ctx context.Context, t trigger.Trigger) error {
		if len(t.Args) != 1 {
			return errs.NewValueIsRequiredError("photo")
		}
		cmd, err := commands.NewSubmitReceiptCommand(t.Actor, t.Args[0])
		if err != nil {
			return err
		}
		return submitReceipt.Handle(ctx, cmd)
	})

	dispatcher.Register(trigger.KindEditPropose, func(ctx context.Context, t trigger.Trigger) error {
		total, items, err := parseEditArgs(t.Args)
		if err != nil {
			return err
		}
		cmd, err := commands.NewProposeEditCommand(t.OrderNumber, t.Actor, items, total)
		if err != nil {
			return err
		}
		return proposeEdit.Handle(ctx, cmd)
	})
}

// parseEditArgs decodes an edit-propose payload: the first argument is the
// new total, the rest are "name:qty" item specs.
func parseEditArgs(args []string) (int, []order.Item, error) {
	if len(args) < 2 {
		return 0, nil, errs.NewValueIsRequiredError("edit arguments")
	}

	total, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, errs.NewValueIsInvalidErrorWithCause("total", err)
	}

	items := make([]order.Item, 0, len(args)-1)
	for _, spec := range args[1:] {
		name, qtyStr, found := strings.Cut(strings.TrimSpace(spec), ":")
		if !found {
			return 0, nil, errs.NewValueIsInvalidError("items")
		}

		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil {
			return 0, nil, errs.NewValueIsInvalidErrorWithCause("items", err)
		}

		item, err := order.NewItem(strings.TrimSpace(name), qty)
		if err != nil {
			return 0, nil, err
		}
		items = append(items, item)
	}
	return total, items, nil
}

// JobManager returns the background job manager.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// HTTPServer returns the HTTP API server.
func (c *CompositionRoot) HTTPServer() *httpin.Server {
	return c.httpServer
}

// Poller returns the Telegram update poller.
func (c *CompositionRoot) Poller() *telegramin.Poller {
	return c.poller
}

// StaticAdminRegistry answers operator checks from the configured id list.
type StaticAdminRegistry struct {
	ids map[int64]bool
}

// NewStaticAdminRegistry creates a registry over the configured operators.
func NewStaticAdminRegistry(ids []int64) StaticAdminRegistry {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return StaticAdminRegistry{ids: set}
}

// IsAdmin reports whether the actor is a configured operator.
func (r StaticAdminRegistry) IsAdmin(id int64) bool {
	return r.ids[id]
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
