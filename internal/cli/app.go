package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/znsio/specmatic-catalog-admin-go/internal/config"
	"github.com/znsio/specmatic-catalog-admin-go/internal/services"
)

// app is everything a command needs, wired from config.
type app struct {
	backend  *services.BackendService
	listView *services.ListView
	inbox    *services.Inbox
	metrics  *services.Metrics
	opts     []services.Option
	logger   *slog.Logger
	closers  []io.Closer
}

func newApp(notifier services.Notifier, reg prometheus.Registerer) *app {
	cfg := config.GetConfig()
	logger := slog.Default()

	a := &app{
		backend: services.NewBackendService(cfg.BackendURL, cfg.BackendToken, cfg.RequestTimeout, logger),
		inbox:   services.NewInbox(100, logger),
		metrics: services.NewMetrics(reg),
		logger:  logger,
	}
	if notifier == nil {
		notifier = a.inbox
	}

	a.opts = []services.Option{
		services.WithNotifier(notifier),
		services.WithMetrics(a.metrics),
		services.WithLogger(logger),
	}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := services.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, publisher)
		a.opts = append(a.opts, services.WithEvents(publisher))
	}

	a.listView = services.NewListView(a.backend, a.opts...)
	return a
}

// newForm builds a create form that reloads the list when it navigates back.
func (a *app) newForm() *services.CreateForm {
	return services.NewCreateForm(a.backend, func(ctx context.Context, route services.Route) {
		if route != services.RouteProductList {
			return
		}
		if err := a.listView.Load(ctx); err != nil {
			a.logger.Warn("reload after navigation failed", "error", err)
		}
	}, a.opts...)
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// writerNotifier prints notifications for interactive commands.
type writerNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (w writerNotifier) Notify(level services.Level, message string) {
	if level == services.LevelError {
		fmt.Fprintln(w.errOut, "✗", message)
		return
	}
	fmt.Fprintln(w.out, "✓", message)
}
