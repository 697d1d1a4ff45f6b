package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/znsio/specmatic-catalog-admin-go/internal/apperrors"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

type Route string

const (
	RouteProductList Route = "/"
	RouteAddProduct  Route = "/add-product"
)

const (
	msgCreated        = "Product added successfully!"
	msgCreateFailed   = "Failed to add product."
	msgSomethingBroke = "Something went wrong. Please try again."
)

// Navigator is told where the operator should go next.
type Navigator func(ctx context.Context, route Route)

// CreateForm collects a new product, validates it and submits it once.
type CreateForm struct {
	api      ProductAPI
	notifier Notifier
	events   EventPublisher
	metrics  *Metrics
	logger   *slog.Logger
	navigate Navigator

	mu         sync.Mutex
	values     models.NewProduct
	submitting bool
}

func NewCreateForm(api ProductAPI, navigate Navigator, opts ...Option) *CreateForm {
	d := buildDeps(opts)
	if navigate == nil {
		navigate = func(context.Context, Route) {}
	}
	return &CreateForm{
		api:      api,
		notifier: d.notifier,
		events:   d.events,
		metrics:  d.metrics,
		logger:   d.logger,
		navigate: navigate,
	}
}

func (f *CreateForm) Set(values models.NewProduct) {
	f.mu.Lock()
	f.values = values
	f.mu.Unlock()
}

func (f *CreateForm) Values() models.NewProduct {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *CreateForm) Reset() {
	f.Set(models.NewProduct{})
}

// Validate runs the field rules without touching the network.
func (f *CreateForm) Validate() error {
	return models.Validate(f.Values())
}

// Submit validates the entered values and creates the product. On success
// the form is cleared and the operator is sent back to the list; on failure
// the values are kept so the operator can retry.
func (f *CreateForm) Submit(ctx context.Context) (models.Product, error) {
	values := f.Values()
	if err := models.Validate(values); err != nil {
		return models.Product{}, err
	}

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return models.Product{}, apperrors.ErrInFlight
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	created, err := f.api.CreateProduct(ctx, values)
	if err != nil {
		message := createFailureMessage(err)
		f.logger.Error("error adding product", "error", err)
		f.metrics.observe("create", err)
		f.notifier.Notify(LevelError, message)
		return models.Product{}, &apperrors.NotificationError{Message: message, Err: err}
	}

	f.metrics.observe("create", nil)
	f.notifier.Notify(LevelSuccess, msgCreated)
	f.Reset()

	message := models.NewProductMessage(models.EventProductCreated, created.ID)
	message.Product = &created
	if err := f.events.Publish(ctx, message); err != nil {
		f.logger.Warn("product event not published", "type", message.Type, "product_id", created.ID, "error", err)
	}

	f.navigate(ctx, RouteProductList)
	return created, nil
}

// Cancel leaves the form without submitting.
func (f *CreateForm) Cancel(ctx context.Context) {
	f.navigate(ctx, RouteProductList)
}

// A server answer gets its own message if it sent one; anything that never
// reached the server gets the generic one.
func createFailureMessage(err error) string {
	var serverErr *apperrors.ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		return msgCreateFailed
	}
	return msgSomethingBroke
}
