package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/znsio/specmatic-catalog-admin-go/internal/apperrors"
	"github.com/znsio/specmatic-catalog-admin-go/internal/catalog"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

// ProductAPI is the remote collaborator; BackendService implements it.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, newProduct models.NewProduct) (models.Product, error)
	PatchProduct(ctx context.Context, id string, patch models.ProductPatch) error
	ReplaceProduct(ctx context.Context, id string, update models.ProductUpdate) error
	DeleteProduct(ctx context.Context, id string) error
}

const (
	msgLoadFailed   = "Failed to load products. Please try again."
	msgDeleted      = "Product deleted successfully"
	msgDeleteFailed = "Failed to delete product."
	msgUpdated      = "Product updated successfully"
	msgUpdateFailed = "Failed to update product."
)

// ListView mirrors the remote product collection and applies operator
// actions to it. Local state only changes after the server has confirmed
// the action; the lock is never held across a remote call.
type ListView struct {
	api      ProductAPI
	notifier Notifier
	events   EventPublisher
	metrics  *Metrics
	logger   *slog.Logger

	mu            sync.Mutex
	products      catalog.Collection
	loadedAt      time.Time
	pendingDelete *models.Product

	inFlight inFlight
}

type Option func(*deps)

type deps struct {
	notifier Notifier
	events   EventPublisher
	metrics  *Metrics
	logger   *slog.Logger
}

func WithNotifier(n Notifier) Option {
	return func(d *deps) { d.notifier = n }
}

func WithEvents(p EventPublisher) Option {
	return func(d *deps) { d.events = p }
}

func WithMetrics(m *Metrics) Option {
	return func(d *deps) { d.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *deps) { d.logger = l }
}

func buildDeps(opts []Option) deps {
	var d deps
	for _, opt := range opts {
		opt(&d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.notifier == nil {
		d.notifier = NewInbox(0, d.logger)
	}
	if d.events == nil {
		d.events = nopPublisher{}
	}
	if d.metrics == nil {
		d.metrics = NewMetrics(nil)
	}
	return d
}

func NewListView(api ProductAPI, opts ...Option) *ListView {
	d := buildDeps(opts)
	return &ListView{
		api:      api,
		notifier: d.notifier,
		events:   d.events,
		metrics:  d.metrics,
		logger:   d.logger,
		products: catalog.New(nil),
	}
}

func (v *ListView) Products() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.products.Products()
}

func (v *ListView) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.products.Len()
}

// LoadedAt is the time of the last successful load, zero if none.
func (v *ListView) LoadedAt() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadedAt
}

func (v *ListView) Find(id string) (models.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.products.Find(id)
}

// Load fetches the whole collection and replaces the local copy.
func (v *ListView) Load(ctx context.Context) error {
	release, err := v.inFlight.acquire("load")
	if err != nil {
		return err
	}
	defer release()

	products, err := v.api.ListProducts(ctx)
	if err != nil {
		return v.fail("load", err, msgLoadFailed)
	}

	v.mu.Lock()
	v.products = v.products.Replace(products)
	v.loadedAt = time.Now()
	n := v.products.Len()
	v.mu.Unlock()

	v.metrics.observe("load", nil)
	v.metrics.setCollectionSize(n)
	v.logger.Info("products loaded", "count", n)
	return nil
}

// Toggle flips one boolean flag on the server and then locally.
func (v *ListView) Toggle(ctx context.Context, id string, key models.FlagKey, value bool) error {
	if _, err := models.ParseFlagKey(string(key)); err != nil {
		return apperrors.NewValidationError("key", err.Error())
	}

	release, err := v.inFlight.acquire("toggle:" + id + ":" + string(key))
	if err != nil {
		return err
	}
	defer release()

	patch := models.FlagPatch(key, value)
	if err := v.api.PatchProduct(ctx, id, patch); err != nil {
		return v.fail("toggle", err, fmt.Sprintf("Failed to update %s, use the edit action to update the toggle.", key))
	}

	v.mu.Lock()
	v.products = v.products.PatchFlag(id, key, value)
	v.mu.Unlock()

	v.metrics.observe("toggle", nil)
	v.notifier.Notify(LevelSuccess, fmt.Sprintf("%s updated successfully.", key))
	v.publish(ctx, models.EventProductUpdated, id, &patch)
	return nil
}

// SelectForDelete is the first step of a delete: it remembers the product
// and returns it so the caller can ask for confirmation.
func (v *ListView) SelectForDelete(id string) (models.Product, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, ok := v.products.Find(id)
	if !ok {
		return models.Product{}, apperrors.NewNotFoundError("product", id)
	}
	v.pendingDelete = &p
	return p, nil
}

func (v *ListView) PendingDelete() (models.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pendingDelete == nil {
		return models.Product{}, false
	}
	return *v.pendingDelete, true
}

func (v *ListView) CancelDelete() {
	v.mu.Lock()
	v.pendingDelete = nil
	v.mu.Unlock()
}

// ConfirmDelete deletes the selected product. The selection survives a
// failed call so the operator can confirm again.
func (v *ListView) ConfirmDelete(ctx context.Context) (models.Product, error) {
	selected, ok := v.PendingDelete()
	if !ok {
		return models.Product{}, apperrors.ErrNoPendingDelete
	}

	release, err := v.inFlight.acquire("delete:" + selected.ID)
	if err != nil {
		return models.Product{}, err
	}
	defer release()

	if err := v.api.DeleteProduct(ctx, selected.ID); err != nil {
		return models.Product{}, v.fail("delete", err, msgDeleteFailed)
	}

	v.mu.Lock()
	v.products = v.products.Remove(selected.ID)
	if v.pendingDelete != nil && v.pendingDelete.ID == selected.ID {
		v.pendingDelete = nil
	}
	n := v.products.Len()
	v.mu.Unlock()

	v.metrics.observe("delete", nil)
	v.metrics.setCollectionSize(n)
	v.notifier.Notify(LevelSuccess, msgDeleted)
	v.publish(ctx, models.EventProductDeleted, selected.ID, nil)
	return selected, nil
}

// OpenEdit returns the current field values of a product for editing.
func (v *ListView) OpenEdit(id string) (models.ProductUpdate, error) {
	p, ok := v.Find(id)
	if !ok {
		return models.ProductUpdate{}, apperrors.NewNotFoundError("product", id)
	}
	return p.Update(), nil
}

// SaveEdit sends the product's full field set, with patch applied, and on
// success merges only the submitted fields into the local entry.
func (v *ListView) SaveEdit(ctx context.Context, id string, patch models.ProductPatch) error {
	current, ok := v.Find(id)
	if !ok {
		return apperrors.NewNotFoundError("product", id)
	}

	update := current.Apply(patch).Update()
	if err := models.Validate(update); err != nil {
		v.notifier.Notify(LevelError, apperrors.Notification(err))
		return err
	}

	release, err := v.inFlight.acquire("edit:" + id)
	if err != nil {
		return err
	}
	defer release()

	if err := v.api.ReplaceProduct(ctx, id, update); err != nil {
		return v.fail("edit", err, msgUpdateFailed)
	}

	v.mu.Lock()
	v.products = v.products.Merge(id, patch)
	v.mu.Unlock()

	v.metrics.observe("edit", nil)
	v.notifier.Notify(LevelSuccess, msgUpdated)
	v.publish(ctx, models.EventProductUpdated, id, &patch)
	return nil
}

// fail logs a remote failure, counts it and tells the operator. Local
// state is left as it was.
func (v *ListView) fail(operation string, err error, message string) error {
	v.logger.Error("catalog operation failed", "operation", operation, "error", err)
	v.metrics.observe(operation, err)
	v.notifier.Notify(LevelError, message)
	return &apperrors.NotificationError{Message: message, Err: err}
}

func (v *ListView) publish(ctx context.Context, eventType models.EventType, id string, changes *models.ProductPatch) {
	message := models.NewProductMessage(eventType, id)
	message.Changes = changes
	if err := v.events.Publish(ctx, message); err != nil {
		v.logger.Warn("product event not published", "type", eventType, "product_id", id, "error", err)
	}
}

// inFlight rejects a second submission of an action while the first one is
// still waiting for the server.
type inFlight struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func (f *inFlight) acquire(key string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy == nil {
		f.busy = make(map[string]struct{})
	}
	if _, ok := f.busy[key]; ok {
		return nil, apperrors.ErrInFlight
	}
	f.busy[key] = struct{}{}

	return func() {
		f.mu.Lock()
		delete(f.busy, key)
		f.mu.Unlock()
	}, nil
}
