package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/znsio/specmatic-catalog-admin-go/internal/api"
	"github.com/znsio/specmatic-catalog-admin-go/internal/handlers"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
	"github.com/znsio/specmatic-catalog-admin-go/internal/services"
)

// memoryAPI is an in-memory product API good enough to drive the admin routes.
type memoryAPI struct {
	products []models.Product
	failNext error
}

func (m *memoryAPI) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memoryAPI) ListProducts(context.Context) ([]models.Product, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	return append([]models.Product(nil), m.products...), nil
}

func (m *memoryAPI) CreateProduct(_ context.Context, p models.NewProduct) (models.Product, error) {
	if err := m.takeFailure(); err != nil {
		return models.Product{}, err
	}
	created := models.Product{ID: "new", Name: p.Name, Description: p.Description, Price: float64(p.Price), Status: p.Status}
	m.products = append(m.products, created)
	return created, nil
}

func (m *memoryAPI) PatchProduct(_ context.Context, id string, patch models.ProductPatch) error {
	return m.apply(id, patch)
}

func (m *memoryAPI) ReplaceProduct(_ context.Context, id string, u models.ProductUpdate) error {
	return m.apply(id, models.ProductPatch{
		Name: &u.Name, Description: &u.Description, Price: &u.Price, Status: &u.Status,
		IsRecommended: &u.IsRecommended, IsBestseller: &u.IsBestseller,
	})
}

func (m *memoryAPI) DeleteProduct(_ context.Context, id string) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	out := m.products[:0]
	for _, p := range m.products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	m.products = out
	return nil
}

func (m *memoryAPI) apply(id string, patch models.ProductPatch) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	for i, p := range m.products {
		if p.ID == id {
			m.products[i] = p.Apply(patch)
		}
	}
	return nil
}

func setupRouter(t *testing.T) (*gin.Engine, *memoryAPI, *services.ListView) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &memoryAPI{products: []models.Product{
		{ID: "1", Name: "Pen", Description: "A blue ballpoint pen", Price: 10, Status: models.StatusAvailable},
		{ID: "2", Name: "Notebook", Description: "Ruled A5 notebook", Price: 45, Status: models.StatusOutOfStock},
	}}
	inbox := services.NewInbox(10, nil)
	listView := services.NewListView(backend, services.WithNotifier(inbox))
	require.NoError(t, listView.Load(context.Background()))

	controller := &handlers.ProductController{
		ListView: listView,
		NewForm: func() *services.CreateForm {
			return services.NewCreateForm(backend, func(ctx context.Context, _ services.Route) {
				_ = listView.Load(ctx)
			}, services.WithNotifier(inbox))
		},
		Inbox: inbox,
	}
	return api.SetupRouter(controller, nil), backend, listView
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestProductController_ListAndHealth(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/admin/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Products, 2)

	w = do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":2`)
}

func TestProductController_ToggleFlag(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		failWith   error
		wantStatus int
	}{
		{name: "success", url: "/admin/products/1/flags/isRecommended", body: `{"value":true}`, wantStatus: http.StatusOK},
		{name: "unknown flag", url: "/admin/products/1/flags/isFeatured", body: `{"value":true}`, wantStatus: http.StatusBadRequest},
		{name: "missing value", url: "/admin/products/1/flags/isBestseller", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "backend failure", url: "/admin/products/1/flags/isRecommended", body: `{"value":true}`, failWith: errors.New("down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, backend, listView := setupRouter(t)
			backend.failNext = tt.failWith

			w := do(r, http.MethodPatch, tt.url, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			p, _ := listView.Find("1")
			assert.Equal(t, tt.wantStatus == http.StatusOK, p.IsRecommended)
		})
	}
}

func TestProductController_DeleteFlow(t *testing.T) {
	r, backend, listView := setupRouter(t)

	w := do(r, http.MethodPost, "/admin/delete/confirm", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/admin/products/2/delete", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Are you sure you want to delete Notebook?")
	assert.Equal(t, 2, listView.Len())

	w = do(r, http.MethodPost, "/admin/delete/confirm", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, listView.Len())
	assert.Len(t, backend.products, 1)

	w = do(r, http.MethodPost, "/admin/products/404/delete", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_Edit(t *testing.T) {
	r, _, listView := setupRouter(t)

	w := do(r, http.MethodGet, "/admin/products/1/edit", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Pen","description":"A blue ballpoint pen","price":10,"status":"available","isRecommended":false,"isBestseller":false}`, w.Body.String())

	w = do(r, http.MethodPut, "/admin/products/1", `{"price":50}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	p, _ := listView.Find("1")
	assert.Equal(t, 50.0, p.Price)
	assert.Equal(t, "Pen", p.Name)

	w = do(r, http.MethodPut, "/admin/products/1", `{"status":"sold"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_CreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLen    int
	}{
		{
			name:       "success reloads the list",
			body:       `{"name":"Desk lamp","description":"LED desk lamp with dimmer","price":"899","status":"available"}`,
			wantStatus: http.StatusCreated,
			wantLen:    3,
		},
		{
			name:       "invalid json",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantLen:    2,
		},
		{
			name:       "validation error",
			body:       `{"name":"Lamp","description":"short","price":0,"status":"available"}`,
			wantStatus: http.StatusBadRequest,
			wantLen:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, listView := setupRouter(t)

			w := do(r, http.MethodPost, "/admin/products", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantLen, listView.Len())
		})
	}
}

func TestProductController_Notifications(t *testing.T) {
	r, _, _ := setupRouter(t)

	do(r, http.MethodPatch, "/admin/products/2/flags/isBestseller", `{"value":true}`)
	w := do(r, http.MethodGet, "/admin/notifications", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "isBestseller updated successfully.")
}
