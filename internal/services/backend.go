package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/znsio/specmatic-catalog-admin-go/internal/apperrors"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

const requestIDHeader = "X-Request-ID"

// BackendService talks to the remote product API.
type BackendService struct {
	client *resty.Client
	logger *slog.Logger
}

func NewBackendService(baseURL string, authToken string, timeout time.Duration, logger *slog.Logger) *BackendService {
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if authToken != "" {
		client.SetHeader("Authenticate", authToken)
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(requestIDHeader) == "" {
			req.SetHeader(requestIDHeader, uuid.NewString())
		}
		return nil
	})

	return &BackendService{client: client, logger: logger}
}

func (s *BackendService) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "list products"

	resp, err := s.client.R().SetContext(ctx).Get("/products")
	if err != nil {
		return nil, &apperrors.TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, serverError(op, resp)
	}

	// The collection is wrapped: { "products": [...] }
	list := gjson.GetBytes(resp.Body(), "products")
	if !list.IsArray() {
		return nil, &apperrors.MalformedResponseError{Op: op, Reason: "missing products array"}
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(list.Raw), &products); err != nil {
		return nil, &apperrors.MalformedResponseError{Op: op, Reason: err.Error()}
	}
	if products == nil {
		products = []models.Product{}
	}

	s.logger.Debug("products fetched", "count", len(products), "request_id", resp.Request.Header.Get(requestIDHeader))
	return products, nil
}

func (s *BackendService) CreateProduct(ctx context.Context, newProduct models.NewProduct) (models.Product, error) {
	const op = "create product"

	resp, err := s.client.R().SetContext(ctx).SetBody(newProduct).Post("/products")
	if err != nil {
		return models.Product{}, &apperrors.TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return models.Product{}, serverError(op, resp)
	}

	created := models.Product{
		Name:        newProduct.Name,
		Description: newProduct.Description,
		Price:       float64(newProduct.Price),
		Status:      newProduct.Status,
	}

	body := gjson.ParseBytes(resp.Body())
	if wrapped := body.Get("product"); wrapped.IsObject() {
		body = wrapped
	}
	if !body.IsObject() {
		// Nothing usable came back; keep what was submitted.
		return created, nil
	}

	if err := json.Unmarshal([]byte(body.Raw), &created); err != nil {
		return models.Product{}, &apperrors.MalformedResponseError{Op: op, Reason: err.Error()}
	}
	return created, nil
}

// PatchProduct sends a partial update.
func (s *BackendService) PatchProduct(ctx context.Context, id string, patch models.ProductPatch) error {
	return s.send(ctx, "update product", resty.MethodPatch, id, patch)
}

// ReplaceProduct sends the full mutable field set.
func (s *BackendService) ReplaceProduct(ctx context.Context, id string, update models.ProductUpdate) error {
	return s.send(ctx, "save product", resty.MethodPut, id, update)
}

func (s *BackendService) DeleteProduct(ctx context.Context, id string) error {
	return s.send(ctx, "delete product", resty.MethodDelete, id, nil)
}

func (s *BackendService) send(ctx context.Context, op, method, id string, body any) error {
	req := s.client.R().SetContext(ctx).SetPathParam("id", id)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, "/products/{id}")
	if err != nil {
		return &apperrors.TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return serverError(op, resp)
	}
	return nil
}

func serverError(op string, resp *resty.Response) error {
	return &apperrors.ServerError{
		Op:         op,
		StatusCode: resp.StatusCode(),
		Message:    gjson.GetBytes(resp.Body(), "message").String(),
	}
}
