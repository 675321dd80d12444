package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"stockroom/domain"
)

// HTTPClient talks to the remote catalog REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// compile-time assertion
var _ Catalog = (*HTTPClient)(nil)

// NewHTTPClient constructs a client for the given base URL, e.g.
// "http://localhost:3000".
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// productsEnvelope is the wrapped response shape some deployments return
// instead of a bare array.
type productsEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Products []domain.Product `json:"products"`
	} `json:"data"`
}

type categoriesEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Categories []domain.Category `json:"categories"`
	} `json:"data"`
}

func (c *HTTPClient) do(ctx context.Context, op, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, domain.WrapGatewayError(op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, domain.WrapGatewayError(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rid := uuid.NewString()
	req.Header.Set("X-Request-ID", rid)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.WrapGatewayError(op, err)
	}
	slog.Debug("gateway request",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"request_id", rid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "list products"
	resp, err := c.do(ctx, op, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewGatewayError(op, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapGatewayError(op, err)
	}
	products, err := decodeProducts(raw)
	if err != nil {
		return nil, domain.WrapGatewayError(op, err)
	}
	return products, nil
}

// decodeProducts accepts both a bare product array and the
// {status,data:{products}} envelope.
func decodeProducts(raw []byte) ([]domain.Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []domain.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, err
		}
		return products, nil
	}
	var env productsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return env.Data.Products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	const op = "get product"
	resp, err := c.do(ctx, op, http.MethodGet, fmt.Sprintf("%s/products/%s", c.baseURL, id), nil)
	if err != nil {
		return domain.Product{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return domain.Product{}, domain.WrapGatewayError(op, err)
	}
	return product, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	const op = "create product"
	product.ID = ""
	resp, err := c.do(ctx, op, http.MethodPost, c.baseURL+"/products", product)
	if err != nil {
		return domain.Product{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Product{}, domain.NewGatewayError(op, resp.StatusCode)
	}

	var created domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.Product{}, domain.WrapGatewayError(op, err)
	}
	return created, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, product domain.Product) (domain.Product, error) {
	const op = "update product"
	resp, err := c.do(ctx, op, http.MethodPut, fmt.Sprintf("%s/products/%s", c.baseURL, id), product)
	if err != nil {
		return domain.Product{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Product{}, domain.NewGatewayError(op, resp.StatusCode)
	}

	var updated domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return domain.Product{}, domain.WrapGatewayError(op, err)
	}
	return updated, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	const op = "delete product"
	resp, err := c.do(ctx, op, http.MethodDelete, fmt.Sprintf("%s/products/%s", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewProductNotFoundError(id)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return domain.NewGatewayError(op, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "list categories"
	resp, err := c.do(ctx, op, http.MethodGet, c.baseURL+"/categories", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewGatewayError(op, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapGatewayError(op, err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var categories []domain.Category
		if err := json.Unmarshal(trimmed, &categories); err != nil {
			return nil, domain.WrapGatewayError(op, err)
		}
		return categories, nil
	}
	var env categoriesEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, domain.WrapGatewayError(op, err)
	}
	return env.Data.Categories, nil
}
