package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestProductNotFoundError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewProductNotFoundError("prod-123")
		expected := "product not found: id=prod-123"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.Is detection", func(t *testing.T) {
		err := NewProductNotFoundError("prod-123")
		target := &ProductNotFoundError{}
		if !errors.Is(err, target) {
			t.Error("errors.Is should detect ProductNotFoundError")
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewProductNotFoundError("prod-456")
		var pnf *ProductNotFoundError
		if !errors.As(err, &pnf) {
			t.Fatal("errors.As should convert to ProductNotFoundError")
		}
		if pnf.ProductID != "prod-456" {
			t.Errorf("expected ProductID prod-456, got %s", pnf.ProductID)
		}
	})

	t.Run("IsProductNotFoundError helper", func(t *testing.T) {
		err := NewProductNotFoundError("prod-789")
		if !IsProductNotFoundError(err) {
			t.Error("IsProductNotFoundError should return true")
		}
	})
}

func TestInvalidProductError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewInvalidProductError("price", "must be positive", -10.5)
		expected := "invalid product: field=price, reason=must be positive, value=-10.5"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("IsInvalidProductError helper", func(t *testing.T) {
		err := NewInvalidProductError("category", "invalid category", "Unknown")
		if !IsInvalidProductError(err) {
			t.Error("IsInvalidProductError should return true")
		}
	})
}

func TestGatewayError(t *testing.T) {
	t.Run("status formatting", func(t *testing.T) {
		err := NewGatewayError("list products", 500)
		expected := "gateway list products failed: status=500"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("wrapped transport error", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := WrapGatewayError("load", cause)
		if !errors.Is(err, cause) {
			t.Error("GatewayError should unwrap to its cause")
		}
		if !IsGatewayError(err) {
			t.Error("IsGatewayError should return true")
		}
	})

	t.Run("does not match other error kinds", func(t *testing.T) {
		if IsGatewayError(NewProductNotFoundError("x")) {
			t.Error("not-found error misreported as gateway error")
		}
	})
}
