package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"stockroom/domain"
)

func TestFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	ctx := context.Background()

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	created, err := f.CreateProduct(ctx, domain.Product{
		Name:     "Desk",
		Price:    decimal.NewFromFloat(99.5),
		Quantity: 2,
		Category: domain.CategoryByName("Furniture"),
		Status:   domain.StatusInStock,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// reopen from disk
	f2, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, err := f2.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if got.Name != "Desk" || !got.Price.Equal(decimal.NewFromFloat(99.5)) {
		t.Fatalf("snapshot did not round trip: %+v", got)
	}
}

func TestFileMissingSnapshotIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	list, err := f.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(list))
	}
}

func TestFileCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(path); err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}

func TestFileDeleteUpdatesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	ctx := context.Background()

	f, _ := NewFile(path)
	created, err := f.CreateProduct(ctx, domain.Product{Name: "A", Price: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := f.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	f2, _ := NewFile(path)
	if _, err := f2.GetProduct(ctx, created.ID); !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected not found after reopen, got %v", err)
	}
}
