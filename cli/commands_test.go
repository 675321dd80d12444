package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"stockroom/domain"
	"stockroom/gateway"
)

// capture stdout during cobra execution
func captureOutput(f func() error) (string, error) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}

// reset cobra + global state between tests
func resetCLI() {
	rootCmd.SetArgs(nil)
	catalogGateway = nil
	store = nil
	categoryCache = nil
	criteria = nil
}

func run(args ...string) (string, error) {
	return captureOutput(func() error {
		rootCmd.SetArgs(args)
		return rootCmd.Execute()
	})
}

func TestCreateGetListUpdateDelete(t *testing.T) {
	defer resetCLI()
	catalogGateway = gateway.NewMemory()

	// CREATE
	out, err := run("create",
		"--name", "Standing Desk",
		"--code", "SD-1042",
		"--category", "Furniture",
		"--quantity", "4",
		"--min-stock", "2",
		"--price", "349.99",
		"--location", "Aisle 7",
	)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var created domain.Product
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("invalid create output: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if created.Status != domain.StatusInStock {
		t.Fatalf("expected derived inStock status, got %s", created.Status)
	}

	// GET
	out, err = run("get", created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	var got domain.Product
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid get output: %v", err)
	}
	if got.Name != "Standing Desk" {
		t.Fatalf("unexpected product: %+v", got)
	}

	// LIST
	out, err = run("list", "--category", "Furniture", "--status", "inStock", "--search", "desk")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("Standing Desk")) {
		t.Fatalf("list output missing product: %q", out)
	}

	// UPDATE (quantity 0 must re-derive status)
	out, err = run("update", created.ID, "--quantity", "0")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	var updated domain.Product
	if err := json.Unmarshal([]byte(out), &updated); err != nil {
		t.Fatalf("invalid update output: %v", err)
	}
	if updated.Status != domain.StatusOutOfStock {
		t.Fatalf("expected outOfStock after zero quantity, got %s", updated.Status)
	}

	// DELETE
	out, err = run("delete", created.ID, "--force")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("deleted")) {
		t.Fatalf("unexpected delete output: %q", out)
	}

	out, err = run("list", "--category", "All categories", "--status", "All statuses", "--search", "")
	if err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
	if bytes.Contains([]byte(out), []byte("Standing Desk")) {
		t.Fatalf("deleted product still listed: %q", out)
	}
}

func TestCreateValidationBlocksSubmission(t *testing.T) {
	defer resetCLI()
	gw := gateway.NewMemory()
	catalogGateway = gw

	_, err := run("create",
		"--name", "X",
		"--code", "nope",
		"--category", "",
		"--price", "0",
		"--location", "Shelf 9",
	)
	if err == nil {
		t.Fatal("expected validation error")
	}

	out, lerr := run("list", "--category", "All categories", "--status", "All statuses", "--search", "")
	if lerr != nil {
		t.Fatalf("list failed: %v", lerr)
	}
	if len(bytes.TrimSpace([]byte(out))) != 0 {
		t.Fatalf("invalid submission must never reach the gateway, got %q", out)
	}
}

func TestStats(t *testing.T) {
	defer resetCLI()
	catalogGateway = gateway.NewMemory()

	mustRun := func(args ...string) {
		if _, err := run(args...); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
	}
	mustRun("create", "--name", "Laptop", "--code", "LP-0001", "--category", "Electronics",
		"--quantity", "2", "--min-stock", "5", "--price", "10", "--location", "Aisle 1")
	mustRun("create", "--name", "Cable", "--code", "CB-0002", "--category", "Accessories",
		"--quantity", "0", "--min-stock", "1", "--price", "20", "--location", "Aisle 2")

	out, err := run("stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{
		"Total products: 2",
		"In stock:       0",
		"Low stock:      1",
		"Out of stock:   1",
		"Total value:    20.00",
		"All categories, Electronics, Accessories",
	} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestExportImport(t *testing.T) {
	defer resetCLI()
	catalogGateway = gateway.NewMemory()

	if _, err := run("create", "--name", "Desk", "--code", "DK-0001", "--category", "Furniture",
		"--quantity", "3", "--min-stock", "1", "--price", "250", "--location", "Aisle 3"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	file := filepath.Join(t.TempDir(), "export.json")
	if _, err := run("export", "--file", file,
		"--category", "All categories", "--status", "All statuses", "--search", ""); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var exported []domain.Product
	if err := json.Unmarshal(b, &exported); err != nil {
		t.Fatalf("invalid export: %v", err)
	}
	if len(exported) != 1 || exported[0].Name != "Desk" {
		t.Fatalf("unexpected export contents: %+v", exported)
	}

	// import into a fresh catalog
	resetCLI()
	catalogGateway = gateway.NewMemory()
	out, err := run("import", "--file", file)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("imported 1 of 1")) {
		t.Fatalf("unexpected import output: %q", out)
	}
}

func TestGetNotFoundIsFriendly(t *testing.T) {
	defer resetCLI()
	catalogGateway = gateway.NewMemory()

	// a missing product is reported, not treated as a command failure
	if _, err := run("get", "no-such-id"); err != nil {
		t.Fatalf("get of missing product should not error the command: %v", err)
	}
}

func TestCategoriesFallback(t *testing.T) {
	defer resetCLI()
	catalogGateway = gateway.NewMemory() // unseeded: categories endpoint fails

	out, err := run("categories")
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	for _, want := range []string{"Electronics", "Accessories", "Furniture", "Office Supplies"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("fallback category %q missing:\n%s", want, out)
		}
	}
}
