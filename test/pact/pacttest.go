//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product p-101 exists"
	StateProductMissing  = "no product p-404"
	StatePaymentsEnabled = "stripe publishable key configured"
)

const (
	ExistingProductID = "p-101"
	MissingProductID  = "p-404"

	ExamplePublishableKey = "pk_test_pact"
)

const (
	exampleProductName  = "Pact Headphones"
	exampleProductImage = "https://example.pact/products/headphones.png"
	exampleCategory     = "electronics"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload provides stable test data for catalog interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":       ExistingProductID,
		"name":     exampleProductName,
		"price":    79.99,
		"images":   []string{exampleProductImage},
		"category": exampleCategory,
		"stock":    12,
		"isActive": true,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
