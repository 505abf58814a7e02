package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// fakeCatalog implements ProductLoader over a fixed product slice.
type fakeCatalog struct {
	products []models.Product
	loads    int
	err      error
}

func (f *fakeCatalog) Products(context.Context) ([]models.Product, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func namedProduct(id, name string) models.Product {
	return models.Product{
		ProductID: id,
		CustomAttributes: map[string]any{
			"shortNameLoc": map[string]any{"en_EN": name},
		},
	}
}

func TestStocksEnrichment(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		namedProduct("P1", "Milk"),
	}}
	resolver := NewCatalogResolver(catalog, "en_EN")

	stocks := []models.Stock{
		{ProductID: "P1", StoreID: "S1", Quantity: 5},
		{ProductID: "P9", StoreID: "S1", Quantity: 3},
	}

	enriched, err := Stocks(context.Background(), stocks, resolver)
	if err != nil {
		t.Fatalf("Stocks() error = %v", err)
	}
	if len(enriched) != 2 {
		t.Fatalf("Stocks() returned %d records, want 2", len(enriched))
	}

	if enriched[0].ProductName != "Milk" {
		t.Errorf("P1 name = %q, want %q", enriched[0].ProductName, "Milk")
	}
	if enriched[1].ProductName != UnresolvedName {
		t.Errorf("P9 name = %q, want %q", enriched[1].ProductName, UnresolvedName)
	}

	// Join keys and payload stay intact.
	if enriched[0].ProductID != "P1" || enriched[1].ProductID != "P9" {
		t.Error("product ids were modified by enrichment")
	}
	if enriched[0].Quantity != 5 || enriched[1].Quantity != 3 {
		t.Error("quantities were modified by enrichment")
	}
}

func TestEnrichDeduplicatesAndLoadsOnce(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		namedProduct("P1", "Milk"),
	}}
	resolver := NewCatalogResolver(catalog, "en_EN")

	stocks := []models.Stock{
		{ProductID: "P1", StoreID: "S1"},
		{ProductID: "P1", StoreID: "S2"},
		{ProductID: "P1", StoreID: "S3"},
	}

	enriched, err := Stocks(context.Background(), stocks, resolver)
	if err != nil {
		t.Fatalf("Stocks() error = %v", err)
	}
	if catalog.loads != 1 {
		t.Errorf("catalog loaded %d times, want 1", catalog.loads)
	}
	for i, s := range enriched {
		if s.ProductName != "Milk" {
			t.Errorf("record %d name = %q, want %q", i, s.ProductName, "Milk")
		}
	}
}

func TestEnrichIdempotence(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		namedProduct("P1", "Milk"),
	}}
	resolver := NewCatalogResolver(catalog, "en_EN")

	stocks := []models.Stock{{ProductID: "P1", StoreID: "S1"}}

	once, err := Stocks(context.Background(), stocks, resolver)
	if err != nil {
		t.Fatalf("first pass error = %v", err)
	}
	twice, err := Stocks(context.Background(), once, resolver)
	if err != nil {
		t.Fatalf("second pass error = %v", err)
	}

	if twice[0].ProductName != once[0].ProductName || twice[0].ProductID != once[0].ProductID {
		t.Errorf("second pass changed record: %+v vs %+v", twice[0], once[0])
	}
}

func TestEnrichEmptyInput(t *testing.T) {
	catalog := &fakeCatalog{}
	resolver := NewCatalogResolver(catalog, "en_EN")

	enriched, err := Stocks(context.Background(), nil, resolver)
	if err != nil {
		t.Fatalf("Stocks() error = %v", err)
	}
	if enriched == nil || len(enriched) != 0 {
		t.Errorf("Stocks(nil) = %v, want empty slice", enriched)
	}
	if catalog.loads != 0 {
		t.Errorf("catalog loaded %d times for empty input, want 0", catalog.loads)
	}
}

func TestEnrichResolverFailure(t *testing.T) {
	failure := errors.New("catalog unavailable")
	catalog := &fakeCatalog{err: failure}
	resolver := NewCatalogResolver(catalog, "en_EN")

	enriched, err := Stocks(context.Background(), []models.Stock{{ProductID: "P1"}}, resolver)
	if !errors.Is(err, failure) {
		t.Fatalf("Stocks() error = %v, want %v", err, failure)
	}
	if enriched != nil {
		t.Errorf("Stocks() returned records %v alongside failure", enriched)
	}
}

func TestOrderEnrichment(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		namedProduct("P1", "Milk"),
	}}
	resolver := NewCatalogResolver(catalog, "en_EN")

	order := &models.Order{
		HumanOrderID: "240920-728268",
		Cart: models.Cart{
			TotalPrice: "8.20",
			Items: []models.CartItem{
				{ProductID: "P1", Quantity: 2},
				{ProductID: "P9", Quantity: 1},
			},
		},
	}

	enriched, err := Order(context.Background(), order, resolver)
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}

	if enriched.Cart.Items[0].ProductName != "Milk" {
		t.Errorf("item 0 name = %q, want %q", enriched.Cart.Items[0].ProductName, "Milk")
	}
	if enriched.Cart.Items[1].ProductName != UnresolvedName {
		t.Errorf("item 1 name = %q, want %q", enriched.Cart.Items[1].ProductName, UnresolvedName)
	}

	// Input order must stay untouched.
	if order.Cart.Items[0].ProductName != "" {
		t.Error("Order() mutated its input")
	}
}

func TestResolveNamesScopesToRequestedIDs(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		namedProduct("P1", "Milk"),
		namedProduct("P2", "Bread"),
	}}
	resolver := NewCatalogResolver(catalog, "en_EN")

	names, err := resolver.ResolveNames(context.Background(), []string{"P2"})
	if err != nil {
		t.Fatalf("ResolveNames() error = %v", err)
	}
	if len(names) != 1 || names["P2"] != "Bread" {
		t.Errorf("ResolveNames() = %v, want only P2", names)
	}

	names, err = resolver.ResolveNames(context.Background(), nil)
	if err != nil {
		t.Fatalf("ResolveNames(nil) error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ResolveNames(nil) = %v, want empty", names)
	}
}
