package enrich

import (
	"context"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// ProductLoader supplies the full product catalog. The remote API only
// supports fetch-all, so name resolution walks the catalog once per pass
// and joins in memory; the loader decides whether that walk hits the
// network or a cache.
type ProductLoader interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// CatalogResolver resolves names by loading the catalog and building an
// in-memory identifier-to-name mapping.
type CatalogResolver struct {
	loader   ProductLoader
	language string
}

// NewCatalogResolver creates a resolver on top of a product loader.
// language selects the preferred locale for display names; empty means
// models.DefaultLanguage.
func NewCatalogResolver(loader ProductLoader, language string) *CatalogResolver {
	if language == "" {
		language = models.DefaultLanguage
	}
	return &CatalogResolver{
		loader:   loader,
		language: language,
	}
}

// ResolveNames implements NameResolver. A catalog load failure fails the
// whole call; identifiers without a catalog entry are simply absent from
// the result.
func (r *CatalogResolver) ResolveNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	products, err := r.loader.Products(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	names := make(map[string]string, len(ids))
	for i := range products {
		p := &products[i]
		if _, ok := wanted[p.ProductID]; ok {
			names[p.ProductID] = p.DisplayName(r.language)
		}
	}
	return names, nil
}
