// internal/service/listing/service.go
package listing

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"storefront-filters/internal/common/config"
	"storefront-filters/internal/common/logger"
	"storefront-filters/internal/common/metrics"
	"storefront-filters/internal/filter"
	"storefront-filters/internal/models"
	"storefront-filters/pkg/filterconfig"
)

// CatalogRepo is the relational side of the catalog.
type CatalogRepo interface {
	CategoryByID(ctx context.Context, categoryID int64) (*models.Category, error)
	UniverseIDs(ctx context.Context, categoryID int64) ([]int64, error)
	ProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	ParameterGroups(ctx context.Context, ids []int64) (map[int64]models.ParameterGroup, error)
	ParameterValues(ctx context.Context, productIDs, groupIDs []int64) ([]models.ParameterValue, error)
}

// Cache holds per-category filter configs and universes. A nil Cache means
// every read goes to postgres.
type Cache interface {
	GetFilterConfig(ctx context.Context, categoryID int64) ([]byte, bool)
	SetFilterConfig(ctx context.Context, categoryID int64, raw []byte)
	GetUniverse(ctx context.Context, categoryID int64) ([]int64, bool)
	SetUniverse(ctx context.Context, categoryID int64, ids []int64)
}

// Searcher narrows the universe by a free-text query. Nil disables search.
type Searcher interface {
	SearchIDs(ctx context.Context, categoryID int64, query string) ([]int64, error)
}

// Request carries everything a listing computation needs. Params is the
// raw query string of the storefront request; facet selections are parsed
// out of it against the category's resolved facet definitions.
type Request struct {
	CategoryID int64
	Params     url.Values
	Query      string
	Page       int
	Limit      int
}

// Service computes filtered category listings and their facet blocks.
type Service struct {
	repo   CatalogRepo
	cache  Cache
	search Searcher
	cfg    config.CatalogConfig
	logger logger.Logger
}

func New(repo CatalogRepo, cache Cache, search Searcher, cfg config.CatalogConfig, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		search: search,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "listing-service"}),
	}
}

// Listing returns one page of filtered products together with the facet
// block describing the narrowed result space.
func (s *Service) Listing(ctx context.Context, req Request) (*models.FilteredListing, error) {
	start := time.Now()

	comp, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}

	page, limit := s.pagination(req)
	ids := comp.result.IDs()
	total := len(ids)

	from := (page - 1) * limit
	if from > total {
		from = total
	}
	to := from + limit
	if to > total {
		to = total
	}

	products := make([]models.Product, 0, to-from)
	for _, id := range ids[from:to] {
		if p, ok := comp.products[id]; ok {
			products = append(products, p)
		}
	}

	metrics.FilterComputeDuration.WithLabelValues(strconv.FormatInt(req.CategoryID, 10)).
		Observe(time.Since(start).Seconds())

	return &models.FilteredListing{
		Facets:   comp.facets,
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// Facets returns only the facet block, for filter-panel refreshes that do
// not need the product page.
func (s *Service) Facets(ctx context.Context, req Request) ([]models.Facet, error) {
	comp, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	return comp.facets, nil
}

type computation struct {
	facets   []models.Facet
	result   filter.Set
	products map[int64]models.Product
}

func (s *Service) compute(ctx context.Context, req Request) (*computation, error) {
	doc, err := s.filterConfig(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	groupIDs := make([]int64, 0, len(doc.Filters))
	for _, entry := range doc.Filters {
		groupIDs = append(groupIDs, entry.GroupID)
	}

	groups, err := s.repo.ParameterGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	defs := filter.ResolveDefinitions(doc, groups)

	universeIDs, err := s.universe(ctx, req)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ProductsByIDs(ctx, universeIDs)
	if err != nil {
		return nil, err
	}
	values, err := s.repo.ParameterValues(ctx, universeIDs, groupIDs)
	if err != nil {
		return nil, err
	}

	ix := filter.NewIndex(products, values)
	universe := filter.NewSet(universeIDs...)
	sel := filter.ParseSelection(defs, req.Params)

	cands := filter.CandidateSets(universe, defs, sel, ix, s.cfg.MarkupFactor)
	facets := filter.BuildFacets(defs, cands, sel, ix, s.cfg.MarkupFactor)
	result := filter.Apply(universe, defs, sel, ix, s.cfg.MarkupFactor)

	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &computation{facets: facets, result: result, products: byID}, nil
}

// filterConfig loads and decodes a category's filter configuration. An
// undecodable document behaves like an absent one: the listing still
// renders with just the stock and price facets.
func (s *Service) filterConfig(ctx context.Context, categoryID int64) (*filterconfig.Document, error) {
	var raw []byte
	if s.cache != nil {
		if cached, ok := s.cache.GetFilterConfig(ctx, categoryID); ok {
			raw = cached
		}
	}
	if raw == nil {
		cat, err := s.repo.CategoryByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		raw = cat.FilterConfig
		if s.cache != nil && len(raw) > 0 {
			s.cache.SetFilterConfig(ctx, categoryID, raw)
		}
	}

	if len(raw) == 0 {
		return &filterconfig.Document{}, nil
	}

	doc, err := filterconfig.Decode(raw)
	if err != nil {
		s.logger.Warn("ignoring undecodable filter config", map[string]interface{}{
			"categoryId": categoryID,
			"error":      err.Error(),
		})
		return &filterconfig.Document{}, nil
	}
	return doc, nil
}

func (s *Service) universe(ctx context.Context, req Request) ([]int64, error) {
	var ids []int64
	if s.cache != nil {
		if cached, ok := s.cache.GetUniverse(ctx, req.CategoryID); ok {
			ids = cached
		}
	}
	if ids == nil {
		loaded, err := s.repo.UniverseIDs(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		ids = loaded
		if s.cache != nil {
			s.cache.SetUniverse(ctx, req.CategoryID, ids)
		}
	}

	if req.Query == "" || s.search == nil {
		return ids, nil
	}

	hits, err := s.search.SearchIDs(ctx, req.CategoryID, req.Query)
	if err != nil {
		return nil, err
	}
	hitSet := filter.NewSet(hits...)
	narrowed := make([]int64, 0, len(hits))
	for _, id := range ids {
		if hitSet.Has(id) {
			narrowed = append(narrowed, id)
		}
	}
	return narrowed, nil
}

func (s *Service) pagination(req Request) (page, limit int) {
	page = req.Page
	if page < 1 {
		page = 1
	}
	limit = req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	return page, limit
}
