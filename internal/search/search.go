// internal/search/search.go
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"storefront-filters/internal/common/errors"
	"storefront-filters/internal/common/logger"
)

// maxHits caps how many product IDs a free-text search can contribute to
// the candidate universe.
const maxHits = 10000

// ProductSearcher narrows a category listing to products matching a
// free-text query. Only IDs come back; facet math and product loading stay
// on the relational side.
type ProductSearcher struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewProductSearcher(client *elasticsearch.Client, index string, log logger.Logger) *ProductSearcher {
	return &ProductSearcher{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "product-search"}),
	}
}

// SearchIDs returns the IDs of products in the category that match the
// query, best hits first.
func (s *ProductSearcher) SearchIDs(ctx context.Context, categoryID int64, query string) ([]int64, error) {
	body := buildSearchBody(categoryID, query)
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	size := maxHits
	req := esapi.SearchRequest{
		Index:  []string{s.index},
		Body:   strings.NewReader(string(raw)),
		Size:   &size,
		Source: []string{"false"},
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError(query)
		}
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Error("search request rejected", map[string]interface{}{
			"status": res.StatusCode,
			"query":  query,
		})
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("status %d", res.StatusCode))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func buildSearchBody(categoryID int64, query string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  query,
							"fields": []string{"name^3", "description"},
							"type":   "best_fields",
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"category_id": categoryID},
					},
					map[string]interface{}{
						"term": map[string]interface{}{"visible": true},
					},
				},
			},
		},
	}
}
