// internal/search/search_test.go
package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-filters/internal/common/logger"
)

type stubTransport struct {
	status int
	body   string
	seen   *http.Request
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.seen = req
	return &http.Response{
		StatusCode: s.status,
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func newSearcher(t *testing.T, transport *stubTransport) *ProductSearcher {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch:9200"},
		Transport: transport,
	})
	require.NoError(t, err)
	return NewProductSearcher(client, "products", logger.NewTestLogger(t))
}

func TestSearchIDs(t *testing.T) {
	transport := &stubTransport{
		status: http.StatusOK,
		body:   `{"hits":{"hits":[{"_id":"3"},{"_id":"1"},{"_id":"not-a-number"}]}}`,
	}
	s := newSearcher(t, transport)

	ids, err := s.SearchIDs(context.Background(), 42, "riesling")

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids)
	assert.Contains(t, transport.seen.URL.Path, "/products/_search")
}

func TestSearchIDs_ErrorStatus(t *testing.T) {
	transport := &stubTransport{
		status: http.StatusInternalServerError,
		body:   `{"error":"boom"}`,
	}
	s := newSearcher(t, transport)

	_, err := s.SearchIDs(context.Background(), 42, "riesling")

	assert.Error(t, err)
}

func TestBuildSearchBody(t *testing.T) {
	body := buildSearchBody(42, "dry riesling")

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"query":"dry riesling"`)
	assert.Contains(t, string(raw), `"category_id":42`)
	assert.Contains(t, string(raw), `"visible":true`)
}
