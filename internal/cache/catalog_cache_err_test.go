// internal/cache/catalog_cache_err_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"storefront-filters/internal/common/logger"
)

func TestGetErrorIsAMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute, logger.NewNoOpLogger())

	mock.ExpectGet("catalog:filterconfig:42").SetErr(assert.AnError)

	_, ok := c.GetFilterConfig(context.Background(), 42)

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetErrorIsSwallowed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute, logger.NewNoOpLogger())

	mock.ExpectSet("catalog:filterconfig:42", []byte(`{"filters":[]}`), time.Minute).
		SetErr(assert.AnError)

	c.SetFilterConfig(context.Background(), 42, []byte(`{"filters":[]}`))

	assert.NoError(t, mock.ExpectationsWereMet())
}
