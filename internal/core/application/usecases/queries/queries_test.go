package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbot/internal/core/application/usecases/queries"
)

func TestGetActiveOrdersQuery_Construction(t *testing.T) {
	q := queries.NewGetActiveOrdersQuery()
	assert.NoError(t, q.Validate())

	var zero queries.GetActiveOrdersQuery
	assert.Error(t, zero.Validate())
}

func TestGetCourierEarningsQuery_Construction(t *testing.T) {
	q, err := queries.NewGetCourierEarningsQuery(7)
	require.NoError(t, err)
	assert.NoError(t, q.Validate())
	assert.Equal(t, int64(7), q.CourierID())

	_, err = queries.NewGetCourierEarningsQuery(0)
	assert.Error(t, err)

	var zero queries.GetCourierEarningsQuery
	assert.Error(t, zero.Validate())
}

func TestGetOrderStatsQuery_Construction(t *testing.T) {
	q, err := queries.NewGetOrderStatsQuery(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.NoError(t, q.Validate())

	_, err = queries.NewGetOrderStatsQuery(time.Time{})
	assert.Error(t, err)
}
