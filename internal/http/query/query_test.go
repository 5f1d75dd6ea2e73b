package query_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliyevq/veresiye/internal/apperr"
	"github.com/aliyevq/veresiye/internal/http/query"
)

func TestDateRange(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		from, to, err := query.DateRange(url.Values{})
		require.NoError(t, err)
		assert.Nil(t, from)
		assert.Nil(t, to)
	})

	t.Run("DateOnly", func(t *testing.T) {
		from, to, err := query.DateRange(url.Values{
			"from": {"2025-02-01"},
			"to":   {"2025-02-01"},
		})
		require.NoError(t, err)
		require.NotNil(t, from)
		require.NotNil(t, to)

		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *from)
		// A single-day range still covers the whole day.
		assert.True(t, to.After(*from))
		assert.Equal(t, 1, to.Day())
		assert.Equal(t, 23, to.Hour())
	})

	t.Run("RFC3339", func(t *testing.T) {
		from, _, err := query.DateRange(url.Values{"from": {"2025-02-01T10:30:00Z"}})
		require.NoError(t, err)
		require.NotNil(t, from)
		assert.Equal(t, 10, from.Hour())
	})

	t.Run("MalformedFrom", func(t *testing.T) {
		_, _, err := query.DateRange(url.Values{"from": {"not-a-date"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("MalformedTo", func(t *testing.T) {
		_, _, err := query.DateRange(url.Values{
			"from": {"2025-02-01"},
			"to":   {"01/02/2025"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestID(t *testing.T) {
	id, ok := query.ID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, s := range []string{"", "abc", "0", "-5"} {
		_, ok := query.ID(s)
		assert.False(t, ok, s)
	}
}
