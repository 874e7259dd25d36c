package orderfeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"production/internal/adapters/out/orderfeed"
)

const feedBody = `[
	{
		"ref": 4711,
		"source": "webshop",
		"shipment_date": "2026-03-01T00:00:00Z",
		"customer_name": "Alva Nyberg",
		"company": "Nyberg Interiors",
		"lines": [
			{
				"sku": "TBL-140",
				"fabric": "linen",
				"pattern": "herringbone",
				"shape": "rectangular",
				"width": 140,
				"height": 220,
				"diameter": null,
				"edge_class": "O5",
				"quantity": 5
			}
		]
	}
]`

func TestNewClient(t *testing.T) {
	t.Run("valid arguments", func(t *testing.T) {
		client, err := orderfeed.NewClient("http://feed.local", "token")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("missing base URL", func(t *testing.T) {
		_, err := orderfeed.NewClient("", "token")
		assert.Error(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := orderfeed.NewClient("http://feed.local", "")
		assert.Error(t, err)
	})
}

func TestFetchOrders(t *testing.T) {
	var gotRequest *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer server.Close()

	client, err := orderfeed.NewClient(server.URL, "secret-token")
	require.NoError(t, err)

	since := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	orders, err := client.FetchOrders(context.Background(), since)
	require.NoError(t, err)

	require.NotNil(t, gotRequest)
	assert.Equal(t, "/api/v1/orders", gotRequest.URL.Path)
	assert.Equal(t, "2026-02-01T12:00:00Z", gotRequest.URL.Query().Get("since"))
	assert.Equal(t, "Bearer secret-token", gotRequest.Header.Get("Authorization"))

	require.Len(t, orders, 1)
	ord := orders[0]
	assert.Equal(t, int64(4711), ord.ExternalRef)
	assert.Equal(t, "webshop", ord.Source)
	assert.Equal(t, "Alva Nyberg", ord.CustomerName)
	assert.Equal(t, "Nyberg Interiors", ord.Company)
	require.NotNil(t, ord.ExpectedShipmentDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), ord.ExpectedShipmentDate.UTC())

	require.Len(t, ord.Lines, 1)
	line := ord.Lines[0]
	assert.Equal(t, "TBL-140", line.SKU)
	assert.Equal(t, "rectangular", line.Shape)
	require.NotNil(t, line.Width)
	assert.Equal(t, 140, *line.Width)
	assert.Nil(t, line.Diameter)
	require.NotNil(t, line.EdgeClass)
	assert.Equal(t, "O5", *line.EdgeClass)
	assert.Equal(t, 5, line.Quantity)
}

func TestFetchOrdersZeroSinceOmitsParameter(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := orderfeed.NewClient(server.URL, "secret-token")
	require.NoError(t, err)

	orders, err := client.FetchOrders(context.Background(), time.Time{})
	require.NoError(t, err)

	assert.Empty(t, orders)
	assert.Empty(t, query)
}

func TestFetchOrdersFeedUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := orderfeed.NewClient(server.URL, "secret-token")
	require.NoError(t, err)

	_, err = client.FetchOrders(context.Background(), time.Time{})
	assert.ErrorIs(t, err, orderfeed.ErrFeedUnavailable)
}

func TestFetchOrdersMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client, err := orderfeed.NewClient(server.URL, "secret-token")
	require.NoError(t, err)

	_, err = client.FetchOrders(context.Background(), time.Time{})
	assert.Error(t, err)
}
