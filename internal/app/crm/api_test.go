package crm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"CRM-Gateway/internal/app/ds"
	"CRM-Gateway/internal/app/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "", 5*time.Second)
}

func TestFetchClientsAcceptsDataKey(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"data": [{"id": 1, "name": "TechCorp Solutions", "status": "active"}],
			"pagination": {"page": 1, "limit": 10, "total": 1, "totalPages": 1}
		}`)
	})

	page, err := api.FetchClients(context.Background(), url.Values{})
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	assert.Equal(t, uint(1), page.Clients[0].ID)
	assert.Equal(t, ds.StatusActive, page.Clients[0].Status)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestFetchClientsAcceptsClientsKey(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"clients": [{"id": 2, "name": "CloudWave", "status": "inactive"}],
			"pagination": {"page": 1, "limit": 10, "total": 1, "totalPages": 1}
		}`)
	})

	page, err := api.FetchClients(context.Background(), url.Values{})
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	assert.Equal(t, uint(2), page.Clients[0].ID)
}

func TestFetchClientsForwardsQueryParams(t *testing.T) {
	var got url.Values
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": [], "pagination": {"page": 1, "limit": 10, "total": 0, "totalPages": 1}}`)
	})

	params := url.Values{}
	params.Set("page", "2")
	params.Set("limit", "10")
	params.Set("search", "cloud")
	params.Set("providers", "A,B")
	params.Set("minPrice", "6000")

	_, err := api.FetchClients(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, "cloud", got.Get("search"))
	assert.Equal(t, "A,B", got.Get("providers"))
	assert.Equal(t, "6000", got.Get("minPrice"))
	assert.NotContains(t, got, "status")
}

func TestFetchClientsUpstreamError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message": "database unavailable", "statusCode": 500}`)
	})

	_, err := api.FetchClients(context.Background(), url.Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestImportClientsSendsMultipart(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/import", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "clients.csv", header.Filename)
		assert.Equal(t, "name,email\n", string(content))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"imported": 5, "errors": [{"row": 3, "message": "invalid email"}]}`)
	})

	result, err := api.ImportClients(context.Background(), "clients.csv", strings.NewReader("name,email\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
}

func TestExportClients(t *testing.T) {
	t.Run("forwards format and normalized filters", func(t *testing.T) {
		var got url.Values
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/export", r.URL.Path)
			got = r.URL.Query()
			w.Header().Set("Content-Type", "text/csv")
			io.WriteString(w, "id,name\n1,TechCorp\n")
		})

		query := filter.Normalize(filter.Selection{
			Providers: []string{"A"},
			Status:    filter.StatusActiveLabel,
			PriceTick: 3,
		})

		data, err := api.ExportClients(context.Background(), "csv", query)
		require.NoError(t, err)
		assert.Equal(t, "id,name\n1,TechCorp\n", string(data))
		assert.Equal(t, "csv", got.Get("format"))
		assert.Equal(t, "A", got.Get("providers"))
		assert.Equal(t, "active", got.Get("status"))
		assert.Equal(t, "6000", got.Get("maxPrice"))
	})

	t.Run("rejects unknown format without calling upstream", func(t *testing.T) {
		called := false
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := api.ExportClients(context.Background(), "xml", filter.Query{})
		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestDeleteClients(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients/delete-multiple", r.URL.Path)

		var body map[string][]uint
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []uint{1, 2, 3}, body["ids"])

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	})

	err := api.DeleteClients(context.Background(), []uint{1, 2, 3})
	require.NoError(t, err)
}
