package roster

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"CRM-Gateway/internal/app/ds"
	"CRM-Gateway/internal/app/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	fn func(ctx context.Context, params url.Values) (ds.ClientPage, error)
}

func (f *fakeFetcher) FetchClients(ctx context.Context, params url.Values) (ds.ClientPage, error) {
	return f.fn(ctx, params)
}

func pageOf(total int64, totalPages int, ids ...uint) ds.ClientPage {
	clients := make([]ds.Client, 0, len(ids))
	for _, id := range ids {
		clients = append(clients, ds.Client{ID: id, Status: ds.StatusActive})
	}
	return ds.ClientPage{
		Clients: clients,
		Pagination: ds.PaginationInfo{
			Limit:      ItemsPerPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

func staticFetcher(page ds.ClientPage) *fakeFetcher {
	return &fakeFetcher{fn: func(ctx context.Context, params url.Values) (ds.ClientPage, error) {
		return page, nil
	}}
}

func TestControllerDefaults(t *testing.T) {
	ctrl := NewController(staticFetcher(ds.ClientPage{}))

	info := ctrl.PageInfo()
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, ItemsPerPage, info.Limit)
	assert.Equal(t, 1, info.TotalPages)
	assert.Empty(t, ctrl.Selected())

	params := ctrl.EffectiveQuery()
	assert.Equal(t, "1", params.Get("page"))
	assert.Equal(t, "10", params.Get("limit"))
	assert.NotContains(t, params, "search")
}

func TestSetSearchTermResetsPage(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(42, 5, 1, 2)))

	_, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, ctrl.NextPage())
	require.Equal(t, 2, ctrl.PageInfo().Page)

	ctrl.SetSearchTerm("cloud")

	assert.Equal(t, 1, ctrl.PageInfo().Page)
	assert.Equal(t, "cloud", ctrl.EffectiveQuery().Get("search"))
}

func TestSearchKeepsActiveFilters(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(0, 1)))

	ctrl.ApplyFilters(filter.Selection{Status: filter.StatusActiveLabel})
	ctrl.SetSearchTerm("x")

	params := ctrl.EffectiveQuery()
	assert.Equal(t, "active", params.Get("status"))
	assert.Equal(t, "1", params.Get("page"))
}

func TestApplyFiltersReplacesWholesale(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(0, 1)))

	ctrl.ApplyFilters(filter.Selection{Providers: []string{"A"}, PriceTick: 2})
	ctrl.ApplyFilters(filter.Selection{Status: filter.StatusInactiveLabel})

	params := ctrl.EffectiveQuery()
	assert.Equal(t, "inactive", params.Get("status"))
	assert.NotContains(t, params, "providers")
	assert.NotContains(t, params, "minPrice")
}

func TestApplyFiltersResetsPageAndSelection(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(42, 5, 1, 2, 3)))

	_, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)
	ctrl.ToggleRow(1)
	ctrl.ToggleRow(2)
	require.True(t, ctrl.NextPage())

	ctrl.ApplyFilters(filter.Selection{Status: filter.StatusActiveLabel})

	assert.Equal(t, 1, ctrl.PageInfo().Page)
	assert.Empty(t, ctrl.Selected())
}

func TestPageNavigationBounds(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(25, 3, 1)))

	_, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)

	t.Run("previous page at the first page is a no-op", func(t *testing.T) {
		assert.False(t, ctrl.PreviousPage())
		assert.Equal(t, 1, ctrl.PageInfo().Page)
	})

	t.Run("next page advances until totalPages", func(t *testing.T) {
		assert.True(t, ctrl.NextPage())
		assert.True(t, ctrl.NextPage())
		assert.Equal(t, 3, ctrl.PageInfo().Page)

		assert.False(t, ctrl.NextPage())
		assert.Equal(t, 3, ctrl.PageInfo().Page)
	})

	t.Run("set page outside range is a no-op", func(t *testing.T) {
		assert.False(t, ctrl.SetPage(0))
		assert.False(t, ctrl.SetPage(4))
		assert.Equal(t, 3, ctrl.PageInfo().Page)
	})
}

func TestPageChangeClearsSelection(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(42, 5, 7, 8)))

	_, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)
	ctrl.ToggleRow(7)
	require.NotEmpty(t, ctrl.Selected())

	require.True(t, ctrl.NextPage())
	assert.Empty(t, ctrl.Selected())
}

func TestToggleSelectAll(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(3, 1, 1, 2, 3)))

	_, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)

	t.Run("selects all rows of the current page", func(t *testing.T) {
		ctrl.ToggleSelectAll()
		assert.Equal(t, []uint{1, 2, 3}, ctrl.Selected())
	})

	t.Run("deselects all when every row is already selected", func(t *testing.T) {
		ctrl.ToggleSelectAll()
		assert.Empty(t, ctrl.Selected())
	})

	t.Run("partial selection selects the rest", func(t *testing.T) {
		ctrl.ToggleRow(2)
		ctrl.ToggleSelectAll()
		assert.Equal(t, []uint{1, 2, 3}, ctrl.Selected())
	})

	t.Run("empty page stays empty", func(t *testing.T) {
		empty := NewController(staticFetcher(pageOf(0, 1)))
		_, err := empty.Refresh(context.Background())
		require.NoError(t, err)
		empty.ToggleSelectAll()
		assert.Empty(t, empty.Selected())
	})
}

func TestServerPaginationIsAuthoritative(t *testing.T) {
	t.Run("totalPages comes from the response", func(t *testing.T) {
		ctrl := NewController(staticFetcher(pageOf(42, 5, 1)))
		_, err := ctrl.Refresh(context.Background())
		require.NoError(t, err)

		info := ctrl.PageInfo()
		assert.Equal(t, int64(42), info.Total)
		assert.Equal(t, 5, info.TotalPages)
	})

	t.Run("one page with zero items is an empty result, not an error", func(t *testing.T) {
		ctrl := NewController(staticFetcher(pageOf(0, 1)))
		page, err := ctrl.Refresh(context.Background())
		require.NoError(t, err)
		assert.Empty(t, page.Clients)
		assert.Equal(t, 1, ctrl.PageInfo().TotalPages)
	})
}

func TestEffectiveQueryEndToEnd(t *testing.T) {
	ctrl := NewController(staticFetcher(pageOf(0, 1)))

	ctrl.ApplyFilters(filter.Selection{
		Providers: []string{"A", "B"},
		Status:    filter.StatusActiveLabel,
		PriceTick: 3,
	})

	params := ctrl.EffectiveQuery()
	assert.Equal(t, "A,B", params.Get("providers"))
	assert.Equal(t, "active", params.Get("status"))
	assert.Equal(t, "6000", params.Get("minPrice"))
	assert.Equal(t, "6000", params.Get("maxPrice"))
	assert.Equal(t, "1", params.Get("page"))
	assert.Equal(t, "10", params.Get("limit"))
}

func TestRefreshFailureKeepsQueryState(t *testing.T) {
	boom := errors.New("upstream down")
	failing := false
	fetcher := &fakeFetcher{fn: func(ctx context.Context, params url.Values) (ds.ClientPage, error) {
		if failing {
			return ds.ClientPage{}, boom
		}
		return pageOf(42, 5, 1, 2), nil
	}}

	ctrl := NewController(fetcher)
	ctrl.SetSearchTerm("cloud")
	ctrl.ApplyFilters(filter.Selection{PriceTick: 1})

	_, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, ctrl.NextPage())

	failing = true
	_, err = ctrl.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// Список очищен, метаданные сброшены
	assert.Empty(t, ctrl.Clients())
	assert.Equal(t, int64(0), ctrl.PageInfo().Total)

	// Страница, поиск и фильтры сохранены для повтора
	params := ctrl.EffectiveQuery()
	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "cloud", params.Get("search"))
	assert.Equal(t, "2000", params.Get("minPrice"))
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	// Запрос Q1 вытесняется сменой поиска, пока выборка еще в полете:
	// его ответ должен быть отброшен, состояние остается за Q2
	var ctrl *Controller
	superseded := false

	fetcher := &fakeFetcher{fn: func(ctx context.Context, params url.Values) (ds.ClientPage, error) {
		if params.Get("search") == "old" && !superseded {
			superseded = true
			ctrl.SetSearchTerm("new")
			return pageOf(99, 9, 42), nil
		}
		return pageOf(1, 1, 7), nil
	}}

	ctrl = NewController(fetcher)
	ctrl.SetSearchTerm("old")

	_, err := ctrl.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrStaleResponse)

	// Ответ Q1 не применился
	assert.Empty(t, ctrl.Clients())
	assert.Equal(t, int64(0), ctrl.PageInfo().Total)

	// Q2 завершается и владеет состоянием
	page, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	assert.Equal(t, uint(7), page.Clients[0].ID)
	assert.Equal(t, int64(1), ctrl.PageInfo().Total)
}

func TestRegistryReturnsSameController(t *testing.T) {
	registry := NewRegistry(staticFetcher(ds.ClientPage{}))

	first := registry.Get(1)
	second := registry.Get(1)
	other := registry.Get(2)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)

	registry.Drop(1)
	assert.NotSame(t, first, registry.Get(1))
}
