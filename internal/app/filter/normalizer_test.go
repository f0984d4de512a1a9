package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProviders(t *testing.T) {
	t.Run("joins provider names with comma", func(t *testing.T) {
		q := Normalize(Selection{Providers: []string{"Tech Solutions", "CloudWave"}})
		assert.Equal(t, "Tech Solutions,CloudWave", q.Providers)
	})

	t.Run("empty provider list is omitted", func(t *testing.T) {
		q := Normalize(Selection{})
		assert.Empty(t, q.Providers)
		assert.NotContains(t, q.Params(), "providers")
	})
}

func TestNormalizeStatus(t *testing.T) {
	t.Run("Todos sentinel is omitted", func(t *testing.T) {
		q := Normalize(Selection{Status: StatusAll})
		assert.Empty(t, q.Status)
		assert.NotContains(t, q.Params(), "status")
	})

	t.Run("Activo maps to active", func(t *testing.T) {
		q := Normalize(Selection{Status: StatusActiveLabel})
		assert.Equal(t, "active", q.Status)
	})

	t.Run("Inactivo maps to inactive", func(t *testing.T) {
		q := Normalize(Selection{Status: StatusInactiveLabel})
		assert.Equal(t, "inactive", q.Status)
	})

	t.Run("unknown label is omitted", func(t *testing.T) {
		q := Normalize(Selection{Status: "Pendiente"})
		assert.Empty(t, q.Status)
	})
}

func TestNormalizePriceTick(t *testing.T) {
	t.Run("tick zero emits no price bounds", func(t *testing.T) {
		q := Normalize(Selection{PriceTick: 0})
		assert.Zero(t, q.MinPrice)
		assert.Zero(t, q.MaxPrice)

		params := q.Params()
		assert.NotContains(t, params, "minPrice")
		assert.NotContains(t, params, "maxPrice")
	})

	t.Run("every positive tick emits both bounds scaled by step", func(t *testing.T) {
		for tick := 1; tick <= MaxPriceTick; tick++ {
			t.Run(fmt.Sprintf("tick_%d", tick), func(t *testing.T) {
				q := Normalize(Selection{PriceTick: tick})
				assert.Equal(t, tick*PriceTickStep, q.MinPrice)
				assert.Equal(t, tick*PriceTickStep, q.MaxPrice)
			})
		}
	})
}

func TestNormalizeDate(t *testing.T) {
	t.Run("today anchors both ends to the same day", func(t *testing.T) {
		q := Normalize(Selection{Date: "06/02/2025", Period: PeriodToday})
		assert.Equal(t, "2025-02-06", q.StartDate)
		assert.Equal(t, "2025-02-06", q.EndDate)
	})

	t.Run("single digit day and month are zero padded", func(t *testing.T) {
		q := Normalize(Selection{Date: "6/2/2025", Period: PeriodToday})
		assert.Equal(t, "2025-02-06", q.StartDate)
	})

	t.Run("week spans six days and rolls over the year", func(t *testing.T) {
		q := Normalize(Selection{Date: "28/12/2025", Period: PeriodWeek})
		assert.Equal(t, "2025-12-28", q.StartDate)
		assert.Equal(t, "2026-01-03", q.EndDate)
	})

	t.Run("month ends on the last calendar day", func(t *testing.T) {
		q := Normalize(Selection{Date: "15/01/2025", Period: PeriodMonth})
		assert.Equal(t, "2025-01-31", q.EndDate)
	})

	t.Run("leap year february ends on the 29th", func(t *testing.T) {
		q := Normalize(Selection{Date: "15/02/2024", Period: PeriodMonth})
		assert.Equal(t, "2024-02-29", q.EndDate)
	})

	t.Run("non leap february ends on the 28th", func(t *testing.T) {
		q := Normalize(Selection{Date: "15/02/2025", Period: PeriodMonth})
		assert.Equal(t, "2025-02-28", q.EndDate)
	})

	t.Run("no period emits only start date", func(t *testing.T) {
		q := Normalize(Selection{Date: "10/03/2025", Period: PeriodNone})
		assert.Equal(t, "2025-03-10", q.StartDate)
		assert.Empty(t, q.EndDate)
		assert.NotContains(t, q.Params(), "endDate")
	})

	t.Run("malformed date is dropped silently", func(t *testing.T) {
		for _, bad := range []string{"not-a-date", "12/2025", "aa/bb/cccc", "1/2/3/4", ""} {
			q := Normalize(Selection{Date: bad, Period: PeriodToday})
			assert.Empty(t, q.StartDate, "date %q", bad)
			assert.Empty(t, q.EndDate, "date %q", bad)
		}
	})
}

func TestNormalizeCombined(t *testing.T) {
	q := Normalize(Selection{
		Providers: []string{"A", "B"},
		Status:    StatusActiveLabel,
		PriceTick: 3,
	})

	params := q.Params()
	require.Contains(t, params, "providers")
	assert.Equal(t, "A,B", params.Get("providers"))
	assert.Equal(t, "active", params.Get("status"))
	assert.Equal(t, "6000", params.Get("minPrice"))
	assert.Equal(t, "6000", params.Get("maxPrice"))
	assert.NotContains(t, params, "startDate")
}

func TestQueryIsZero(t *testing.T) {
	assert.True(t, Query{}.IsZero())
	assert.False(t, Normalize(Selection{PriceTick: 1}).IsZero())
}
