package crm

import (
	"testing"

	"CRM-Gateway/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providerList(names ...string) []ds.Provider {
	providers := make([]ds.Provider, 0, len(names))
	for i, name := range names {
		providers = append(providers, ds.Provider{ID: uint(i + 1), Name: name})
	}
	return providers
}

func TestGroupProviders(t *testing.T) {
	providers := providerList(
		"CloudWave",
		"AgileSoft Solutions",
		"Active S.L",
		"TechCorp Solutions",
		"cloudNine",
	)

	t.Run("groups by uppercase first letter, sorted", func(t *testing.T) {
		groups := GroupProviders(providers, "")
		require.Len(t, groups, 3)

		assert.Equal(t, "A", groups[0].Letter)
		assert.Equal(t, "C", groups[1].Letter)
		assert.Equal(t, "T", groups[2].Letter)

		require.Len(t, groups[0].Items, 2)
		assert.Equal(t, "Active S.L", groups[0].Items[0].Name)
		assert.Equal(t, "AgileSoft Solutions", groups[0].Items[1].Name)

		// Регистр первой буквы не влияет на группу
		require.Len(t, groups[1].Items, 2)
	})

	t.Run("search is a case-insensitive substring match", func(t *testing.T) {
		groups := GroupProviders(providers, "CLOUD")
		require.Len(t, groups, 1)
		assert.Equal(t, "C", groups[0].Letter)
		assert.Len(t, groups[0].Items, 2)
	})

	t.Run("no match yields no groups", func(t *testing.T) {
		groups := GroupProviders(providers, "zzz")
		assert.Empty(t, groups)
	})

	t.Run("empty names are skipped", func(t *testing.T) {
		groups := GroupProviders(providerList("", "Bing Soft"), "")
		require.Len(t, groups, 1)
		assert.Equal(t, "B", groups[0].Letter)
	})
}
