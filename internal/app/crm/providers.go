// internal/app/crm/providers.go
package crm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"CRM-Gateway/internal/app/ds"
)

// GetProviders возвращает всех поставщиков
func (a *API) GetProviders(ctx context.Context) ([]ds.Provider, error) {
	var out []ds.Provider

	resp, err := a.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/providers")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}
	if resp.IsError() {
		return nil, upstreamError(resp)
	}

	return out, nil
}

// GroupProviders фильтрует поставщиков по подстроке без учета регистра
// и группирует по первой букве имени для панели выбора
func GroupProviders(providers []ds.Provider, search string) []ds.ProviderGroup {
	search = strings.ToLower(strings.TrimSpace(search))

	byLetter := make(map[string][]ds.Provider)
	for _, p := range providers {
		if p.Name == "" {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}

		letter := string(unicode.ToUpper([]rune(p.Name)[0]))
		byLetter[letter] = append(byLetter[letter], p)
	}

	letters := make([]string, 0, len(byLetter))
	for letter := range byLetter {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	groups := make([]ds.ProviderGroup, 0, len(letters))
	for _, letter := range letters {
		items := byLetter[letter]
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		groups = append(groups, ds.ProviderGroup{Letter: letter, Items: items})
	}
	return groups
}
