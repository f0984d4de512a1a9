// internal/app/roster/controller.go
package roster

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"CRM-Gateway/internal/app/ds"
	"CRM-Gateway/internal/app/filter"
)

// ItemsPerPage фиксированный размер страницы списка клиентов
const ItemsPerPage = 10

// ErrStaleResponse ответ upstream пришел после того, как запрос был вытеснен
// более новым событием. Отбрасывается молча, пользователю не показывается.
var ErrStaleResponse = errors.New("stale response superseded by a newer query")

// Fetcher запрашивает страницу клиентов у upstream API
type Fetcher interface {
	FetchClients(ctx context.Context, params url.Values) (ds.ClientPage, error)
}

// Controller хранит состояние списка клиентов одного пользователя:
// страницу, поиск, примененные фильтры и выделенные строки.
// Метаданные пагинации принимаются только из ответа сервера.
type Controller struct {
	mu      sync.Mutex
	fetcher Fetcher

	page       int
	totalItems int64
	totalPages int

	searchTerm string
	filters    filter.Query

	selected map[uint]struct{}
	clients  []ds.Client

	// Счетчик поколений для защиты от устаревших ответов: каждое событие,
	// меняющее эффективный запрос, делает незавершенные выборки недействительными
	gen uint64
}

func NewController(fetcher Fetcher) *Controller {
	return &Controller{
		fetcher:    fetcher,
		page:       1,
		totalPages: 1,
		selected:   make(map[uint]struct{}),
	}
}

// SetSearchTerm устанавливает строку поиска и возвращает страницу на первую.
// Примененные фильтры не сбрасываются.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchTerm = term
	c.page = 1
	c.gen++
}

// ApplyFilters нормализует выбор фильтров и заменяет примененный набор целиком
func (c *Controller) ApplyFilters(sel filter.Selection) filter.Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filters = filter.Normalize(sel)
	c.page = 1
	c.selected = make(map[uint]struct{})
	c.gen++

	return c.filters
}

// SetPage переходит на страницу n. Выход за [1, totalPages] игнорируется.
func (c *Controller) SetPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 1 || n > c.totalPages || n == c.page {
		return false
	}

	c.page = n
	c.selected = make(map[uint]struct{})
	c.gen++
	return true
}

// NextPage переходит на следующую страницу, если она существует
func (c *Controller) NextPage() bool {
	c.mu.Lock()
	n := c.page + 1
	c.mu.Unlock()
	return c.SetPage(n)
}

// PreviousPage переходит на предыдущую страницу, если она существует
func (c *Controller) PreviousPage() bool {
	c.mu.Lock()
	n := c.page - 1
	c.mu.Unlock()
	return c.SetPage(n)
}

// ToggleRow переключает выделение строки текущей страницы
func (c *Controller) ToggleRow(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// ToggleSelectAll работает только со строками текущей страницы:
// если все уже выделены - снимает выделение, иначе выделяет все
func (c *Controller) ToggleSelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	allSelected := len(c.clients) > 0
	for _, client := range c.clients {
		if _, ok := c.selected[client.ID]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		c.selected = make(map[uint]struct{})
		return
	}

	for _, client := range c.clients {
		c.selected[client.ID] = struct{}{}
	}
}

// ClearSelection снимает выделение со всех строк
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = make(map[uint]struct{})
}

// Selected возвращает ID выделенных строк по возрастанию
func (c *Controller) Selected() []uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]uint, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EffectiveQuery собирает параметры следующего запроса к upstream API
func (c *Controller) EffectiveQuery() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveQueryLocked()
}

func (c *Controller) effectiveQueryLocked() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(c.page))
	params.Set("limit", strconv.Itoa(ItemsPerPage))
	if c.searchTerm != "" {
		params.Set("search", c.searchTerm)
	}
	c.filters.Apply(params)
	return params
}

// Refresh выполняет выборку текущей страницы. Ответ, пришедший после того,
// как запрос изменился, отбрасывается с ErrStaleResponse. При ошибке upstream
// список очищается, но страница/поиск/фильтры сохраняются для повтора.
func (c *Controller) Refresh(ctx context.Context) (ds.ClientPage, error) {
	c.mu.Lock()
	gen := c.gen
	params := c.effectiveQueryLocked()
	c.mu.Unlock()

	page, err := c.fetcher.FetchClients(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return ds.ClientPage{}, ErrStaleResponse
	}

	if err != nil {
		c.clients = nil
		c.totalItems = 0
		c.totalPages = 1
		c.selected = make(map[uint]struct{})
		return ds.ClientPage{}, fmt.Errorf("failed to fetch clients: %w", err)
	}

	// Сервер авторитетен: totalPages не пересчитывается из totalItems.
	// totalPages=1 при totalItems=0 - пустой результат, не ошибка.
	c.clients = page.Clients
	c.totalItems = page.Pagination.Total
	c.totalPages = page.Pagination.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.selected = make(map[uint]struct{})

	return page, nil
}

// Clients возвращает строки текущей страницы
func (c *Controller) Clients() []ds.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ds.Client, len(c.clients))
	copy(out, c.clients)
	return out
}

// PageInfo возвращает текущие метаданные пагинации
func (c *Controller) PageInfo() ds.PaginationInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ds.PaginationInfo{
		Page:       c.page,
		Limit:      ItemsPerPage,
		Total:      c.totalItems,
		TotalPages: c.totalPages,
	}
}

// ActiveFilters возвращает последний примененный набор фильтров
func (c *Controller) ActiveFilters() filter.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SearchTerm возвращает текущую строку поиска
func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchTerm
}
