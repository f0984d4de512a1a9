// internal/app/crm/api.go
package crm

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"CRM-Gateway/internal/app/ds"

	"github.com/go-resty/resty/v2"
)

// API клиент upstream CRM API. Все операции над клиентами и поставщиками
// выполняются на стороне upstream, шлюз их только проксирует.
type API struct {
	http *resty.Client
}

func New(baseURL, token string, timeout time.Duration) *API {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if token != "" {
		client.SetAuthToken(token)
	}

	return &API{http: client}
}

// apiError тело ошибки upstream API
type apiError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// listResponse ответ эндпоинта списка. Upstream отдает записи либо в ключе
// data, либо в ключе clients - принимаем оба варианта.
type listResponse struct {
	Data       []ds.Client       `json:"data"`
	Clients    []ds.Client       `json:"clients"`
	Pagination ds.PaginationInfo `json:"pagination"`
}

func (r *listResponse) items() []ds.Client {
	if r.Data != nil {
		return r.Data
	}
	return r.Clients
}

func upstreamError(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
		return fmt.Errorf("upstream API error %d: %s", resp.StatusCode(), apiErr.Message)
	}
	return fmt.Errorf("upstream API error %d", resp.StatusCode())
}

// FetchClients запрашивает страницу клиентов с заданными параметрами
func (a *API) FetchClients(ctx context.Context, params url.Values) (ds.ClientPage, error) {
	var out listResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/clients")
	if err != nil {
		return ds.ClientPage{}, fmt.Errorf("failed to fetch clients: %w", err)
	}
	if resp.IsError() {
		return ds.ClientPage{}, upstreamError(resp)
	}

	return ds.ClientPage{
		Clients:    out.items(),
		Pagination: out.Pagination,
	}, nil
}

// GetClient возвращает клиента по ID
func (a *API) GetClient(ctx context.Context, id uint) (ds.Client, error) {
	var out ds.Client

	resp, err := a.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get(fmt.Sprintf("/clients/%d", id))
	if err != nil {
		return ds.Client{}, fmt.Errorf("failed to get client %d: %w", id, err)
	}
	if resp.IsError() {
		return ds.Client{}, upstreamError(resp)
	}

	return out, nil
}

// CreateClient создает клиента
func (a *API) CreateClient(ctx context.Context, input ds.ClientInput) (ds.Client, error) {
	var out ds.Client

	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/clients")
	if err != nil {
		return ds.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	if resp.IsError() {
		return ds.Client{}, upstreamError(resp)
	}

	return out, nil
}

// UpdateClient обновляет поля клиента
func (a *API) UpdateClient(ctx context.Context, id uint, input ds.ClientInput) (ds.Client, error) {
	var out ds.Client

	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&out).
		SetError(&apiError{}).
		Put(fmt.Sprintf("/clients/%d", id))
	if err != nil {
		return ds.Client{}, fmt.Errorf("failed to update client %d: %w", id, err)
	}
	if resp.IsError() {
		return ds.Client{}, upstreamError(resp)
	}

	return out, nil
}

// DeleteClient удаляет клиента
func (a *API) DeleteClient(ctx context.Context, id uint) error {
	resp, err := a.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete(fmt.Sprintf("/clients/%d", id))
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	if resp.IsError() {
		return upstreamError(resp)
	}
	return nil
}

// DeleteClients удаляет несколько клиентов за один запрос
func (a *API) DeleteClients(ctx context.Context, ids []uint) error {
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(map[string][]uint{"ids": ids}).
		SetError(&apiError{}).
		Post("/clients/delete-multiple")
	if err != nil {
		return fmt.Errorf("failed to delete clients: %w", err)
	}
	if resp.IsError() {
		return upstreamError(resp)
	}
	return nil
}
