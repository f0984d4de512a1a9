// internal/app/crm/importexport.go
package crm

import (
	"context"
	"fmt"
	"io"

	"CRM-Gateway/internal/app/ds"
	"CRM-Gateway/internal/app/filter"
)

// Допустимые форматы экспорта
var exportFormats = map[string]string{
	"excel": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":   "text/csv",
	"pdf":   "application/pdf",
}

// ExportContentType возвращает MIME-тип для формата экспорта
func ExportContentType(format string) (string, bool) {
	ct, ok := exportFormats[format]
	return ct, ok
}

// ImportClients загружает файл клиентов в upstream API
func (a *API) ImportClients(ctx context.Context, filename string, file io.Reader) (ds.ImportResult, error) {
	var out ds.ImportResult

	resp, err := a.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, file).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/import")
	if err != nil {
		return ds.ImportResult{}, fmt.Errorf("failed to import clients: %w", err)
	}
	if resp.IsError() {
		return ds.ImportResult{}, upstreamError(resp)
	}

	return out, nil
}

// ExportClients выгружает клиентов в заданном формате. Фильтры передаются
// в той же форме, что и для эндпоинта списка.
func (a *API) ExportClients(ctx context.Context, format string, filters filter.Query) ([]byte, error) {
	if _, ok := exportFormats[format]; !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	params := filters.Params()
	params.Set("format", format)

	resp, err := a.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetError(&apiError{}).
		Get("/export")
	if err != nil {
		return nil, fmt.Errorf("failed to export clients: %w", err)
	}
	if resp.IsError() {
		return nil, upstreamError(resp)
	}

	return resp.Body(), nil
}
