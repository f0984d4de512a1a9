package ds

// PaginationInfo представляет метаданные пагинации в формате upstream API
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ClientPage страница клиентов, полученная от upstream API
type ClientPage struct {
	Clients    []Client       `json:"clients"`
	Pagination PaginationInfo `json:"pagination"`
}

// ImportError ошибка импорта одной строки файла
type ImportError struct {
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

// ImportResult результат импорта файла клиентов
type ImportResult struct {
	Imported int           `json:"imported"`
	Errors   []ImportError `json:"errors"`
}
