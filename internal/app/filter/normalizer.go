// internal/app/filter/normalizer.go
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Period интерпретация поля даты как якоря диапазона.
// Значения совпадают с кнопками панели фильтров.
type Period string

const (
	PeriodNone  Period = ""
	PeriodToday Period = "hoy"
	PeriodWeek  Period = "esta-semana"
	PeriodMonth Period = "este-mes"
)

// Отображаемые значения статуса в панели фильтров
const (
	StatusAll           = "Todos"
	StatusActiveLabel   = "Activo"
	StatusInactiveLabel = "Inactivo"
)

const (
	// PriceTickStep шаг ползунка цены. Коэффициент взят из UI как есть,
	// единица измерения не документирована.
	PriceTickStep = 2000

	// MaxPriceTick максимальная позиция ползунка
	MaxPriceTick = 10
)

// Selection выбор фильтров в панели до нажатия "Aplicar"
type Selection struct {
	Providers []string `json:"providers"`
	Date      string   `json:"date"`
	Period    Period   `json:"period"`
	Status    string   `json:"status"`
	PriceTick int      `json:"price_tick"`
}

// Query нормализованный набор параметров для upstream API.
// Нулевое значение поля означает отсутствие фильтра: upstream
// трактует само наличие ключа как активный фильтр.
type Query struct {
	Providers string `json:"providers,omitempty"`
	Status    string `json:"status,omitempty"`
	MinPrice  int    `json:"minPrice,omitempty"`
	MaxPrice  int    `json:"maxPrice,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Normalize преобразует выбор фильтров в параметры запроса к upstream API.
// Чистая функция без побочных эффектов.
func Normalize(sel Selection) Query {
	q := Query{}

	if len(sel.Providers) > 0 {
		q.Providers = strings.Join(sel.Providers, ",")
	}

	// Сентинел "Todos" не попадает в запрос
	switch sel.Status {
	case StatusActiveLabel:
		q.Status = "active"
	case StatusInactiveLabel:
		q.Status = "inactive"
	}

	// Позиция 0 означает "без фильтра по цене": minPrice=0/maxPrice=0
	// некорректно исключили бы записи
	if sel.PriceTick > 0 {
		q.MinPrice = sel.PriceTick * PriceTickStep
		q.MaxPrice = sel.PriceTick * PriceTickStep
	}

	if start, ok := parseDisplayDate(sel.Date); ok {
		q.StartDate = start.Format("2006-01-02")
		switch sel.Period {
		case PeriodToday:
			q.EndDate = q.StartDate
		case PeriodWeek:
			q.EndDate = start.AddDate(0, 0, 6).Format("2006-01-02")
		case PeriodMonth:
			// День 0 следующего месяца - последний день текущего,
			// корректно для 28-31 дней и високосного февраля
			lastDay := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC)
			q.EndDate = lastDay.Format("2006-01-02")
		}
	}

	return q
}

// parseDisplayDate разбирает дату в формате dd/mm/yyyy.
// Некорректная строка молча отбрасывается: поля дат просто не попадают в запрос.
func parseDisplayDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// IsZero сообщает, что ни один фильтр не активен
func (q Query) IsZero() bool {
	return q == Query{}
}

// Apply добавляет активные фильтры в параметры запроса
func (q Query) Apply(params url.Values) {
	if q.Providers != "" {
		params.Set("providers", q.Providers)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.MinPrice > 0 {
		params.Set("minPrice", strconv.Itoa(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(q.MaxPrice))
	}
	if q.StartDate != "" {
		params.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("endDate", q.EndDate)
	}
}

// Params возвращает фильтры как самостоятельный набор параметров
func (q Query) Params() url.Values {
	params := url.Values{}
	q.Apply(params)
	return params
}
