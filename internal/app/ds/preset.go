// internal/app/ds/preset.go
package ds

import "time"

// FilterPreset сохраненный набор фильтров пользователя.
// Поля повторяют панель фильтров: поставщики, дата с периодом, статус, позиция ползунка цены.
type FilterPreset struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_filter_presets_user" json:"user_id"`
	Name      string    `gorm:"type:varchar(255) not null" json:"name"`
	Providers string    `gorm:"type:text" json:"providers"`
	Date      string    `gorm:"type:varchar(10)" json:"date"`
	Period    string    `gorm:"type:varchar(20)" json:"period"`
	Status    string    `gorm:"type:varchar(20)" json:"status"`
	PriceTick int       `gorm:"type:integer;default:0" json:"price_tick"`
	CreatedAt time.Time `json:"created_at"`
}

// ColumnPreference видимые колонки таблицы клиентов для пользователя
type ColumnPreference struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Columns   string    `gorm:"type:text not null" json:"columns"`
	UpdatedAt time.Time `json:"updated_at"`
}
