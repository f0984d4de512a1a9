// internal/app/repository/preset.go
package repository

import (
	"errors"
	"fmt"
	"strings"

	"CRM-Gateway/internal/app/ds"
	"CRM-Gateway/internal/app/filter"

	"gorm.io/gorm"
)

// Колонки таблицы клиентов по умолчанию
const defaultColumns = "name,email,phone,date,amount,status"

type PresetRepository struct {
	db *gorm.DB
}

func NewPresetRepository(db *gorm.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

// GetPresets возвращает сохраненные наборы фильтров пользователя
func (r *PresetRepository) GetPresets(userID uint) ([]ds.FilterPreset, error) {
	var presets []ds.FilterPreset
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&presets).Error
	return presets, err
}

// SavePreset сохраняет набор фильтров под именем
func (r *PresetRepository) SavePreset(userID uint, name string, sel filter.Selection) (ds.FilterPreset, error) {
	preset := ds.FilterPreset{
		UserID:    userID,
		Name:      name,
		Providers: strings.Join(sel.Providers, ","),
		Date:      sel.Date,
		Period:    string(sel.Period),
		Status:    sel.Status,
		PriceTick: sel.PriceTick,
	}

	if err := r.db.Create(&preset).Error; err != nil {
		return ds.FilterPreset{}, err
	}
	return preset, nil
}

// GetPreset возвращает набор фильтров пользователя по ID
func (r *PresetRepository) GetPreset(userID, presetID uint) (ds.FilterPreset, error) {
	var preset ds.FilterPreset
	err := r.db.Where("id = ? AND user_id = ?", presetID, userID).First(&preset).Error
	return preset, err
}

// DeletePreset удаляет набор фильтров пользователя
func (r *PresetRepository) DeletePreset(userID, presetID uint) error {
	result := r.db.
		Where("id = ? AND user_id = ?", presetID, userID).
		Delete(&ds.FilterPreset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("preset with id %d not found", presetID)
	}
	return nil
}

// PresetSelection восстанавливает выбор фильтров из сохраненного набора
func PresetSelection(preset ds.FilterPreset) filter.Selection {
	var providers []string
	if preset.Providers != "" {
		providers = strings.Split(preset.Providers, ",")
	}

	return filter.Selection{
		Providers: providers,
		Date:      preset.Date,
		Period:    filter.Period(preset.Period),
		Status:    preset.Status,
		PriceTick: preset.PriceTick,
	}
}

// GetColumns возвращает видимые колонки пользователя
func (r *PresetRepository) GetColumns(userID uint) ([]string, error) {
	var pref ds.ColumnPreference
	err := r.db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return strings.Split(defaultColumns, ","), nil
	}
	if err != nil {
		return nil, err
	}
	return strings.Split(pref.Columns, ","), nil
}

// SaveColumns сохраняет видимые колонки. Хотя бы одна колонка должна остаться.
func (r *PresetRepository) SaveColumns(userID uint, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("at least one visible column is required")
	}

	pref := ds.ColumnPreference{
		UserID:  userID,
		Columns: strings.Join(columns, ","),
	}

	return r.db.Save(&pref).Error
}
