// cmd/migrate/migrate_gateway.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"CRM-Gateway/internal/app/ds"
)

func main() {
	// Получаем параметры подключения из .env
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "crm_gateway")
	dbUser := getEnv("DB_USER", "crm")
	dbPass := getEnv("DB_PASS", "crm")

	// Формируем DSN строку
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	fmt.Println("=== Gateway Migration ===")
	fmt.Printf("Connecting to: host=%s, db=%s, user=%s\n", dbHost, dbName, dbUser)

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	startTime := time.Now()

	// 1. Проверяем подключение
	fmt.Println("1. Checking database connection...")
	var result int
	db.Raw("SELECT 1").Scan(&result)
	if result == 1 {
		fmt.Println("   ✓ Database connection successful")
	} else {
		log.Fatal("   ✗ Database connection failed")
	}

	// 2. Мигрируем модели шлюза
	fmt.Println("2. Migrating gateway tables...")
	if err := db.AutoMigrate(&ds.User{}, &ds.FilterPreset{}, &ds.ColumnPreference{}); err != nil {
		log.Fatal("Failed to migrate tables:", err)
	}
	fmt.Println("   ✓ Tables 'users', 'filter_presets', 'column_preferences' created/verified")

	// 3. Создаем администратора по умолчанию, если его нет
	fmt.Println("3. Seeding default admin user...")
	var count int64
	db.Model(&ds.User{}).Where("is_admin = ?", true).Count(&count)
	if count == 0 {
		adminPass := getEnv("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash admin password:", err)
		}

		admin := ds.User{
			Name:     "Administrator",
			Email:    getEnv("ADMIN_EMAIL", "admin@crm-gateway.local"),
			Password: string(hash),
			IsAdmin:  true,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatal("Failed to seed admin user:", err)
		}
		fmt.Printf("   ✓ Admin user '%s' created\n", admin.Email)
	} else {
		fmt.Println("   ✓ Admin user already exists")
	}

	// 4. Индекс для выборки пресетов пользователя
	fmt.Println("4. Creating indexes...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_filter_presets_user_created
		 ON filter_presets (user_id, created_at DESC)`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Fatal("Failed to create indexes:", err)
	}
	fmt.Println("   ✓ Indexes created/verified")

	fmt.Printf("Migration finished in %s\n", time.Since(startTime))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
