package repository

import (
	"context"
	"fmt"

	"CRM-Gateway/internal/app/config"
	"CRM-Gateway/internal/app/dsn"
	"CRM-Gateway/internal/app/redis"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db          *gorm.DB
	redisClient *redis.Client
	User        *UserRepository
	Preset      *PresetRepository
	Export      *ExportRepository
}

func NewRepository() (*Repository, error) {
	// Загружаем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	// Инициализируем базу данных
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Инициализируем Redis клиент
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logrus.Warnf("Failed to initialize Redis client: %v", err)
		// Продолжаем без Redis, но логируем предупреждение
	}

	// Инициализируем MinIO клиент
	minioClient, err := initMinIOClient(cfg)
	if err != nil {
		return nil, err
	}

	repo := &Repository{
		db:          db,
		redisClient: redisClient,
		User:        NewUserRepository(db),
		Preset:      NewPresetRepository(db),
		Export:      NewExportRepository(minioClient),
	}

	return repo, nil
}

// GetRedisClient возвращает Redis клиент
func (r *Repository) GetRedisClient() *redis.Client {
	return r.redisClient
}

// Close закрывает все соединения
func (r *Repository) Close() {
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			logrus.Errorf("Error closing Redis client: %v", err)
		}
	}
}

func initMinIOClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	ctx := context.Background()

	// Проверяем подключение
	_, err = minioClient.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("minio connection test failed: %v", err)
	}

	// Создаем bucket для файлов экспорта если не существует
	exists, err := minioClient.BucketExists(ctx, exportBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = minioClient.MakeBucket(ctx, exportBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %v", err)
		}
	}

	logrus.Info("MinIO client initialized successfully")
	return minioClient, nil
}
