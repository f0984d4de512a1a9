// internal/app/repository/export.go
package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

const (
	exportBucket = "client-exports"
)

var exportExtensions = map[string]string{
	"excel": "xlsx",
	"csv":   "csv",
	"pdf":   "pdf",
}

type ExportRepository struct {
	minioClient *minio.Client
}

func NewExportRepository(minioClient *minio.Client) *ExportRepository {
	return &ExportRepository{minioClient: minioClient}
}

// SaveExportFile сохраняет файл экспорта в MinIO и возвращает ссылку на скачивание
func (r *ExportRepository) SaveExportFile(ctx context.Context, userID uint, format, contentType string, data []byte) (string, error) {
	ext, ok := exportExtensions[format]
	if !ok {
		return "", fmt.Errorf("unsupported export format: %s", format)
	}

	fileName := fmt.Sprintf("clients_%d_%d.%s", userID, time.Now().Unix(), ext)

	_, err := r.minioClient.PutObject(ctx, exportBucket, fileName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to save export file: %v", err)
	}

	logrus.Printf("Export file saved to MinIO: %s", fileName)
	return fmt.Sprintf("%s:%s/%s/%s", os.Getenv("MINIO_HOST"), os.Getenv("MINIO_SERVER_PORT"), exportBucket, fileName), nil
}

// DeleteExportFile удаляет файл экспорта по ссылке
func (r *ExportRepository) DeleteExportFile(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	parts := strings.Split(fileURL, "/")
	if len(parts) == 0 {
		return fmt.Errorf("invalid export file URL format")
	}

	fileName := parts[len(parts)-1]

	_, err := r.minioClient.StatObject(ctx, exportBucket, fileName, minio.StatObjectOptions{})
	if err != nil {
		logrus.Printf("File %s not found in MinIO bucket %s, skipping deletion", fileName, exportBucket)
		return nil
	}

	if err := r.minioClient.RemoveObject(ctx, exportBucket, fileName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object from MinIO: %v", err)
	}

	return nil
}
