package storage

import (
	"mime/multipart"

	"recyclemart-backend/config"
)

// FileStorage 文件存储后端抽象
type FileStorage interface {
	// UploadFile 保存上传文件并返回可访问的URL或相对路径
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// NewFileStorage 根据配置选择存储后端
// 配置了 S3 桶时走 S3，否则落到本地磁盘
func NewFileStorage(cfg *config.Config) (FileStorage, error) {
	if cfg.S3Bucket != "" {
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	}
	return NewLocalStorage(cfg.LocalStoragePath)
}
