package util

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// MaxUploadSize 单个上传文件的大小上限
const MaxUploadSize = 10 << 20

// 允许上传的文件类型
var allowedUploadTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateUpload 校验上传文件的大小和类型
func ValidateUpload(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("文件 %s 超过大小上限", file.Filename)
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return fmt.Errorf("不支持的文件类型: %s", contentType)
	}
	return nil
}

// GenerateUniqueFilename 生成唯一的文件名
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	name := filepath.Base(originalFilename)
	name = strings.ReplaceAll(name[:len(name)-len(ext)], " ", "_")

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return name + "_" + timestamp + ext
}

// TrimExtension 去掉文件名的扩展名，用于证书名称展示
func TrimExtension(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
