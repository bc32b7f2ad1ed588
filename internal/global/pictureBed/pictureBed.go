package pictureBed

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"campus-notifier/config"
	"campus-notifier/internal/model"

	"github.com/google/uuid"
)

// ErrNotImage 上传的文件不是允许的图片类型
var ErrNotImage = errors.New("unsupported image type")

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ImageStore 活动封面的存储，PublicID 用于之后删除
type ImageStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*model.Image, error)
	Delete(ctx context.Context, publicID string) error
}

// New 按配置选择本地磁盘或 S3
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverLocal, "":
		return NewLocal(cfg.Storage.Home, cfg.Storage.BaseURL), nil
	case config.StorageDriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// objectName 生成唯一对象名，保留小写扩展名
func objectName(filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExt[ext] {
		return "", ErrNotImage
	}
	return uuid.NewString() + ext, nil
}
