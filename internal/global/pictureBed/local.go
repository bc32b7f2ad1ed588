package pictureBed

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"campus-notifier/internal/model"
)

// Local 将图片保存到本地目录，由静态路由对外提供访问
type Local struct {
	SaveDir string
	BaseURL string
}

func NewLocal(saveDir, baseURL string) *Local {
	return &Local{SaveDir: saveDir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (l *Local) Upload(_ context.Context, fileHeader *multipart.FileHeader) (*model.Image, error) {
	name, err := objectName(fileHeader.Filename)
	if err != nil {
		return nil, err
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := os.MkdirAll(l.SaveDir, 0o755); err != nil {
		return nil, err
	}
	dst, err := os.Create(filepath.Join(l.SaveDir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}
	return &model.Image{URL: l.BaseURL + "/" + name, PublicID: name}, nil
}

// Delete 文件已不存在视为成功
func (l *Local) Delete(_ context.Context, publicID string) error {
	if publicID == "" || filepath.Base(publicID) != publicID {
		return errors.New("invalid image id")
	}
	err := os.Remove(filepath.Join(l.SaveDir, publicID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
