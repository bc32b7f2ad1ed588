package event

import (
	"context"
	"errors"
	"net/http"

	"campus-notifier/internal/global/pictureBed"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const imageField = "image"

// uploadImage 仅 multipart 请求可携带图片，未上传时返回 nil
func (m *ModuleEvent) uploadImage(c *gin.Context) (*model.Image, *response.Error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil
	}
	file, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, response.ErrInvalidRequest.WithOrigin(err)
	}

	img, err := m.Images.Upload(c.Request.Context(), file)
	switch {
	case errors.Is(err, pictureBed.ErrNotImage):
		return nil, response.ErrValidation.WithFields(imageField + ": must be an image file").WithOrigin(err)
	case err != nil:
		log.Error("图片上传失败", "error", err, "filename", file.Filename)
		return nil, response.ErrTransport.WithOrigin(err)
	}
	return img, nil
}

// dropImage 尽力删除图片，失败只记录日志
func (m *ModuleEvent) dropImage(ctx context.Context, img *model.Image) {
	if img == nil || img.PublicID == "" {
		return
	}
	if err := m.Images.Delete(ctx, img.PublicID); err != nil {
		log.Warn("删除图片失败", "error", err, "public_id", img.PublicID)
	}
}
