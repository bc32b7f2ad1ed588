package response

import (
	"errors"
	"reflect"
	"strings"

	"campus-notifier/internal/model"
	"campus-notifier/internal/store"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// 校验错误使用 json/form 字段名而不是 Go 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// FromBinding 把 ShouldBind 的错误转成响应错误：字段约束失败返回字段列表，其余视为请求格式错误
func FromBinding(err error) *Error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		fields := make([]string, 0, len(ves))
		for _, fe := range ves {
			fields = append(fields, fe.Field()+": "+model.Reason(fe))
		}
		return ErrValidation.WithFields(fields...).WithOrigin(err)
	}
	return ErrInvalidRequest.WithOrigin(err)
}

// FromStore 把持久层的哨兵错误映射为响应错误，未知错误视为数据库错误
func FromStore(err error) *Error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return ErrValidation.WithFields(ve.FieldErrors()...).WithOrigin(err)
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound.WithOrigin(err)
	case errors.Is(err, store.ErrDuplicate):
		return ErrAlreadyExists.WithOrigin(err)
	case errors.Is(err, store.ErrInvalidID):
		return ErrInvalidID.WithOrigin(err)
	default:
		return ErrDatabase.WithOrigin(err)
	}
}
