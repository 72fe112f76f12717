package business

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

// Validator 请求参数校验（字段路径使用 json 名）
type Validator struct {
	validate *validator.Validate
}

// NewValidator 创建校验器
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct 校验结构体，失败返回 InvalidArgument
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errorutil.InvalidArgument(err.Error())
	}

	fields := make([]errorutil.FieldDetail, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, errorutil.FieldDetail{
			Path: fieldPath(fieldErr),
			Info: FieldErrorMessage(fieldErr),
		})
	}
	return errorutil.InvalidArgument("Validation failed", fields...)
}

// FieldErrorMessage 根据校验 tag 返回可读的错误消息
func FieldErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "gte":
		return fieldErr.Field() + " must be greater than or equal to " + fieldErr.Param()
	case "lte":
		return fieldErr.Field() + " must be less than or equal to " + fieldErr.Param()
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param()
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid"
	}
}

// fieldPath 去掉顶层结构体名，例如 ForecastRequest.affected_population → affected_population
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
