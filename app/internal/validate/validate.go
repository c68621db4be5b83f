package validate

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/zeebo/errs"

	"go-kanban/app/model/field"
)

var ErrValidate = errs.Class("validate")

// Enum 由 model/field 下的枚举类型实现
type Enum interface {
	IsValid() bool
}

// RegisterValidation 注册自定义验证标签，以及 Optional 字段的取值方式
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return ErrValidate.New("unexpected validator engine")
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(optionalValue,
		field.Optional[string]{},
		field.Optional[int]{},
		field.Optional[uuid.UUID]{},
		field.Optional[field.Date]{},
	)
	return ErrValidate.Wrap(v.RegisterValidation("enum", enum))
}

// optionalValue 未提交或 null 时返回 nil，配合 omitempty 跳过校验
func optionalValue(v reflect.Value) any {
	if o, ok := v.Interface().(interface{ Get() (any, bool) }); ok {
		if val, set := o.Get(); set {
			return val
		}
	}
	return nil
}

func enum(fl validator.FieldLevel) bool {
	if e, ok := fl.Field().Interface().(Enum); ok {
		return e.IsValid()
	}
	return false
}
