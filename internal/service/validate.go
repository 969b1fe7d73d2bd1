package service

import (
	"fmt"
	"strings"

	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/util"

	"github.com/go-playground/validator/v10"
)

// validate 是服务层共享的校验器，注册了业务自定义规则
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("gstin", util.ValidateGSTIN)
	v.RegisterValidation("pan", util.ValidatePAN)
	v.RegisterValidation("pincode", util.ValidatePincode)
	return v
}

// validateInput 执行结构体校验并把失败转换为字段级校验错误
// 校验必须发生在任何持久化或缓存操作之前
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrValidation, "Validation Error", err)
	}

	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		details = append(details, validationMessage(fe))
	}
	return errors.NewValidation(details)
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have length %s", field, fe.Param())
	case "gstin":
		return fmt.Sprintf("%s must be a valid GSTIN", field)
	case "pan":
		return fmt.Sprintf("%s must be a valid PAN", field)
	case "pincode":
		return fmt.Sprintf("%s must be a valid 6-digit pincode", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
