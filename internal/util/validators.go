package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	gstinPattern   = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z]{1}[A-Z\d]{1}[Z]{1}[A-Z\d]{1}$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// ValidateGSTIN 验证GSTIN格式
func ValidateGSTIN(fl validator.FieldLevel) bool {
	return gstinPattern.MatchString(fl.Field().String())
}

// ValidatePAN 验证PAN格式
func ValidatePAN(fl validator.FieldLevel) bool {
	return panPattern.MatchString(fl.Field().String())
}

// ValidatePincode 验证6位邮政编码
func ValidatePincode(fl validator.FieldLevel) bool {
	return pincodePattern.MatchString(fl.Field().String())
}
