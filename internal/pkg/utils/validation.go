package utils

import (
	"lgu-portal-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate       *validator.Validate
	serviceIDRegex = regexp.MustCompile(constvars.RegexServiceID)
	fieldIDRegex   = regexp.MustCompile(constvars.RegexFieldID)
	keyPrefixRegex = regexp.MustCompile(constvars.RegexKeyPrefix)
)

var formFieldTypes = map[string]bool{
	"text": true, "email": true, "tel": true, "number": true, "select": true, "textarea": true,
	"file": true, "date": true, "cost": true, "password": true, "radio": true, "checkbox": true,
}

var paymentMethods = map[string]bool{
	constvars.PaymentMethodCard:           true,
	constvars.PaymentMethodDigitalWallets: true,
	constvars.PaymentMethodDOB:            true,
	constvars.PaymentMethodQRPH:           true,
}

var breakdownCodes = map[string]bool{
	"base": true, "tax": true, "convenience_fee": true, "processing_fee": true, "discount": true, "other": true,
}

func init() {
	validate = validator.New()
	validate.RegisterValidation("service_id", validateServiceID)
	validate.RegisterValidation("field_id", validateFieldID)
	validate.RegisterValidation("field_type", validateFieldType)
	validate.RegisterValidation("payment_method", validatePaymentMethod)
	validate.RegisterValidation("breakdown_code", validateBreakdownCode)
	validate.RegisterValidation("key_prefix", validateKeyPrefix)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func IsValidPaymentMethod(method string) bool {
	return paymentMethods[method]
}

func validateServiceID(fl validator.FieldLevel) bool {
	return serviceIDRegex.MatchString(fl.Field().String())
}

func validateFieldID(fl validator.FieldLevel) bool {
	return fieldIDRegex.MatchString(fl.Field().String())
}

func validateFieldType(fl validator.FieldLevel) bool {
	return formFieldTypes[fl.Field().String()]
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return paymentMethods[fl.Field().String()]
}

func validateBreakdownCode(fl validator.FieldLevel) bool {
	return breakdownCodes[fl.Field().String()]
}

func validateKeyPrefix(fl validator.FieldLevel) bool {
	return keyPrefixRegex.MatchString(fl.Field().String())
}
