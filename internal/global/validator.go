package global

import (
	"strings"

	"github.com/go-playground/validator/v10"

	sellermodels "soko_commerce/internal/api/seller/models"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Vocabulary cố định có giá trị chứa khoảng trắng ("Mobile money") nên
	// không dùng được oneof — đăng ký custom validator membership.
	_ = Validate.RegisterValidation("payment_method", validatePaymentMethod)
	_ = Validate.RegisterValidation("delivery_option", validateDeliveryOption)
	_ = Validate.RegisterValidation("social_url", validateSocialURL)
}

// GetValidator trả về validator dùng chung, tự khởi tạo nếu chưa có
// (script và test không đi qua đường init của server).
func GetValidator() *validator.Validate {
	if Validate == nil {
		InitValidator()
	}
	return Validate
}

// validatePaymentMethod kiểm tra giá trị thuộc vocabulary paymentMethods
func validatePaymentMethod(fl validator.FieldLevel) bool {
	return sellermodels.IsValidPaymentMethod(fl.Field().String())
}

// validateDeliveryOption kiểm tra giá trị thuộc vocabulary deliveryOptions
func validateDeliveryOption(fl validator.FieldLevel) bool {
	return sellermodels.IsValidDeliveryOption(fl.Field().String())
}

// validateSocialURL kiểm tra link mạng xã hội đã chuẩn hóa thành URL tuyệt đối
func validateSocialURL(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
