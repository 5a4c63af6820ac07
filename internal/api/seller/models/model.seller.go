// Package models - Seller thuộc domain seller (collection sellers).
// Đây là shape canonical (SellerV2): sau chuẩn hóa mọi field bắt buộc luôn có mặt,
// field optional có thể vắng nhưng không bao giờ sai kiểu.
package models

// Giá trị hợp lệ cho paymentMethods — phương thức thanh toán seller hỗ trợ.
const (
	PaymentMobileMoney    = "Mobile money"
	PaymentCashOnDelivery = "Cash on delivery"
	PaymentCard           = "Card"
	PaymentBankTransfer   = "Bank transfer"
)

// Giá trị hợp lệ cho deliveryOptions — hình thức giao hàng seller hỗ trợ.
const (
	DeliveryPickup      = "Pickup"
	DeliveryBodaBoda    = "Boda boda"
	DeliveryCourier     = "Courier"
	DeliveryCountrywide = "Countrywide delivery"
)

// Giá trị hợp lệ cho businessType
const (
	BusinessTypeIndividual = "individual"
	BusinessTypeBusiness   = "business"
)

// Giá trị hợp lệ cho subscriptionPlan
const (
	PlanBetaFree = "beta-free"
	PlanStarter  = "starter"
	PlanPro      = "pro"
)

// Giá trị mặc định khi field vắng hoặc không khôi phục được
const (
	DefaultStoreName = "Unnamed Store"
	DefaultCategory  = "Other"
	DefaultCountry   = "UG"
	DefaultCurrency  = "UGX"
)

// PaymentMethodValues liệt kê vocabulary cố định của paymentMethods.
// Giá trị ngoài danh sách bị drop khi chuẩn hóa (chính sách lossy có chủ đích).
var PaymentMethodValues = []string{
	PaymentMobileMoney,
	PaymentCashOnDelivery,
	PaymentCard,
	PaymentBankTransfer,
}

// DeliveryOptionValues liệt kê vocabulary cố định của deliveryOptions.
var DeliveryOptionValues = []string{
	DeliveryPickup,
	DeliveryBodaBoda,
	DeliveryCourier,
	DeliveryCountrywide,
}

// IsValidPaymentMethod kiểm tra membership trong vocabulary paymentMethods
func IsValidPaymentMethod(v string) bool {
	for _, m := range PaymentMethodValues {
		if v == m {
			return true
		}
	}
	return false
}

// IsValidDeliveryOption kiểm tra membership trong vocabulary deliveryOptions
func IsValidDeliveryOption(v string) bool {
	for _, d := range DeliveryOptionValues {
		if v == d {
			return true
		}
	}
	return false
}

// SellerSocialMedia chứa link mạng xã hội đã chuẩn hóa thành URL tuyệt đối.
type SellerSocialMedia struct {
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty" validate:"omitempty,social_url"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty" validate:"omitempty,social_url"`
	Tiktok    string `json:"tiktok,omitempty" bson:"tiktok,omitempty" validate:"omitempty,social_url"`
}

// Seller lưu hồ sơ seller canonical (sellers).
// _id là Firebase UID của seller — identity do Firebase quản lý, không phải ObjectID.
type Seller struct {
	// Identity
	ID       string `json:"id" bson:"_id"` // Firebase UID; record fallback có thể rỗng
	Email    string `json:"email" bson:"email" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	FullName string `json:"fullName,omitempty" bson:"fullName,omitempty"`

	// Store profile
	StoreName        string `json:"storeName" bson:"storeName" validate:"required"`
	StoreDescription string `json:"storeDescription,omitempty" bson:"storeDescription,omitempty"`
	BusinessEmail    string `json:"businessEmail,omitempty" bson:"businessEmail,omitempty" validate:"omitempty,email"`
	Category         string `json:"category" bson:"category" validate:"required"`
	BusinessType     string `json:"businessType" bson:"businessType" validate:"oneof=individual business"`

	// Locale / contact
	Country        string `json:"country" bson:"country" validate:"required,iso3166_1_alpha2"`
	City           string `json:"city,omitempty" bson:"city,omitempty"`
	Location       string `json:"location,omitempty" bson:"location,omitempty"`
	WhatsappNumber string `json:"whatsappNumber" bson:"whatsappNumber"` // best-effort E.164, không đảm bảo parse được
	Currency       string `json:"currency" bson:"currency" validate:"required,iso4217"`

	// Commerce configuration
	PaymentMethods  []string `json:"paymentMethods" bson:"paymentMethods" validate:"dive,payment_method"`
	DeliveryOptions []string `json:"deliveryOptions" bson:"deliveryOptions" validate:"dive,delivery_option"`
	OperatingHours  string   `json:"operatingHours,omitempty" bson:"operatingHours,omitempty"`
	ReturnPolicy    string   `json:"returnPolicy,omitempty" bson:"returnPolicy,omitempty"`

	// Branding
	LogoUrl     string             `json:"logoUrl,omitempty" bson:"logoUrl,omitempty" validate:"omitempty,url"`
	CoverUrl    string             `json:"coverUrl,omitempty" bson:"coverUrl,omitempty" validate:"omitempty,url"`
	BannerUrl   string             `json:"bannerUrl,omitempty" bson:"bannerUrl,omitempty" validate:"omitempty,url"`
	SocialMedia *SellerSocialMedia `json:"socialMedia,omitempty" bson:"socialMedia,omitempty"`

	// Metadata
	PreferredLanguage   string   `json:"preferredLanguage,omitempty" bson:"preferredLanguage,omitempty"`
	Tags                []string `json:"tags" bson:"tags"`
	SubscriptionPlan    string   `json:"subscriptionPlan" bson:"subscriptionPlan" validate:"oneof=beta-free starter pro"`
	OnboardingCompleted bool     `json:"onboardingCompleted" bson:"onboardingCompleted"`
	IsAdmin             bool     `json:"isAdmin" bson:"isAdmin"`
	CreatedAt           int64    `json:"createdAt" bson:"createdAt" validate:"required,gt=0"` // Unix ms
	UpdatedAt           int64    `json:"updatedAt" bson:"updatedAt" validate:"required,gt=0"` // Unix ms
}
