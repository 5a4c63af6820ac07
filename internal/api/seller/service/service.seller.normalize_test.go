// Package sellersvc - Test chuẩn hóa record seller: totality, idempotence,
// enum closure, whatsapp, social URL.
package sellersvc

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	sellermodels "soko_commerce/internal/api/seller/models"
	"soko_commerce/internal/global"
	"soko_commerce/internal/utility"
)

// TestNormalizeSeller_Totality: mọi input, kể cả input hỏng hoàn toàn,
// đều trả về record hợp lệ theo schema, không panic.
func TestNormalizeSeller_Totality(t *testing.T) {
	inputs := []interface{}{
		nil,
		"không phải object",
		42,
		3.14,
		true,
		[]interface{}{"mảng", "không phải", "object"},
		bson.M{},
		bson.M{"paymentMethods": 12345, "createdAt": bson.M{"rác": true}},
		bson.M{"socialMedia": "không phải object", "tags": bson.M{"a": 1}},
	}

	for i, input := range inputs {
		seller, _ := NormalizeSeller(input)
		if err := global.GetValidator().Struct(seller); err != nil {
			t.Errorf("input %d: record sau chuẩn hóa không hợp lệ theo schema: %v", i, err)
		}
		if seller.PaymentMethods == nil || seller.DeliveryOptions == nil || seller.Tags == nil {
			t.Errorf("input %d: mảng output không được là nil", i)
		}
		if seller.CreatedAt <= 0 || seller.UpdatedAt <= 0 {
			t.Errorf("input %d: timestamp phải là Unix ms dương", i)
		}
	}
}

// TestNormalizeSeller_LegacyRecord: scenario 1 — map boolean paymentMethods,
// số nội địa, field vắng được gán mặc định.
func TestNormalizeSeller_LegacyRecord(t *testing.T) {
	legacy := bson.M{
		"_id":       "s1",
		"email":     "a@b.com",
		"storeName": "Joe's Shop",
		"paymentMethods": bson.M{
			sellermodels.PaymentMobileMoney: true,
			sellermodels.PaymentCard:        false,
		},
		"whatsappNumber": "0772123456",
	}

	seller, outcome := NormalizeSeller(legacy)

	if seller.ID != "s1" {
		t.Errorf("ID = %q, expected s1", seller.ID)
	}
	if seller.Email != "a@b.com" {
		t.Errorf("Email = %q, expected a@b.com", seller.Email)
	}
	if !reflect.DeepEqual(seller.PaymentMethods, []string{sellermodels.PaymentMobileMoney}) {
		t.Errorf("PaymentMethods = %v, chỉ key truthy thuộc vocabulary được giữ", seller.PaymentMethods)
	}
	if seller.WhatsappNumber != "+256772123456" {
		t.Errorf("WhatsappNumber = %q, expected +256772123456", seller.WhatsappNumber)
	}
	if seller.Country != sellermodels.DefaultCountry {
		t.Errorf("Country = %q, expected mặc định %q", seller.Country, sellermodels.DefaultCountry)
	}
	if seller.Currency != sellermodels.DefaultCurrency {
		t.Errorf("Currency = %q, expected mặc định %q", seller.Currency, sellermodels.DefaultCurrency)
	}
	if seller.SocialMedia != nil {
		t.Error("SocialMedia phải vắng khi legacy không có")
	}
	if outcome.FellBack {
		t.Error("record coerce được không được rơi về fallback")
	}
	if len(outcome.Defaulted) == 0 {
		t.Error("outcome phải ghi nhận các field được gán mặc định")
	}
}

// TestNormalizeSeller_EmptyObject: scenario 2 — object trống ra record mặc định tối thiểu.
func TestNormalizeSeller_EmptyObject(t *testing.T) {
	seller, _ := NormalizeSeller(bson.M{})

	if seller.ID != "" || seller.Email != "" {
		t.Errorf("ID/Email phải rỗng, got %q/%q", seller.ID, seller.Email)
	}
	if seller.StoreName != sellermodels.DefaultStoreName {
		t.Errorf("StoreName = %q, expected %q", seller.StoreName, sellermodels.DefaultStoreName)
	}
	if seller.Category != sellermodels.DefaultCategory {
		t.Errorf("Category = %q, expected %q", seller.Category, sellermodels.DefaultCategory)
	}
	if seller.WhatsappNumber != "" {
		t.Errorf("WhatsappNumber = %q, expected rỗng", seller.WhatsappNumber)
	}
	if len(seller.PaymentMethods) != 0 || len(seller.DeliveryOptions) != 0 || len(seller.Tags) != 0 {
		t.Error("mọi mảng phải rỗng cho object trống")
	}
	if err := global.GetValidator().Struct(seller); err != nil {
		t.Errorf("record mặc định tối thiểu phải hợp lệ theo schema: %v", err)
	}
}

// TestNormalizeSeller_SocialHandle: scenario 3 + round-trip URL.
func TestNormalizeSeller_SocialHandle(t *testing.T) {
	seller, _ := NormalizeSeller(bson.M{
		"_id":   "s3",
		"email": "a@b.com",
		"socialMedia": bson.M{
			"instagram": "@joeshop",
			"facebook":  "https://facebook.com/joeshop",
			"tiktok":    "joeshop",
		},
	})

	if seller.SocialMedia == nil {
		t.Fatal("SocialMedia không được nil")
	}
	if seller.SocialMedia.Instagram != "https://instagram.com/joeshop" {
		t.Errorf("Instagram = %q, expected https://instagram.com/joeshop", seller.SocialMedia.Instagram)
	}
	// URL tuyệt đối giữ nguyên
	if seller.SocialMedia.Facebook != "https://facebook.com/joeshop" {
		t.Errorf("Facebook = %q, URL tuyệt đối phải giữ nguyên", seller.SocialMedia.Facebook)
	}
	// TikTok dùng dạng @handle
	if seller.SocialMedia.Tiktok != "https://tiktok.com/@joeshop" {
		t.Errorf("Tiktok = %q, expected https://tiktok.com/@joeshop", seller.SocialMedia.Tiktok)
	}
}

// TestNormalizeSeller_EnumClosure: giá trị ngoài vocabulary không bao giờ xuất hiện ở output.
func TestNormalizeSeller_EnumClosure(t *testing.T) {
	seller, outcome := NormalizeSeller(bson.M{
		"_id":             "s4",
		"paymentMethods":  []interface{}{sellermodels.PaymentCard, "Bitcoin", "  " + sellermodels.PaymentMobileMoney + "  ", ""},
		"deliveryOptions": bson.M{sellermodels.DeliveryPickup: true, "Drone": true, sellermodels.DeliveryCourier: false},
	})

	for _, m := range seller.PaymentMethods {
		if !sellermodels.IsValidPaymentMethod(m) {
			t.Errorf("paymentMethods chứa giá trị ngoài vocabulary: %q", m)
		}
	}
	for _, d := range seller.DeliveryOptions {
		if !sellermodels.IsValidDeliveryOption(d) {
			t.Errorf("deliveryOptions chứa giá trị ngoài vocabulary: %q", d)
		}
	}
	if !reflect.DeepEqual(seller.DeliveryOptions, []string{sellermodels.DeliveryPickup}) {
		t.Errorf("DeliveryOptions = %v, chỉ Pickup hợp lệ và truthy", seller.DeliveryOptions)
	}
	if len(outcome.Dropped) == 0 {
		t.Error("outcome phải ghi nhận Bitcoin và Drone bị loại")
	}
}

// TestNormalizeWhatsappNumber: các nhánh chuẩn hóa best-effort.
func TestNormalizeWhatsappNumber(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"+14155550123", "+14155550123"},       // đã E.164, giữ nguyên
		{"+256772123456", "+256772123456"},     // đã E.164 Uganda
		{"256772123456", "+256772123456"},      // mã quốc gia không dấu +
		{"0772123456", "+256772123456"},        // số nội địa >= 10 chữ số
		{"0772 123 456", "+256772 123 456"},    // đếm chữ số bỏ qua khoảng trắng
		{"0772123", "0772123"},                 // quá ngắn, giữ nguyên
		{"772123456", "772123456"},             // không đoán quốc gia
		{"  0772123456  ", "+256772123456"},    // trim trước khi xử lý
	}

	for _, c := range cases {
		if got := normalizeWhatsappNumber(c.input); got != c.expected {
			t.Errorf("normalizeWhatsappNumber(%q) = %q, expected %q", c.input, got, c.expected)
		}
	}
}

// TestCoerceTimestamp: số, string, object provider, rác.
func TestCoerceTimestamp(t *testing.T) {
	now := time.Now().UnixMilli()

	seller, _ := NormalizeSeller(bson.M{
		"_id":       "s5",
		"createdAt": int64(1700000000000),
		"updatedAt": "2024-01-15T10:00:00Z",
	})
	if seller.CreatedAt != 1700000000000 {
		t.Errorf("CreatedAt = %d, số ms phải giữ nguyên", seller.CreatedAt)
	}
	expected := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC).UnixMilli()
	if seller.UpdatedAt != expected {
		t.Errorf("UpdatedAt = %d, expected %d từ string RFC3339", seller.UpdatedAt, expected)
	}

	// Object provider dạng {seconds}
	seller2, _ := NormalizeSeller(bson.M{
		"_id":       "s6",
		"createdAt": bson.M{"seconds": int64(1700000000), "nanoseconds": 0},
	})
	if seller2.CreatedAt != 1700000000000 {
		t.Errorf("CreatedAt = %d, expected 1700000000000 từ object seconds", seller2.CreatedAt)
	}

	// Rác thì mặc định now
	seller3, outcome := NormalizeSeller(bson.M{
		"_id":       "s7",
		"createdAt": "không phải ngày tháng",
	})
	if seller3.CreatedAt < now {
		t.Errorf("CreatedAt = %d, timestamp không parse được phải mặc định now", seller3.CreatedAt)
	}
	found := false
	for _, d := range outcome.Defaulted {
		if d == "createdAt: now" {
			found = true
		}
	}
	if !found {
		t.Errorf("outcome.Defaulted phải ghi nhận createdAt: now, got %v", outcome.Defaulted)
	}
}

// TestNormalizeSeller_Idempotence: chuẩn hóa record đã canonical không đổi gì thêm.
func TestNormalizeSeller_Idempotence(t *testing.T) {
	legacy := bson.M{
		"_id":            "s8",
		"email":          "shop@example.com",
		"storeName":      "Kampala Crafts",
		"category":       "Crafts",
		"whatsappNumber": "0701234567",
		"paymentMethods": bson.M{sellermodels.PaymentMobileMoney: true, sellermodels.PaymentCard: true},
		"socialMedia":    bson.M{"instagram": "@kampalacrafts"},
		"tags":           []interface{}{"handmade", "local"},
	}

	first, _ := NormalizeSeller(legacy)

	firstMap, err := utility.ToMap(first)
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}
	second, _ := NormalizeSeller(firstMap)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize(normalize(r)) phải bằng normalize(r):\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
