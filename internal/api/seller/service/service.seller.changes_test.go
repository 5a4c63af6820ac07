// Package sellersvc - Test change detector trên allow-list field.
package sellersvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	sellermodels "soko_commerce/internal/api/seller/models"
	"soko_commerce/internal/utility"
)

// TestHasSignificantChanges_CanonicalRecord: scenario 4 — record đã canonical
// thì không field nào trong allow-list đổi shape, detector trả về false.
func TestHasSignificantChanges_CanonicalRecord(t *testing.T) {
	legacy := bson.M{
		"_id":             "s1",
		"email":           "a@b.com",
		"storeName":       "Joe's Shop",
		"country":         "UG",
		"currency":        "UGX",
		"whatsappNumber":  "+256772123456",
		"paymentMethods":  []interface{}{sellermodels.PaymentMobileMoney},
		"deliveryOptions": []interface{}{sellermodels.DeliveryPickup},
		"socialMedia":     bson.M{"instagram": "https://instagram.com/joeshop"},
		"createdAt":       int64(1700000000000),
		"updatedAt":       int64(1700000000000),
	}

	normalized, _ := NormalizeSeller(legacy)
	normalizedMap, err := utility.ToMap(normalized)
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}

	if HasSignificantChanges(legacy, normalizedMap) {
		t.Error("record đã canonical không được flag significant change")
	}
}

// TestHasSignificantChanges_MapToArray: map boolean -> array là đổi shape, phải flag.
func TestHasSignificantChanges_MapToArray(t *testing.T) {
	original := bson.M{
		"paymentMethods": bson.M{sellermodels.PaymentMobileMoney: true},
		"currency":       "UGX",
		"country":        "UG",
	}
	normalized := bson.M{
		"paymentMethods": []interface{}{sellermodels.PaymentMobileMoney},
		"currency":       "UGX",
		"country":        "UG",
	}

	if !HasSignificantChanges(original, normalized) {
		t.Error("paymentMethods đổi từ map sang array phải được flag")
	}
}

// TestHasSignificantChanges_AbsentToPresent: field vắng chuyển sang có giá trị phải flag.
func TestHasSignificantChanges_AbsentToPresent(t *testing.T) {
	original := bson.M{"_id": "s1"}
	normalized := bson.M{"_id": "s1", "currency": "UGX"}

	if !HasSignificantChanges(original, normalized) {
		t.Error("currency từ vắng sang có giá trị phải được flag")
	}
}

// TestHasSignificantChanges_ValueOnlyChange: cùng shape khác nội dung KHÔNG flag —
// detector không phải deep-equality, đây là giới hạn scope có chủ đích.
func TestHasSignificantChanges_ValueOnlyChange(t *testing.T) {
	original := bson.M{"whatsappNumber": "0772123456"}
	normalized := bson.M{"whatsappNumber": "+256772123456"}

	if HasSignificantChanges(original, normalized) {
		t.Error("hai string khác nội dung cùng shape không được flag")
	}
}

// TestHasSignificantChanges_NonAllowListedField: thay đổi ngoài allow-list không bao giờ flag.
func TestHasSignificantChanges_NonAllowListedField(t *testing.T) {
	original := bson.M{"storeName": bson.M{"weird": "shape"}, "currency": "UGX"}
	normalized := bson.M{"storeName": "Unnamed Store", "currency": "UGX"}

	if HasSignificantChanges(original, normalized) {
		t.Error("storeName không thuộc allow-list, đổi shape cũng không được flag")
	}
}

// TestHasSignificantChanges_EmptyToEmpty: cả hai bên đều rỗng thì không flag.
func TestHasSignificantChanges_EmptyToEmpty(t *testing.T) {
	original := bson.M{"paymentMethods": []interface{}{}, "whatsappNumber": ""}
	normalized := bson.M{"paymentMethods": []interface{}{}, "whatsappNumber": ""}

	if HasSignificantChanges(original, normalized) {
		t.Error("field rỗng cả hai bên không được flag")
	}
}
