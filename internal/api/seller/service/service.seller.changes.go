package sellersvc

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// significantFields là allow-list cố định các field quyết định có ghi hay không.
// Thay đổi ở field ngoài danh sách (vd. storeName) không bao giờ kích hoạt
// backup/ghi — giới hạn scope có chủ đích để tránh ghi thừa cho field cosmetic.
var significantFields = []string{
	"paymentMethods",
	"deliveryOptions",
	"currency",
	"whatsappNumber",
	"socialMedia",
	"country",
}

// HasSignificantChanges so sánh record gốc với record đã chuẩn hóa trên allow-list.
// Trả về true khi một field chuyển từ vắng/rỗng sang có giá trị, hoặc hai giá trị
// khác nhau về shape runtime (array so với map, string so với số...).
// Đây KHÔNG phải deep-equality: giá trị cùng shape khác nội dung không được flag.
func HasSignificantChanges(original, normalized bson.M) bool {
	for _, field := range significantFields {
		origVal := original[field]
		normVal := normalized[field]

		origEmpty := isEmptyValue(origVal)
		normEmpty := isEmptyValue(normVal)

		// Vắng/rỗng -> có giá trị
		if origEmpty && !normEmpty {
			return true
		}
		if origEmpty || normEmpty {
			continue
		}

		// Khác shape runtime
		if valueShape(origVal) != valueShape(normVal) {
			return true
		}
	}
	return false
}

// isEmptyValue: nil, chuỗi rỗng, mảng rỗng, map rỗng đều coi là vắng.
func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	case primitive.A:
		return len(val) == 0
	case bson.M:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	case bson.D:
		return len(val) == 0
	default:
		return false
	}
}

// valueShape phân loại shape runtime của một giá trị BSON.
func valueShape(v interface{}) string {
	switch v.(type) {
	case []string, []interface{}, primitive.A:
		return "array"
	case bson.M, map[string]interface{}, bson.D, map[string]bool:
		return "object"
	case string:
		return "string"
	case int, int32, int64, float64, primitive.DateTime, primitive.Timestamp:
		return "number"
	case bool:
		return "bool"
	default:
		return "other"
	}
}
