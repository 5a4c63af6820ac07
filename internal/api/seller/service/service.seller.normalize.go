// Package sellersvc - Chuẩn hóa record seller legacy về shape canonical.
// NormalizeSeller là hàm total: mọi input, kể cả input hỏng hoàn toàn,
// đều trả về một record hợp lệ theo schema (fallback về record mặc định tối thiểu).
package sellersvc

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"soko_commerce/internal/api/seller/dto"
	sellermodels "soko_commerce/internal/api/seller/models"
	"soko_commerce/internal/global"
	"soko_commerce/internal/logger"
)

// NormalizeSeller chuẩn hóa một document seller legacy bất kỳ về Seller canonical.
// Không bao giờ trả lỗi ra ngoài: input không phải object, coercion panic,
// hay validation thất bại đều rơi về record mặc định tối thiểu.
// Outcome liệt kê các giá trị bị loại (Dropped) và field được gán mặc định (Defaulted)
// để caller tự quyết định mức độ chấp nhận mất dữ liệu.
func NormalizeSeller(raw interface{}) (result sellermodels.Seller, outcome dto.NormalizeOutcome) {
	legacy, ok := toDocument(raw)
	if !ok {
		outcome.FellBack = true
		result = minimalDefaultSeller(nil, &outcome)
		return result, outcome
	}

	defer func() {
		if r := recover(); r != nil {
			logger.WithModule("seller.normalize").Debugf("Chuẩn hóa panic, rơi về record mặc định: %v", r)
			outcome = dto.NormalizeOutcome{FellBack: true}
			result = minimalDefaultSeller(legacy, &outcome)
		}
	}()

	seller := assembleSeller(legacy, &outcome)

	if err := global.GetValidator().Struct(seller); err != nil {
		logger.WithModule("seller.normalize").Debugf("Record chuẩn hóa không qua được schema, rơi về mặc định: %v", err)
		outcome = dto.NormalizeOutcome{FellBack: true}
		result = minimalDefaultSeller(legacy, &outcome)
		return result, outcome
	}

	return seller, outcome
}

// toDocument ép input về bson.M. Trả về false khi input không phải object.
func toDocument(raw interface{}) (bson.M, bool) {
	switch doc := raw.(type) {
	case bson.M:
		return doc, true
	case map[string]interface{}:
		return bson.M(doc), true
	case bson.D:
		return doc.Map(), true
	default:
		return nil, false
	}
}

// minimalDefaultSeller xây record mặc định tối thiểu: chỉ giữ id, email,
// storeName, whatsappNumber, category từ legacy (nếu đọc được), mọi thứ khác mặc định.
func minimalDefaultSeller(legacy bson.M, out *dto.NormalizeOutcome) sellermodels.Seller {
	now := time.Now().UnixMilli()
	seller := sellermodels.Seller{
		ID:                  readSellerID(legacy),
		Email:               safeString(legacy["email"]),
		StoreName:           sellermodels.DefaultStoreName,
		Category:            sellermodels.DefaultCategory,
		BusinessType:        sellermodels.BusinessTypeIndividual,
		Country:             sellermodels.DefaultCountry,
		WhatsappNumber:      normalizeWhatsappNumber(safeString(legacy["whatsappNumber"])),
		Currency:            sellermodels.DefaultCurrency,
		PaymentMethods:      []string{},
		DeliveryOptions:     []string{},
		Tags:                []string{},
		SubscriptionPlan:    sellermodels.PlanBetaFree,
		OnboardingCompleted: false,
		IsAdmin:             false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if s := safeString(legacy["storeName"]); s != "" {
		seller.StoreName = s
	} else {
		out.Defaulted = append(out.Defaulted, "storeName: "+sellermodels.DefaultStoreName)
	}
	// Email hỏng (không phải shape email) sẽ làm fallback cũng fail validation — bỏ luôn
	if seller.Email != "" && global.GetValidator().Var(seller.Email, "email") != nil {
		out.Dropped = append(out.Dropped, "email: "+seller.Email)
		seller.Email = ""
	}
	return seller
}

// readSellerID đọc id từ "_id" hoặc "id". Record fallback chấp nhận id rỗng.
func readSellerID(legacy bson.M) string {
	if legacy == nil {
		return ""
	}
	if id := safeString(legacy["_id"]); id != "" {
		return id
	}
	return safeString(legacy["id"])
}

// assembleSeller coerce từng field legacy về shape canonical.
func assembleSeller(legacy bson.M, out *dto.NormalizeOutcome) sellermodels.Seller {
	now := time.Now().UnixMilli()
	return sellermodels.Seller{
		ID:       readSellerID(legacy),
		Email:    safeString(legacy["email"]),
		Phone:    safeString(legacy["phone"]),
		FullName: safeString(legacy["fullName"]),

		StoreName:        stringWithDefault(safeString(legacy["storeName"]), sellermodels.DefaultStoreName, "storeName", out),
		StoreDescription: safeString(legacy["storeDescription"]),
		BusinessEmail:    safeString(legacy["businessEmail"]),
		Category:         stringWithDefault(safeString(legacy["category"]), sellermodels.DefaultCategory, "category", out),
		BusinessType:     normalizeBusinessType(safeString(legacy["businessType"]), out),

		Country:        normalizeCode(safeString(legacy["country"]), 2, sellermodels.DefaultCountry, "country", out),
		City:           safeString(legacy["city"]),
		Location:       safeString(legacy["location"]),
		WhatsappNumber: normalizeWhatsappNumber(safeString(legacy["whatsappNumber"])),
		Currency:       normalizeCode(safeString(legacy["currency"]), 3, sellermodels.DefaultCurrency, "currency", out),

		PaymentMethods:  normalizeEnumList(legacy["paymentMethods"], sellermodels.IsValidPaymentMethod, "paymentMethods", out),
		DeliveryOptions: normalizeEnumList(legacy["deliveryOptions"], sellermodels.IsValidDeliveryOption, "deliveryOptions", out),
		OperatingHours:  safeString(legacy["operatingHours"]),
		ReturnPolicy:    safeString(legacy["returnPolicy"]),

		LogoUrl:     safeString(legacy["logoUrl"]),
		CoverUrl:    safeString(legacy["coverUrl"]),
		BannerUrl:   safeString(legacy["bannerUrl"]),
		SocialMedia: normalizeSocialMedia(legacy["socialMedia"]),

		PreferredLanguage:   safeString(legacy["preferredLanguage"]),
		Tags:                normalizeTags(legacy["tags"]),
		SubscriptionPlan:    normalizePlan(safeString(legacy["subscriptionPlan"]), out),
		OnboardingCompleted: safeBool(legacy["onboardingCompleted"]),
		IsAdmin:             safeBool(legacy["isAdmin"]),
		CreatedAt:           coerceTimestamp(legacy["createdAt"], now, "createdAt", out),
		UpdatedAt:           coerceTimestamp(legacy["updatedAt"], now, "updatedAt", out),
	}
}

// safeString coerce một giá trị bất kỳ về string đã trim.
// Kiểu không biểu diễn được dạng text trả về chuỗi rỗng, không panic.
func safeString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// safeBool coerce về bool: bool giữ nguyên, string "true", số khác 0.
func safeBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	case int:
		return b != 0
	case int32:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}

// stringWithDefault thay giá trị rỗng bằng mặc định và ghi nhận vào outcome.
func stringWithDefault(value, def, field string, out *dto.NormalizeOutcome) string {
	if value == "" {
		out.Defaulted = append(out.Defaulted, field+": "+def)
		return def
	}
	return value
}

// normalizeCode chuẩn hóa mã ISO (country 2 ký tự, currency 3 ký tự) về uppercase.
// Giá trị sai độ dài bị loại và thay bằng mặc định.
func normalizeCode(value string, length int, def, field string, out *dto.NormalizeOutcome) string {
	if value == "" {
		out.Defaulted = append(out.Defaulted, field+": "+def)
		return def
	}
	upper := strings.ToUpper(value)
	if len(upper) != length {
		out.Dropped = append(out.Dropped, field+": "+value)
		out.Defaulted = append(out.Defaulted, field+": "+def)
		return def
	}
	return upper
}

// normalizeBusinessType ép về vocabulary individual|business, mặc định individual.
func normalizeBusinessType(value string, out *dto.NormalizeOutcome) string {
	switch strings.ToLower(value) {
	case sellermodels.BusinessTypeBusiness:
		return sellermodels.BusinessTypeBusiness
	case sellermodels.BusinessTypeIndividual:
		return sellermodels.BusinessTypeIndividual
	case "":
		out.Defaulted = append(out.Defaulted, "businessType: "+sellermodels.BusinessTypeIndividual)
		return sellermodels.BusinessTypeIndividual
	default:
		out.Dropped = append(out.Dropped, "businessType: "+value)
		out.Defaulted = append(out.Defaulted, "businessType: "+sellermodels.BusinessTypeIndividual)
		return sellermodels.BusinessTypeIndividual
	}
}

// normalizePlan ép về vocabulary subscriptionPlan, mặc định beta-free.
func normalizePlan(value string, out *dto.NormalizeOutcome) string {
	switch strings.ToLower(value) {
	case sellermodels.PlanStarter:
		return sellermodels.PlanStarter
	case sellermodels.PlanPro:
		return sellermodels.PlanPro
	case sellermodels.PlanBetaFree:
		return sellermodels.PlanBetaFree
	case "":
		out.Defaulted = append(out.Defaulted, "subscriptionPlan: "+sellermodels.PlanBetaFree)
		return sellermodels.PlanBetaFree
	default:
		out.Dropped = append(out.Dropped, "subscriptionPlan: "+value)
		out.Defaulted = append(out.Defaulted, "subscriptionPlan: "+sellermodels.PlanBetaFree)
		return sellermodels.PlanBetaFree
	}
}

// normalizeEnumList chấp nhận hai shape legacy:
//   - mảng string: trim từng phần tử, giữ phần tử thuộc vocabulary
//   - map boolean ({"Mobile money": true, "Card": false}): giữ key truthy thuộc vocabulary
//
// Giá trị ngoài vocabulary bị loại êm (chính sách lossy có chủ đích) và ghi vào Dropped.
// Luôn trả về slice khác nil để output không bao giờ chứa null.
func normalizeEnumList(v interface{}, isValid func(string) bool, field string, out *dto.NormalizeOutcome) []string {
	result := []string{}

	appendIfValid := func(entry string) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return
		}
		if !isValid(entry) {
			out.Dropped = append(out.Dropped, field+": "+entry)
			return
		}
		for _, existing := range result {
			if existing == entry {
				return
			}
		}
		result = append(result, entry)
	}

	switch list := v.(type) {
	case nil:
		return result
	case []string:
		for _, entry := range list {
			appendIfValid(entry)
		}
	case []interface{}:
		for _, entry := range list {
			appendIfValid(safeString(entry))
		}
	case primitive.A:
		for _, entry := range list {
			appendIfValid(safeString(entry))
		}
	case bson.M:
		for key, enabled := range list {
			if safeBool(enabled) {
				appendIfValid(key)
			}
		}
	case map[string]interface{}:
		for key, enabled := range list {
			if safeBool(enabled) {
				appendIfValid(key)
			}
		}
	case map[string]bool:
		for key, enabled := range list {
			if enabled {
				appendIfValid(key)
			}
		}
	default:
		out.Dropped = append(out.Dropped, field+": shape không nhận dạng được")
	}
	return result
}

// normalizeTags giữ tags là danh sách string có thứ tự, loại null và chuỗi rỗng.
func normalizeTags(v interface{}) []string {
	result := []string{}
	appendTag := func(entry string) {
		if entry != "" {
			result = append(result, entry)
		}
	}
	switch list := v.(type) {
	case []string:
		for _, entry := range list {
			appendTag(strings.TrimSpace(entry))
		}
	case []interface{}:
		for _, entry := range list {
			appendTag(safeString(entry))
		}
	case primitive.A:
		for _, entry := range list {
			appendTag(safeString(entry))
		}
	}
	return result
}

// normalizeWhatsappNumber chuẩn hóa best-effort về dạng E.164 cho số Uganda:
//   - đã có "+": giữ nguyên (coi như E.164 sẵn)
//   - bắt đầu bằng mã quốc gia "256": thêm "+"
//   - số nội địa "0xxxxxxxxx" (>= 10 chữ số): thay số 0 đầu bằng "+256"
//   - còn lại: trả về nguyên văn đã trim, không đoán quốc gia
//
// Đây không phải parser E.164 đầy đủ — không validate độ dài hay dải số.
func normalizeWhatsappNumber(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "+") {
		return value
	}
	if strings.HasPrefix(value, "256") {
		return "+" + value
	}
	if strings.HasPrefix(value, "0") && countDigits(value) >= 10 {
		return "+256" + value[1:]
	}
	return value
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// normalizeSocialMedia chuẩn hóa object socialMedia legacy.
// Trả về nil khi không có platform nào — field sẽ vắng trong output.
func normalizeSocialMedia(v interface{}) *sellermodels.SellerSocialMedia {
	social, ok := toDocument(v)
	if !ok {
		return nil
	}
	result := &sellermodels.SellerSocialMedia{
		Instagram: normalizeSocialHandle("instagram", safeString(social["instagram"])),
		Facebook:  normalizeSocialHandle("facebook", safeString(social["facebook"])),
		Tiktok:    normalizeSocialHandle("tiktok", safeString(social["tiktok"])),
	}
	if result.Instagram == "" && result.Facebook == "" && result.Tiktok == "" {
		return nil
	}
	return result
}

// normalizeSocialHandle: URL tuyệt đối giữ nguyên, bare handle (có thể kèm "@")
// được dựng thành URL profile canonical của platform.
func normalizeSocialHandle(platform, value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	handle := strings.TrimPrefix(value, "@")
	switch platform {
	case "instagram":
		return "https://instagram.com/" + handle
	case "facebook":
		return "https://facebook.com/" + handle
	case "tiktok":
		return "https://tiktok.com/@" + handle
	default:
		return value
	}
}

// coerceTimestamp ép mọi shape timestamp legacy về Unix ms:
// số giữ nguyên, string parse được thì convert, object kiểu provider
// (primitive.DateTime/Timestamp, map có "seconds") convert tương ứng,
// còn lại mặc định "now" và ghi nhận vào Defaulted.
func coerceTimestamp(v interface{}, now int64, field string, out *dto.NormalizeOutcome) int64 {
	switch ts := v.(type) {
	case int64:
		if ts > 0 {
			return ts
		}
	case int:
		if ts > 0 {
			return int64(ts)
		}
	case int32:
		if ts > 0 {
			return int64(ts)
		}
	case float64:
		if ts > 0 {
			return int64(ts)
		}
	case primitive.DateTime:
		if ts > 0 {
			return int64(ts)
		}
	case primitive.Timestamp:
		if ts.T > 0 {
			return int64(ts.T) * 1000
		}
	case string:
		if ms, ok := parseTimestampString(ts); ok {
			return ms
		}
	case bson.M:
		if ms, ok := secondsFieldToMillis(ts); ok {
			return ms
		}
	case map[string]interface{}:
		if ms, ok := secondsFieldToMillis(ts); ok {
			return ms
		}
	}
	out.Defaulted = append(out.Defaulted, field+": now")
	return now
}

// parseTimestampString thử số ms trước, sau đó các format date thông dụng.
func parseTimestampString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return ms, true
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// secondsFieldToMillis convert object timestamp kiểu provider {seconds, nanoseconds}.
func secondsFieldToMillis(m map[string]interface{}) (int64, bool) {
	seconds, ok := m["seconds"]
	if !ok {
		return 0, false
	}
	var sec int64
	switch s := seconds.(type) {
	case int64:
		sec = s
	case int:
		sec = int64(s)
	case int32:
		sec = int64(s)
	case float64:
		sec = int64(s)
	default:
		return 0, false
	}
	if sec <= 0 {
		return 0, false
	}
	return sec * 1000, true
}
