package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	sellersvc "soko_commerce/internal/api/seller/service"
	"soko_commerce/internal/common"
)

// TestFirebaseAuthMiddleware_MissingToken: thiếu hoặc sai format header Authorization
// phải bị chặn 401 trước khi chạm tới Firebase hay handler phía sau.
func TestFirebaseAuthMiddleware_MissingToken(t *testing.T) {
	app := fiber.New()
	handlerReached := false
	app.Use(FirebaseAuthMiddleware())
	app.Get("/x", func(c fiber.Ctx) error {
		handlerReached = true
		return c.SendString("ok")
	})

	cases := []struct {
		name   string
		header string
	}{
		{"không có header", ""},
		{"không có prefix Bearer", "Token abc"},
		{"Bearer rỗng", "Bearer "},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/x", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test lỗi: %v", tc.name, err)
		}
		if resp.StatusCode != common.StatusUnauthorized {
			t.Errorf("%s: status = %d, expected %d", tc.name, resp.StatusCode, common.StatusUnauthorized)
		}
	}
	if handlerReached {
		t.Error("handler phía sau không được chạy khi token thiếu")
	}
}

// TestRequireAdminMiddleware_MissingSellerID: request không có seller_id trong context
// (chưa qua auth) phải bị chặn 401 trước khi gọi xuống service.
// Middleware được dựng MỘT LẦN với service có sẵn, không tạo service trên từng request.
func TestRequireAdminMiddleware_MissingSellerID(t *testing.T) {
	service := sellersvc.NewSellerServiceWithStore(nil)

	app := fiber.New()
	handlerReached := false
	app.Use(RequireAdminMiddleware(service))
	app.Get("/x", func(c fiber.Ctx) error {
		handlerReached = true
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusUnauthorized {
		t.Errorf("status = %d, expected %d", resp.StatusCode, common.StatusUnauthorized)
	}
	if handlerReached {
		t.Error("handler phía sau không được chạy khi thiếu seller_id")
	}
}
