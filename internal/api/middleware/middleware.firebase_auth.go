// Package middleware chứa các middleware dùng chung cho API.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "soko_commerce/internal/api/base/handler"
	sellersvc "soko_commerce/internal/api/seller/service"
	"soko_commerce/internal/common"
	"soko_commerce/internal/utility"
)

// FirebaseAuthMiddleware xác thực Firebase ID token từ header Authorization.
// Token hợp lệ thì lưu seller_id (Firebase UID) vào context cho handler phía sau.
func FirebaseAuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if idToken == authHeader || idToken == "" {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		token, err := utility.VerifyIDToken(c.Context(), idToken)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		c.Locals("seller_id", token.UID)
		return c.Next()
	}
}

// RequireAdminMiddleware yêu cầu seller đã xác thực phải có cờ isAdmin.
// Phải đứng sau FirebaseAuthMiddleware trong chain.
// Service được tạo một lần lúc dựng route, không tạo lại trên từng request.
func RequireAdminMiddleware(service *sellersvc.SellerService) fiber.Handler {
	return func(c fiber.Ctx) error {
		sellerID, ok := c.Locals("seller_id").(string)
		if !ok || sellerID == "" {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		seller, err := service.GetSellerById(c.Context(), sellerID)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrNotAdmin)
			return nil
		}
		if !seller.IsAdmin {
			basehdl.HandleResponse(c, nil, common.ErrNotAdmin)
			return nil
		}

		return c.Next()
	}
}
