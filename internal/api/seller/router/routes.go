// Package router đăng ký các route thuộc domain seller: migration, rollback, normalize-check.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"soko_commerce/internal/api/middleware"
	apirouter "soko_commerce/internal/api/router"
	sellerhdl "soko_commerce/internal/api/seller/handler"
)

// Register đăng ký tất cả route seller lên v1.
// Toàn bộ surface migration là công cụ vận hành — yêu cầu Firebase token + quyền admin.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	migrationHandler, err := sellerhdl.NewSellerMigrationHandler()
	if err != nil {
		return fmt.Errorf("tạo SellerMigrationHandler: %w", err)
	}

	authMiddleware := middleware.FirebaseAuthMiddleware()
	adminMiddleware := middleware.RequireAdminMiddleware(migrationHandler.SellerService)
	middlewares := []fiber.Handler{authMiddleware, adminMiddleware}

	// POST /sellers/migrate — chạy migration toàn collection. Body: dryRun, batchSize, recordDelayMs, migrationVersion
	apirouter.RegisterRouteWithMiddleware(v1, "/sellers", "POST", "/migrate", middlewares, migrationHandler.HandleMigrateAllSellers)

	// POST /sellers/:sellerId/rollback — khôi phục seller từ backup mới nhất
	apirouter.RegisterRouteWithMiddleware(v1, "/sellers", "POST", "/:sellerId/rollback", middlewares, migrationHandler.HandleRollbackSeller)

	// POST /sellers/:sellerId/normalize-check — xem trước kết quả chuẩn hóa, không ghi
	apirouter.RegisterRouteWithMiddleware(v1, "/sellers", "POST", "/:sellerId/normalize-check", middlewares, migrationHandler.HandleNormalizeCheck)

	// GET /migration-runs — lịch sử các lần chạy live. Query: limit
	apirouter.RegisterRouteWithMiddleware(v1, "/migration-runs", "GET", "/", middlewares, migrationHandler.HandleListMigrationRuns)

	return nil
}
