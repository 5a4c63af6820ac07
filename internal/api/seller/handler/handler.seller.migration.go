// Package sellerhdl - Handler các thao tác migration/rollback trên hồ sơ seller.
package sellerhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basehdl "soko_commerce/internal/api/base/handler"
	"soko_commerce/internal/api/seller/dto"
	sellersvc "soko_commerce/internal/api/seller/service"
	"soko_commerce/internal/common"
	"soko_commerce/internal/global"
)

// SellerMigrationHandler xử lý API migration cho admin.
type SellerMigrationHandler struct {
	SellerService *sellersvc.SellerService
}

// NewSellerMigrationHandler tạo SellerMigrationHandler mới.
func NewSellerMigrationHandler() (*SellerMigrationHandler, error) {
	svc, err := sellersvc.NewSellerService()
	if err != nil {
		return nil, fmt.Errorf("tạo SellerService: %w", err)
	}
	return &SellerMigrationHandler{SellerService: svc}, nil
}

// HandleMigrateAllSellers xử lý POST /sellers/migrate — chạy migration toàn collection.
// Body (optional): dryRun, batchSize, recordDelayMs, migrationVersion.
// Body trống sẽ dùng cấu hình mặc định từ env (dry-run bật).
func (h *SellerMigrationHandler) HandleMigrateAllSellers(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		opts := defaultMigrationOptions()
		// Body trống hợp lệ — giữ nguyên mặc định
		_ = c.Bind().Body(&opts)
		opts.Normalize()

		stats, err := h.SellerService.MigrateAllSellers(c.Context(), opts)
		basehdl.HandleResponse(c, stats, err)
		return nil
	})
}

// HandleRollbackSeller xử lý POST /sellers/:sellerId/rollback — khôi phục từ backup mới nhất.
func (h *SellerMigrationHandler) HandleRollbackSeller(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		sellerID := c.Params("sellerId")
		if sellerID == "" {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		resp, err := h.SellerService.RollbackSeller(c.Context(), sellerID)
		basehdl.HandleResponse(c, resp, err)
		return nil
	})
}

// HandleNormalizeCheck xử lý POST /sellers/:sellerId/normalize-check —
// chạy normalize + detect change cho một seller, không ghi gì.
func (h *SellerMigrationHandler) HandleNormalizeCheck(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		sellerID := c.Params("sellerId")
		if sellerID == "" {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		resp, err := h.SellerService.CheckSellerNormalization(c.Context(), sellerID)
		basehdl.HandleResponse(c, resp, err)
		return nil
	})
}

// HandleListMigrationRuns xử lý GET /migration-runs — lịch sử các lần chạy live.
// Query: limit (mặc định 50).
func (h *SellerMigrationHandler) HandleListMigrationRuns(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)

		runs, err := h.SellerService.ListMigrationRuns(c.Context(), limit)
		basehdl.HandleResponse(c, runs, err)
		return nil
	})
}

// defaultMigrationOptions đọc mặc định từ cấu hình server (env).
// Dry-run mặc định bật — chạy live phải được yêu cầu tường minh.
func defaultMigrationOptions() dto.MigrationOptions {
	opts := dto.MigrationOptions{DryRun: true}
	if cfg := global.MongoDB_ServerConfig; cfg != nil {
		opts.DryRun = cfg.Migration_DryRun
		opts.BatchSize = cfg.Migration_BatchSize
		opts.RecordDelayMs = cfg.Migration_RecordDelayMs
		opts.MigrationVersion = cfg.Migration_Version
	}
	return opts
}
