// Script migrate toàn bộ collection sellers về shape canonical:
// normalize -> detect change -> backup -> ghi có điều kiện.
//
// Chạy dry-run (mặc định): go run ./scripts/migrate_all_sellers
// Chạy live:               go run ./scripts/migrate_all_sellers live
//
// Dry-run chạy đủ đường quyết định và in thống kê nhưng không ghi gì.
// Lỗi từng record không làm script exit 1 — chỉ lỗi đọc collection mới fatal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"soko_commerce/config"
	"soko_commerce/internal/api/seller/dto"
	sellersvc "soko_commerce/internal/api/seller/service"
	"soko_commerce/internal/database"
	"soko_commerce/internal/global"
)

func loadEnv() {
	tryPaths := []string{".env", "config/env/development.env"}
	cwd, _ := os.Getwd()
	for _, p := range tryPaths {
		full := filepath.Join(cwd, p)
		if _, err := os.Stat(full); err == nil {
			_ = godotenv.Load(full)
			break
		}
		parent := filepath.Dir(cwd)
		if _, err := os.Stat(filepath.Join(parent, p)); err == nil {
			_ = godotenv.Load(filepath.Join(parent, p))
			break
		}
	}
}

func bootstrap() (*sellersvc.SellerService, error) {
	loadEnv()

	global.MongoDB_ColNames.Sellers = "sellers"
	global.MongoDB_ColNames.SellerBackups = "seller_backups"
	global.MongoDB_ColNames.MigrationRuns = "migration_runs"
	global.InitValidator()

	cfg := config.NewConfig()
	global.MongoDB_ServerConfig = cfg

	client, err := database.Connect(cfg.MongoDB_ConnectionURI)
	if err != nil {
		return nil, fmt.Errorf("kết nối MongoDB: %w", err)
	}
	global.MongoDB_Session = client

	db := client.Database(cfg.MongoDB_DBName)
	for _, name := range []string{
		global.MongoDB_ColNames.Sellers,
		global.MongoDB_ColNames.SellerBackups,
		global.MongoDB_ColNames.MigrationRuns,
	} {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			return nil, fmt.Errorf("đăng ký collection %s: %w", name, err)
		}
	}

	return sellersvc.NewSellerService()
}

func main() {
	service, err := bootstrap()
	if err != nil {
		log.Fatalf("Khởi tạo lỗi: %v", err)
	}

	cfg := global.MongoDB_ServerConfig
	opts := dto.MigrationOptions{
		DryRun:           cfg.Migration_DryRun,
		BatchSize:        cfg.Migration_BatchSize,
		RecordDelay:      time.Duration(cfg.Migration_RecordDelayMs) * time.Millisecond,
		MigrationVersion: cfg.Migration_Version,
	}
	if len(os.Args) > 1 && os.Args[1] == "live" {
		opts.DryRun = false
	}

	if opts.DryRun {
		log.Println("Chạy chế độ DRY-RUN — không ghi gì xuống database")
	} else {
		log.Println("Chạy chế độ LIVE — sẽ backup và ghi đè record")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if total, err := service.CountSellers(ctx); err == nil {
		log.Printf("Collection sellers hiện có %d record", total)
	}

	stats, err := service.MigrateAllSellers(ctx, opts)
	if err != nil {
		// Chỉ lỗi đọc collection ban đầu mới đến được đây
		log.Fatalf("Migration lỗi: %v", err)
	}

	for _, r := range stats.Results {
		if r.Status == dto.MigrationStatusFailed {
			log.Printf("  FAILED %s: %s", r.SellerID, r.Error)
		}
		if len(r.Dropped) > 0 {
			log.Printf("  %s dropped: %v", r.SellerID, r.Dropped)
		}
	}

	log.Printf("Hoàn thành. total=%d processed=%d successful=%d unchanged=%d failed=%d skippedConflict=%d backups=%d",
		stats.Total, stats.Processed, stats.Successful, stats.Unchanged,
		stats.Failed, stats.SkippedConflict, stats.BackupsCreated)
	fmt.Printf("Migration sellers: %d/%d successful (dryRun=%v)\n", stats.Successful, stats.Total, stats.DryRun)
}
