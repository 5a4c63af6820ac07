// Script khôi phục một seller từ backup mới nhất.
// Ghi đè verbatim — sửa đổi sau lúc backup sẽ bị mất (last-write-wins).
//
// Chạy: go run ./scripts/rollback_seller <sellerId>
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
	if len(os.Args) < 2 || os.Args[1] == "" {
		log.Fatal("Cần sellerId: go run ./scripts/rollback_seller <sellerId>")
	}
	sellerID := os.Args[1]

	service, err := bootstrap()
	if err != nil {
		log.Fatalf("Khởi tạo lỗi: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := service.RollbackSeller(ctx, sellerID)
	if err != nil {
		log.Fatalf("Rollback lỗi cho seller %s: %v", sellerID, err)
	}

	log.Printf("Đã khôi phục seller %s từ backup %s (timestamp=%d)",
		resp.SellerID, resp.BackupID, resp.BackupTimestamp)
	fmt.Printf("Rollback seller %s: OK\n", sellerID)
}
