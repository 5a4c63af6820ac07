// Script kiểm tra chuẩn hóa cho một seller: in diff trước/sau theo từng field,
// không ghi gì xuống database. Dùng để soi một record cụ thể trước khi chạy migration.
//
// Chạy: go run ./scripts/check_seller_normalization <sellerId>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"soko_commerce/config"
	sellersvc "soko_commerce/internal/api/seller/service"
	"soko_commerce/internal/database"
	"soko_commerce/internal/global"
	"soko_commerce/internal/utility"
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

func bootstrap() (*sellersvc.SellerService, *sellersvc.MongoSellerStore, error) {
	loadEnv()

	global.MongoDB_ColNames.Sellers = "sellers"
	global.MongoDB_ColNames.SellerBackups = "seller_backups"
	global.MongoDB_ColNames.MigrationRuns = "migration_runs"
	global.InitValidator()

	cfg := config.NewConfig()
	global.MongoDB_ServerConfig = cfg

	client, err := database.Connect(cfg.MongoDB_ConnectionURI)
	if err != nil {
		return nil, nil, fmt.Errorf("kết nối MongoDB: %w", err)
	}
	global.MongoDB_Session = client

	db := client.Database(cfg.MongoDB_DBName)
	for _, name := range []string{
		global.MongoDB_ColNames.Sellers,
		global.MongoDB_ColNames.SellerBackups,
		global.MongoDB_ColNames.MigrationRuns,
	} {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			return nil, nil, fmt.Errorf("đăng ký collection %s: %w", name, err)
		}
	}

	service, err := sellersvc.NewSellerService()
	if err != nil {
		return nil, nil, err
	}
	store, err := sellersvc.NewMongoSellerStore()
	if err != nil {
		return nil, nil, err
	}
	return service, store, nil
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "" {
		log.Fatal("Cần sellerId: go run ./scripts/check_seller_normalization <sellerId>")
	}
	sellerID := os.Args[1]

	service, store, err := bootstrap()
	if err != nil {
		log.Fatalf("Khởi tạo lỗi: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	raw, err := store.GetSellerRaw(ctx, sellerID)
	if err != nil {
		log.Fatalf("Không đọc được seller %s: %v", sellerID, err)
	}

	resp, err := service.CheckSellerNormalization(ctx, sellerID)
	if err != nil {
		log.Fatalf("Kiểm tra chuẩn hóa lỗi: %v", err)
	}

	normalized, _ := resp.Normalized.(map[string]interface{})

	// Gom tất cả field của cả hai bản để in diff đầy đủ
	fields := map[string]bool{}
	for k := range raw {
		fields[k] = true
	}
	for k := range normalized {
		fields[k] = true
	}
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Printf("Seller %s — diff trước/sau chuẩn hóa:\n", sellerID)
	changed := 0
	for _, name := range names {
		before := raw[name]
		after := normalized[name]
		if reflect.DeepEqual(before, after) {
			continue
		}
		changed++
		fmt.Printf("  %-20s %v  ->  %v\n", name+":", compact(before), compact(after))
	}
	if changed == 0 {
		fmt.Println("  (không field nào thay đổi)")
	}

	fmt.Printf("hasSignificantChanges=%v fellBack=%v\n", resp.HasChanges, resp.FellBack)
	if len(resp.Dropped) > 0 {
		fmt.Printf("dropped: %v\n", resp.Dropped)
	}
	if len(resp.Defaulted) > 0 {
		fmt.Printf("defaulted: %v\n", resp.Defaulted)
	}
}

// compact in giá trị gọn cho diff, tránh tràn màn hình với map lồng nhau.
func compact(v interface{}) string {
	if v == nil {
		return "<absent>"
	}
	m, err := utility.ToMap(v)
	if err == nil && len(m) > 4 {
		return fmt.Sprintf("<object %d fields>", len(m))
	}
	return fmt.Sprintf("%v", v)
}
