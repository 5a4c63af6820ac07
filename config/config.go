package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm cấu hình MongoDB, Firebase và các tham số mặc định cho migration.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`      // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // URI kết nối MongoDB
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Tên cơ sở dữ liệu chính
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`     // Các origins được phép (phân cách bởi dấu phẩy)
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"` // Số request tối đa trong window (0 = disable)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"` // Thời gian window (giây)

	// Firebase Configuration — identity do Firebase quản lý, seller id = Firebase UID
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`       // Firebase Project ID
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Đường dẫn service account JSON

	// Migration defaults — giá trị mặc định cho SellerMigrationService,
	// script/handler có thể override qua MigrationOptions
	Migration_DryRun        bool   `env:"MIGRATION_DRY_RUN" envDefault:"true"`        // Mặc định dry-run, ghi thật phải bật tường minh
	Migration_BatchSize     int    `env:"MIGRATION_BATCH_SIZE" envDefault:"10"`       // Số seller mỗi batch
	Migration_RecordDelayMs int    `env:"MIGRATION_RECORD_DELAY_MS" envDefault:"100"` // Delay giữa các record (ms) — throttle thô
	Migration_Version       string `env:"MIGRATION_VERSION" envDefault:"v2"`          // Tag ghi vào record đã migrate và backup
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	envName := os.Getenv("GO_ENV")
	if envName == "" {
		envName = "development"
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	currentDir, err := os.Getwd()
	if err != nil {
		// Dùng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", envName))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) và environment variables
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if len(files) > 0 {
		files = append(files, envPath)
	} else if envPath != "" {
		files = []string{envPath}
	}

	for _, file := range files {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				fmt.Printf("Không load được file env %s: %v\n", file, err)
			}
		}
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		panic(fmt.Sprintf("Không parse được cấu hình từ môi trường: %v", err))
	}
	return cfg
}
