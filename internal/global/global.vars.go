package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"soko_commerce/config"
	"soko_commerce/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Sellers       string // Tên collection cho hồ sơ seller (canonical hoặc legacy)
	SellerBackups string // Tên collection cho backup snapshot trước khi migrate
	MigrationRuns string // Tên collection cho lịch sử các lần chạy migration
}

// Các biến toàn cục
var (
	// MongoDB_ServerConfig chứa cấu hình server đọc từ env
	MongoDB_ServerConfig *config.Configuration

	// MongoDB_Session là kết nối MongoDB dùng chung
	MongoDB_Session *mongo.Client

	// MongoDB_ColNames chứa tên các collection
	MongoDB_ColNames MongoDB_CollectionName

	// RegistryCollections quản lý các collection đã đăng ký
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()

	// Validate là validator instance dùng chung cho toàn bộ ứng dụng
	Validate *validator.Validate
)
