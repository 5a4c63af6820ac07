package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soko_commerce/config"
	"soko_commerce/internal/database"
	"soko_commerce/internal/global"
	"soko_commerce/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Sellers = "sellers"
	global.MongoDB_ColNames.SellerBackups = "seller_backups"
	global.MongoDB_ColNames.MigrationRuns = "migration_runs"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (đăng ký custom validators: payment_method, delivery_option, social_url)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.Connect(global.MongoDB_ServerConfig.MongoDB_ConnectionURI)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Index cho các truy vấn chính của pipeline migration
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	initIndexes(db)
}

// initIndexes tạo index cho seller_backups (rollback đọc backup mới nhất theo seller)
// và migration_runs (lịch sử sắp theo startedAt giảm dần).
func initIndexes(db *mongo.Database) {
	ctx := context.TODO()

	_, err := db.Collection(global.MongoDB_ColNames.SellerBackups).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "backupTimestamp", Value: -1}},
	})
	if err != nil {
		logrus.Errorf("Failed to create index on seller_backups: %v", err)
	}

	_, err = db.Collection(global.MongoDB_ColNames.MigrationRuns).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "startedAt", Value: -1}},
	})
	if err != nil {
		logrus.Errorf("Failed to create index on migration_runs: %v", err)
	}

	_, err = db.Collection(global.MongoDB_ColNames.Sellers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	if err != nil {
		logrus.Errorf("Failed to create index on sellers: %v", err)
	}

	logrus.Info("Initialized collection indexes")
}

// initFirebase khởi tạo Firebase Admin SDK
func initFirebase() {
	cfg := global.MongoDB_ServerConfig

	// Firebase không bắt buộc cho môi trường dev — thiếu config thì bỏ qua,
	// các route admin sẽ từ chối mọi token
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		return
	}

	logrus.Info("Firebase initialized successfully")
}
