// Package sellersvc - Service hồ sơ seller (sellers) và pipeline chuẩn hóa/migration.
package sellersvc

import (
	"context"
	"fmt"

	basesvc "soko_commerce/internal/api/base/service"
	sellermodels "soko_commerce/internal/api/seller/models"
	"soko_commerce/internal/common"
	"soko_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// RawSellerDocument là một document seller đọc nguyên văn từ store,
// có thể đang ở shape legacy bất kỳ.
type RawSellerDocument struct {
	ID   string // _id dạng string (Firebase UID)
	Data bson.M // Toàn bộ document, giữ nguyên shape
}

// SellerStore trừu tượng hóa các thao tác store mà pipeline migration cần.
// Tách interface để driver test được với store giả, không cần MongoDB thật.
type SellerStore interface {
	// GetAllSellers đọc toàn bộ collection sellers dạng raw
	GetAllSellers(ctx context.Context) ([]RawSellerDocument, error)

	// GetSellerRaw đọc một seller dạng raw theo _id
	GetSellerRaw(ctx context.Context, sellerID string) (bson.M, error)

	// ReplaceSeller ghi đè document seller với điều kiện check-and-set trên updatedAt.
	// Trả về conflict=true khi updatedAt hiện tại khác expectedUpdatedAt
	// (bản ghi bị sửa đồng thời, caller phải bỏ qua thay vì ghi đè mù).
	ReplaceSeller(ctx context.Context, sellerID string, doc bson.M, expectedUpdatedAt interface{}) (conflict bool, err error)

	// RestoreSeller ghi đè document seller vô điều kiện (đường rollback,
	// last-write-wins có chủ đích — không check conflict)
	RestoreSeller(ctx context.Context, sellerID string, doc bson.M) error

	// WriteBackup ghi một backup snapshot (batched write)
	WriteBackup(ctx context.Context, backup sellermodels.SellerBackup) error

	// LatestBackup trả về backup mới nhất của seller theo backupTimestamp
	LatestBackup(ctx context.Context, sellerID string) (sellermodels.SellerBackup, error)

	// InsertMigrationRun lưu tổng kết một lần chạy migration live
	InsertMigrationRun(ctx context.Context, run sellermodels.MigrationRun) error

	// ListMigrationRuns trả về lịch sử các lần chạy, mới nhất trước
	ListMigrationRuns(ctx context.Context, limit int64) ([]sellermodels.MigrationRun, error)
}

// MongoSellerStore là implementation MongoDB của SellerStore.
// Lịch sử migration run đi qua base service để dùng chung đường insert/find
// chuẩn (tự stamp createdAt/updatedAt, luôn trả mảng khác nil).
type MongoSellerStore struct {
	sellers *mongo.Collection
	backups *mongo.Collection
	runs    *basesvc.BaseServiceMongoImpl[sellermodels.MigrationRun]
}

// NewMongoSellerStore tạo store từ registry collection toàn cục.
func NewMongoSellerStore() (*MongoSellerStore, error) {
	sellers, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Sellers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Sellers, common.ErrNotFound)
	}
	backups, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SellerBackups)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.SellerBackups, common.ErrNotFound)
	}
	runs, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MigrationRuns)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.MigrationRuns, common.ErrNotFound)
	}
	return &MongoSellerStore{
		sellers: sellers,
		backups: backups,
		runs:    basesvc.NewBaseServiceMongo[sellermodels.MigrationRun](runs),
	}, nil
}

// GetAllSellers đọc toàn bộ collection sellers, giữ nguyên shape legacy.
func (s *MongoSellerStore) GetAllSellers(ctx context.Context) ([]RawSellerDocument, error) {
	cursor, err := s.sellers.Find(ctx, bson.D{}, mongoopts.Find().SetBatchSize(500))
	if err != nil {
		return nil, common.NewError(common.ErrCodeMigrationRead, "Không đọc được collection sellers", common.StatusServiceUnavailable, err)
	}
	defer cursor.Close(ctx)

	var docs []RawSellerDocument
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, common.NewError(common.ErrCodeMigrationRead, "Lỗi decode document seller", common.StatusInternalServerError, err)
		}
		id, _ := raw["_id"].(string)
		docs = append(docs, RawSellerDocument{ID: id, Data: raw})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.NewError(common.ErrCodeMigrationRead, "Lỗi cursor khi đọc sellers", common.StatusServiceUnavailable, err)
	}
	return docs, nil
}

// GetSellerRaw đọc một seller theo _id, giữ nguyên shape.
func (s *MongoSellerStore) GetSellerRaw(ctx context.Context, sellerID string) (bson.M, error) {
	var raw bson.M
	err := s.sellers.FindOne(ctx, bson.M{"_id": sellerID}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return raw, nil
}

// ReplaceSeller ghi đè document với check-and-set trên updatedAt.
// expectedUpdatedAt là giá trị updatedAt nguyên văn lúc đọc (nil nếu field vắng).
func (s *MongoSellerStore) ReplaceSeller(ctx context.Context, sellerID string, doc bson.M, expectedUpdatedAt interface{}) (bool, error) {
	filter := bson.M{"_id": sellerID}
	if expectedUpdatedAt != nil {
		filter["updatedAt"] = expectedUpdatedAt
	} else {
		filter["updatedAt"] = bson.M{"$exists": false}
	}

	result, err := s.sellers.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return false, common.NewError(common.ErrCodeMigrationWrite, "Ghi đè seller thất bại", common.StatusInternalServerError, err)
	}
	if result.MatchedCount == 0 {
		// updatedAt đã đổi kể từ lúc đọc — có writer khác chen vào
		return true, nil
	}
	return false, nil
}

// RestoreSeller ghi đè document vô điều kiện, upsert nếu record đã bị xóa.
func (s *MongoSellerStore) RestoreSeller(ctx context.Context, sellerID string, doc bson.M) error {
	_, err := s.sellers.ReplaceOne(ctx, bson.M{"_id": sellerID}, doc, mongoopts.Replace().SetUpsert(true))
	if err != nil {
		return common.NewError(common.ErrCodeMigrationWrite, "Khôi phục seller thất bại", common.StatusInternalServerError, err)
	}
	return nil
}

// WriteBackup ghi backup snapshot qua BulkWrite (batched write theo contract store).
func (s *MongoSellerStore) WriteBackup(ctx context.Context, backup sellermodels.SellerBackup) error {
	writes := []mongo.WriteModel{
		mongo.NewInsertOneModel().SetDocument(backup),
	}
	_, err := s.backups.BulkWrite(ctx, writes, mongoopts.BulkWrite().SetOrdered(true))
	if err != nil {
		return common.NewError(common.ErrCodeMigrationBackup, "Ghi backup thất bại", common.StatusInternalServerError, err)
	}
	return nil
}

// LatestBackup trả về backup mới nhất của seller (sort backupTimestamp giảm dần).
func (s *MongoSellerStore) LatestBackup(ctx context.Context, sellerID string) (sellermodels.SellerBackup, error) {
	var backup sellermodels.SellerBackup
	opts := mongoopts.FindOne().SetSort(bson.D{{Key: "backupTimestamp", Value: -1}})
	err := s.backups.FindOne(ctx, bson.M{"sellerId": sellerID}, opts).Decode(&backup)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return backup, common.ErrNotFound
		}
		return backup, common.ConvertMongoError(err)
	}
	return backup, nil
}

// InsertMigrationRun lưu tổng kết một lần chạy migration live.
// Đi qua base service nên createdAt/updatedAt được stamp tự động.
func (s *MongoSellerStore) InsertMigrationRun(ctx context.Context, run sellermodels.MigrationRun) error {
	_, err := s.runs.InsertOne(ctx, run)
	return err
}

// ListMigrationRuns trả về lịch sử các lần chạy migration, mới nhất trước.
func (s *MongoSellerStore) ListMigrationRuns(ctx context.Context, limit int64) ([]sellermodels.MigrationRun, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}}).SetLimit(limit)
	return s.runs.Find(ctx, bson.D{}, opts)
}

// SellerService xử lý CRUD hồ sơ seller và là entry point của pipeline migration.
type SellerService struct {
	*basesvc.BaseServiceMongoImpl[sellermodels.Seller]
	store SellerStore
}

// NewSellerService tạo SellerService với MongoSellerStore mặc định.
func NewSellerService() (*SellerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Sellers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Sellers, common.ErrNotFound)
	}
	store, err := NewMongoSellerStore()
	if err != nil {
		return nil, err
	}
	return &SellerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[sellermodels.Seller](coll),
		store:                store,
	}, nil
}

// NewSellerServiceWithStore tạo SellerService với store tùy ý (dùng cho test).
func NewSellerServiceWithStore(store SellerStore) *SellerService {
	return &SellerService{store: store}
}

// GetSellerById trả về seller theo Firebase UID.
func (s *SellerService) GetSellerById(ctx context.Context, sellerID string) (sellermodels.Seller, error) {
	return s.FindOneById(ctx, sellerID)
}

// CountSellers đếm số document trong collection sellers.
func (s *SellerService) CountSellers(ctx context.Context) (int64, error) {
	return s.CountDocuments(ctx, nil)
}

// ListMigrationRuns trả về lịch sử các lần chạy migration, mới nhất trước.
// Limit không hợp lệ (<=0) quay về mặc định 50.
func (s *SellerService) ListMigrationRuns(ctx context.Context, limit int64) ([]sellermodels.MigrationRun, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListMigrationRuns(ctx, limit)
}
