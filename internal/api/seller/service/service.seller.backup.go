package sellersvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"soko_commerce/internal/api/seller/dto"
	sellermodels "soko_commerce/internal/api/seller/models"
	"soko_commerce/internal/logger"
)

// CreateBackup lưu snapshot nguyên văn của record gốc trước khi ghi đè.
// Key backup dạng "<sellerId>_<unixMillis>". Trả về false khi ghi thất bại —
// caller PHẢI coi false là "không được mutate record chính" (fail-safe:
// không bao giờ ghi đè khi chưa backup thành công).
func (s *SellerService) CreateBackup(ctx context.Context, sellerID string, originalData bson.M, migrationVersion string) bool {
	now := time.Now().UnixMilli()
	backup := sellermodels.SellerBackup{
		ID:               fmt.Sprintf("%s_%d", sellerID, now),
		SellerID:         sellerID,
		OriginalData:     originalData,
		BackupTimestamp:  now,
		MigrationVersion: migrationVersion,
	}

	if err := s.store.WriteBackup(ctx, backup); err != nil {
		logger.WithModuleAndCollection("seller.backup", "seller_backups").
			WithError(err).Errorf("Ghi backup thất bại cho seller %s", sellerID)
		return false
	}
	return true
}

// RollbackSeller khôi phục seller từ backup mới nhất (backupTimestamp lớn nhất).
// Ghi đè verbatim, không check conflict — nếu seller đã sửa hồ sơ sau lúc backup,
// các sửa đổi đó bị mất (last-write-wins, giới hạn chấp nhận được).
// Trả về common.ErrNotFound khi seller không có backup nào.
func (s *SellerService) RollbackSeller(ctx context.Context, sellerID string) (dto.RollbackResponse, error) {
	var resp dto.RollbackResponse

	backup, err := s.store.LatestBackup(ctx, sellerID)
	if err != nil {
		return resp, err
	}

	if err := s.store.RestoreSeller(ctx, sellerID, backup.OriginalData); err != nil {
		return resp, err
	}

	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"sellerId":        sellerID,
		"backupId":        backup.ID,
		"backupTimestamp": backup.BackupTimestamp,
	}).Info("Đã rollback seller từ backup")

	resp.SellerID = sellerID
	resp.BackupID = backup.ID
	resp.BackupTimestamp = backup.BackupTimestamp
	return resp, nil
}
