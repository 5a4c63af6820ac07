// Package models - SellerBackup lưu snapshot record gốc trước mỗi lần migrate (seller_backups).
package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

// SellerBackup lưu bản sao nguyên văn của record legacy trước khi ghi đè.
// Key dạng "<sellerId>_<backupTimestamp>". Immutable sau khi tạo, không bao giờ
// tự động xóa — nhiều backup của cùng một seller có thể tích lũy theo thời gian.
type SellerBackup struct {
	ID               string `json:"id" bson:"_id"`                            // "<sellerId>_<unixMillis>"
	SellerID         string `json:"sellerId" bson:"sellerId"`                 // Firebase UID của seller
	OriginalData     bson.M `json:"originalData" bson:"originalData"`         // Record legacy nguyên văn
	BackupTimestamp  int64  `json:"backupTimestamp" bson:"backupTimestamp"`   // Unix ms lúc backup
	MigrationVersion string `json:"migrationVersion" bson:"migrationVersion"` // Tag version của lần migrate
}
