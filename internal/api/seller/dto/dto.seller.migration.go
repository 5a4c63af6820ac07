// Package dto - DTO cho domain seller (migration, rollback, normalize-check).
package dto

import "time"

// MigrationOptions cấu hình cho một lần chạy migration.
// Thay cho các hằng số cứng để script và API cùng dùng một đường chạy.
type MigrationOptions struct {
	DryRun           bool          `json:"dryRun"`           // true: chỉ log, không ghi database
	BatchSize        int           `json:"batchSize"`        // Số seller mỗi batch
	RecordDelay      time.Duration `json:"-"`                // Thời gian nghỉ giữa các bản ghi
	RecordDelayMs    int           `json:"recordDelayMs"`    // RecordDelay dạng ms cho JSON
	MigrationVersion string        `json:"migrationVersion"` // Gắn vào backup và migration run
}

// Normalize chuẩn hóa options về giá trị mặc định khi caller bỏ trống
func (o *MigrationOptions) Normalize() {
	if o.BatchSize <= 0 {
		o.BatchSize = 10
	}
	if o.RecordDelay <= 0 {
		if o.RecordDelayMs > 0 {
			o.RecordDelay = time.Duration(o.RecordDelayMs) * time.Millisecond
		} else {
			o.RecordDelay = 100 * time.Millisecond
		}
	}
	if o.MigrationVersion == "" {
		o.MigrationVersion = "v2"
	}
}

// Trạng thái xử lý của một seller trong migration
const (
	MigrationStatusUpdated         = "updated"          // Đã chuẩn hóa và ghi thành công
	MigrationStatusWouldUpdate     = "would-update"     // Dry-run: có thay đổi nhưng không ghi
	MigrationStatusUnchanged       = "unchanged"        // Không có thay đổi đáng kể
	MigrationStatusFailed          = "failed"           // Backup hoặc ghi thất bại
	MigrationStatusSkippedConflict = "skipped-conflict" // Bản ghi bị sửa đồng thời, bỏ qua
)

// NormalizeOutcome mô tả kết quả chuẩn hóa một seller:
// bản ghi sau chuẩn hóa kèm danh sách các giá trị bị loại/bị thay bằng mặc định
type NormalizeOutcome struct {
	Dropped   []string `json:"dropped,omitempty"`   // Giá trị không hợp lệ bị loại bỏ (vd. "paymentMethods: Bitcoin")
	Defaulted []string `json:"defaulted,omitempty"` // Field trống được gán mặc định (vd. "currency: UGX")
	FellBack  bool     `json:"fellBack,omitempty"`  // true khi chuẩn hóa thất bại và rơi về record mặc định tối thiểu
}

// MigrationResult là kết quả xử lý của một seller trong lần chạy
type MigrationResult struct {
	SellerID  string   `json:"sellerId"`
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
	Dropped   []string `json:"dropped,omitempty"`
	Defaulted []string `json:"defaulted,omitempty"`
}

// MigrationStats tổng hợp kết quả của cả lần chạy migration
type MigrationStats struct {
	Total           int               `json:"total"`           // Tổng số seller đọc được
	Processed       int               `json:"processed"`       // Số seller đã xử lý
	Successful      int               `json:"successful"`      // Xử lý xong không lỗi (kể cả unchanged)
	Failed          int               `json:"failed"`          // Backup/ghi thất bại
	Unchanged       int               `json:"unchanged"`       // Không có thay đổi đáng kể
	BackupsCreated  int               `json:"backupsCreated"`  // Số backup đã tạo
	SkippedConflict int               `json:"skippedConflict"` // Bỏ qua do sửa đồng thời
	DryRun          bool              `json:"dryRun"`
	Results         []MigrationResult `json:"results"`
}

// RollbackResponse là kết quả khôi phục một seller từ backup
type RollbackResponse struct {
	SellerID        string `json:"sellerId"`
	BackupID        string `json:"backupId"`
	BackupTimestamp int64  `json:"backupTimestamp"`
}

// NormalizeCheckResponse cho endpoint kiểm tra chuẩn hóa (không ghi database)
type NormalizeCheckResponse struct {
	SellerID   string      `json:"sellerId"`
	HasChanges bool        `json:"hasChanges"`
	Normalized interface{} `json:"normalized"`
	Dropped    []string    `json:"dropped,omitempty"`
	Defaulted  []string    `json:"defaulted,omitempty"`
	FellBack   bool        `json:"fellBack"` // true nếu chuẩn hóa thất bại và trả về bản ghi mặc định
}
