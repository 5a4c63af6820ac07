// Package models - MigrationRun lưu tổng kết mỗi lần chạy migration live (migration_runs).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MigrationRun lưu thống kê một lần chạy migrateAllSellers ở chế độ live.
// Dry-run không ghi record này (dry-run không được phép ghi gì).
type MigrationRun struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Version string             `json:"version" bson:"version"` // Tag migrationVersion của lần chạy

	// Counters — cùng ngữ nghĩa với MigrationStats
	Total           int `json:"total" bson:"total"`
	Processed       int `json:"processed" bson:"processed"`
	Successful      int `json:"successful" bson:"successful"`
	Failed          int `json:"failed" bson:"failed"`
	Unchanged       int `json:"unchanged" bson:"unchanged"`
	BackupsCreated  int `json:"backupsCreated" bson:"backupsCreated"`
	SkippedConflict int `json:"skippedConflict" bson:"skippedConflict"`

	StartedAt  int64 `json:"startedAt" bson:"startedAt"`   // Unix ms
	FinishedAt int64 `json:"finishedAt" bson:"finishedAt"` // Unix ms

	// Metadata (base service tự set khi insert)
	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
