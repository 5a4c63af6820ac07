package sellersvc

import (
	"context"
	"time"

	"soko_commerce/internal/api/seller/dto"
	sellermodels "soko_commerce/internal/api/seller/models"
	"soko_commerce/internal/logger"
	"soko_commerce/internal/utility"
)

// MigrateAllSellers chạy pipeline chuẩn hóa trên toàn bộ collection sellers:
// đọc tất cả record, chia batch cố định, mỗi record đi qua
// normalize -> detect change -> (nếu đổi) backup -> ghi đè có điều kiện.
//
// Lỗi của từng record (normalize, backup, ghi) được ghi vào MigrationResult
// của record đó và không làm dừng batch hay cả lần chạy — chỉ lỗi đọc
// collection ban đầu mới propagate ra ngoài.
//
// Dry-run chạy đủ mọi bước quyết định và đếm số backup SẼ tạo,
// nhưng không ghi gì xuống store (kể cả migration run).
func (s *SellerService) MigrateAllSellers(ctx context.Context, opts dto.MigrationOptions) (dto.MigrationStats, error) {
	opts.Normalize()
	log := logger.WithModuleAndCollection("seller.migration", "sellers")

	stats := dto.MigrationStats{DryRun: opts.DryRun, Results: []dto.MigrationResult{}}
	startedAt := time.Now().UnixMilli()

	docs, err := s.store.GetAllSellers(ctx)
	if err != nil {
		// Lỗi đọc toàn collection là fatal cho cả lần chạy
		return stats, err
	}
	stats.Total = len(docs)

	log.WithFields(map[string]interface{}{
		"total":     stats.Total,
		"batchSize": opts.BatchSize,
		"dryRun":    opts.DryRun,
		"version":   opts.MigrationVersion,
	}).Info("Bắt đầu migration sellers")

	for batchStart := 0; batchStart < len(docs); batchStart += opts.BatchSize {
		batchEnd := batchStart + opts.BatchSize
		if batchEnd > len(docs) {
			batchEnd = len(docs)
		}

		for i, doc := range docs[batchStart:batchEnd] {
			// Throttle thô chống rate limit của store — nghỉ cố định giữa các record
			if i > 0 {
				time.Sleep(opts.RecordDelay)
			}
			result := s.migrateOne(ctx, doc, opts, &stats)
			stats.Results = append(stats.Results, result)
			stats.Processed++
		}

		log.Infof("Batch %d-%d/%d: successful=%d unchanged=%d failed=%d skippedConflict=%d backups=%d",
			batchStart+1, batchEnd, stats.Total,
			stats.Successful, stats.Unchanged, stats.Failed, stats.SkippedConflict, stats.BackupsCreated)
	}

	finishedAt := time.Now().UnixMilli()
	log.WithFields(map[string]interface{}{
		"processed":       stats.Processed,
		"successful":      stats.Successful,
		"failed":          stats.Failed,
		"unchanged":       stats.Unchanged,
		"backupsCreated":  stats.BackupsCreated,
		"skippedConflict": stats.SkippedConflict,
	}).Info("Hoàn thành migration sellers")

	if !opts.DryRun {
		run := sellermodels.MigrationRun{
			Version:         opts.MigrationVersion,
			Total:           stats.Total,
			Processed:       stats.Processed,
			Successful:      stats.Successful,
			Failed:          stats.Failed,
			Unchanged:       stats.Unchanged,
			BackupsCreated:  stats.BackupsCreated,
			SkippedConflict: stats.SkippedConflict,
			StartedAt:       startedAt,
			FinishedAt:      finishedAt,
		}
		// Lưu lịch sử best-effort, không làm fail lần chạy đã xong
		if err := s.store.InsertMigrationRun(ctx, run); err != nil {
			log.WithError(err).Error("Không lưu được migration run")
		}
	}

	return stats, nil
}

// migrateOne xử lý một record: normalize, detect change, backup, ghi có điều kiện.
// Mọi lỗi được gói vào MigrationResult, không bao giờ trả lỗi ra ngoài.
func (s *SellerService) migrateOne(ctx context.Context, doc RawSellerDocument, opts dto.MigrationOptions, stats *dto.MigrationStats) dto.MigrationResult {
	result := dto.MigrationResult{SellerID: doc.ID}

	normalized, outcome := NormalizeSeller(doc.Data)
	result.Dropped = outcome.Dropped
	result.Defaulted = outcome.Defaulted

	normalizedMap, err := utility.ToMap(normalized)
	if err != nil {
		result.Status = dto.MigrationStatusFailed
		result.Error = err.Error()
		stats.Failed++
		return result
	}

	if !HasSignificantChanges(doc.Data, normalizedMap) {
		result.Status = dto.MigrationStatusUnchanged
		stats.Unchanged++
		stats.Successful++
		return result
	}

	if opts.DryRun {
		// Dry-run đếm đủ các quyết định nhưng không đụng store
		result.Status = dto.MigrationStatusWouldUpdate
		stats.BackupsCreated++
		stats.Successful++
		return result
	}

	if !s.CreateBackup(ctx, doc.ID, doc.Data, opts.MigrationVersion) {
		// Không backup được thì tuyệt đối không mutate record chính
		result.Status = dto.MigrationStatusFailed
		result.Error = "backup thất bại, bỏ qua ghi record"
		stats.Failed++
		return result
	}
	stats.BackupsCreated++

	normalizedMap["migrationVersion"] = opts.MigrationVersion
	normalizedMap["migratedAt"] = time.Now().UnixMilli()

	conflict, err := s.store.ReplaceSeller(ctx, doc.ID, normalizedMap, doc.Data["updatedAt"])
	if err != nil {
		result.Status = dto.MigrationStatusFailed
		result.Error = err.Error()
		stats.Failed++
		return result
	}
	if conflict {
		// Record bị writer khác sửa giữa lúc đọc và ghi — bỏ qua thay vì ghi đè mù
		result.Status = dto.MigrationStatusSkippedConflict
		stats.SkippedConflict++
		return result
	}

	result.Status = dto.MigrationStatusUpdated
	stats.Successful++
	return result
}

// CheckSellerNormalization chạy normalize + detect change cho một seller
// mà không ghi gì — dùng cho endpoint kiểm tra và script chẩn đoán.
func (s *SellerService) CheckSellerNormalization(ctx context.Context, sellerID string) (dto.NormalizeCheckResponse, error) {
	var resp dto.NormalizeCheckResponse
	resp.SellerID = sellerID

	raw, err := s.store.GetSellerRaw(ctx, sellerID)
	if err != nil {
		return resp, err
	}

	normalized, outcome := NormalizeSeller(raw)
	normalizedMap, err := utility.ToMap(normalized)
	if err != nil {
		return resp, err
	}

	resp.HasChanges = HasSignificantChanges(raw, normalizedMap)
	resp.Normalized = normalizedMap
	resp.Dropped = outcome.Dropped
	resp.Defaulted = outcome.Defaulted
	resp.FellBack = outcome.FellBack
	return resp, nil
}
