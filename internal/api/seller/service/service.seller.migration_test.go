// Package sellersvc - Test batch driver với store giả in-memory:
// dry-run không ghi, backup-before-write, conflict skip, fatal read.
package sellersvc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"soko_commerce/internal/api/seller/dto"
	sellermodels "soko_commerce/internal/api/seller/models"
	"soko_commerce/internal/common"
)

// fakeSellerStore là SellerStore in-memory cho test driver, ghi lại thứ tự thao tác.
type fakeSellerStore struct {
	docs []RawSellerDocument

	readErr       error           // GetAllSellers trả lỗi này nếu khác nil
	backupErrFor  map[string]bool // WriteBackup lỗi cho các seller này
	conflictFor   map[string]bool // ReplaceSeller trả conflict cho các seller này

	backups      []sellermodels.SellerBackup
	replaced     map[string]bson.M
	restored     map[string]bson.M
	runs         []sellermodels.MigrationRun
	operations   []string // "backup:<id>" / "replace:<id>" theo thứ tự gọi
	lastRunLimit int64    // limit nhận được ở lần gọi ListMigrationRuns gần nhất
}

func newFakeStore(docs []RawSellerDocument) *fakeSellerStore {
	return &fakeSellerStore{
		docs:         docs,
		backupErrFor: map[string]bool{},
		conflictFor:  map[string]bool{},
		replaced:     map[string]bson.M{},
		restored:     map[string]bson.M{},
	}
}

func (f *fakeSellerStore) GetAllSellers(ctx context.Context) ([]RawSellerDocument, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.docs, nil
}

func (f *fakeSellerStore) GetSellerRaw(ctx context.Context, sellerID string) (bson.M, error) {
	for _, doc := range f.docs {
		if doc.ID == sellerID {
			return doc.Data, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeSellerStore) ReplaceSeller(ctx context.Context, sellerID string, doc bson.M, expectedUpdatedAt interface{}) (bool, error) {
	f.operations = append(f.operations, "replace:"+sellerID)
	if f.conflictFor[sellerID] {
		return true, nil
	}
	f.replaced[sellerID] = doc
	return false, nil
}

func (f *fakeSellerStore) RestoreSeller(ctx context.Context, sellerID string, doc bson.M) error {
	f.restored[sellerID] = doc
	return nil
}

func (f *fakeSellerStore) WriteBackup(ctx context.Context, backup sellermodels.SellerBackup) error {
	f.operations = append(f.operations, "backup:"+backup.SellerID)
	if f.backupErrFor[backup.SellerID] {
		return errors.New("backup write failed")
	}
	f.backups = append(f.backups, backup)
	return nil
}

func (f *fakeSellerStore) LatestBackup(ctx context.Context, sellerID string) (sellermodels.SellerBackup, error) {
	var latest sellermodels.SellerBackup
	found := false
	for _, b := range f.backups {
		if b.SellerID == sellerID && (!found || b.BackupTimestamp > latest.BackupTimestamp) {
			latest = b
			found = true
		}
	}
	if !found {
		return latest, common.ErrNotFound
	}
	return latest, nil
}

func (f *fakeSellerStore) InsertMigrationRun(ctx context.Context, run sellermodels.MigrationRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeSellerStore) ListMigrationRuns(ctx context.Context, limit int64) ([]sellermodels.MigrationRun, error) {
	f.lastRunLimit = limit
	return f.runs, nil
}

// canonicalDoc tạo record đã canonical (không có significant change).
func canonicalDoc(id string) RawSellerDocument {
	return RawSellerDocument{
		ID: id,
		Data: bson.M{
			"_id":             id,
			"email":           fmt.Sprintf("%s@example.com", id),
			"storeName":       "Shop " + id,
			"country":         "UG",
			"currency":        "UGX",
			"whatsappNumber":  "+256772123456",
			"paymentMethods":  []interface{}{sellermodels.PaymentMobileMoney},
			"deliveryOptions": []interface{}{sellermodels.DeliveryPickup},
			"createdAt":       int64(1700000000000),
			"updatedAt":       int64(1700000000000),
		},
	}
}

// legacyDoc tạo record legacy có significant change (paymentMethods dạng map, thiếu currency).
func legacyDoc(id string) RawSellerDocument {
	return RawSellerDocument{
		ID: id,
		Data: bson.M{
			"_id":            id,
			"email":          fmt.Sprintf("%s@example.com", id),
			"storeName":      "Shop " + id,
			"paymentMethods": bson.M{sellermodels.PaymentMobileMoney: true},
			"whatsappNumber": "0772123456",
		},
	}
}

func fastOptions(dryRun bool) dto.MigrationOptions {
	return dto.MigrationOptions{
		DryRun:           dryRun,
		BatchSize:        10,
		RecordDelay:      time.Millisecond,
		MigrationVersion: "v2-test",
	}
}

// TestMigrateAllSellers_DryRun: scenario 5 — 25 record, 10 có thay đổi:
// backups=10, successful=25, failed=0 và store không bị ghi gì.
func TestMigrateAllSellers_DryRun(t *testing.T) {
	var docs []RawSellerDocument
	for i := 0; i < 10; i++ {
		docs = append(docs, legacyDoc(fmt.Sprintf("legacy%d", i)))
	}
	for i := 0; i < 15; i++ {
		docs = append(docs, canonicalDoc(fmt.Sprintf("canon%d", i)))
	}

	store := newFakeStore(docs)
	service := NewSellerServiceWithStore(store)

	stats, err := service.MigrateAllSellers(context.Background(), fastOptions(true))
	if err != nil {
		t.Fatalf("MigrateAllSellers lỗi: %v", err)
	}

	if stats.Total != 25 || stats.Processed != 25 {
		t.Errorf("Total/Processed = %d/%d, expected 25/25", stats.Total, stats.Processed)
	}
	if stats.BackupsCreated != 10 {
		t.Errorf("BackupsCreated = %d, expected 10", stats.BackupsCreated)
	}
	if stats.Successful != 25 {
		t.Errorf("Successful = %d, expected 25", stats.Successful)
	}
	if stats.Failed != 0 {
		t.Errorf("Failed = %d, expected 0", stats.Failed)
	}
	if stats.Unchanged != 15 {
		t.Errorf("Unchanged = %d, expected 15", stats.Unchanged)
	}

	// Dry-run tuyệt đối không ghi gì
	if len(store.backups) != 0 || len(store.replaced) != 0 || len(store.runs) != 0 {
		t.Errorf("dry-run đã ghi xuống store: backups=%d replaced=%d runs=%d",
			len(store.backups), len(store.replaced), len(store.runs))
	}
}

// TestMigrateAllSellers_Live: chế độ live ghi backup rồi mới ghi record, lưu migration run.
func TestMigrateAllSellers_Live(t *testing.T) {
	docs := []RawSellerDocument{legacyDoc("s1"), canonicalDoc("s2")}
	store := newFakeStore(docs)
	service := NewSellerServiceWithStore(store)

	stats, err := service.MigrateAllSellers(context.Background(), fastOptions(false))
	if err != nil {
		t.Fatalf("MigrateAllSellers lỗi: %v", err)
	}

	if stats.Successful != 2 || stats.Unchanged != 1 || stats.BackupsCreated != 1 {
		t.Errorf("stats = %+v, expected successful=2 unchanged=1 backups=1", stats)
	}

	// Backup phải đứng trước write cho cùng một seller
	if len(store.operations) != 2 || store.operations[0] != "backup:s1" || store.operations[1] != "replace:s1" {
		t.Errorf("thứ tự thao tác = %v, expected [backup:s1 replace:s1]", store.operations)
	}

	// Record ghi về phải có metadata migration
	written := store.replaced["s1"]
	if written == nil {
		t.Fatal("record s1 chưa được ghi")
	}
	if written["migrationVersion"] != "v2-test" {
		t.Errorf("migrationVersion = %v, expected v2-test", written["migrationVersion"])
	}
	if _, ok := written["migratedAt"]; !ok {
		t.Error("record ghi về thiếu migratedAt")
	}

	// Backup giữ record gốc verbatim và key đúng format
	if len(store.backups) != 1 {
		t.Fatalf("số backup = %d, expected 1", len(store.backups))
	}
	backup := store.backups[0]
	expectedKey := fmt.Sprintf("s1_%d", backup.BackupTimestamp)
	if backup.ID != expectedKey {
		t.Errorf("backup key = %q, expected %q", backup.ID, expectedKey)
	}
	if backup.OriginalData["whatsappNumber"] != "0772123456" {
		t.Error("backup phải giữ record legacy nguyên văn")
	}

	// Lần chạy live phải được lưu lại
	if len(store.runs) != 1 {
		t.Fatalf("số migration run = %d, expected 1", len(store.runs))
	}
	if store.runs[0].Version != "v2-test" || store.runs[0].Total != 2 {
		t.Errorf("migration run = %+v", store.runs[0])
	}
}

// TestMigrateAllSellers_BackupFailure: backup lỗi thì record chính không được ghi.
func TestMigrateAllSellers_BackupFailure(t *testing.T) {
	store := newFakeStore([]RawSellerDocument{legacyDoc("s1")})
	store.backupErrFor["s1"] = true
	service := NewSellerServiceWithStore(store)

	stats, err := service.MigrateAllSellers(context.Background(), fastOptions(false))
	if err != nil {
		t.Fatalf("MigrateAllSellers lỗi: %v", err)
	}

	if stats.Failed != 1 {
		t.Errorf("Failed = %d, expected 1", stats.Failed)
	}
	if len(store.replaced) != 0 {
		t.Error("backup lỗi mà record chính vẫn bị ghi — vi phạm fail-safe")
	}
	for _, op := range store.operations {
		if op == "replace:s1" {
			t.Error("ReplaceSeller không được gọi khi backup thất bại")
		}
	}
}

// TestMigrateAllSellers_ConcurrentEdit: updatedAt đổi giữa lúc đọc và ghi -> skip, không ghi đè.
func TestMigrateAllSellers_ConcurrentEdit(t *testing.T) {
	store := newFakeStore([]RawSellerDocument{legacyDoc("s1")})
	store.conflictFor["s1"] = true
	service := NewSellerServiceWithStore(store)

	stats, err := service.MigrateAllSellers(context.Background(), fastOptions(false))
	if err != nil {
		t.Fatalf("MigrateAllSellers lỗi: %v", err)
	}

	if stats.SkippedConflict != 1 {
		t.Errorf("SkippedConflict = %d, expected 1", stats.SkippedConflict)
	}
	if stats.Failed != 0 {
		t.Errorf("Failed = %d, conflict là skip chứ không phải failure", stats.Failed)
	}
	if len(store.replaced) != 0 {
		t.Error("record bị sửa đồng thời không được ghi đè")
	}
	// Backup vẫn được tạo trước khi phát hiện conflict — chấp nhận được
	if len(store.backups) != 1 {
		t.Errorf("số backup = %d, expected 1", len(store.backups))
	}
}

// TestMigrateAllSellers_ReadFailure: lỗi đọc collection là fatal cho cả lần chạy.
func TestMigrateAllSellers_ReadFailure(t *testing.T) {
	store := newFakeStore(nil)
	store.readErr = errors.New("connection reset")
	service := NewSellerServiceWithStore(store)

	_, err := service.MigrateAllSellers(context.Background(), fastOptions(false))
	if err == nil {
		t.Fatal("lỗi đọc collection phải propagate ra ngoài")
	}
}

// TestMigrateAllSellers_Monotonicity: record không có significant change
// thì cả dry-run và live đều không backup, không ghi.
func TestMigrateAllSellers_Monotonicity(t *testing.T) {
	for _, dryRun := range []bool{true, false} {
		store := newFakeStore([]RawSellerDocument{canonicalDoc("s1")})
		service := NewSellerServiceWithStore(store)

		stats, err := service.MigrateAllSellers(context.Background(), fastOptions(dryRun))
		if err != nil {
			t.Fatalf("dryRun=%v: MigrateAllSellers lỗi: %v", dryRun, err)
		}
		if stats.BackupsCreated != 0 {
			t.Errorf("dryRun=%v: BackupsCreated = %d, expected 0", dryRun, stats.BackupsCreated)
		}
		if len(store.backups) != 0 || len(store.replaced) != 0 {
			t.Errorf("dryRun=%v: record unchanged không được backup hay ghi", dryRun)
		}
		if stats.Unchanged != 1 {
			t.Errorf("dryRun=%v: Unchanged = %d, expected 1", dryRun, stats.Unchanged)
		}
	}
}

// TestListMigrationRuns_DefaultLimit: limit không hợp lệ quay về 50, limit hợp lệ giữ nguyên.
func TestListMigrationRuns_DefaultLimit(t *testing.T) {
	store := newFakeStore(nil)
	service := NewSellerServiceWithStore(store)

	if _, err := service.ListMigrationRuns(context.Background(), 0); err != nil {
		t.Fatalf("ListMigrationRuns lỗi: %v", err)
	}
	if store.lastRunLimit != 50 {
		t.Errorf("limit = %d, expected mặc định 50", store.lastRunLimit)
	}

	if _, err := service.ListMigrationRuns(context.Background(), 10); err != nil {
		t.Fatalf("ListMigrationRuns lỗi: %v", err)
	}
	if store.lastRunLimit != 10 {
		t.Errorf("limit = %d, expected 10 được giữ nguyên", store.lastRunLimit)
	}
}

// TestRollbackSeller: khôi phục từ backup mới nhất, lỗi NotFound khi không có backup.
func TestRollbackSeller(t *testing.T) {
	store := newFakeStore(nil)
	store.backups = []sellermodels.SellerBackup{
		{ID: "s1_100", SellerID: "s1", OriginalData: bson.M{"_id": "s1", "storeName": "Cũ"}, BackupTimestamp: 100},
		{ID: "s1_200", SellerID: "s1", OriginalData: bson.M{"_id": "s1", "storeName": "Mới hơn"}, BackupTimestamp: 200},
	}
	service := NewSellerServiceWithStore(store)

	resp, err := service.RollbackSeller(context.Background(), "s1")
	if err != nil {
		t.Fatalf("RollbackSeller lỗi: %v", err)
	}
	if resp.BackupID != "s1_200" {
		t.Errorf("BackupID = %q, phải chọn backup mới nhất s1_200", resp.BackupID)
	}
	if store.restored["s1"]["storeName"] != "Mới hơn" {
		t.Error("record phải được khôi phục verbatim từ backup mới nhất")
	}

	// Không có backup thì trả ErrNotFound
	if _, err := service.RollbackSeller(context.Background(), "s2"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("seller không có backup phải trả ErrNotFound, got %v", err)
	}
}
