package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestMigrationOptions_Normalize: options bỏ trống phải nhận giá trị mặc định,
// options đã set phải được giữ nguyên.
func TestMigrationOptions_Normalize(t *testing.T) {
	var opts MigrationOptions
	opts.Normalize()

	assert.Equal(t, 10, opts.BatchSize, "BatchSize mặc định phải là 10")
	assert.Equal(t, 100*time.Millisecond, opts.RecordDelay, "RecordDelay mặc định phải là 100ms")
	assert.Equal(t, "v2", opts.MigrationVersion, "MigrationVersion mặc định phải là v2")
	assert.False(t, opts.DryRun, "DryRun không bị Normalize đụng tới")
}

func TestMigrationOptions_Normalize_KeepExplicit(t *testing.T) {
	opts := MigrationOptions{
		DryRun:           true,
		BatchSize:        50,
		RecordDelayMs:    250,
		MigrationVersion: "v3",
	}
	opts.Normalize()

	assert.Equal(t, 50, opts.BatchSize)
	assert.Equal(t, 250*time.Millisecond, opts.RecordDelay, "RecordDelayMs phải được quy đổi sang RecordDelay")
	assert.Equal(t, "v3", opts.MigrationVersion)
	assert.True(t, opts.DryRun)
}

func TestMigrationOptions_Normalize_NegativeValues(t *testing.T) {
	opts := MigrationOptions{BatchSize: -5, RecordDelayMs: -100}
	opts.Normalize()

	assert.Equal(t, 10, opts.BatchSize, "BatchSize âm phải quay về mặc định")
	assert.Equal(t, 100*time.Millisecond, opts.RecordDelay, "RecordDelayMs âm phải quay về mặc định")
}
