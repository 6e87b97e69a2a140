package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestMigrate はすべての永続化モデルのスキーマが適用されることを検証します。
func TestMigrate(t *testing.T) {
	t.Parallel()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"users", "items", "merchants", "products", "orders"} {
		assert.True(t, gdb.Migrator().HasTable(table), "table %s not migrated", table)
	}
}
