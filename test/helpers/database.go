package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
)

// NewTestDB opens a private migrated in-memory database, closed when t ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
