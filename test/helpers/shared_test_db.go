package helpers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
)

// SharedTestDB is the one database a BDD run shares between scenarios
var SharedTestDB *gorm.DB

var errSharedDBClosed = errors.New("shared test database not initialized")

// InitializeSharedTestDB opens SharedTestDB; call it once from TestMain
func InitializeSharedTestDB() error {
	db, err := database.OpenMemory()
	if err != nil {
		return err
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties every game table so each scenario starts from nothing
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return errSharedDBClosed
	}
	return database.Truncate(SharedTestDB)
}

// CloseSharedTestDB closes SharedTestDB; call it from TestMain after the run
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	err := database.Close(SharedTestDB)
	SharedTestDB = nil
	return err
}
