package persistence

import (
	"time"
)

// HouseModel represents the houses table. The time-dependent checkpoints live in State as
// JSON; the columns beside it are the ones queries filter on.
type HouseModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Owner     string    `gorm:"column:owner;index;not null"`
	Name      string    `gorm:"column:name"`
	Rare      bool      `gorm:"column:rare;index;not null;default:false"`
	Dead      bool      `gorm:"column:dead;not null;default:false"`
	State     string    `gorm:"column:state;type:text;not null"` // JSON snapshot
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (HouseModel) TableName() string {
	return "houses"
}

// AccountModel represents the accounts table, one row per owner holding resources.
// Amounts are decimal strings so SQLite keeps full precision.
type AccountModel struct {
	Owner     string    `gorm:"column:owner;primaryKey"`
	Power     string    `gorm:"column:power;type:text;not null;default:'0'"`
	Lumber    string    `gorm:"column:lumber;type:text;not null;default:'0'"`
	Brick     string    `gorm:"column:brick;type:text;not null;default:'0'"`
	Concrete  string    `gorm:"column:concrete;type:text;not null;default:'0'"`
	Steel     string    `gorm:"column:steel;type:text;not null;default:'0'"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

// EntryModel represents the ledger_entries table. Seq breaks ties between entries posted
// at the same instant.
type EntryModel struct {
	Seq           int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID            string    `gorm:"column:id;uniqueIndex;not null"`
	Owner         string    `gorm:"column:owner;index:idx_entries_owner_ts;not null"`
	HouseID       *int64    `gorm:"column:house_id;index"`
	Timestamp     time.Time `gorm:"column:timestamp;index:idx_entries_owner_ts;not null"`
	EntryType     string    `gorm:"column:entry_type;not null"`
	Category      string    `gorm:"column:category;index;not null"`
	Delta         string    `gorm:"column:delta;type:text;not null"`          // JSON bundle
	BalanceBefore string    `gorm:"column:balance_before;type:text;not null"` // JSON bundle
	BalanceAfter  string    `gorm:"column:balance_after;type:text;not null"`  // JSON bundle
	Description   string    `gorm:"column:description;type:text"`
	Metadata      string    `gorm:"column:metadata;type:text"` // JSON as text
}

func (EntryModel) TableName() string {
	return "ledger_entries"
}

// WalletModel represents the wallets table
type WalletModel struct {
	Owner     string    `gorm:"column:owner;primaryKey"`
	Land      string    `gorm:"column:land;type:text;not null;default:'0'"`
	Asset     string    `gorm:"column:asset;type:text;not null;default:'0'"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (WalletModel) TableName() string {
	return "wallets"
}

// StakeModel represents the stakes table
type StakeModel struct {
	HouseID   int64     `gorm:"column:house_id;primaryKey;autoIncrement:false"`
	Amount    string    `gorm:"column:amount;type:text;not null;default:'0'"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (StakeModel) TableName() string {
	return "stakes"
}

// EventModel represents the events table. Seq keeps commit order.
type EventModel struct {
	Seq     int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	EventID string    `gorm:"column:event_id;uniqueIndex;not null"`
	At      time.Time `gorm:"column:at;index;not null"`
	Actor   string    `gorm:"column:actor;index"`
	HouseID *int64    `gorm:"column:house_id;index"`
	Type    string    `gorm:"column:type;index;not null"`
	Data    string    `gorm:"column:data;type:text"` // JSON as text
}

func (EventModel) TableName() string {
	return "events"
}

// AllModels lists every table the game persists, in migration order
func AllModels() []interface{} {
	return []interface{}{
		&HouseModel{},
		&AccountModel{},
		&EntryModel{},
		&WalletModel{},
		&StakeModel{},
		&EventModel{},
	}
}
