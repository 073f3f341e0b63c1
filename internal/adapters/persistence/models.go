package persistence

import (
	"time"
)

// GameRecordModel represents the game_records table: one whole logical record per key
type GameRecordModel struct {
	Key       string    `gorm:"column:record_key;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"` // JSON as text
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GameRecordModel) TableName() string {
	return "game_records"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	SessionID         string    `gorm:"column:session_id;not null;index:idx_transactions_session_round"`
	Round             int       `gorm:"column:round;not null;index:idx_transactions_session_round"`
	Timestamp         time.Time `gorm:"column:timestamp;not null;index"`
	TransactionType   string    `gorm:"column:transaction_type;not null"`
	Category          string    `gorm:"column:category;not null"`
	Amount            int       `gorm:"column:amount;not null"`
	BalanceBefore     int       `gorm:"column:balance_before;not null"`
	BalanceAfter      int       `gorm:"column:balance_after;not null"`
	Description       string    `gorm:"column:description;type:text"`
	Metadata          string    `gorm:"column:metadata;type:text"` // JSON as text
	RelatedEntityType string    `gorm:"column:related_entity_type"`
	RelatedEntityID   string    `gorm:"column:related_entity_id"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// SessionLogModel represents the session_logs table
type SessionLogModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID string    `gorm:"column:session_id;not null;index"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	Level     string    `gorm:"column:level;not null;default:'INFO'"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"` // JSON as text
}

func (SessionLogModel) TableName() string {
	return "session_logs"
}

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&GameRecordModel{},
		&TransactionModel{},
		&SessionLogModel{},
	}
}
