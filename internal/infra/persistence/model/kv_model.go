// Package model contains the GORM-specific structs for the device store.
package model

import "time"

// KeyValueModel is the GORM-specific struct for the 'key_values' table. It
// backs the device key-value store; values are sealed before they land here.
type KeyValueModel struct {
	Key       string `gorm:"type:text;primary_key"`
	Value     []byte `gorm:"type:blob;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (KeyValueModel) TableName() string {
	return "key_values"
}
