package model

import "time"

// CachedEntityModel is the GORM-specific struct for the 'cached_entities'
// table. One row per (kind, id); the payload is the JSON the backend returned.
type CachedEntityModel struct {
	Kind      string    `gorm:"type:text;primary_key"`
	EntityID  int64     `gorm:"primary_key;autoIncrement:false"`
	Payload   []byte    `gorm:"type:blob;not null"`
	FetchedAt time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (CachedEntityModel) TableName() string {
	return "cached_entities"
}
