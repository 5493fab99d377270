package model

import (
	"time"

	"gorm.io/datatypes"
)

// DocumentModel is the GORM-specific struct for the 'documents' table.
// Every collection shares the table; the document body is stored as JSONB.
type DocumentModel struct {
	Collection string            `gorm:"type:varchar(128);primaryKey"`
	Key        string            `gorm:"column:doc_key;type:varchar(255);primaryKey"`
	Data       datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (DocumentModel) TableName() string {
	return "documents"
}
