package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Client represents a customer that owns equipment. Clients are matched by exact name.
type Client struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CreatedAt time.Time      `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time      `gorm:"column:updatedAt;not null"`
	Name      string         `gorm:"column:name;index"`
	Comment   string         `gorm:"column:comment"`
	Address   datatypes.JSON `gorm:"column:address;type:json"`
}

// TableName pins the table to the existing schema.
func (Client) TableName() string {
	return "clients"
}
