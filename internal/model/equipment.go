package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Equipment is the normalized, persisted form of an imported device.
// ID is derived from the descriptive fields, so re-imports collapse onto the same row.
type Equipment struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Model           *string        `gorm:"column:model"`
	EquipmentName   *string        `gorm:"column:equipmentName"`
	SampleID        *string        `gorm:"column:sampleId"`
	DeviceNo        *string        `gorm:"column:deviceNo"`
	Manufacturer    *string        `gorm:"column:manufacturer"`
	Place           *string        `gorm:"column:place"`
	Equipment       *string        `gorm:"column:equipment"`
	CreaterID       *int32         `gorm:"column:createrId"`
	Comment         *string        `gorm:"column:comment"`
	ClientID        *uuid.UUID     `gorm:"column:clientId;type:uuid"`
	Address         datatypes.JSON `gorm:"column:address;type:json"`
	CreatedAt       time.Time      `gorm:"column:createdAt;not null"`
	UpdatedAt       time.Time      `gorm:"column:updatedAt;not null"`
	EquipmentTypeID *uuid.UUID     `gorm:"column:equipmentTypeId;type:uuid"`
}

// TableName pins the table to the existing schema.
func (Equipment) TableName() string {
	return "equipment"
}
