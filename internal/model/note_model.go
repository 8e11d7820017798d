package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Title         string                      `gorm:"type:varchar(255);not null"`
	Content       string                      `gorm:"type:text"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	IsPinned      bool                        `gorm:"not null;default:false"`
	IsComplete    bool                        `gorm:"not null;default:false"`
	Status        string                      `gorm:"type:varchar(32);not null;default:'To-Do'"`
	Priority      string                      `gorm:"type:varchar(16);not null;default:'Medium'"`
	AssignedUsers datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	UserId        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CreatedOn     time.Time                   `gorm:"autoCreateTime"`
	CompletedTime *time.Time
}

func (Note) TableName() string {
	return "notes"
}
