package model

import "time"

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	Slug        string `gorm:"uniqueIndex;size:64;not null"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
