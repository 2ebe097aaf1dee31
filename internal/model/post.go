package model

import "time"

type Post struct {
	ID        uint64  `gorm:"primaryKey"`
	Text      string  `gorm:"type:text;not null"`
	AuthorID  uint64  `gorm:"not null;index:idx_author_time,priority:1"`
	Author    User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *uint64 `gorm:"index"`
	Group     *Group  `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string  `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index:idx_author_time,priority:2,sort:desc"`
	UpdatedAt time.Time
}
