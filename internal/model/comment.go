package model

import "time"

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index:idx_post_created,priority:1"`
	Post      Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  uint64 `gorm:"not null;index"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_post_created,priority:2,sort:desc"`
}
