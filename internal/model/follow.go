package model

import "time"

// Follow 关注关系：user 关注 author。(user_id, author_id) 唯一，禁止自关注。
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index:idx_follow_user;uniqueIndex:uk_user_author"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID  uint64 `gorm:"not null;index:idx_follow_author;uniqueIndex:uk_user_author;check:chk_not_self,user_id <> author_id"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follow"
}

// SocialOutbox 关注事件监控表
type SocialOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow
	Follower  uint64 `gorm:"not null"`
	Author    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SocialOutbox) TableName() string { return "social_outbox" }
