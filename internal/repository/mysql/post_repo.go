package mysql

import (
	"github.com/Damarkevich/hw05-final/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Omit(clause.Associations).Create(post).Error
}

// Update 只写帖子本身的列，预加载出来的关联不回写
func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Omit(clause.Associations).Save(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, "id = ?", id).Error
	return &post, err
}

// ListAll 首页：全部帖子，新的在前
func (r *PostRepository) ListAll() ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *PostRepository) ListByGroup(groupID uint64) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *PostRepository) ListByAuthor(authorID uint64) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *PostRepository) CountByAuthor(authorID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// ListFeed 关注流：当前用户关注的所有作者的帖子合并后按时间倒序
func (r *PostRepository) ListFeed(userID uint64) ([]model.Post, error) {
	var list []model.Post
	sub := r.DB.Model(&model.Follow{}).
		Select("author_id").
		Where("user_id = ?", userID)
	err := r.DB.Preload("Author").Preload("Group").
		Where("author_id IN (?)", sub).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}
