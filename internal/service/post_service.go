package service

import (
	"errors"
	"strings"

	"github.com/Damarkevich/hw05-final/internal/model"
	"github.com/Damarkevich/hw05-final/internal/repository/mysql"

	"gorm.io/gorm"
)

var ErrTextRequired = errors.New("text required")

type PostService struct {
	posts    *mysql.PostRepository
	groups   *mysql.GroupRepository
	comments *mysql.CommentRepository
	users    *mysql.UserRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		posts:    &mysql.PostRepository{DB: db},
		groups:   &mysql.GroupRepository{DB: db},
		comments: &mysql.CommentRepository{DB: db},
		users:    &mysql.UserRepository{DB: db},
	}
}

// CreatePost 新帖。正文必填，分组和配图可选。
func (s *PostService) CreatePost(userID uint64, text string, groupID *uint64, image string) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	post := &model.Post{
		Text:     text,
		AuthorID: userID,
		GroupID:  groupID,
		Image:    image,
	}

	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost 把表单字段绑定到已有帖子上再落库。校验失败不落任何改动。
func (s *PostService) UpdatePost(post *model.Post, text string, groupID *uint64, image string) error {
	if strings.TrimSpace(text) == "" {
		return ErrTextRequired
	}
	post.Text = text
	post.GroupID = groupID
	post.Group = nil
	if image != "" {
		post.Image = image
	}
	return s.posts.Update(post)
}

func (s *PostService) GetPost(id uint64) (*model.Post, error) {
	return s.posts.FindByID(id)
}

func (s *PostService) GetUser(id uint64) (*model.User, error) {
	return s.users.FindByID(id)
}

// ListAll 首页帖子列表
func (s *PostService) ListAll() ([]model.Post, error) {
	return s.posts.ListAll()
}

// ListGroup 分组页：slug 不存在返回 gorm.ErrRecordNotFound
func (s *PostService) ListGroup(slug string) (*model.Group, []model.Post, error) {
	group, err := s.groups.FindBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.ListByGroup(group.ID)
	if err != nil {
		return nil, nil, err
	}
	return group, posts, nil
}

// ListAuthor 个人主页：作者、帖子列表、帖子总数
func (s *PostService) ListAuthor(username string) (*model.User, []model.Post, int64, error) {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, nil, 0, err
	}
	posts, err := s.posts.ListByAuthor(author.ID)
	if err != nil {
		return nil, nil, 0, err
	}
	count, err := s.posts.CountByAuthor(author.ID)
	if err != nil {
		return nil, nil, 0, err
	}
	return author, posts, count, nil
}

func (s *PostService) CountByAuthor(authorID uint64) (int64, error) {
	return s.posts.CountByAuthor(authorID)
}

// AddComment 评论必须挂在存在的帖子上，正文必填
func (s *PostService) AddComment(userID, postID uint64, text string) (*model.Comment, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     text,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) ListComments(postID uint64) ([]model.Comment, error) {
	return s.comments.ListByPost(postID)
}

func (s *PostService) ListGroups() ([]model.Group, error) {
	return s.groups.List()
}

// IsNotFound 给 handler 判 404 用
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
