package service

import (
	"testing"

	"github.com/Damarkevich/hw05-final/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{},
		&model.Comment{}, &model.Follow{}, &model.SocialOutbox{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Password: "x", Email: name + "@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreatePostRequiresText(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := newTestUser(t, db, "leo")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreatePost(u.ID, text, nil, "")
		require.ErrorIs(t, err, ErrTextRequired)
	}

	n, err := svc.CountByAuthor(u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestCreatePostPersistsFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := newTestUser(t, db, "leo")
	g := &model.Group{Slug: "cats", Title: "Cats", Description: "d"}
	require.NoError(t, db.Create(g).Error)

	post, err := svc.CreatePost(u.ID, "hello world", &g.ID, "pic.png")
	require.NoError(t, err)

	got, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	require.Equal(t, "hello world", got.Text)
	require.Equal(t, u.ID, got.AuthorID)
	require.NotNil(t, got.GroupID)
	require.Equal(t, g.ID, *got.GroupID)
	require.Equal(t, "pic.png", got.Image)
}

func TestUpdatePostRejectsEmptyTextWithoutSideEffects(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := newTestUser(t, db, "leo")

	post, err := svc.CreatePost(u.ID, "original", nil, "")
	require.NoError(t, err)

	err = svc.UpdatePost(post, "  ", nil, "")
	require.ErrorIs(t, err, ErrTextRequired)

	got, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	require.Equal(t, "original", got.Text)
}

func TestUpdatePostCanDetachGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := newTestUser(t, db, "leo")
	g := &model.Group{Slug: "cats", Title: "Cats", Description: "d"}
	require.NoError(t, db.Create(g).Error)

	post, err := svc.CreatePost(u.ID, "with group", &g.ID, "")
	require.NoError(t, err)

	loaded, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	require.NoError(t, svc.UpdatePost(loaded, "no group now", nil, ""))

	got, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	require.Equal(t, "no group now", got.Text)
	require.Nil(t, got.GroupID)
}

func TestListGroupUnknownSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)

	_, _, err := svc.ListGroup("nope")
	require.True(t, IsNotFound(err))
}

func TestAddCommentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := newTestUser(t, db, "leo")

	post, err := svc.CreatePost(u.ID, "a post", nil, "")
	require.NoError(t, err)

	// 帖子不存在优先于正文校验
	_, err = svc.AddComment(u.ID, post.ID+100, "hi")
	require.True(t, IsNotFound(err))

	_, err = svc.AddComment(u.ID, post.ID, "  ")
	require.ErrorIs(t, err, ErrTextRequired)

	c, err := svc.AddComment(u.ID, post.ID, "first!")
	require.NoError(t, err)
	require.Equal(t, post.ID, c.PostID)

	list, err := svc.ListComments(post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "first!", list[0].Text)
	require.Equal(t, "leo", list[0].Author.Username)
}

func TestListAuthorReturnsCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := newTestUser(t, db, "leo")
	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(u.ID, "post", nil, "")
		require.NoError(t, err)
	}

	author, posts, count, err := svc.ListAuthor("leo")
	require.NoError(t, err)
	require.Equal(t, u.ID, author.ID)
	require.Len(t, posts, 3)
	require.EqualValues(t, 3, count)

	_, _, _, err = svc.ListAuthor("ghost")
	require.True(t, IsNotFound(err))
}
