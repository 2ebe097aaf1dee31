package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/Damarkevich/hw05-final/internal/model"

	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, repo *PostRepository, authorID uint64, text string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: authorID, CreatedAt: at}
	require.NoError(t, repo.Create(p))
	return p
}

func TestListFeedSortedAcrossAuthors(t *testing.T) {
	db := newTestDB(t)
	posts := &PostRepository{DB: db}
	follows := &FollowRepository{DB: db}
	ctx := context.Background()

	reader := newTestUser(t, db, "reader")
	a := newTestUser(t, db, "alice")
	b := newTestUser(t, db, "bob")
	c := newTestUser(t, db, "carol")

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	createPost(t, posts, a.ID, "alice old", base)
	createPost(t, posts, b.ID, "bob mid", base.Add(time.Hour))
	createPost(t, posts, a.ID, "alice new", base.Add(2*time.Hour))
	// 未关注作者的帖子不进流
	createPost(t, posts, c.ID, "carol", base.Add(3*time.Hour))

	_, err := follows.Follow(ctx, reader.ID, a.ID)
	require.NoError(t, err)
	_, err = follows.Follow(ctx, reader.ID, b.ID)
	require.NoError(t, err)

	feed, err := posts.ListFeed(reader.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	require.Equal(t, "alice new", feed[0].Text)
	require.Equal(t, "bob mid", feed[1].Text)
	require.Equal(t, "alice old", feed[2].Text)
}

func TestListFeedEmptyWithoutFollows(t *testing.T) {
	db := newTestDB(t)
	posts := &PostRepository{DB: db}

	reader := newTestUser(t, db, "reader")
	a := newTestUser(t, db, "alice")
	createPost(t, posts, a.ID, "hi", time.Now())

	feed, err := posts.ListFeed(reader.ID)
	require.NoError(t, err)
	require.Empty(t, feed)
}

func TestListByGroupFilters(t *testing.T) {
	db := newTestDB(t)
	posts := &PostRepository{DB: db}

	a := newTestUser(t, db, "alice")
	g := &model.Group{Slug: "cats", Title: "Cats", Description: "about cats"}
	require.NoError(t, db.Create(g).Error)

	inGroup := &model.Post{Text: "in group", AuthorID: a.ID, GroupID: &g.ID}
	require.NoError(t, posts.Create(inGroup))
	require.NoError(t, posts.Create(&model.Post{Text: "no group", AuthorID: a.ID}))

	list, err := posts.ListByGroup(g.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "in group", list[0].Text)
	require.Equal(t, "alice", list[0].Author.Username)
}

func TestFindByIDPreloadsAssociations(t *testing.T) {
	db := newTestDB(t)
	posts := &PostRepository{DB: db}

	a := newTestUser(t, db, "alice")
	g := &model.Group{Slug: "cats", Title: "Cats", Description: "d"}
	require.NoError(t, db.Create(g).Error)
	p := &model.Post{Text: "hello", AuthorID: a.ID, GroupID: &g.ID}
	require.NoError(t, posts.Create(p))

	got, err := posts.FindByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Author.Username)
	require.NotNil(t, got.Group)
	require.Equal(t, "cats", got.Group.Slug)
}
