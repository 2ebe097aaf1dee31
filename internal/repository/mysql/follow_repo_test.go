package mysql

import (
	"context"
	"testing"

	"github.com/Damarkevich/hw05-final/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 用内存 sqlite 跑仓储层，限制单连接避免 :memory: 各连接各一库
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

func TestFollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := &FollowRepository{DB: db}
	ctx := context.Background()
	u1 := newTestUser(t, db, "leo")
	u2 := newTestUser(t, db, "oleg")

	changed, err := repo.Follow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.True(t, changed)

	// 重复关注不报错也不新增
	changed, err = repo.Follow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.False(t, changed)

	n, err := repo.CountByUser(ctx, u1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	following, err := repo.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.True(t, following)
}

func TestFollowWritesOutboxOnceOnDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := &FollowRepository{DB: db}
	ctx := context.Background()
	u1 := newTestUser(t, db, "leo")
	u2 := newTestUser(t, db, "oleg")

	_, err := repo.Follow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	_, err = repo.Follow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)

	var events []model.SocialOutbox
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	require.Equal(t, "follow", events[0].EventType)
	require.Equal(t, u1.ID, events[0].Follower)
	require.Equal(t, u2.ID, events[0].Author)
}

func TestUnfollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := &FollowRepository{DB: db}
	ctx := context.Background()
	u1 := newTestUser(t, db, "leo")
	u2 := newTestUser(t, db, "oleg")

	// 没有关系时解除关注也算成功
	changed, err := repo.Unfollow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.False(t, changed)

	_, err = repo.Follow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)

	changed, err = repo.Unfollow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = repo.Unfollow(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.False(t, changed)

	following, err := repo.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.False(t, following)
}

func TestSelfFollowRejectedByConstraint(t *testing.T) {
	db := newTestDB(t)
	repo := &FollowRepository{DB: db}
	u := newTestUser(t, db, "leo")

	// 自关注被表级 check 约束挡住，业务层在此之前就会拦截
	_, err := repo.Follow(context.Background(), u.ID, u.ID)
	require.Error(t, err)
}
