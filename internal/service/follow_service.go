package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Damarkevich/hw05-final/internal/model"
	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	repo  *mysql.FollowRepository
	users *mysql.UserRepository
	posts *mysql.PostRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:  &mysql.FollowRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
		posts: &mysql.PostRepository{DB: db},
	}
}

// Follow 关注作者。自关注和重复关注都静默放过，handler 统一重定向回主页。
// 作者不存在时透传 gorm.ErrRecordNotFound。
func (s *FollowService) Follow(ctx context.Context, userID uint64, username string) error {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return nil
	}
	_, err = s.repo.Follow(ctx, userID, author.ID)
	return err
}

// Unfollow 取关（幂等，不存在的关系不报错）
func (s *FollowService) Unfollow(ctx context.Context, userID uint64, username string) error {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return nil
	}
	_, err = s.repo.Unfollow(ctx, userID, author.ID)
	return err
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == 0 || authorID == 0 {
		return false, errors.New("invalid user id")
	}
	return s.repo.IsFollowing(ctx, userID, authorID)
}

// Feed 关注流：所有已关注作者的帖子，时间倒序
func (s *FollowService) Feed(ctx context.Context, userID uint64) ([]model.Post, error) {
	return s.posts.ListFeed(userID)
}

/*
outbox 投递：关注/取关事件异步推给 kafka
*/

type Sender func(ctx context.Context, ob *model.SocialOutbox) error

// OutboxRelayer 定时扫 social_outbox，把 pending 事件交给 sender
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// LogSender 默认 sender：没配 kafka 时只打日志
func LogSender(ctx context.Context, ob *model.SocialOutbox) error {
	log.Printf("OUTBOX SEND type=%s follower=%d author=%d payload=%s", ob.EventType, ob.Follower, ob.Author, ob.Payload)
	return nil
}

// KafkaSender 按关注者分区投递事件
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.SocialOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.Follower), []byte(ob.Payload))
	}
}
