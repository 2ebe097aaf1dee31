package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	CodeResetPrefix     = "email:code:reset"
)

var (
	ErrCodeNotFound      = errors.New("reset code not found")
	ErrCodeSetFailed     = errors.New("reset code set failed")
	ErrEmailCodeDelFailed = errors.New("reset code delete failed")
)

// ResetCodeRepository 密码重置验证码，带 TTL，一次性使用
type ResetCodeRepository struct{}

func (e *ResetCodeRepository) SetResetCode(email, code string) error {
	key := fmt.Sprintf("%s:%s", CodeResetPrefix, email)
	if err := Client.Set(context.Background(), key, code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrCodeSetFailed
	}
	return nil
}

func (e *ResetCodeRepository) GetResetCode(email string) (string, error) {
	key := fmt.Sprintf("%s:%s", CodeResetPrefix, email)
	val, err := Client.Get(context.Background(), key).Result()
	if err != nil {
		// redis.Nil 表示不存在或已过期
		return "", ErrCodeNotFound
	}
	return val, nil
}

// DeleteResetCode 校验通过后删除（幂等）
func (e *ResetCodeRepository) DeleteResetCode(email string) error {
	key := fmt.Sprintf("%s:%s", CodeResetPrefix, email)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
