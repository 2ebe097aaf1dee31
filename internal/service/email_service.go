package service

import (
	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/repository/redis"
)

// CodeStore 重置验证码存储（生产是 redis，测试用内存假实现）
type CodeStore interface {
	SetResetCode(email, code string) error
	GetResetCode(email string) (string, error)
	DeleteResetCode(email string) error
}

// EmailSender 发信函数，测试里替换掉真实 SMTP
type EmailSender func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error

type EmailService struct {
	emailCfg pkg.SMTPConfig
	codes    CodeStore
	send     EmailSender
}

func NewEmailService(cfg pkg.SMTPConfig, codes CodeStore) *EmailService {
	return &EmailService{emailCfg: cfg, codes: codes, send: pkg.SendEmail}
}

// SendResetCode 发送重置密码验证码
func (s *EmailService) SendResetCode(email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.codes.SetResetCode(email, code); err != nil {
		return err
	}

	html := pkg.EmailCodeHTML("重置密码", code, redis.DefaultEmailCodeTTL)
	return s.send(s.emailCfg, email, "密码重置验证码", html)
}

// VerifyResetCode 校验验证码并一次性删除
func (s *EmailService) VerifyResetCode(email, code string) (bool, error) {
	val, err := s.codes.GetResetCode(email)
	if err != nil {
		// 不存在或已过期
		return false, nil
	}
	if val != code {
		return false, nil
	}
	if err = s.codes.DeleteResetCode(email); err != nil {
		return false, err
	}
	return true, nil
}
