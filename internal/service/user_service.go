package service

import (
	"errors"

	"github.com/Damarkevich/hw05-final/internal/model"
	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCredentials  = errors.New("invalid username or password")
	ErrFieldsNeeded = errors.New("username, email and password required")
	ErrBadCode      = errors.New("verification failed")
)

// SessionStore 登录态 token 存储（生产是 redis）
type SessionStore interface {
	AddUserToken(userID uint64, token string) error
	GetUserToken(userID uint64) (string, error)
	DeleteUserToken(userID uint64) error
}

type UserService struct {
	repo     *mysql.UserRepository
	sessions SessionStore
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, sessions SessionStore, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		sessions: sessions,
		emailSvc: emailSvc,
	}
}

// Signup 注册新用户
func (s *UserService) Signup(username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrFieldsNeeded
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验口令，签 token 并写入会话存储
func (s *UserService) Login(login, password string) (*model.User, string, error) {
	user, err := s.repo.FindByLogin(login)
	if err != nil {
		return nil, "", ErrCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrCredentials
	}

	token, err := pkg.GenerateAccess(user.ID)
	if err != nil {
		return nil, "", err
	}
	if err = s.sessions.AddUserToken(user.ID, token); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.sessions.DeleteUserToken(usrID)
}

// SendResetCode 给注册邮箱发重置验证码。邮箱未注册直接报错。
func (s *UserService) SendResetCode(email string) error {
	if _, err := s.repo.FindByEmail(email); err != nil {
		return err
	}
	return s.emailSvc.SendResetCode(email)
}

// ResetPassword 用邮件验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyResetCode(email, code)
	if err != nil || !ok {
		return ErrBadCode
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(user, string(hash))
}

// ChangePassword 登录态修改密码
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(user, string(hash))
}
