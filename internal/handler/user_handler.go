package handler

import (
	"net/http"

	"github.com/Damarkevich/hw05-final/internal/middleware"
	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SignupForm 注册表单
func (h *UserHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"Username": "", "Email": ""})
}

// Signup 注册提交，成功后去登录页
func (h *UserHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if _, err := h.svc.Signup(username, email, password); err != nil {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"Error":    err.Error(),
			"Username": username,
			"Email":    email,
		})
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// LoginForm 登录表单，next 透传到隐藏字段
func (h *UserHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Next": c.Query("next"), "Username": ""})
}

// Login 登录提交：发会话 cookie，回跳 next 或首页
func (h *UserHandler) Login(c *gin.Context) {
	login := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	_, token, err := h.svc.Login(login, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "invalid username or password",
			"Username": login,
			"Next":     next,
		})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(pkg.AccessTTL.Seconds()), "/", "", false, true)
	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout 注销：删会话 token、清 cookie、回首页
func (h *UserHandler) Logout(c *gin.Context) {
	if uid, ok := currentUserID(c); ok {
		_ = h.svc.Logout(uid)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// PasswordResetForm 重置申请表单
func (h *UserHandler) PasswordResetForm(c *gin.Context) {
	c.HTML(http.StatusOK, "password_reset.html", gin.H{"Email": ""})
}

// PasswordReset 往注册邮箱发验证码
func (h *UserHandler) PasswordReset(c *gin.Context) {
	email := c.PostForm("email")
	if err := h.svc.SendResetCode(email); err != nil {
		c.HTML(http.StatusOK, "password_reset.html", gin.H{
			"Error": "could not send reset code",
			"Email": email,
		})
		return
	}
	c.Redirect(http.StatusFound, "/auth/password_reset/confirm/")
}

// PasswordResetConfirmForm 验证码 + 新密码表单
func (h *UserHandler) PasswordResetConfirmForm(c *gin.Context) {
	c.HTML(http.StatusOK, "password_reset_confirm.html", gin.H{"Email": ""})
}

// PasswordResetConfirm 校验验证码并落新密码
func (h *UserHandler) PasswordResetConfirm(c *gin.Context) {
	email := c.PostForm("email")
	code := c.PostForm("code")
	newPassword := c.PostForm("new_password")

	if err := h.svc.ResetPassword(email, code, newPassword); err != nil {
		c.HTML(http.StatusOK, "password_reset_confirm.html", gin.H{
			"Error": "verification failed",
			"Email": email,
		})
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// PasswordChangeForm 登录态改密表单
func (h *UserHandler) PasswordChangeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "password_change.html", gin.H{})
}

// PasswordChange 登录态修改密码
func (h *UserHandler) PasswordChange(c *gin.Context) {
	uid, _ := currentUserID(c)
	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password")

	if err := h.svc.ChangePassword(uid, oldPassword, newPassword); err != nil {
		c.HTML(http.StatusOK, "password_change.html", gin.H{"Error": err.Error()})
		return
	}
	c.HTML(http.StatusOK, "password_change.html", gin.H{"Done": true})
}
