package router

import (
	"github.com/Damarkevich/hw05-final/internal/config"
	"github.com/Damarkevich/hw05-final/internal/handler"
	"github.com/Damarkevich/hw05-final/internal/middleware"
	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/service"
	"github.com/Damarkevich/hw05-final/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps 路由装配的外部依赖，缓存和会话存储都从这里注入
type Deps struct {
	DB       *gorm.DB
	Cache    middleware.PageCacheStore
	Sessions service.SessionStore
	Codes    service.CodeStore
	Cfg      *config.Config
}

func InitRouter(d *Deps) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())
	r.MaxMultipartMemory = 8 << 20

	smtpCfg := pkg.SMTPConfig{
		Host:     d.Cfg.SMTPHost,
		Port:     d.Cfg.SMTPPort,
		Username: d.Cfg.SMTPUsername,
		Password: d.Cfg.SMTPPassword,
		From:     d.Cfg.SMTPFrom,
	}

	emailSvc := service.NewEmailService(smtpCfg, d.Codes)
	postSvc := service.NewPostService(d.DB)
	followSvc := service.NewFollowService(d.DB)
	userSvc := service.NewUserService(d.DB, d.Sessions, emailSvc)

	post := handler.NewPostHandler(postSvc, followSvc, d.Cfg.PageSize, d.Cfg.MediaDir)
	follow := handler.NewFollowHandler(followSvc, d.Cfg.PageSize)
	user := handler.NewUserHandler(userSvc)

	authRequired := middleware.AuthRequired(d.Sessions)
	currentUser := middleware.CurrentUser(d.Sessions)

	r.Static("/media", d.Cfg.MediaDir)

	// 首页走 20 秒整页缓存
	r.GET("/", middleware.CachePage(d.Cache, d.Cfg.CacheTTL, middleware.IndexCachePrefix), post.Index)
	r.GET("/group/:slug/", post.GroupPosts)
	r.GET("/profile/:username/", currentUser, post.Profile)

	r.GET("/posts/:id/", post.Detail)
	r.POST("/posts/:id/", authRequired, post.AddComment)
	r.POST("/posts/:id/comment/", authRequired, post.AddComment)
	r.GET("/posts/:id/edit/", authRequired, post.EditForm)
	r.POST("/posts/:id/edit/", authRequired, post.Edit)

	r.GET("/create/", authRequired, post.CreateForm)
	r.POST("/create/", authRequired, post.Create)

	r.GET("/follow/", authRequired, follow.FollowIndex)
	r.GET("/profile/:username/follow/", authRequired, follow.Follow)
	r.POST("/profile/:username/follow/", authRequired, follow.Follow)
	r.GET("/profile/:username/unfollow/", authRequired, follow.Unfollow)
	r.POST("/profile/:username/unfollow/", authRequired, follow.Unfollow)

	// 身份相关接口
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/signup/", user.SignupForm)
		authGroup.POST("/signup/", user.Signup)
		authGroup.GET("/login/", user.LoginForm)
		authGroup.POST("/login/", user.Login)
		authGroup.GET("/logout/", currentUser, user.Logout)
		authGroup.GET("/password_reset/", user.PasswordResetForm)
		authGroup.POST("/password_reset/", user.PasswordReset)
		authGroup.GET("/password_reset/confirm/", user.PasswordResetConfirmForm)
		authGroup.POST("/password_reset/confirm/", user.PasswordResetConfirm)
		authGroup.GET("/password_change/", authRequired, user.PasswordChangeForm)
		authGroup.POST("/password_change/", authRequired, user.PasswordChange)
	}

	// 未知路由也走自定义 404 页
	r.NoRoute(handler.NotFound)

	return r
}
